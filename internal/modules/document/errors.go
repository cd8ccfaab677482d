package document

import "errors"

var (
	ErrNotFound    = errors.New("document not found")
	ErrProjectGone = errors.New("project not found")
	ErrInvalidType = errors.New("unknown document type")
	ErrInvalidFile = errors.New("file not accepted for this document type")
)
