package study

import "errors"

var (
	ErrNotFound     = errors.New("study not found")
	ErrForbidden    = errors.New("not allowed to act on this study")
	ErrInvalidState = errors.New("operation not valid for study state")
	ErrInvalidStage = errors.New("unknown stage")
	ErrConflict     = errors.New("study was modified concurrently, retry")
)
