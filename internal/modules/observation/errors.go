package observation

import "errors"

var (
	ErrProjectGone = errors.New("project not found")
)
