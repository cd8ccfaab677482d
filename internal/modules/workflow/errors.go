package workflow

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("project not found")
	ErrForbidden    = errors.New("role not authorized for this stage")
	ErrInvalidState = errors.New("operation not valid for current state")
	// ErrInvalidTransition guards against a status value outside the closed
	// enum ever reaching the transition table.
	ErrInvalidTransition = errors.New("status has no transition entry")
	// ErrConflict means the project changed under a concurrent writer.
	ErrConflict = errors.New("project was modified concurrently, retry")
)

// GateBlockedError reports why a gate refused a stage transition. It unwraps
// to ErrInvalidState so handlers can map it to a 400.
type GateBlockedError struct {
	Reason string
}

func (e *GateBlockedError) Error() string {
	return fmt.Sprintf("stage gate blocked: %s", e.Reason)
}

func (e *GateBlockedError) Unwrap() error { return ErrInvalidState }
