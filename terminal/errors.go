package terminal

import (
	"errors"
	"fmt"
)

// ErrSurfaceUnavailable reports that the host cannot provide the drawing surface or context a backend needs
// Fatal to that backend variant; callers fall back to another variant or abort startup
var ErrSurfaceUnavailable = errors.New("surface unavailable")

// ErrInvariantViolation marks programming errors such as out-of-range diff positions
var ErrInvariantViolation = errors.New("invariant violation")

// InvariantError describes a broken grid invariant
// Backends panic with it; the render loop recovers and stops
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvariantViolation, e.Op, e.Detail)
}

// Unwrap allows errors.Is(err, ErrInvariantViolation)
func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}

// Violation panics with an InvariantError
func Violation(op, format string, args ...any) {
	panic(&InvariantError{Op: op, Detail: fmt.Sprintf(format, args...)})
}
