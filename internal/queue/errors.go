package queue

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition marks an attempt to move a job between states that
// are not connected (for example succeeding a job that never started).
var ErrInvalidTransition = errors.New("invalid job transition")

// TransitionError describes a rejected status change.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

// Unwrap lets errors.Is match ErrInvalidTransition.
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
