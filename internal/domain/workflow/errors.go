package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when a state transition is not allowed
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrNothingSubmitted is returned when submission state is derived
	// without either party having submitted
	ErrNothingSubmitted = errors.New("neither employee nor manager has submitted")
)

// TransitionError carries the structured context of a rejected transition so
// callers can branch programmatically, e.g. to render valid next states.
type TransitionError struct {
	From   State
	To     State
	Reason string
	Reopen bool
}

func (e *TransitionError) Error() string {
	kind := "transition"
	if e.Reopen {
		kind = "reopen"
	}
	return fmt.Sprintf("invalid %s %s -> %s: %s", kind, e.From, e.To, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidTransition
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func newTransitionError(from, to State, reason string, reopen bool) *TransitionError {
	return &TransitionError{From: from, To: to, Reason: reason, Reopen: reopen}
}
