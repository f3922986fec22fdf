package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrNoTransition        = errors.New("no transition available")
	ErrDuplicateTransition = errors.New("duplicate transition")
	ErrNoSourceStates      = errors.New("transition has no source states")
)

// NoTransitionError reports an event that is not permitted from a state.
// It matches ErrNoTransition with errors.Is.
type NoTransitionError struct {
	From  any
	Event any
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("no transition available from state '%v' for event '%v'", e.From, e.Event)
}

func (e *NoTransitionError) Is(target error) bool {
	return target == ErrNoTransition
}
