package statemachine

import "slices"

// Machine is an immutable transition table. It holds no current state:
// callers pass the state they loaded and persist the state Fire returns,
// so one Machine serves any number of records concurrently.
type Machine[S, E comparable] struct {
	next map[transitionKey[S, E]]S
	any  map[E]wildcard[S]
}

type transitionKey[S, E comparable] struct {
	from  S
	event E
}

type wildcard[S comparable] struct {
	to     S
	except []S
}

// Fire returns the state reached from "from" on event, or a *NoTransitionError.
func (m *Machine[S, E]) Fire(from S, event E) (S, error) {
	to, ok := m.lookup(from, event)
	if !ok {
		var zero S
		return zero, &NoTransitionError{From: from, Event: event}
	}
	return to, nil
}

// CanFire reports whether event is permitted from "from".
func (m *Machine[S, E]) CanFire(from S, event E) bool {
	_, ok := m.lookup(from, event)
	return ok
}

func (m *Machine[S, E]) lookup(from S, event E) (S, bool) {
	if to, ok := m.next[transitionKey[S, E]{from: from, event: event}]; ok {
		return to, true
	}
	w, ok := m.any[event]
	if !ok || slices.Contains(w.except, from) {
		var zero S
		return zero, false
	}
	return w.to, true
}
