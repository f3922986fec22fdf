package statemachine

import (
	"fmt"
	"maps"
	"slices"
)

// Builder collects transitions for a Machine. The first error is kept and
// reported by Build.
type Builder[S, E comparable] struct {
	next map[transitionKey[S, E]]S
	any  map[E]wildcard[S]
	err  error
}

func NewBuilder[S, E comparable]() *Builder[S, E] {
	return &Builder[S, E]{
		next: make(map[transitionKey[S, E]]S),
		any:  make(map[E]wildcard[S]),
	}
}

// Permit allows event to move any of the from states to "to".
func (b *Builder[S, E]) Permit(event E, to S, from ...S) *Builder[S, E] {
	if b.err != nil {
		return b
	}
	if len(from) == 0 {
		b.err = fmt.Errorf("%w: event %v", ErrNoSourceStates, event)
		return b
	}
	for _, f := range from {
		k := transitionKey[S, E]{from: f, event: event}
		if _, dup := b.next[k]; dup {
			b.err = fmt.Errorf("%w: %v on %v", ErrDuplicateTransition, f, event)
			return b
		}
		b.next[k] = to
	}
	return b
}

// PermitAll allows event to move every state except the listed ones to "to",
// including states unknown to the table. Exact Permit entries take precedence.
func (b *Builder[S, E]) PermitAll(event E, to S, except ...S) *Builder[S, E] {
	if b.err != nil {
		return b
	}
	if _, dup := b.any[event]; dup {
		b.err = fmt.Errorf("%w: any state on %v", ErrDuplicateTransition, event)
		return b
	}
	b.any[event] = wildcard[S]{to: to, except: slices.Clone(except)}
	return b
}

// Build returns the Machine, or the first error recorded by Permit or PermitAll.
func (b *Builder[S, E]) Build() (*Machine[S, E], error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Machine[S, E]{next: maps.Clone(b.next), any: maps.Clone(b.any)}, nil
}

// MustBuild is Build for package-level tables. It panics on error.
func (b *Builder[S, E]) MustBuild() *Machine[S, E] {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}
