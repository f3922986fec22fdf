package statemachine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/subscriptions/pkg/statemachine"
)

type state string
type event string

func TestMachine(t *testing.T) {
	t.Parallel()

	m, err := statemachine.NewBuilder[state, event]().
		Permit("close", "closed", "open", "stuck").
		Permit("open", "open", "closed").
		Build()
	require.NoError(t, err)

	to, err := m.Fire("open", "close")
	require.NoError(t, err)
	assert.Equal(t, state("closed"), to)

	to, err = m.Fire("stuck", "close")
	require.NoError(t, err)
	assert.Equal(t, state("closed"), to)

	assert.True(t, m.CanFire("closed", "open"))
	assert.False(t, m.CanFire("closed", "close"))

	_, err = m.Fire("closed", "close")
	require.Error(t, err)
	assert.ErrorIs(t, err, statemachine.ErrNoTransition)

	var nt *statemachine.NoTransitionError
	require.True(t, errors.As(err, &nt))
	assert.Equal(t, state("closed"), nt.From)
	assert.Equal(t, event("close"), nt.Event)
	assert.Contains(t, err.Error(), "'closed'")
}

func TestBuilderErrors(t *testing.T) {
	t.Parallel()

	_, err := statemachine.NewBuilder[state, event]().
		Permit("open", "open", "closed").
		Permit("open", "stuck", "closed").
		Build()
	assert.ErrorIs(t, err, statemachine.ErrDuplicateTransition)

	_, err = statemachine.NewBuilder[state, event]().Permit("open", "open").Build()
	assert.ErrorIs(t, err, statemachine.ErrNoSourceStates)

	assert.Panics(t, func() {
		statemachine.NewBuilder[state, event]().Permit("open", "open").MustBuild()
	})
}

func TestMachineIsIndependentOfBuilder(t *testing.T) {
	t.Parallel()

	b := statemachine.NewBuilder[state, event]().Permit("open", "open", "closed")
	m := b.MustBuild()
	b.Permit("close", "closed", "open")

	assert.False(t, m.CanFire("open", "close"))
}

func TestPermitAll(t *testing.T) {
	t.Parallel()

	m, err := statemachine.NewBuilder[state, event]().
		Permit("reset", "stuck", "broken").
		PermitAll("reset", "open", "locked").
		PermitAll("close", "closed", "closed").
		Build()
	require.NoError(t, err)

	tests := []struct {
		name string
		from state
		ev   event
		want state
		ok   bool
	}{
		{"named state", "open", "close", "closed", true},
		{"state missing from table", "mystery", "close", "closed", true},
		{"zero state", "", "close", "closed", true},
		{"excluded state", "closed", "close", "", false},
		{"exact entry wins", "broken", "reset", "stuck", true},
		{"other exclusion list", "locked", "reset", "", false},
		{"event without entries", "open", "open", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.ok, m.CanFire(tt.from, tt.ev))

			to, err := m.Fire(tt.from, tt.ev)
			if !tt.ok {
				assert.ErrorIs(t, err, statemachine.ErrNoTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, to)
		})
	}

	_, err = statemachine.NewBuilder[state, event]().
		PermitAll("close", "closed").
		PermitAll("close", "open").
		Build()
	assert.ErrorIs(t, err, statemachine.ErrDuplicateTransition)
}

func TestPermitAllIsIndependentOfBuilder(t *testing.T) {
	t.Parallel()

	except := []state{"closed"}
	b := statemachine.NewBuilder[state, event]().PermitAll("close", "closed", except...)
	m := b.MustBuild()
	except[0] = "open"
	b.PermitAll("open", "open")

	assert.True(t, m.CanFire("open", "close"))
	assert.False(t, m.CanFire("closed", "close"))
	assert.False(t, m.CanFire("closed", "open"))
}
