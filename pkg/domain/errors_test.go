package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors_MatchSentinels(t *testing.T) {
	tests := []struct {
		err  error
		want error
		msg  string
	}{
		{&UnknownStateError{Label: "q9"}, ErrUnknownState, `unknown state "q9"`},
		{&UnknownSymbolError{Label: "z"}, ErrUnknownSymbol, `unknown symbol "z"`},
		{&DuplicateStateError{Label: "q0"}, ErrDuplicateState, `state "q0" already registered`},
		{&UndefinedTransitionError{State: "q0", Symbol: "2"}, ErrUndefinedTransition, "no transition defined for (q0, 2)"},
		{
			&NonDeterministicTransitionError{State: "q0", Symbol: "a", Existing: "q1", Proposed: "q2"},
			ErrNonDeterministic,
			`transition (q0, a) already leads to "q1", refusing "q2"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.want)
			assert.ErrorIs(t, fmt.Errorf("wrapped: %w", tt.err), tt.want)
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestInvalidAutomatonError(t *testing.T) {
	single := &InvalidAutomatonError{Violations: []error{
		fmt.Errorf("initial state: %w", &UnknownStateError{Label: "x"}),
	}}
	assert.Equal(t, `invalid automaton: initial state: unknown state "x"`, single.Error())

	multi := &InvalidAutomatonError{Violations: []error{
		&UnknownStateError{Label: "x"},
		&UnknownSymbolError{Label: "9"},
	}}
	assert.Contains(t, multi.Error(), "2 violations")
	assert.Contains(t, multi.Error(), "  2. unknown symbol \"9\"")

	var err error = fmt.Errorf("load: %w", multi)
	assert.ErrorIs(t, err, ErrInvalidAutomaton)
	assert.ErrorIs(t, err, ErrUnknownState)
	assert.ErrorIs(t, err, ErrUnknownSymbol)
	assert.NotErrorIs(t, err, ErrNonDeterministic)

	var sym *UnknownSymbolError
	require.True(t, errors.As(err, &sym))
	assert.Equal(t, "9", sym.Label)

	assert.Len(t, Violations(err), 2)
	assert.Nil(t, Violations(errors.New("other")))
}
