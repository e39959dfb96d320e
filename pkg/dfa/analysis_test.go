package dfa_test

import (
	"testing"

	"github.com/aretw0/automata/pkg/dfa"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// partial has an orphan state and undefined transitions.
func partial(t *testing.T) *dfa.Automaton {
	t.Helper()
	a, err := dfa.New(
		[]string{"q0", "q1", "orphan"},
		[]string{"a", "b"},
		"q0",
		[]string{"q1", "orphan"},
		[]domain.TransitionDef{
			{From: "q0", Symbol: "a", To: "q1"},
			{From: "q1", Symbol: "b", To: "q0"},
			{From: "orphan", Symbol: "a", To: "q0"},
		},
	)
	require.NoError(t, err)
	return a
}

func TestReachability(t *testing.T) {
	a := partial(t)
	assert.Equal(t, []string{"q0", "q1"}, a.Reachable())
	assert.Equal(t, []string{"orphan"}, a.Unreachable())

	assert.Empty(t, endsIn01(t).Unreachable())
}

func TestComplete(t *testing.T) {
	a := partial(t)

	c, err := a.Complete("sink")
	require.NoError(t, err)

	assert.Equal(t, []string{"q0", "q1", "orphan", "sink"}, c.States())
	assert.False(t, c.IsAccepting("sink"))
	for _, q := range c.States() {
		for _, s := range c.Alphabet() {
			_, err := c.Delta(q, s)
			assert.NoError(t, err, "(%s, %s) must be defined", q, s)
		}
	}

	next, err := c.Delta("q0", "b")
	require.NoError(t, err)
	assert.Equal(t, "sink", next)
	next, err = c.Delta("sink", "a")
	require.NoError(t, err)
	assert.Equal(t, "sink", next)

	_, err = a.Delta("q0", "b")
	assert.True(t, dfa.IsUndefined(err), "receiver is untouched")
}

func TestComplete_ExistingSink(t *testing.T) {
	a, err := dfa.New([]string{"q", "dead"}, []string{"x"}, "q", nil, nil)
	require.NoError(t, err)

	c, err := a.Complete("dead")
	require.NoError(t, err)
	assert.Equal(t, []string{"q", "dead"}, c.States())
	assert.Len(t, c.Transitions(), 2)
}

func TestTrim(t *testing.T) {
	a := partial(t)

	trimmed, err := a.Trim()
	require.NoError(t, err)

	assert.Equal(t, []string{"q0", "q1"}, trimmed.States())
	assert.Equal(t, []string{"q1"}, trimmed.Accepting())
	assert.Len(t, trimmed.Transitions(), 2)
	assert.Equal(t, []string{"q0", "q1", "orphan"}, a.States(), "receiver is untouched")
}

func TestSummary(t *testing.T) {
	s := endsIn01(t).Summary()

	assert.Contains(t, s, "Automaton: ends-in-01")
	assert.Contains(t, s, "States   : s0, s1, s2")
	assert.Contains(t, s, "Sigma    : 0, 1")
	assert.Contains(t, s, "Initial  : s0")
	assert.Contains(t, s, "Accepting: s2")
	assert.Contains(t, s, " s1,1 → s2\n")
}
