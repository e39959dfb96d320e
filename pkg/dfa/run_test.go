package dfa_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/automata/pkg/dfa"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestDelta(t *testing.T) {
	a := endsIn01(t)

	next, err := a.Delta("s0", "0")
	require.NoError(t, err)
	assert.Equal(t, "s1", next)

	step, err := a.Step("s1", "1")
	require.NoError(t, err)
	assert.Equal(t, "s2", step)

	for _, tt := range []struct{ state, symbol string }{
		{"s0", "2"},
		{"ghost", "0"},
		{"s0", ""},
	} {
		_, err := a.Delta(tt.state, tt.symbol)
		var undef *domain.UndefinedTransitionError
		require.ErrorAs(t, err, &undef, "(%s, %s)", tt.state, tt.symbol)
		assert.Equal(t, tt.state, undef.State)
		assert.Equal(t, tt.symbol, undef.Symbol)
		assert.True(t, dfa.IsUndefined(err))
	}
}

func TestDelta_IsDeterministic(t *testing.T) {
	a := endsIn01(t)
	for _, q := range a.States() {
		for _, s := range a.Alphabet() {
			first, err := a.Delta(q, s)
			require.NoError(t, err)
			for i := 0; i < 10; i++ {
				again, err := a.Delta(q, s)
				require.NoError(t, err)
				assert.Equal(t, first, again)
			}
		}
	}
}

func TestDeltaExtended(t *testing.T) {
	a := endsIn01(t)

	tests := []struct {
		start string
		word  string
		want  string
	}{
		{"s0", "1101", "s2"},
		{"s0", "110", "s1"},
		{"", "1101", "s2"},
		{"", "", "s0"},
		{"s1", "", "s1"},
		{"s2", "1", "s0"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%q", tt.start, tt.word), func(t *testing.T) {
			got, err := a.DeltaExtended(tt.start, domain.SplitWord(tt.word))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeltaExtended_IdentityOnEmptyWord(t *testing.T) {
	a := endsIn01(t)
	for _, q := range a.States() {
		got, err := a.DeltaExtended(q, nil)
		require.NoError(t, err)
		assert.Equal(t, q, got)
	}
}

func TestDeltaExtended_Composability(t *testing.T) {
	a := endsIn01(t)
	words := []string{"", "0", "1", "01", "10", "110", "0101", "1111"}

	for _, q := range a.States() {
		for _, w1 := range words {
			for _, w2 := range words {
				whole, err := a.DeltaExtended(q, domain.SplitWord(w1+w2))
				require.NoError(t, err)

				mid, err := a.DeltaExtended(q, domain.SplitWord(w1))
				require.NoError(t, err)
				split, err := a.DeltaExtended(mid, domain.SplitWord(w2))
				require.NoError(t, err)

				assert.Equal(t, whole, split, "q=%s w1=%q w2=%q", q, w1, w2)
			}
		}
	}
}

func TestDeltaExtended_Errors(t *testing.T) {
	a := endsIn01(t)

	_, err := a.DeltaExtended("s0", domain.SplitWord("0210"))
	var undef *domain.UndefinedTransitionError
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, "s1", undef.State, "aborts at the first undefined step")
	assert.Equal(t, "2", undef.Symbol)

	_, err = a.DeltaExtended("ghost", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownState)
}

func TestDeltaStepwise(t *testing.T) {
	a := endsIn01(t)

	steps, err := a.Trace(domain.SplitWord("01"), "")
	require.NoError(t, err)

	want := []domain.Step{
		{State: "s0", Consumed: "", Remaining: []string{"0", "1"}},
		{State: "s1", Consumed: "0", Remaining: []string{"1"}},
		{State: "s2", Consumed: "1", Remaining: []string{}},
	}
	if diff := cmp.Diff(want, steps); diff != "" {
		t.Errorf("Trace() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeltaStepwise_TraceLength(t *testing.T) {
	a := endsIn01(t)
	for _, w := range []string{"", "0", "1101", "0000011111"} {
		word := domain.SplitWord(w)
		var steps []domain.Step
		for step, err := range a.DeltaStepwise(word, "s2") {
			require.NoError(t, err)
			steps = append(steps, step)
		}
		require.Len(t, steps, len(word)+1)
		assert.Equal(t, "", steps[0].Consumed)
		assert.Equal(t, "s2", steps[0].State)
		assert.Equal(t, word, steps[0].Remaining)
		assert.Empty(t, steps[len(steps)-1].Remaining)

		final, err := a.DeltaExtended("s2", word)
		require.NoError(t, err)
		assert.Equal(t, final, steps[len(steps)-1].State, "trace agrees with DeltaExtended")
	}
}

func TestDeltaStepwise_StopsOnUndefined(t *testing.T) {
	a := endsIn01(t)

	var steps []domain.Step
	var failures int
	for step, err := range a.DeltaStepwise(domain.SplitWord("0x11"), "") {
		if err != nil {
			failures++
			assert.True(t, dfa.IsUndefined(err))
			continue
		}
		steps = append(steps, step)
	}
	assert.Equal(t, 1, failures)
	assert.Len(t, steps, 2, "initial element and the step before the failure")

	trace, err := a.Trace(domain.SplitWord("0x11"), "")
	assert.Error(t, err)
	assert.Nil(t, trace, "no partial trace is returned")
}

func TestDeltaStepwise_IsRestartable(t *testing.T) {
	a := endsIn01(t)
	word := domain.SplitWord("1101")
	seq := a.DeltaStepwise(word, "")

	// Break after the first element, then replay the same sequence in full.
	for range seq {
		break
	}

	var states []string
	for step, err := range seq {
		require.NoError(t, err)
		states = append(states, step.State)
	}
	assert.Equal(t, []string{"s0", "s0", "s0", "s1", "s2"}, states)
}

func TestAccepts(t *testing.T) {
	a := endsIn01(t)

	assert.True(t, a.Accepts(domain.SplitWord("1101")))
	assert.True(t, a.Accepts(domain.SplitWord("01")))
	assert.False(t, a.Accepts(domain.SplitWord("110")))
	assert.False(t, a.Accepts(nil))
	assert.False(t, a.Accepts(domain.SplitWord("01a")), "undefined transition rejects")
}

func TestAutomaton_ConcurrentReaders(t *testing.T) {
	a := endsIn01(t)
	g, _ := errgroup.WithContext(context.Background())

	for i := 0; i < 16; i++ {
		g.Go(func() error {
			for j := 0; j < 200; j++ {
				got, err := a.DeltaExtended("", domain.SplitWord("1101"))
				if err != nil {
					return err
				}
				if got != "s2" {
					return fmt.Errorf("got %s, want s2", got)
				}
				if _, err := a.Trace(domain.SplitWord("0101"), ""); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
