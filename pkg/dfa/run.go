package dfa

import (
	"errors"
	"iter"

	"github.com/aretw0/automata/pkg/domain"
)

// Delta is the transition function δ(state, symbol).
// It fails with *domain.UndefinedTransitionError exactly when no transition is
// stored for the pair, which includes states and symbols the automaton never declared.
func (a *Automaton) Delta(state, symbol string) (string, error) {
	src, err := a.states.IndexOf(state)
	if err != nil {
		return "", &domain.UndefinedTransitionError{State: state, Symbol: symbol}
	}
	dst, err := a.table.Lookup(src, symbol)
	if err != nil {
		return "", err
	}
	return a.states.labels[dst], nil
}

// Step is Delta under the name used by interactive stepping callers.
func (a *Automaton) Step(state, symbol string) (string, error) {
	return a.Delta(state, symbol)
}

// DeltaExtended is δ* over a whole word, applied left to right.
// An empty state selects the initial state; the empty word returns the start
// state unchanged. The first undefined step aborts the run.
func (a *Automaton) DeltaExtended(state string, word []string) (string, error) {
	cur, err := a.start(state)
	if err != nil {
		return "", err
	}
	for _, symbol := range word {
		cur, err = a.table.Lookup(cur, symbol)
		if err != nil {
			return "", err
		}
	}
	return a.states.labels[cur], nil
}

// DeltaStepwise returns a lazy trace of the run of word from state (or the
// initial state when state is empty).
//
// The first element is (start, "", word). Each following element is the state
// reached after one more symbol, that symbol, and the suffix after it, so a
// fully consumable word yields len(word)+1 elements. When a transition is
// undefined the sequence yields a single zero Step with the error and stops.
// Every call starts a fresh, independent run. Remaining slices must be treated as read-only.
func (a *Automaton) DeltaStepwise(word []string, state string) iter.Seq2[domain.Step, error] {
	return func(yield func(domain.Step, error) bool) {
		cur, err := a.start(state)
		if err != nil {
			yield(domain.Step{}, err)
			return
		}

		w := make([]string, len(word))
		copy(w, word)

		if !yield(domain.Step{State: a.states.labels[cur], Remaining: w}, nil) {
			return
		}
		for i, symbol := range w {
			cur, err = a.table.Lookup(cur, symbol)
			if err != nil {
				yield(domain.Step{}, err)
				return
			}
			if !yield(domain.Step{State: a.states.labels[cur], Consumed: symbol, Remaining: w[i+1:]}, nil) {
				return
			}
		}
	}
}

// Trace collects DeltaStepwise. On failure no partial trace is returned.
func (a *Automaton) Trace(word []string, state string) ([]domain.Step, error) {
	steps := make([]domain.Step, 0, len(word)+1)
	for step, err := range a.DeltaStepwise(word, state) {
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// Accepts runs word from the initial state with conventional DFA semantics:
// an undefined transition rejects the word.
func (a *Automaton) Accepts(word []string) bool {
	final, err := a.DeltaExtended("", word)
	if err != nil {
		return false
	}
	return a.IsAccepting(final)
}

func (a *Automaton) start(state string) (int, error) {
	if state == "" {
		return a.initial, nil
	}
	return a.states.IndexOf(state)
}

// IsUndefined reports whether err is an undefined transition, the routine
// outcome presentation layers render as "no such transition".
func IsUndefined(err error) bool {
	return errors.Is(err, domain.ErrUndefinedTransition)
}
