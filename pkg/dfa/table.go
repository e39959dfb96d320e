package dfa

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

type tableKey struct {
	source int
	symbol string
}

// Entry is one stored transition, expressed with state indices.
type Entry struct {
	Source int
	Symbol string
	Target int
}

// TransitionTable is the partial function (state index, symbol) -> state index.
// It keeps insertion order so Entries is stable across calls.
type TransitionTable struct {
	states *StateRegistry
	next   map[tableKey]int
	order  []tableKey
}

// NewTransitionTable creates an empty table whose errors are labelled using states.
func NewTransitionTable(states *StateRegistry) *TransitionTable {
	return &TransitionTable{
		states: states,
		next:   make(map[tableKey]int),
	}
}

// Insert stores source --symbol--> target.
// Re-inserting the same target is a no-op. A different target fails with
// *domain.NonDeterministicTransitionError unless allowOverwrite is set.
func (t *TransitionTable) Insert(source int, symbol string, target int, allowOverwrite bool) error {
	if _, err := t.states.LabelOf(source); err != nil {
		return err
	}
	if _, err := t.states.LabelOf(target); err != nil {
		return err
	}

	key := tableKey{source: source, symbol: symbol}
	existing, ok := t.next[key]
	switch {
	case !ok:
		t.order = append(t.order, key)
	case existing == target:
		return nil
	case !allowOverwrite:
		return &domain.NonDeterministicTransitionError{
			State:    t.label(source),
			Symbol:   symbol,
			Existing: t.label(existing),
			Proposed: t.label(target),
		}
	}
	t.next[key] = target
	return nil
}

// Lookup returns the target of (source, symbol) or *domain.UndefinedTransitionError.
func (t *TransitionTable) Lookup(source int, symbol string) (int, error) {
	target, ok := t.next[tableKey{source: source, symbol: symbol}]
	if !ok {
		return 0, &domain.UndefinedTransitionError{State: t.label(source), Symbol: symbol}
	}
	return target, nil
}

// Entries returns every stored transition in insertion order.
func (t *TransitionTable) Entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, Entry{Source: key.source, Symbol: key.symbol, Target: t.next[key]})
	}
	return out
}

// Len returns the number of stored transitions.
func (t *TransitionTable) Len() int {
	return len(t.order)
}

func (t *TransitionTable) label(index int) string {
	label, err := t.states.LabelOf(index)
	if err != nil {
		return fmt.Sprintf("#%d", index)
	}
	return label
}
