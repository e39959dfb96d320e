package dfa

import (
	"errors"
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// Automaton is a frozen deterministic finite automaton.
type Automaton struct {
	id        string
	states    *StateRegistry
	alphabet  *SymbolSet
	table     *TransitionTable
	initial   int
	accepting map[int]struct{}
	force     bool
}

type options struct {
	id    string
	force bool
}

// Option configures construction.
type Option func(*options)

// WithForce makes later transitions replace earlier ones for the same
// (state, symbol) pair instead of failing the determinism check.
func WithForce(force bool) Option {
	return func(o *options) {
		o.force = force
	}
}

// WithID attaches an identifier, used by loaders and observability.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}

// New validates the 5-tuple and builds a frozen Automaton.
// Every violation is collected into a single *domain.InvalidAutomatonError;
// no automaton is returned when any check fails.
func New(states, alphabet []string, initial string, accepting []string, transitions []domain.TransitionDef, opts ...Option) (*Automaton, error) {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	a := &Automaton{
		id:        cfg.id,
		states:    NewStateRegistry(),
		alphabet:  NewSymbolSet(),
		accepting: make(map[int]struct{}),
		force:     cfg.force,
	}
	a.table = NewTransitionTable(a.states)

	var violations []error

	for _, q := range states {
		if q == "" {
			violations = append(violations, errors.New("state labels must not be empty"))
			continue
		}
		a.states.Register(q)
	}
	for _, s := range alphabet {
		if s == "" {
			violations = append(violations, errors.New("symbol labels must not be empty"))
			continue
		}
		a.alphabet.Register(s)
	}

	if idx, err := a.states.IndexOf(initial); err != nil {
		violations = append(violations, fmt.Errorf("initial state: %w", err))
	} else {
		a.initial = idx
	}

	for _, q := range accepting {
		idx, err := a.states.IndexOf(q)
		if err != nil {
			violations = append(violations, fmt.Errorf("accepting state: %w", err))
			continue
		}
		a.accepting[idx] = struct{}{}
	}

	for i, t := range transitions {
		src, srcErr := a.states.IndexOf(t.From)
		dst, dstErr := a.states.IndexOf(t.To)
		var symErr error
		if !a.alphabet.Contains(t.Symbol) {
			symErr = &domain.UnknownSymbolError{Label: t.Symbol}
		}
		bad := false
		for _, e := range []error{srcErr, symErr, dstErr} {
			if e != nil {
				violations = append(violations, fmt.Errorf("transition %d (%s, %s) -> %s: %w", i, t.From, t.Symbol, t.To, e))
				bad = true
			}
		}
		if bad {
			continue
		}
		if err := a.table.Insert(src, t.Symbol, dst, cfg.force); err != nil {
			violations = append(violations, fmt.Errorf("transition %d: %w", i, err))
		}
	}

	if len(violations) > 0 {
		return nil, &domain.InvalidAutomatonError{Violations: violations}
	}
	return a, nil
}

// FromDefinition builds an Automaton from its portable form.
// The definition's ID and Force flag are applied before opts.
func FromDefinition(def domain.Definition, opts ...Option) (*Automaton, error) {
	all := append([]Option{WithID(def.ID), WithForce(def.Force)}, opts...)
	return New(def.States, def.Alphabet, def.Initial, def.Accepting, def.Transitions, all...)
}

// ID returns the identifier given at construction, if any.
func (a *Automaton) ID() string {
	return a.id
}

// States returns every state label in registration order.
func (a *Automaton) States() []string {
	return a.states.Labels()
}

// Alphabet returns the symbols in insertion order.
func (a *Automaton) Alphabet() []string {
	return a.alphabet.Symbols()
}

// Initial returns the initial state label.
func (a *Automaton) Initial() string {
	return a.states.labels[a.initial]
}

// Accepting returns the accepting states in registration order.
func (a *Automaton) Accepting() []string {
	out := make([]string, 0, len(a.accepting))
	for idx, label := range a.states.labels {
		if _, ok := a.accepting[idx]; ok {
			out = append(out, label)
		}
	}
	return out
}

// IsAccepting reports whether state is registered and accepting.
func (a *Automaton) IsAccepting(state string) bool {
	idx, err := a.states.IndexOf(state)
	if err != nil {
		return false
	}
	_, ok := a.accepting[idx]
	return ok
}

// Transitions returns the whole transition relation with labels, in insertion order.
func (a *Automaton) Transitions() []domain.TransitionDef {
	entries := a.table.Entries()
	out := make([]domain.TransitionDef, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.TransitionDef{
			From:   a.states.labels[e.Source],
			Symbol: e.Symbol,
			To:     a.states.labels[e.Target],
		})
	}
	return out
}

// Definition returns the portable form of the automaton.
// Feeding it back to FromDefinition yields an equivalent automaton.
func (a *Automaton) Definition() domain.Definition {
	return domain.Definition{
		ID:          a.id,
		States:      a.States(),
		Alphabet:    a.Alphabet(),
		Initial:     a.Initial(),
		Accepting:   a.Accepting(),
		Transitions: a.Transitions(),
		Force:       a.force,
	}
}
