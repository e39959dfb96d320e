package dsl

import (
	"fmt"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/dfa"
	"github.com/aretw0/automata/pkg/domain"
)

// Builder manages the automaton declaration.
type Builder struct {
	id          string
	states      []*StateBuilder
	byLabel     map[string]*StateBuilder
	alphabet    []string
	seenSymbol  map[string]bool
	initial     string
	transitions []domain.TransitionDef
	force       bool
}

// New creates a new builder for the automaton identified by id.
func New(id string) *Builder {
	return &Builder{
		id:         id,
		byLabel:    make(map[string]*StateBuilder),
		seenSymbol: make(map[string]bool),
	}
}

// State declares a state, or returns the existing builder if it was declared before.
func (b *Builder) State(label string) *StateBuilder {
	if sb, ok := b.byLabel[label]; ok {
		return sb
	}
	sb := &StateBuilder{label: label, builder: b}
	b.states = append(b.states, sb)
	b.byLabel[label] = sb
	return sb
}

// Alphabet declares symbols up front, fixing their order.
// Symbols used in On are added automatically.
func (b *Builder) Alphabet(symbols ...string) *Builder {
	for _, s := range symbols {
		b.symbol(s)
	}
	return b
}

// Force lets later transitions replace earlier ones for the same pair.
func (b *Builder) Force(force bool) *Builder {
	b.force = force
	return b
}

func (b *Builder) symbol(s string) {
	if b.seenSymbol[s] {
		return
	}
	b.seenSymbol[s] = true
	b.alphabet = append(b.alphabet, s)
}

// Definition returns the portable form of what was declared so far.
func (b *Builder) Definition() domain.Definition {
	def := domain.Definition{
		ID:          b.id,
		States:      make([]string, 0, len(b.states)),
		Alphabet:    append([]string(nil), b.alphabet...),
		Initial:     b.initial,
		Accepting:   []string{},
		Transitions: append([]domain.TransitionDef(nil), b.transitions...),
		Force:       b.force,
	}
	for _, sb := range b.states {
		def.States = append(def.States, sb.label)
		if sb.accepting {
			def.Accepting = append(def.Accepting, sb.label)
		}
	}
	return def
}

// Build validates the declaration and returns the frozen automaton.
func (b *Builder) Build() (*dfa.Automaton, error) {
	a, err := dfa.FromDefinition(b.Definition())
	if err != nil {
		return nil, fmt.Errorf("failed to build automaton %s: %w", b.id, err)
	}
	return a, nil
}

// Loader validates the declaration and wraps it in an in-memory loader.
func (b *Builder) Loader() (*memory.Loader, error) {
	if _, err := b.Build(); err != nil {
		return nil, err
	}
	return memory.NewLoader(b.Definition()), nil
}
