package dsl

import "github.com/aretw0/automata/pkg/domain"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	label     string
	accepting bool
	builder   *Builder
}

// Initial marks the state as the initial state, replacing any previous choice.
func (s *StateBuilder) Initial() *StateBuilder {
	s.builder.initial = s.label
	return s
}

// Accepting adds the state to the accepting set.
func (s *StateBuilder) Accepting() *StateBuilder {
	s.accepting = true
	return s
}

// On adds the transition (this state, symbol) -> target.
// The target state and the symbol are declared implicitly.
func (s *StateBuilder) On(symbol, target string) *StateBuilder {
	s.builder.symbol(symbol)
	s.builder.State(target)
	s.builder.transitions = append(s.builder.transitions, domain.TransitionDef{
		From:   s.label,
		Symbol: symbol,
		To:     target,
	})
	return s
}

// Loop adds a self transition on every given symbol.
func (s *StateBuilder) Loop(symbols ...string) *StateBuilder {
	for _, symbol := range symbols {
		s.On(symbol, s.label)
	}
	return s
}

// State switches to another state, so declarations can be chained.
func (s *StateBuilder) State(label string) *StateBuilder {
	return s.builder.State(label)
}
