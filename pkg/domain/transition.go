package domain

// TransitionDef is one entry of the transition function: reading Symbol in From leads to To.
type TransitionDef struct {
	From   string `json:"from" yaml:"from"`
	Symbol string `json:"symbol" yaml:"symbol"`
	To     string `json:"to" yaml:"to"`
}

// Definition is the portable form of a deterministic finite automaton.
// It is what loaders return and what dfa.FromDefinition consumes.
type Definition struct {
	ID          string          `json:"id" yaml:"id"`
	States      []string        `json:"states" yaml:"states"`
	Alphabet    []string        `json:"alphabet" yaml:"alphabet"`
	Initial     string          `json:"initial" yaml:"initial"`
	Accepting   []string        `json:"accepting" yaml:"accepting"`
	Transitions []TransitionDef `json:"transitions" yaml:"transitions"`

	// Force lets a later transition replace an earlier one for the same
	// (from, symbol) pair instead of failing the determinism check.
	Force bool `json:"force,omitempty" yaml:"force,omitempty"`
}
