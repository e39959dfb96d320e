/*
Package dfa implements a deterministic finite automaton and its run semantics.

An Automaton is assembled from three leaf structures:

  - StateRegistry: a bijection between state labels and dense integer indices.
  - SymbolSet: the insertion-ordered alphabet.
  - TransitionTable: the partial function (state index, symbol) -> state index,
    which refuses to store two different targets for the same pair.

Construction validates every reference and fails with a single
*domain.InvalidAutomatonError listing all violations. Once built, an Automaton
is frozen: Delta, Step, DeltaExtended, DeltaStepwise and the analysis helpers
only read its tables, so one instance can be shared by any number of
goroutines without locking.

	a, err := dfa.New(
		[]string{"s0", "s1", "s2"},
		[]string{"0", "1"},
		"s0",
		[]string{"s2"},
		[]domain.TransitionDef{
			{From: "s0", Symbol: "0", To: "s1"},
			{From: "s0", Symbol: "1", To: "s0"},
			{From: "s1", Symbol: "0", To: "s1"},
			{From: "s1", Symbol: "1", To: "s2"},
			{From: "s2", Symbol: "0", To: "s1"},
			{From: "s2", Symbol: "1", To: "s0"},
		},
	)
	if err != nil {
		return err
	}
	final, err := a.DeltaExtended("", domain.SplitWord("1101")) // "s2"

The empty label is reserved: passing "" as the start state of DeltaExtended or
DeltaStepwise selects the initial state.
*/
package dfa
