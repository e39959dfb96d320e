/*
Package automata is a deterministic finite automaton (DFA) engine.

An automaton is the 5-tuple (Q, Σ, δ, q0, F): a set of states, an alphabet,
a partial transition function, an initial state and a set of accepting states.
Once built it is frozen, and every query against it is read-only, so a single
instance can serve any number of goroutines.

# Queries

  - Delta: one transition, δ(q, a).
  - DeltaExtended: a whole word, δ*(q, w), starting from q or the initial state.
  - Trace: the stepwise sequence of (state, consumed, remaining) triples for a word.
  - Accepts: membership of a word, treating an undefined transition as rejection.

A missing (state, symbol) pair is reported as domain.ErrUndefinedTransition;
it is never an implicit dead state. Use dfa.Automaton.Complete to add one.

# Usage

Definitions are read from a directory of YAML, JSON or Markdown-frontmatter
files through Loam, or injected with WithLoader:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/automata"
		"github.com/aretw0/automata/pkg/domain"
	)

	func main() {
		eng, err := automata.New("./machines")
		if err != nil {
			log.Fatal(err)
		}

		out, err := eng.Extended(context.Background(), "ends-in-01", "", domain.SplitWord("1101"))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(out.State, out.Accepting) // s2 true
	}

Automata can also be assembled in code with package dsl, or directly with
dfa.New, without any loader at all.
*/
package automata
