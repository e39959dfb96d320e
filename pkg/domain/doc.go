/*
Package domain contains the core domain models for the automata engine.

It defines the serialisable shape of a deterministic finite automaton, the
trace elements produced while running one, the interactive run snapshot used
by stepping sessions, and the error taxonomy shared by every layer. This
package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Definition: the 5-tuple (states, alphabet, transitions, initial, accepting) in portable form.
  - TransitionDef: a single (from, symbol) -> to triple.
  - Step: one element of a run trace (state, consumed symbol, remaining word).
  - Run: the persisted snapshot of an interactive, symbol-by-symbol session.
*/
package domain
