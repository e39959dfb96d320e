package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownState is matched by UnknownStateError.
	ErrUnknownState = errors.New("unknown state")
	// ErrUnknownSymbol is matched by UnknownSymbolError.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrDuplicateState is matched by DuplicateStateError.
	ErrDuplicateState = errors.New("duplicate state")
	// ErrNonDeterministic is matched by NonDeterministicTransitionError.
	ErrNonDeterministic = errors.New("non-deterministic transition")
	// ErrUndefinedTransition is matched by UndefinedTransitionError.
	ErrUndefinedTransition = errors.New("undefined transition")
	// ErrInvalidAutomaton is matched by InvalidAutomatonError.
	ErrInvalidAutomaton = errors.New("invalid automaton")
)

// ErrAutomatonNotFound is returned when a definition ID cannot be resolved by a loader.
var ErrAutomatonNotFound = errors.New("automaton not found")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrRunFinished is returned when stepping a run that already consumed its whole word
// or stopped on an undefined transition.
var ErrRunFinished = errors.New("run already finished")

// UnknownStateError reports a state label that was never registered.
type UnknownStateError struct {
	Label string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("unknown state %q", e.Label)
}

func (e *UnknownStateError) Unwrap() error { return ErrUnknownState }

// UnknownSymbolError reports a symbol that is not part of the alphabet.
type UnknownSymbolError struct {
	Label string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %q", e.Label)
}

func (e *UnknownSymbolError) Unwrap() error { return ErrUnknownSymbol }

// DuplicateStateError is returned by strict registration of an existing label.
type DuplicateStateError struct {
	Label string
}

func (e *DuplicateStateError) Error() string {
	return fmt.Sprintf("state %q already registered", e.Label)
}

func (e *DuplicateStateError) Unwrap() error { return ErrDuplicateState }

// NonDeterministicTransitionError is the determinism guard: (State, Symbol) already
// leads to Existing and the caller tried to map it to Proposed without an override.
type NonDeterministicTransitionError struct {
	State    string
	Symbol   string
	Existing string
	Proposed string
}

func (e *NonDeterministicTransitionError) Error() string {
	return fmt.Sprintf("transition (%s, %s) already leads to %q, refusing %q",
		e.State, e.Symbol, e.Existing, e.Proposed)
}

func (e *NonDeterministicTransitionError) Unwrap() error { return ErrNonDeterministic }

// UndefinedTransitionError is the routine read-path outcome when no transition
// exists for (State, Symbol). Callers usually treat it as rejection.
type UndefinedTransitionError struct {
	State  string
	Symbol string
}

func (e *UndefinedTransitionError) Error() string {
	return fmt.Sprintf("no transition defined for (%s, %s)", e.State, e.Symbol)
}

func (e *UndefinedTransitionError) Unwrap() error { return ErrUndefinedTransition }

// InvalidAutomatonError aggregates every invariant violated while constructing an automaton.
type InvalidAutomatonError struct {
	Violations []error
}

func (e *InvalidAutomatonError) Error() string {
	if len(e.Violations) == 1 {
		return "invalid automaton: " + e.Violations[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid automaton: %d violations:\n", len(e.Violations))
	for i, err := range e.Violations {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Is reports whether target is ErrInvalidAutomaton.
func (e *InvalidAutomatonError) Is(target error) bool {
	return target == ErrInvalidAutomaton
}

// Unwrap exposes the individual violations to errors.Is and errors.As.
func (e *InvalidAutomatonError) Unwrap() []error {
	return e.Violations
}

// Violations returns all construction violations if err is an InvalidAutomatonError.
// Otherwise returns nil.
func Violations(err error) []error {
	var inv *InvalidAutomatonError
	if errors.As(err, &inv) {
		return inv.Violations
	}
	return nil
}
