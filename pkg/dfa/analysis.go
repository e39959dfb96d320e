package dfa

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Reachable returns the states reachable from the initial state, in registration order.
func (a *Automaton) Reachable() []string {
	seen := a.reachable()
	out := make([]string, 0, len(seen))
	for idx, label := range a.states.labels {
		if seen[idx] {
			out = append(out, label)
		}
	}
	return out
}

// Unreachable returns the states no word can lead to, in registration order.
func (a *Automaton) Unreachable() []string {
	seen := a.reachable()
	out := make([]string, 0)
	for idx, label := range a.states.labels {
		if !seen[idx] {
			out = append(out, label)
		}
	}
	return out
}

func (a *Automaton) reachable() []bool {
	seen := make([]bool, a.states.Len())
	seen[a.initial] = true
	queue := []int{a.initial}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, symbol := range a.alphabet.symbols {
			next, err := a.table.Lookup(cur, symbol)
			if err != nil {
				continue
			}
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// Complete returns a new automaton in which every undefined (state, symbol)
// pair leads to sink. The sink is added as a non-accepting state when missing
// and loops on every symbol. The receiver is left untouched.
func (a *Automaton) Complete(sink string) (*Automaton, error) {
	def := a.Definition()
	if !a.states.Contains(sink) {
		def.States = append(def.States, sink)
	}
	for _, q := range def.States {
		for _, symbol := range def.Alphabet {
			if _, err := a.Delta(q, symbol); err == nil {
				continue
			}
			def.Transitions = append(def.Transitions, domain.TransitionDef{From: q, Symbol: symbol, To: sink})
		}
	}
	return FromDefinition(def)
}

// Trim returns a new automaton without unreachable states or the transitions touching them.
func (a *Automaton) Trim() (*Automaton, error) {
	seen := a.reachable()
	keep := func(label string) bool {
		idx, err := a.states.IndexOf(label)
		return err == nil && seen[idx]
	}

	def := a.Definition()
	def.States = a.Reachable()

	accepting := def.Accepting[:0]
	for _, q := range def.Accepting {
		if keep(q) {
			accepting = append(accepting, q)
		}
	}
	def.Accepting = accepting

	transitions := def.Transitions[:0]
	for _, t := range def.Transitions {
		if keep(t.From) && keep(t.To) {
			transitions = append(transitions, t)
		}
	}
	def.Transitions = transitions

	return FromDefinition(def)
}

// Summary returns a plain text listing of the 5-tuple.
func (a *Automaton) Summary() string {
	var sb strings.Builder
	if a.id != "" {
		fmt.Fprintf(&sb, "Automaton: %s\n", a.id)
	}
	fmt.Fprintf(&sb, "States   : %s\n", strings.Join(a.States(), ", "))
	fmt.Fprintf(&sb, "Sigma    : %s\n", strings.Join(a.Alphabet(), ", "))
	fmt.Fprintf(&sb, "Initial  : %s\n", a.Initial())
	fmt.Fprintf(&sb, "Accepting: %s\n", strings.Join(a.Accepting(), ", "))
	sb.WriteString("Transitions:\n")
	for _, t := range a.Transitions() {
		fmt.Fprintf(&sb, " %s,%s → %s\n", t.From, t.Symbol, t.To)
	}
	return sb.String()
}
