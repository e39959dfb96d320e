package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/dfa"
)

// Describe renders a markdown overview of a: its 5-tuple, followed by the
// transitions grouped by source state.
func Describe(a *dfa.Automaton) string {
	var sb strings.Builder

	name := a.ID()
	if name == "" {
		name = "automaton"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	fmt.Fprintf(&sb, "- **States**: %s\n", codeList(a.States()))
	fmt.Fprintf(&sb, "- **Alphabet**: %s\n", codeList(a.Alphabet()))
	fmt.Fprintf(&sb, "- **Initial**: `%s`\n", a.Initial())
	fmt.Fprintf(&sb, "- **Accepting**: %s\n", codeList(a.Accepting()))

	sb.WriteString("\n## Transitions\n\n")
	bySource := make(map[string][]string)
	for _, t := range a.Transitions() {
		bySource[t.From] = append(bySource[t.From], fmt.Sprintf("`%s` → `%s`", t.Symbol, t.To))
	}
	for _, q := range a.States() {
		moves := bySource[q]
		if len(moves) == 0 {
			fmt.Fprintf(&sb, "- `%s`: *none*\n", q)
			continue
		}
		fmt.Fprintf(&sb, "- `%s`: %s\n", q, strings.Join(moves, ", "))
	}

	if unreachable := a.Unreachable(); len(unreachable) > 0 {
		fmt.Fprintf(&sb, "\n> Unreachable: %s\n", codeList(unreachable))
	}
	return sb.String()
}

func codeList(items []string) string {
	if len(items) == 0 {
		return "∅"
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "`" + s + "`"
	}
	return strings.Join(quoted, ", ")
}
