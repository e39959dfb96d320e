package dto

import (
	"fmt"
	"sort"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// DefinitionMetadata represents an automaton document as written by humans.
// It uses "mapstructure" tags to match the YAML/frontmatter keys.
//
// Transitions may be given as a list of triples, as a nested "delta" map
// (state -> symbol -> target), or both; the list comes first.
// When "states" or "alphabet" are omitted they are inferred, in order of
// appearance, from the initial state, the accepting set and the transitions.
type DefinitionMetadata struct {
	ID          string                       `json:"id" mapstructure:"id"`
	States      []string                     `json:"states" mapstructure:"states"`
	Alphabet    []string                     `json:"alphabet" mapstructure:"alphabet"`
	Sigma       []string                     `json:"sigma" mapstructure:"sigma"`
	Initial     string                       `json:"initial" mapstructure:"initial"`
	Accepting   []string                     `json:"accepting" mapstructure:"accepting"`
	Transitions []TransitionMetadata         `json:"transitions" mapstructure:"transitions"`
	Delta       map[string]map[string]string `json:"delta" mapstructure:"delta"`
	Force       bool                         `json:"force" mapstructure:"force"`
}

// TransitionMetadata is one transition triple. "on" is accepted as an alias of "symbol".
type TransitionMetadata struct {
	From   string `json:"from" mapstructure:"from"`
	Symbol string `json:"symbol" mapstructure:"symbol"`
	On     string `json:"on" mapstructure:"on"`
	To     string `json:"to" mapstructure:"to"`
}

// Decode converts a generic map (from YAML, JSON or frontmatter) into metadata.
// Decoding is weakly typed so unquoted YAML digits become symbol strings.
func Decode(raw map[string]any) (DefinitionMetadata, error) {
	var meta DefinitionMetadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &meta,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return meta, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return meta, fmt.Errorf("failed to decode definition: %w", err)
	}
	return meta, nil
}

// ToDomain normalises the metadata into a domain.Definition.
// fallbackID is used when the document does not carry an explicit id.
func (m DefinitionMetadata) ToDomain(fallbackID string) domain.Definition {
	def := domain.Definition{
		ID:        m.ID,
		States:    append([]string(nil), m.States...),
		Alphabet:  append([]string(nil), m.Alphabet...),
		Initial:   m.Initial,
		Accepting: append([]string(nil), m.Accepting...),
		Force:     m.Force,
	}
	if def.ID == "" {
		def.ID = fallbackID
	}
	if len(def.Alphabet) == 0 {
		def.Alphabet = append(def.Alphabet, m.Sigma...)
	}

	for _, t := range m.Transitions {
		symbol := t.Symbol
		if symbol == "" {
			symbol = t.On
		}
		def.Transitions = append(def.Transitions, domain.TransitionDef{From: t.From, Symbol: symbol, To: t.To})
	}
	def.Transitions = append(def.Transitions, m.deltaTransitions(def.States, def.Alphabet)...)

	if len(def.States) == 0 {
		def.States = inferStates(def)
	}
	if len(def.Alphabet) == 0 {
		def.Alphabet = inferAlphabet(def)
	}
	return def
}

// deltaTransitions flattens the nested map following the declared state and
// symbol order, then lexical order for anything undeclared.
func (m DefinitionMetadata) deltaTransitions(states, alphabet []string) []domain.TransitionDef {
	var out []domain.TransitionDef
	for _, from := range orderedKeys(m.Delta, states) {
		row := m.Delta[from]
		for _, symbol := range orderedKeys(row, alphabet) {
			out = append(out, domain.TransitionDef{From: from, Symbol: symbol, To: row[symbol]})
		}
	}
	return out
}

func orderedKeys[V any](m map[string]V, preferred []string) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range preferred {
		if _, ok := m[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	rest := make([]string, 0, len(m))
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func inferStates(def domain.Definition) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(q string) {
		if q != "" && !seen[q] {
			seen[q] = true
			out = append(out, q)
		}
	}
	add(def.Initial)
	for _, t := range def.Transitions {
		add(t.From)
		add(t.To)
	}
	for _, q := range def.Accepting {
		add(q)
	}
	return out
}

func inferAlphabet(def domain.Definition) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range def.Transitions {
		if t.Symbol != "" && !seen[t.Symbol] {
			seen[t.Symbol] = true
			out = append(out, t.Symbol)
		}
	}
	return out
}
