package dfa

import "github.com/aretw0/automata/pkg/domain"

// SymbolSet is the alphabet. Iteration follows insertion order so that
// summaries and listings are reproducible.
type SymbolSet struct {
	symbols []string
	index   map[string]int
}

// NewSymbolSet creates an empty alphabet.
func NewSymbolSet() *SymbolSet {
	return &SymbolSet{
		index: make(map[string]int),
	}
}

// Register adds label to the alphabet. Re-registering is a no-op.
func (s *SymbolSet) Register(label string) {
	if _, ok := s.index[label]; ok {
		return
	}
	s.index[label] = len(s.symbols)
	s.symbols = append(s.symbols, label)
}

// Contains reports whether label belongs to the alphabet.
func (s *SymbolSet) Contains(label string) bool {
	_, ok := s.index[label]
	return ok
}

// IndexOf returns the insertion position of label.
func (s *SymbolSet) IndexOf(label string) (int, error) {
	idx, ok := s.index[label]
	if !ok {
		return 0, &domain.UnknownSymbolError{Label: label}
	}
	return idx, nil
}

// Symbols returns the alphabet in insertion order.
func (s *SymbolSet) Symbols() []string {
	out := make([]string, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// Len returns the size of the alphabet.
func (s *SymbolSet) Len() int {
	return len(s.symbols)
}
