package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
)

// Loader implements ports.DefinitionLoader using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	mu   sync.RWMutex
	defs map[string]domain.Definition
}

// NewLoader creates a loader holding copies of the given definitions, keyed by ID.
func NewLoader(defs ...domain.Definition) *Loader {
	l := &Loader{defs: make(map[string]domain.Definition, len(defs))}
	for _, def := range defs {
		l.defs[def.ID] = cloneDefinition(def)
	}
	return l
}

// Put adds or replaces a definition.
func (l *Loader) Put(def domain.Definition) error {
	if def.ID == "" {
		return fmt.Errorf("definition missing ID")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.defs[def.ID] = cloneDefinition(def)
	return nil
}

// GetDefinition retrieves a copy of the definition registered under id.
func (l *Loader) GetDefinition(ctx context.Context, id string) (*domain.Definition, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	def, ok := l.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAutomatonNotFound, id)
	}
	c := cloneDefinition(def)
	return &c, nil
}

// ListDefinitions returns all available IDs.
func (l *Loader) ListDefinitions(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := make([]string, 0, len(l.defs))
	for k := range l.defs {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}

func cloneDefinition(def domain.Definition) domain.Definition {
	c := def
	c.States = append([]string(nil), def.States...)
	c.Alphabet = append([]string(nil), def.Alphabet...)
	c.Accepting = append([]string(nil), def.Accepting...)
	c.Transitions = append([]domain.TransitionDef(nil), def.Transitions...)
	return c
}
