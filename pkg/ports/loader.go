package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// DefinitionLoader defines how the engine retrieves automaton definitions.
// This allows the storage layer (Loam, files, memory) to be decoupled.
type DefinitionLoader interface {
	// GetDefinition retrieves a definition by ID.
	// Returns domain.ErrAutomatonNotFound if the ID is unknown.
	GetDefinition(ctx context.Context, id string) (*domain.Definition, error)

	// ListDefinitions returns the IDs of all available definitions, sorted.
	ListDefinitions(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used to drop cached automata in long-running servers.
type Watchable interface {
	// Watch returns a channel that receives the ID of each changed definition.
	Watch(ctx context.Context) (<-chan string, error)
}
