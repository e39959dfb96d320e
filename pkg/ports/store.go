package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// RunStore defines the interface for persisting interactive runs.
// This allows a word to be stepped through across requests or processes.
type RunStore interface {
	// Save persists the run for a given session ID.
	Save(ctx context.Context, sessionID string, run *domain.Run) error

	// Load retrieves the run for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Run, error)

	// Delete removes the run for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
