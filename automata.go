package automata

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/runtime"
	loamAdapter "github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/aretw0/automata/pkg/dfa"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/loam"
)

// Engine is the high-level entry point for the library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	loader  ports.DefinitionLoader
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	Name    string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom DefinitionLoader, bypassing the default Loam initialization.
func WithLoader(l ports.DefinitionLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine.
// By default, it reads definitions from a Loam repository at repoPath.
// If WithLoader is provided, repoPath can be empty and Loam is skipped.
func New(repoPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if repoPath == "" {
			return nil, fmt.Errorf("repoPath is required when no custom loader is provided")
		}

		absPath, err := filepath.Abs(repoPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(absPath)

		// Strict mode keeps numbers as json.Number across adapters; the engine
		// never writes definitions, so the repository is opened read-only.
		repo, err := loam.Init(absPath,
			loam.WithStrict(true),
			loam.WithReadOnly(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize loam: %w", err)
		}

		eng.loader = loamAdapter.New(repo)
	} else if repoPath != "" {
		eng.Name = filepath.Base(repoPath)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("repo", eng.Name)
	}

	eng.runtime = runtime.NewEngine(
		eng.loader,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)
	return eng, nil
}

// Automaton returns the frozen automaton for id.
func (e *Engine) Automaton(ctx context.Context, id string) (*dfa.Automaton, error) {
	return e.runtime.Automaton(ctx, id)
}

// List returns the IDs of all known automata.
func (e *Engine) List(ctx context.Context) ([]string, error) {
	return e.runtime.List(ctx)
}

// Delta performs the single transition δ(state, symbol) on automaton id.
func (e *Engine) Delta(ctx context.Context, id, state, symbol string) (string, error) {
	return e.runtime.Delta(ctx, id, state, symbol)
}

// Step is an alias of Delta.
func (e *Engine) Step(ctx context.Context, id, state, symbol string) (string, error) {
	return e.runtime.Delta(ctx, id, state, symbol)
}

// Extended runs word from state ("" selects the initial state).
func (e *Engine) Extended(ctx context.Context, id, state string, word []string) (domain.Outcome, error) {
	return e.runtime.Extended(ctx, id, state, word)
}

// Trace runs word step by step and returns every intermediate configuration.
func (e *Engine) Trace(ctx context.Context, id, state string, word []string) ([]domain.Step, domain.Outcome, error) {
	return e.runtime.Trace(ctx, id, state, word)
}

// Accepts reports whether automaton id accepts word.
func (e *Engine) Accepts(ctx context.Context, id string, word []string) (bool, error) {
	return e.runtime.Accepts(ctx, id, word)
}

// Invalidate drops a cached automaton so the next query reloads it.
// An empty id drops every cached automaton.
func (e *Engine) Invalidate(id string) {
	e.runtime.Invalidate(id)
}

// Watch returns a channel that receives the ID of each changed definition,
// dropping it from the cache first.
// Returns error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	return e.runtime.Watch(ctx)
}

// Loader returns the underlying DefinitionLoader used by the engine.
func (e *Engine) Loader() ports.DefinitionLoader {
	return e.loader
}
