package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/dfa"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// Engine resolves automata by ID, caches the frozen result, and runs queries
// against it while emitting lifecycle events.
type Engine struct {
	loader ports.DefinitionLoader
	hooks  domain.LifecycleHooks
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]*dfa.Automaton
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine over loader.
func NewEngine(loader ports.DefinitionLoader, opts ...EngineOption) *Engine {
	e := &Engine{
		loader: loader,
		logger: logging.NewNop(),
		cache:  make(map[string]*dfa.Automaton),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Automaton returns the frozen automaton for id, building it on first use.
func (e *Engine) Automaton(ctx context.Context, id string) (*dfa.Automaton, error) {
	e.mu.RLock()
	a, ok := e.cache[id]
	e.mu.RUnlock()
	if ok {
		return a, nil
	}

	def, err := e.loader.GetDefinition(ctx, id)
	if err != nil {
		return nil, err
	}
	a, err = dfa.FromDefinition(*def, dfa.WithID(id))
	if err != nil {
		e.logger.Warn("Automaton rejected", "automaton", id, "error", err)
		return nil, fmt.Errorf("failed to build automaton %s: %w", id, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	// Another caller may have won the race; keep the first instance.
	if cached, ok := e.cache[id]; ok {
		return cached, nil
	}
	e.cache[id] = a
	e.logger.Debug("Automaton loaded", "automaton", id, "states", len(a.States()))
	return a, nil
}

// Invalidate drops id from the cache. An empty id drops everything.
func (e *Engine) Invalidate(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if id == "" {
		clear(e.cache)
		return
	}
	delete(e.cache, id)
}

// List returns the IDs known to the loader.
func (e *Engine) List(ctx context.Context) ([]string, error) {
	return e.loader.ListDefinitions(ctx)
}

// Loader returns the underlying DefinitionLoader.
func (e *Engine) Loader() ports.DefinitionLoader {
	return e.loader
}

// Delta performs one transition of automaton id.
func (e *Engine) Delta(ctx context.Context, id, state, symbol string) (string, error) {
	a, err := e.Automaton(ctx, id)
	if err != nil {
		return "", err
	}
	next, err := a.Delta(state, symbol)
	if err != nil {
		e.emitUndefined(ctx, id, state, symbol)
		return "", err
	}
	e.emitStep(ctx, id, state, symbol, next)
	return next, nil
}

// Extended runs word from state ("" for the initial state) and reports
// where it ends.
func (e *Engine) Extended(ctx context.Context, id, state string, word []string) (domain.Outcome, error) {
	a, err := e.Automaton(ctx, id)
	if err != nil {
		return domain.Outcome{}, err
	}

	e.emitRun(ctx, domain.EventRunStart, id, word, "", false, nil)
	final, err := a.DeltaExtended(state, word)
	if err != nil {
		e.noteFailure(ctx, id, err)
		e.emitRun(ctx, domain.EventRunFinish, id, word, "", false, err)
		return domain.Outcome{}, err
	}

	out := domain.Outcome{State: final, Accepting: a.IsAccepting(final)}
	e.emitRun(ctx, domain.EventRunFinish, id, word, final, out.Accepting, nil)
	return out, nil
}

// Trace runs word step by step, emitting a step event per transition.
// On an undefined transition it returns the error and no trace.
func (e *Engine) Trace(ctx context.Context, id, state string, word []string) ([]domain.Step, domain.Outcome, error) {
	a, err := e.Automaton(ctx, id)
	if err != nil {
		return nil, domain.Outcome{}, err
	}

	e.emitRun(ctx, domain.EventRunStart, id, word, "", false, nil)

	steps := make([]domain.Step, 0, len(word)+1)
	prev := ""
	for step, err := range a.DeltaStepwise(word, state) {
		if err != nil {
			e.noteFailure(ctx, id, err)
			e.emitRun(ctx, domain.EventRunFinish, id, word, "", false, err)
			return nil, domain.Outcome{}, err
		}
		if len(steps) > 0 {
			e.emitStep(ctx, id, prev, step.Consumed, step.State)
		}
		prev = step.State
		steps = append(steps, step)
	}

	out := domain.Outcome{State: prev, Accepting: a.IsAccepting(prev)}
	e.emitRun(ctx, domain.EventRunFinish, id, word, prev, out.Accepting, nil)
	return steps, out, nil
}

// Accepts reports whether automaton id accepts word from its initial state.
func (e *Engine) Accepts(ctx context.Context, id string, word []string) (bool, error) {
	out, err := e.Extended(ctx, id, "", word)
	if err != nil {
		if dfa.IsUndefined(err) {
			return false, nil
		}
		return false, err
	}
	return out.Accepting, nil
}

func (e *Engine) noteFailure(ctx context.Context, id string, err error) {
	var undef *domain.UndefinedTransitionError
	if errors.As(err, &undef) {
		e.emitUndefined(ctx, id, undef.State, undef.Symbol)
		return
	}
	e.logger.Warn("Run failed", "automaton", id, "error", err)
}

func (e *Engine) emitStep(ctx context.Context, id, from, symbol, to string) {
	e.logger.Debug("Transition", "automaton", id, "from", from, "symbol", symbol, "to", to)
	if e.hooks.OnStep == nil {
		return
	}
	e.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep, AutomatonID: id},
		From:      from,
		Symbol:    symbol,
		To:        to,
	})
}

func (e *Engine) emitUndefined(ctx context.Context, id, from, symbol string) {
	e.logger.Info("Undefined transition", "automaton", id, "state", from, "symbol", symbol)
	if e.hooks.OnUndefined == nil {
		return
	}
	e.hooks.OnUndefined(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventUndefined, AutomatonID: id},
		From:      from,
		Symbol:    symbol,
	})
}

func (e *Engine) emitRun(ctx context.Context, typ domain.EventType, id string, word []string, final string, accepting bool, err error) {
	hook := e.hooks.OnRunStart
	if typ == domain.EventRunFinish {
		hook = e.hooks.OnRunFinish
		e.logger.Debug("Run finished", "automaton", id, "final", final, "accepting", accepting)
	}
	if hook == nil {
		return
	}
	hook(ctx, &domain.RunEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: typ, AutomatonID: id},
		Word:      word,
		Final:     final,
		Accepting: accepting,
		Err:       err,
	})
}
