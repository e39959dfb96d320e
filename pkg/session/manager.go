package session

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

// DefaultLockTTL bounds how long a crashed holder can block a session.
const DefaultLockTTL = 30 * time.Second

// Resolver supplies automata and performs single transitions on them.
// internal/runtime.Engine satisfies it.
type Resolver interface {
	Automaton(ctx context.Context, id string) (*dfa.Automaton, error)
	Delta(ctx context.Context, id, state, symbol string) (string, error)
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store    ports.RunStore
	resolver Resolver

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL for distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a session manager over store. Automata are obtained
// from resolver.
func NewManager(store ports.RunStore, resolver Resolver, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		resolver: resolver,
		locks:    make(map[string]*lockEntry),
		lockTTL:  DefaultLockTTL,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST lock entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Start creates (or restarts) sessionID as a run of word on automatonID,
// positioned at the initial state. An empty word finishes immediately.
func (m *Manager) Start(ctx context.Context, sessionID, automatonID string, word []string) (*domain.Run, error) {
	a, err := m.resolver.Automaton(ctx, automatonID)
	if err != nil {
		return nil, err
	}

	run := domain.NewRun(sessionID, automatonID, a.Initial(), word)
	if len(run.Word) == 0 {
		run.Status = finalStatus(a, run.Current)
	}

	err = m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Save(ctx, sessionID, run)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start session %s: %w", sessionID, err)
	}

	m.logger.Debug("Session started", "session_id", sessionID, "automaton", automatonID, "symbols", len(run.Word))
	return run.Snapshot(), nil
}

// Step consumes the next symbol of the session's word.
// An undefined transition finishes the run with RunFailed rather than
// returning an error; stepping a finished run returns domain.ErrRunFinished.
func (m *Manager) Step(ctx context.Context, sessionID string) (*domain.Run, error) {
	var run *domain.Run
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		run, err = m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		if run.Finished() {
			return fmt.Errorf("%w: session %s is %s", domain.ErrRunFinished, sessionID, run.Status)
		}

		if err := m.advance(ctx, run); err != nil {
			return err
		}
		return m.store.Save(ctx, sessionID, run)
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (m *Manager) advance(ctx context.Context, run *domain.Run) error {
	a, err := m.resolver.Automaton(ctx, run.AutomatonID)
	if err != nil {
		return err
	}

	symbol := run.Word[run.Position]
	next, err := m.resolver.Delta(ctx, run.AutomatonID, run.Current, symbol)
	if err != nil {
		if !errors.Is(err, domain.ErrUndefinedTransition) {
			return err
		}
		run.Status = domain.RunFailed
		run.Error = err.Error()
		m.logger.Info("Session failed", "session_id", run.SessionID, "state", run.Current, "symbol", symbol)
		return nil
	}

	run.Position++
	run.Current = next
	run.History = append(run.History, domain.Step{
		State:     next,
		Consumed:  symbol,
		Remaining: append([]string{}, run.Word[run.Position:]...),
	})
	if run.Position == len(run.Word) {
		run.Status = finalStatus(a, next)
		m.logger.Debug("Session finished", "session_id", run.SessionID, "status", run.Status)
	}
	return nil
}

func finalStatus(a *dfa.Automaton, state string) domain.RunStatus {
	if a.IsAccepting(state) {
		return domain.RunAccepted
	}
	return domain.RunRejected
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Run, error) {
	var run *domain.Run
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		run, err = m.store.Load(ctx, sessionID)
		return err
	})
	return run, err
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying run store.
func (m *Manager) Store() ports.RunStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
