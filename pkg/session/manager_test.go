package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, opts ...session.Option) *session.Manager {
	t.Helper()

	b := dsl.New("ends-in-01").Alphabet("0", "1")
	b.State("s0").Initial().On("0", "s1").On("1", "s0")
	b.State("s1").On("0", "s1").On("1", "s2")
	b.State("s2").Accepting().On("0", "s1").On("1", "s0")

	p := dsl.New("partial")
	p.State("a").Initial().On("x", "b")
	p.State("b").Accepting()

	loader := memory.NewLoader(b.Definition(), p.Definition())
	engine := runtime.NewEngine(loader)
	return session.NewManager(memory.NewStore(), engine, opts...)
}

func TestManager_StepThroughWord(t *testing.T) {
	mgr := newManager(t)
	ctx := context.Background()

	run, err := mgr.Start(ctx, "s1", "ends-in-01", domain.SplitWord("101"))
	require.NoError(t, err)
	assert.Equal(t, domain.RunActive, run.Status)
	assert.Equal(t, "s0", run.Current)

	wantStates := []string{"s0", "s1", "s2"}
	for i, want := range wantStates {
		run, err = mgr.Step(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, want, run.Current, "after symbol %d", i)
	}

	assert.Equal(t, domain.RunAccepted, run.Status)
	assert.Equal(t, 3, run.Position)
	require.Len(t, run.History, 4)
	assert.Equal(t, domain.Step{State: "s2", Consumed: "1", Remaining: []string{}}, run.History[3])

	_, err = mgr.Step(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrRunFinished)
}

func TestManager_RejectsAndFails(t *testing.T) {
	mgr := newManager(t)
	ctx := context.Background()

	_, err := mgr.Start(ctx, "reject", "ends-in-01", []string{"1"})
	require.NoError(t, err)
	run, err := mgr.Step(ctx, "reject")
	require.NoError(t, err)
	assert.Equal(t, domain.RunRejected, run.Status)

	_, err = mgr.Start(ctx, "fail", "partial", []string{"x", "x"})
	require.NoError(t, err)
	_, err = mgr.Step(ctx, "fail")
	require.NoError(t, err)
	run, err = mgr.Step(ctx, "fail")
	require.NoError(t, err, "an undefined transition finishes the run")
	assert.Equal(t, domain.RunFailed, run.Status)
	assert.Equal(t, "b", run.Current)
	assert.Contains(t, run.Error, "no transition")

	loaded, err := mgr.Load(ctx, "fail")
	require.NoError(t, err)
	assert.Equal(t, domain.RunFailed, loaded.Status)
}

func TestManager_EmptyWordFinishesImmediately(t *testing.T) {
	mgr := newManager(t)
	ctx := context.Background()

	run, err := mgr.Start(ctx, "empty", "ends-in-01", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.RunRejected, run.Status)

	_, err = mgr.Step(ctx, "empty")
	assert.ErrorIs(t, err, domain.ErrRunFinished)
}

func TestManager_Errors(t *testing.T) {
	mgr := newManager(t)
	ctx := context.Background()

	_, err := mgr.Start(ctx, "x", "missing", nil)
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)

	_, err = mgr.Step(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_ConcurrentSteps(t *testing.T) {
	mgr := newManager(t)
	ctx := context.Background()
	word := domain.SplitWord("0101010101")

	_, err := mgr.Start(ctx, "race", "ends-in-01", word)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range word {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := mgr.Step(ctx, "race")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	run, err := mgr.Load(ctx, "race")
	require.NoError(t, err)
	assert.Equal(t, len(word), run.Position, "every step must be applied exactly once")
	assert.Len(t, run.History, len(word)+1)
	assert.Equal(t, domain.RunAccepted, run.Status)
}

func TestManager_DeleteAndList(t *testing.T) {
	mgr := newManager(t)
	ctx := context.Background()

	_, err := mgr.Start(ctx, "b", "ends-in-01", nil)
	require.NoError(t, err)
	_, err = mgr.Start(ctx, "a", "ends-in-01", nil)
	require.NoError(t, err)

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	require.NoError(t, mgr.Delete(ctx, "a"))
	_, err = mgr.Load(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	args := m.Called(ctx, key, ttl)
	if fn, ok := args.Get(0).(ports.UnlockFunc); ok {
		return fn, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestManager_DistributedLock(t *testing.T) {
	unlocked := 0
	unlock := ports.UnlockFunc(func(context.Context) error {
		unlocked++
		return nil
	})

	locker := new(MockLocker)
	locker.On("Lock", mock.Anything, "dist", 5*time.Second).Return(unlock, nil)

	mgr := newManager(t, session.WithLocker(locker), session.WithLockTTL(5*time.Second))
	ctx := context.Background()

	_, err := mgr.Start(ctx, "dist", "ends-in-01", []string{"0"})
	require.NoError(t, err)
	_, err = mgr.Step(ctx, "dist")
	require.NoError(t, err)

	locker.AssertNumberOfCalls(t, "Lock", 2)
	assert.Equal(t, 2, unlocked)
}

func TestManager_DistributedLockFailure(t *testing.T) {
	locker := new(MockLocker)
	locker.On("Lock", mock.Anything, "dist", session.DefaultLockTTL).Return(nil, context.DeadlineExceeded)

	mgr := newManager(t, session.WithLocker(locker))

	_, err := mgr.Start(context.Background(), "dist", "ends-in-01", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
