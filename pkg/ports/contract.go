package ports

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRunStoreContract runs a suite of tests to verify that a RunStore implementation
// adheres to the defined interface contract.
func RunRunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		run := domain.NewRun(sessionID, "ends-in-01", "s0", []string{"0", "1"})
		run.Position = 1
		run.Current = "s1"
		run.History = append(run.History, domain.Step{State: "s1", Consumed: "0", Remaining: []string{"1"}})

		require.NoError(t, store.Save(ctx, sessionID, run), "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, run.AutomatonID, loaded.AutomatonID)
		assert.Equal(t, run.Current, loaded.Current)
		assert.Equal(t, run.Position, loaded.Position)
		assert.Equal(t, run.Word, loaded.Word)
		assert.Equal(t, domain.RunActive, loaded.Status)
		assert.Equal(t, run.History, loaded.History)
	})

	t.Run("Load returns an isolated copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Word[0] = "mutated"
		loaded.Current = "mutated"

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "0", again.Word[0])
		assert.Equal(t, "s1", again.Current)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, sessionID), "Delete should not return error")

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, id1, domain.NewRun(id1, "a", "q", nil)))
		require.NoError(t, store.Save(ctx, id2, domain.NewRun(id2, "a", "q", nil)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

// RunDefinitionLoaderContract verifies a DefinitionLoader seeded with want.
func RunDefinitionLoaderContract(t *testing.T, loader DefinitionLoader, want map[string]domain.Definition) {
	ctx := context.Background()

	t.Run("GetDefinition", func(t *testing.T) {
		for id, expected := range want {
			def, err := loader.GetDefinition(ctx, id)
			require.NoError(t, err, "GetDefinition(%s)", id)
			assert.Equal(t, id, def.ID)
			assert.Equal(t, expected.States, def.States)
			assert.Equal(t, expected.Alphabet, def.Alphabet)
			assert.Equal(t, expected.Initial, def.Initial)
			assert.ElementsMatch(t, expected.Accepting, def.Accepting)
			assert.ElementsMatch(t, expected.Transitions, def.Transitions)
		}
	})

	t.Run("GetDefinition Non-Existent", func(t *testing.T) {
		_, err := loader.GetDefinition(ctx, "definitely-not-there")
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
	})

	t.Run("ListDefinitions", func(t *testing.T) {
		ids, err := loader.ListDefinitions(ctx)
		require.NoError(t, err)

		expected := make([]string, 0, len(want))
		for id := range want {
			expected = append(expected, id)
		}
		sort.Strings(expected)
		assert.Equal(t, expected, ids)
	})
}
