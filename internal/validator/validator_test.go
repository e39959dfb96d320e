package validator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/automata/internal/testutils"
	loamAdapter "github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("complete and reachable", func(t *testing.T) {
		report := Validate(domain.Definition{
			ID:        "toggle",
			States:    []string{"off", "on"},
			Alphabet:  []string{"t"},
			Initial:   "off",
			Accepting: []string{"on"},
			Transitions: []domain.TransitionDef{
				{From: "off", Symbol: "t", To: "on"},
				{From: "on", Symbol: "t", To: "off"},
			},
		})
		assert.True(t, report.OK())
		assert.Empty(t, report.Findings)
		assert.NoError(t, report.Err())
	})

	t.Run("warnings", func(t *testing.T) {
		report := Validate(domain.Definition{
			ID:          "lint",
			States:      []string{"a", "b", "orphan"},
			Alphabet:    []string{"x"},
			Initial:     "a",
			Transitions: []domain.TransitionDef{{From: "a", Symbol: "x", To: "b"}},
		})
		require.True(t, report.OK())
		require.Len(t, report.Findings, 3)
		assert.Contains(t, report.Findings[0].Message, `"orphan" is unreachable`)
		assert.Equal(t, "2 undefined transitions: (b, x) (orphan, x)", report.Findings[1].Message)
		assert.Contains(t, report.Findings[2].Message, "no accepting states")
	})

	t.Run("construction errors", func(t *testing.T) {
		report := Validate(domain.Definition{
			ID:       "broken",
			States:   []string{"a"},
			Alphabet: []string{"x"},
			Initial:  "ghost",
			Transitions: []domain.TransitionDef{
				{From: "a", Symbol: "y", To: "a"},
			},
		})
		assert.False(t, report.OK())
		assert.Len(t, report.Findings, 2)
		for _, f := range report.Findings {
			assert.Equal(t, SeverityError, f.Severity)
		}
		err := report.Err()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken: found 2 errors")
	})
}

type brokenLoader struct {
	*memory.Loader
}

func (b brokenLoader) ListDefinitions(ctx context.Context) ([]string, error) {
	ids, err := b.Loader.ListDefinitions(ctx)
	return append(ids, "vanished"), err
}

func TestValidateAll(t *testing.T) {
	loader := brokenLoader{memory.NewLoader(domain.Definition{
		ID:        "ok",
		States:    []string{"q"},
		Alphabet:  []string{"a"},
		Initial:   "q",
		Accepting: []string{"q"},
		Transitions: []domain.TransitionDef{
			{From: "q", Symbol: "a", To: "q"},
		},
	})}

	reports, err := ValidateAll(context.Background(), loader)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, "ok", reports[0].ID)
	assert.True(t, reports[0].OK())

	assert.Equal(t, "vanished", reports[1].ID)
	assert.False(t, reports[1].OK())
	assert.Contains(t, reports[1].Findings[0].Message, "failed to load")
}

func TestValidateAll_LoamDirectory(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t, loam.WithStrict(true))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "parity.yaml"), []byte(`states: [even, odd]
alphabet: [1]
initial: even
accepting: [even]
delta:
  even: {1: odd}
  odd: {1: even}
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(`states: {a: 1}
initial: a
`), 0644))

	reports, err := ValidateAll(context.Background(), loamAdapter.New(repo))
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, "broken", reports[0].ID)
	require.NotEmpty(t, reports[0].Findings)
	assert.Equal(t, SeverityError, reports[0].Findings[0].Severity)
	assert.Contains(t, reports[0].Findings[0].Message, "invalid definition in 'broken'")

	assert.Equal(t, "parity", reports[1].ID)
	assert.True(t, reports[1].OK())
}
