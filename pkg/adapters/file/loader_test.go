package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/dfa"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endsIn01YAML = `
id: ends-in-01
states: [s0, s1, s2]
alphabet: [0, 1]
initial: s0
accepting: [s2]
delta:
  s0: {0: s1, 1: s0}
  s1: {0: s1, 1: s2}
  s2: {0: s1, 1: s0}
`

const toggleJSON = `{
  "states": ["off", "on"],
  "alphabet": ["t"],
  "initial": "off",
  "accepting": ["on"],
  "transitions": [
    {"from": "off", "symbol": "t", "to": "on"},
    {"from": "on", "symbol": "t", "to": "off"}
  ]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefinition_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "whatever.yaml", endsIn01YAML)

	def, err := file.LoadDefinition(path)
	require.NoError(t, err)
	assert.Equal(t, "ends-in-01", def.ID)
	assert.Equal(t, []string{"0", "1"}, def.Alphabet)
	assert.Len(t, def.Transitions, 6)

	a, err := dfa.FromDefinition(*def)
	require.NoError(t, err)
	final, err := a.DeltaExtended("", domain.SplitWord("1101"))
	require.NoError(t, err)
	assert.Equal(t, "s2", final)
}

func TestLoadDefinition_JSONUsesFileName(t *testing.T) {
	path := writeFile(t, t.TempDir(), "toggle.json", toggleJSON)

	def, err := file.LoadDefinition(path)
	require.NoError(t, err)
	assert.Equal(t, "toggle", def.ID)
}

func TestLoadDefinition_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := file.LoadDefinition(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)

	_, err = file.LoadDefinition(writeFile(t, dir, "broken.json", "{"))
	assert.Error(t, err)

	_, err = file.LoadDefinition(writeFile(t, dir, "shape.yaml", "states: {a: 1}"))
	assert.Error(t, err)
}

func TestLoader_Contract(t *testing.T) {
	dir := t.TempDir()
	loader, err := file.New(
		writeFile(t, dir, "a.yaml", endsIn01YAML),
		writeFile(t, dir, "toggle.json", toggleJSON),
	)
	require.NoError(t, err)

	ports.RunDefinitionLoaderContract(t, loader, map[string]domain.Definition{
		"ends-in-01": {
			States:   []string{"s0", "s1", "s2"},
			Alphabet: []string{"0", "1"},
			Initial:  "s0", Accepting: []string{"s2"},
			Transitions: []domain.TransitionDef{
				{From: "s0", Symbol: "0", To: "s1"}, {From: "s0", Symbol: "1", To: "s0"},
				{From: "s1", Symbol: "0", To: "s1"}, {From: "s1", Symbol: "1", To: "s2"},
				{From: "s2", Symbol: "0", To: "s1"}, {From: "s2", Symbol: "1", To: "s0"},
			},
		},
		"toggle": {
			States:   []string{"off", "on"},
			Alphabet: []string{"t"},
			Initial:  "off", Accepting: []string{"on"},
			Transitions: []domain.TransitionDef{
				{From: "off", Symbol: "t", To: "on"},
				{From: "on", Symbol: "t", To: "off"},
			},
		},
	})
}

func TestNew_Collision(t *testing.T) {
	dir := t.TempDir()
	_, err := file.New(
		writeFile(t, dir, "one.yaml", endsIn01YAML),
		writeFile(t, dir, "two.yaml", endsIn01YAML),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}
