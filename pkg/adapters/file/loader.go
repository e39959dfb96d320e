package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/automata/internal/dto"
	"github.com/aretw0/automata/pkg/domain"
	"gopkg.in/yaml.v3"
)

// LoadDefinition reads a definition file (YAML or JSON).
// The file name without extension is used as ID when the document has none.
func LoadDefinition(path string) (*domain.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAutomatonNotFound, path)
		}
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	raw := make(map[string]any)
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	meta, err := dto.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	def := meta.ToDomain(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	return &def, nil
}

// Loader implements ports.DefinitionLoader over an explicit list of files.
// Files are read once, at construction.
type Loader struct {
	defs map[string]domain.Definition
}

// New reads every path and indexes the definitions by ID.
func New(paths ...string) (*Loader, error) {
	l := &Loader{defs: make(map[string]domain.Definition, len(paths))}
	origin := make(map[string]string, len(paths))
	for _, p := range paths {
		def, err := LoadDefinition(p)
		if err != nil {
			return nil, err
		}
		if existing, ok := origin[def.ID]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", def.ID, existing, p)
		}
		origin[def.ID] = p
		l.defs[def.ID] = *def
	}
	return l, nil
}

// GetDefinition returns the definition with the given ID.
func (l *Loader) GetDefinition(ctx context.Context, id string) (*domain.Definition, error) {
	def, ok := l.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAutomatonNotFound, id)
	}
	c := def
	c.States = append([]string(nil), def.States...)
	c.Alphabet = append([]string(nil), def.Alphabet...)
	c.Accepting = append([]string(nil), def.Accepting...)
	c.Transitions = append([]domain.TransitionDef(nil), def.Transitions...)
	return &c, nil
}

// ListDefinitions returns the loaded IDs, sorted.
func (l *Loader) ListDefinitions(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(l.defs))
	for id := range l.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
