package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/automata/internal/dto"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/loam/pkg/core"
)

// Loader adapts a Loam repository to the ports.DefinitionLoader interface.
// Each document (YAML, JSON or Markdown frontmatter) holds one definition.
// Raw metadata goes through dto.Decode, so unquoted digits are read as symbols.
type Loader struct {
	Repo core.Repository

	mu    sync.Mutex
	names map[string][]string // document ID -> definition IDs, from the last index
}

// New creates a new Loam adapter.
func New(repo core.Repository) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// entry is one indexed definition. A document that fails to decode, or whose
// ID collides with another, is kept with its error so the rest still load.
type entry struct {
	docID string
	def   domain.Definition
	err   error
}

// GetDefinition resolves id (explicit "id" key or file name without extension)
// and returns its definition.
func (l *Loader) GetDefinition(ctx context.Context, id string) (*domain.Definition, error) {
	index, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAutomatonNotFound, id)
	}
	if e.err != nil {
		return nil, e.err
	}

	def := e.def
	def.ID = id
	return &def, nil
}

// ListDefinitions returns all definition IDs, sorted. IDs whose document
// cannot be decoded are listed too; GetDefinition reports their error.
func (l *Loader) ListDefinitions(ctx context.Context) ([]string, error) {
	index, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// index decodes every document and maps definition IDs to the result.
func (l *Loader) index(ctx context.Context) (map[string]*entry, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	index := make(map[string]*entry, len(docs))
	names := make(map[string][]string, len(docs))
	for _, doc := range docs {
		docID := trimExtension(doc.ID)
		e := decode(doc.Metadata, docID)
		id := trimExtension(e.def.ID)

		if existing, ok := index[id]; ok {
			existing.err = fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing.docID, doc.ID)
			names[docID] = append(names[docID], id)
			continue
		}
		index[id] = e
		names[docID] = append(names[docID], id)
	}

	l.mu.Lock()
	l.names = names
	l.mu.Unlock()
	return index, nil
}

// decode turns raw document metadata into an entry. On failure the ID still
// comes from the "id" key when it is a plain string.
func decode(raw core.Metadata, docID string) *entry {
	meta, err := dto.Decode(raw)
	if err != nil {
		id := docID
		if s, ok := raw["id"].(string); ok && s != "" {
			id = s
		}
		return &entry{
			docID: docID,
			def:   domain.Definition{ID: id},
			err:   fmt.Errorf("invalid definition in '%s': %w", docID, err),
		}
	}
	return &entry{docID: docID, def: meta.ToDomain(docID)}
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// resolve maps a changed document to the definition IDs it affects: the IDs
// it carried before the change and the ones it carries now.
func (l *Loader) resolve(ctx context.Context, docID string) []string {
	docID = trimExtension(docID)

	l.mu.Lock()
	before := l.names[docID]
	l.mu.Unlock()

	var after []string
	if _, err := l.index(ctx); err == nil {
		l.mu.Lock()
		after = l.names[docID]
		l.mu.Unlock()
	}

	var ids []string
	seen := make(map[string]bool)
	for _, id := range append(append([]string(nil), before...), after...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		ids = append(ids, docID)
	}
	return ids
}

// Watch implements ports.Watchable. Each change is reported under the
// definition IDs of the document, not its file name.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	w, ok := l.Repo.(core.Watchable)
	if !ok {
		return nil, fmt.Errorf("repository does not support watching")
	}
	// Prime the document map so deletions can be attributed.
	if _, err := l.index(ctx); err != nil {
		return nil, err
	}

	events, err := w.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				for _, id := range l.resolve(ctx, evt.ID) {
					select {
					case ch <- id:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return ch, nil
}
