package index

import (
	"sync"
	"time"

	"github.com/showcasehub/gallery/internal/catalog"
)

// MemoryIndex holds the current catalog snapshot: entries in insertion
// order, slug lookup, and the tag taxonomy. The snapshot is replaced
// wholesale on reload and is read-only between reloads.
type MemoryIndex struct {
	mu         sync.RWMutex
	entries    []*catalog.Entry          // insertion ("old to new") order
	bySlug     map[string]*catalog.Entry // Slug -> Entry
	taxonomy   *catalog.Taxonomy
	lastReload time.Time
}

// NewMemoryIndex creates an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		bySlug:   make(map[string]*catalog.Entry),
		taxonomy: catalog.NewTaxonomy(nil),
	}
}

// UpdateCatalog replaces the snapshot with a freshly loaded catalog.
func (idx *MemoryIndex) UpdateCatalog(entries []*catalog.Entry, tx *catalog.Taxonomy) {
	bySlug := make(map[string]*catalog.Entry, len(entries))
	for _, e := range entries {
		bySlug[e.Slug] = e
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries = entries
	idx.bySlug = bySlug
	if tx != nil {
		idx.taxonomy = tx
	}
	idx.lastReload = time.Now()
}

// Entries returns the catalog in insertion order. The slice is a copy;
// the entries themselves are shared and read-only.
func (idx *MemoryIndex) Entries() []*catalog.Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]*catalog.Entry, len(idx.entries))
	copy(out, idx.entries)
	return out
}

// BySlug retrieves an entry by its slug.
func (idx *MemoryIndex) BySlug(slug string) (*catalog.Entry, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	e, ok := idx.bySlug[slug]
	return e, ok
}

// Taxonomy returns the current tag taxonomy.
func (idx *MemoryIndex) Taxonomy() *catalog.Taxonomy {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.taxonomy
}

// Count returns the number of entries in the snapshot.
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.entries)
}

// LastReload returns the timestamp of the last catalog swap.
func (idx *MemoryIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

// SourceURLs returns the distinct non-empty source URLs referenced by
// the snapshot. The metadata sweeper uses it to drop cached repository
// metadata that no entry points at anymore.
func (idx *MemoryIndex) SourceURLs() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	seen := make(map[string]struct{}, len(idx.entries))
	out := make([]string, 0, len(idx.entries))
	for _, e := range idx.entries {
		if e.Source == "" {
			continue
		}
		if _, dup := seen[e.Source]; dup {
			continue
		}
		seen[e.Source] = struct{}{}
		out = append(out, e.Source)
	}
	return out
}
