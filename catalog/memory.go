package catalog

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/hupe1980/vivaldi"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory Store for tests and single process setups.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]vivaldi.CoordinateRecord
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]vivaldi.CoordinateRecord),
	}
}

// Put implements Store.
func (m *MemoryStore) Put(ctx context.Context, entries ...Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range entries {
		m.entries[e.Node] = cloneRecord(e.Coord)
	}
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, node string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.entries[node]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return Entry{Node: node, Coord: cloneRecord(rec)}, nil
}

// List implements Store.
func (m *MemoryStore) List(_ context.Context) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Entry, 0, len(m.entries))
	for node, rec := range m.entries {
		out = append(out, Entry{Node: node, Coord: cloneRecord(rec)})
	}
	sortEntries(out)
	return out, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, node string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, node)
	return nil
}

func cloneRecord(r vivaldi.CoordinateRecord) vivaldi.CoordinateRecord {
	r.Vec = slices.Clone(r.Vec)
	return r
}

func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Node, b.Node)
	})
}
