package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/vivaldi/internal/cache"
)

const (
	// DefaultCacheSize is the number of entries a CachingStore keeps.
	DefaultCacheSize = 1024

	// DefaultCacheTTL is how long a cached entry is served before the
	// backing store is consulted again.
	DefaultCacheTTL = 30 * time.Second
)

type cachedEntry struct {
	entry   Entry
	expires time.Time
}

// CachingStore serves Get from an in-memory LRU in front of another Store.
// Writes go through to the backing store and refresh the cache.
//
// Coordinates drift slowly, so a short TTL bounds staleness when other
// writers update the backing store.
type CachingStore struct {
	next Store
	lru  *cache.LRU[string, cachedEntry]
	ttl  time.Duration
	now  func() time.Time

	// gen counts writes that reached the cache. A read-through result is
	// only cached if gen did not move while it was fetched, so a slow Get
	// never overwrites a newer Put or resurrects a Delete.
	mu  sync.Mutex
	gen uint64
}

// CachingOption configures a CachingStore.
type CachingOption func(*CachingStore)

// WithCacheSize sets the number of cached entries.
func WithCacheSize(n int) CachingOption {
	return func(s *CachingStore) {
		s.lru = cache.NewLRU[string, cachedEntry](n)
	}
}

// WithCacheTTL sets how long cached entries stay fresh. A non-positive TTL
// keeps entries until they are evicted or overwritten.
func WithCacheTTL(ttl time.Duration) CachingOption {
	return func(s *CachingStore) {
		s.ttl = ttl
	}
}

// NewCachingStore wraps next with a read-through cache.
func NewCachingStore(next Store, optFns ...CachingOption) *CachingStore {
	s := &CachingStore{
		next: next,
		lru:  cache.NewLRU[string, cachedEntry](DefaultCacheSize),
		ttl:  DefaultCacheTTL,
		now:  time.Now,
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// Put writes entries to the backing store, then caches them.
func (s *CachingStore) Put(ctx context.Context, entries ...Entry) error {
	err := s.next.Put(ctx, entries...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++

	if err != nil {
		// Part of the batch may have landed.
		nodes := make(map[string]struct{}, len(entries))
		for _, e := range entries {
			nodes[e.Node] = struct{}{}
		}
		s.lru.Invalidate(func(node string) bool {
			_, ok := nodes[node]
			return ok
		})
		return err
	}

	for _, e := range entries {
		s.set(e)
	}
	return nil
}

// Get returns a cached entry if it is still fresh and reads through to the
// backing store otherwise.
func (s *CachingStore) Get(ctx context.Context, node string) (Entry, error) {
	if ce, ok := s.lru.Get(node); ok {
		if s.ttl <= 0 || s.now().Before(ce.expires) {
			return Entry{Node: ce.entry.Node, Coord: cloneRecord(ce.entry.Coord)}, nil
		}
		s.lru.Remove(node)
	}

	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	e, err := s.next.Get(ctx, node)
	if err != nil {
		return Entry{}, err
	}

	s.mu.Lock()
	if s.gen == gen {
		s.set(e)
	}
	s.mu.Unlock()

	return e, nil
}

// List always reads the backing store.
func (s *CachingStore) List(ctx context.Context) ([]Entry, error) {
	return s.next.List(ctx)
}

// Delete removes node from the backing store and the cache.
func (s *CachingStore) Delete(ctx context.Context, node string) error {
	err := s.next.Delete(ctx, node)

	s.mu.Lock()
	s.gen++
	s.lru.Remove(node)
	s.mu.Unlock()

	return err
}

// Stats returns the cache hits and misses so far.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.lru.Stats()
}

func (s *CachingStore) set(e Entry) {
	s.lru.Set(e.Node, cachedEntry{
		entry:   Entry{Node: e.Node, Coord: cloneRecord(e.Coord)},
		expires: s.now().Add(s.ttl),
	})
}
