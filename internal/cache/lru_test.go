package cache

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_Eviction(t *testing.T) {
	c := NewLRU[string, int](2)

	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Set("c", 3)
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get("b")
	assert.False(t, ok)

	v, ok = c.Get("c")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestLRU_SetReplaces(t *testing.T) {
	c := NewLRU[string, int](2)

	c.Set("a", 1)
	c.Set("a", 2)
	assert.Equal(t, 1, c.Len())

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestLRU_MinimumCapacity(t *testing.T) {
	c := NewLRU[int, int](0)

	c.Set(1, 1)
	c.Set(2, 2)
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get(1)
	assert.False(t, ok)
}

func TestLRU_RemoveAndInvalidate(t *testing.T) {
	c := NewLRU[string, int](10)
	c.Set("dc1-a", 1)
	c.Set("dc1-b", 2)
	c.Set("dc2-a", 3)

	c.Remove("dc2-a")
	c.Remove("missing")
	assert.Equal(t, 2, c.Len())

	c.Set("dc2-a", 3)
	c.Invalidate(func(key string) bool { return strings.HasPrefix(key, "dc1-") })
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get("dc2-a")
	assert.True(t, ok)
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int, int](16)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				c.Set(g*100+i, i)
				c.Get(i)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 16, c.Len())
}
