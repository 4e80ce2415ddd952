package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache[string](time.Minute, time.Minute, "test", nil)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", "alpha")
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "alpha", v)

	assert.False(t, c.Add("a", "other"))
	assert.True(t, c.Add("b", "beta"))

	m := c.Metrics()
	assert.Equal(t, int64(1), m.Hits)
	assert.Equal(t, int64(1), m.Misses)
	assert.Equal(t, int64(2), m.Sets)
	assert.Equal(t, int64(2), m.Entries)
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache[int](20*time.Millisecond, 10*time.Millisecond, "expiry", nil)

	var mu sync.Mutex
	var evicted []string
	c.OnEvicted(func(key string, value int) {
		mu.Lock()
		defer mu.Unlock()
		evicted = append(evicted, key)
	})

	c.Set("old", 1)
	time.Sleep(40 * time.Millisecond)

	_, ok := c.Get("old")
	assert.False(t, ok, "expired entries are not returned")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(evicted) == 1
	}, time.Second, 5*time.Millisecond, "the janitor sweeps expired entries")
	assert.Equal(t, []string{"old"}, evicted)
	assert.Zero(t, c.Metrics().Entries)
	assert.Equal(t, int64(1), c.Metrics().Evictions)
}

func TestTTLCacheGetSlidesExpiry(t *testing.T) {
	c := NewTTLCache[int](60*time.Millisecond, time.Hour, "sliding", nil)
	c.Set("k", 7)

	for i := 0; i < 4; i++ {
		time.Sleep(25 * time.Millisecond)
		_, ok := c.Get("k")
		require.True(t, ok, "access %d should keep the entry alive", i)
	}
}

func TestTTLCacheFlush(t *testing.T) {
	c := NewTTLCache[string](time.Minute, 0, "flush", nil)

	var evicted []string
	c.OnEvicted(func(key, _ string) { evicted = append(evicted, key) })

	c.Set("a", "1")
	c.Set("b", "2")
	c.Flush()
	assert.ElementsMatch(t, []string{"a", "b"}, evicted)

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Zero(t, c.Metrics().Entries)
	assert.Equal(t, int64(2), c.Metrics().Evictions, "flushed entries count as evictions")
	assert.Equal(t, time.Minute, c.TTL())
	assert.Equal(t, "flush", c.Name())

	c.Set("c", "3")
	_, ok = c.Get("c")
	assert.True(t, ok, "a flushed cache keeps working")
}
