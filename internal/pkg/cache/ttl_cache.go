package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Metrics is a point-in-time reading of the cache counters.
type Metrics struct {
	Hits      int64
	Misses    int64
	Sets      int64
	Evictions int64
	// Entries counts stored entries, including expired ones not yet swept.
	Entries int64
}

// TTLCache is a typed, sliding-expiration cache on top of go-cache.
type TTLCache[T any] struct {
	store  *gocache.Cache
	ttl    time.Duration
	name   string
	logger *zap.Logger

	hits      atomic.Int64
	misses    atomic.Int64
	sets      atomic.Int64
	evictions atomic.Int64
	onEvict   atomic.Pointer[func(string, T)]
}

// NewTTLCache creates a cache whose entries live for ttl after their last
// access. Expired entries are swept every cleanup interval; a zero interval
// sweeps twice per TTL.
func NewTTLCache[T any](ttl, cleanup time.Duration, name string, logger *zap.Logger) *TTLCache[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cleanup <= 0 {
		cleanup = ttl / 2
	}
	c := &TTLCache[T]{
		store:  gocache.New(ttl, cleanup),
		ttl:    ttl,
		name:   name,
		logger: logger,
	}
	c.store.OnEvicted(func(key string, v interface{}) {
		c.evictions.Add(1)
		value, ok := v.(T)
		if !ok {
			return
		}
		c.logger.Debug("Cache evicted",
			zap.String("cache", c.name),
			zap.String("key", key),
		)
		if fn := c.onEvict.Load(); fn != nil {
			(*fn)(key, value)
		}
	})
	return c
}

// OnEvicted registers fn to run when an entry expires or is deleted. It runs
// outside any lock held by the cache.
func (c *TTLCache[T]) OnEvicted(fn func(key string, value T)) {
	c.onEvict.Store(&fn)
}

func (c *TTLCache[T]) Set(key string, value T) {
	c.store.Set(key, value, gocache.DefaultExpiration)
	c.sets.Add(1)
	c.logger.Debug("Cache set",
		zap.String("cache", c.name),
		zap.String("key", key),
		zap.Duration("ttl", c.ttl),
	)
}

// Get returns the entry for key and extends its lifetime.
func (c *TTLCache[T]) Get(key string) (T, bool) {
	var zero T
	v, found := c.store.Get(key)
	if !found {
		c.misses.Add(1)
		c.logger.Debug("Cache miss",
			zap.String("cache", c.name),
			zap.String("key", key),
		)
		return zero, false
	}
	value, ok := v.(T)
	if !ok {
		c.misses.Add(1)
		return zero, false
	}

	c.store.Set(key, value, gocache.DefaultExpiration)
	c.hits.Add(1)
	return value, true
}

// Add stores value only if key is absent or expired.
func (c *TTLCache[T]) Add(key string, value T) bool {
	if err := c.store.Add(key, value, gocache.DefaultExpiration); err != nil {
		return false
	}
	c.sets.Add(1)
	return true
}

// Flush evicts every entry, expired or not, running the eviction callback
// for each.
func (c *TTLCache[T]) Flush() {
	c.store.DeleteExpired()
	items := c.store.Items()
	for key := range items {
		c.store.Delete(key)
	}
	c.logger.Debug("Cache flushed",
		zap.String("cache", c.name),
		zap.Int("entries", len(items)),
	)
}

func (c *TTLCache[T]) TTL() time.Duration { return c.ttl }

func (c *TTLCache[T]) Name() string { return c.name }

func (c *TTLCache[T]) Metrics() Metrics {
	return Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Sets:      c.sets.Load(),
		Evictions: c.evictions.Load(),
		Entries:   int64(c.store.ItemCount()),
	}
}
