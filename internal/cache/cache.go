// Package cache is a small time-boxed read cache. Entries expire after their
// TTL and are otherwise only dropped by an explicit Invalidate. Writes never
// invalidate anything implicitly.
package cache

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	now     func() time.Time
}

func New[V any]() *Cache[V] {
	return &Cache[V]{entries: make(map[string]entry[V]), now: time.Now}
}

// WithClock replaces the time source, for tests.
func (c *Cache[V]) WithClock(now func() time.Time) *Cache[V] {
	c.now = now
	return c
}

// GetOrFetch returns the cached value for key while it is fresh. Otherwise it
// calls fetch and caches the result for ttl. Fetch errors are not cached.
func (c *Cache[V]) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) (V, error)) (V, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}
	v, err := fetch(ctx)
	if err != nil {
		var zero V
		return zero, false, err
	}
	c.Set(key, v, ttl)
	return v, false, nil
}

func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[V]) Set(key string, v V, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: v, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
