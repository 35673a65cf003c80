package render

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// Cache stores rendered output by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
}

// cacheEntry holds a single cached render result with its creation timestamp.
type cacheEntry struct {
	data      []byte
	createdAt time.Time
}

// MemoryCache is an in-process Cache whose entries expire after a TTL.
type MemoryCache struct {
	ttl     time.Duration
	entries map[string]*cacheEntry
	mu      sync.Mutex
	now     func() time.Time
}

// NewMemoryCache creates a MemoryCache. A zero TTL keeps entries forever.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]*cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached data for key if present and not expired.
// An expired entry is removed.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if c.expired(entry) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return entry.data, true, nil
}

// Set stores data under key and drops every expired entry.
func (c *MemoryCache) Set(_ context.Context, key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, entry := range c.entries {
		if c.expired(entry) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = &cacheEntry{data: data, createdAt: c.now()}
	return nil
}

func (c *MemoryCache) expired(entry *cacheEntry) bool {
	return c.ttl > 0 && c.now().Sub(entry.createdAt) >= c.ttl
}

// Len returns the number of entries held, including expired ones not yet evicted.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes all entries from the cache.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// CachedRenderer wraps a Renderer with a Cache. Errors are never cached, and a
// failing cache only costs a fresh render.
type CachedRenderer struct {
	next  Renderer
	cache Cache
	hook  func(hit bool)
}

// Cached wraps next with cache.
func Cached(next Renderer, cache Cache) *CachedRenderer {
	return &CachedRenderer{next: next, cache: cache}
}

// OnLookup registers a callback invoked with the outcome of every cache lookup.
func (c *CachedRenderer) OnLookup(hook func(hit bool)) *CachedRenderer {
	c.hook = hook
	return c
}

// Render returns the cached output for (dotText, format) or renders and stores it.
func (c *CachedRenderer) Render(ctx context.Context, dotText string, format string) ([]byte, error) {
	key := CacheKey(dotText, format)

	if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		c.lookup(true)
		return data, nil
	}
	c.lookup(false)

	data, err := c.next.Render(ctx, dotText, format)
	if err != nil {
		return nil, err
	}

	_ = c.cache.Set(ctx, key, data)
	return data, nil
}

// Probe forwards to the wrapped renderer when it supports probing.
func (c *CachedRenderer) Probe(ctx context.Context) error {
	if p, ok := c.next.(Prober); ok {
		return p.Probe(ctx)
	}
	return nil
}

func (c *CachedRenderer) lookup(hit bool) {
	if c.hook != nil {
		c.hook(hit)
	}
}

// CacheKey derives a deterministic key from DOT content and output format.
func CacheKey(dotText string, format string) string {
	return fmt.Sprintf("%x:%s", sha256.Sum256([]byte(dotText)), format)
}
