package cache

import (
	"sync"
	"time"
)

// sweepThreshold is the entry count at which Set evicts expired entries.
const sweepThreshold = 64

// MemoryCache implements an in-process cache with TTL.
// Entries live only as long as the process; nothing is written to disk.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

// cacheEntry represents a cached item with expiration
type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}

	out := make([]byte, len(entry.data))
	copy(out, entry.data)
	return out, true
}

// Set stores a value in the cache
func (c *MemoryCache) Set(key string, value []byte) error {
	data := make([]byte, len(value))
	copy(data, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if len(c.entries) >= sweepThreshold {
		c.sweep(now)
	}
	c.entries[key] = cacheEntry{
		data:      data,
		expiresAt: now.Add(c.ttl),
	}
	return nil
}

// sweep drops expired entries. Callers hold c.mu.
func (c *MemoryCache) sweep(now time.Time) {
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
