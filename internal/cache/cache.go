// Package cache provides an in-memory TTL cache for upstream API responses.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a thread-safe key/value store with per-entry expiry.
// Expired entries are evicted lazily on read.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached value for key, or false if the key is absent
// or its entry has expired. An expired entry is removed on access.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the given TTL. An existing entry is
// overwritten, last write wins.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
}

// Len reports the number of stored entries, including any that have
// expired but not yet been evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Purge removes all expired entries.
func (c *Cache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}
