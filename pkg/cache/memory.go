package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache keeps entries in process memory. Entries beyond MaxEntries
// evict the one closest to expiry.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	maxEntries int
	now        func() time.Time
}

type cacheEntry struct {
	Data      []byte
	ExpiresAt time.Time
}

// NewMemoryCache creates an in-memory cache holding at most maxEntries
// items. A non-positive maxEntries means unbounded.
func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]cacheEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get retrieves a value. Expired entries are dropped and reported as a miss.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
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
	return entry.Data, true, nil
}

// Set stores a copy of data.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := cacheEntry{Data: append([]byte(nil), data...)}
	if ttl > 0 {
		entry.ExpiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evict()
	}
	c.entries[key] = entry
	return nil
}

// Delete removes a value.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close drops every entry.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) expired(e cacheEntry) bool {
	return !e.ExpiresAt.IsZero() && c.now().After(e.ExpiresAt)
}

// evict removes expired entries and, if the cache is still full, the
// entry expiring soonest. Entries without expiry are evicted last, in key
// order. Caller holds mu.
func (c *MemoryCache) evict() {
	for k, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}
	victim := ""
	var soonest time.Time
	for k, e := range c.entries {
		switch {
		case victim == "":
			victim, soonest = k, e.ExpiresAt
		case e.ExpiresAt.IsZero():
			if soonest.IsZero() && k < victim {
				victim = k
			}
		case soonest.IsZero() || e.ExpiresAt.Before(soonest):
			victim, soonest = k, e.ExpiresAt
		}
	}
	delete(c.entries, victim)
}

var _ Cache = (*MemoryCache)(nil)
