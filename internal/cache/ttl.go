package cache

import (
	"sync"
	"time"
)

type entry struct {
	value    string
	cachedAt time.Time
}

// TTLCache is a process-wide string cache with lazy expiry: entries are
// checked against the TTL on read and there is no background sweep. An
// expired entry is reported as a miss and stays in the map until it is
// overwritten or deleted.
type TTLCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (c *TTLCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().Sub(e.cachedAt) >= c.ttl {
		return "", false
	}
	return e.value, true
}

func (c *TTLCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, cachedAt: c.now()}
}

// Delete removes the entry unconditionally; no-op if absent.
func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}
