package store

import (
	"fmt"
	"time"
)

// DefaultTTL is how long a cached response stays valid
const DefaultTTL = 10 * time.Minute

// Clock returns the current time. Tests inject a fake one.
type Clock func() time.Time

// cacheEntry stores cached data with the time it was fetched
type cacheEntry[V any] struct {
	Data      V
	Timestamp time.Time
	TTL       time.Duration
}

// valid reports whether the entry is still fresh at now
func (e cacheEntry[V]) valid(now time.Time) bool {
	return now.Sub(e.Timestamp) < e.TTL
}

// ttlCache is a plain map of timestamped entries.
// Not safe for concurrent use; the owning Store holds the lock.
type ttlCache[K comparable, V any] struct {
	entries map[K]cacheEntry[V]
	ttl     time.Duration
}

func newTTLCache[K comparable, V any](ttl time.Duration) *ttlCache[K, V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ttlCache[K, V]{entries: make(map[K]cacheEntry[V]), ttl: ttl}
}

// get returns the data for key if present and fresh at now
func (c *ttlCache[K, V]) get(key K, now time.Time) (V, bool) {
	e, ok := c.entries[key]
	if !ok || !e.valid(now) {
		var zero V
		return zero, false
	}
	return e.Data, true
}

func (c *ttlCache[K, V]) set(key K, data V, now time.Time) {
	c.entries[key] = cacheEntry[V]{Data: data, Timestamp: now, TTL: c.ttl}
}

func (c *ttlCache[K, V]) clear() {
	clear(c.entries)
}

func (c *ttlCache[K, V]) len() int {
	return len(c.entries)
}

// listCacheKey builds "<resource>_<page>_<search>"
func listCacheKey(resource string, page int, search string) string {
	return fmt.Sprintf("%s_%d_%s", resource, page, search)
}
