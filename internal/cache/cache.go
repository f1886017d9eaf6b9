// Package cache provides the bounded, time-expiring snapshot store shared by
// all request contexts. Expiry is lazy: entries past their TTL are treated
// as absent on access and physically removed there or by a periodic sweep.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/yuchenw/weather-mcp/internal/weather"
)

// Policy selects what is evicted when the cache is full and a new key
// arrives. Fixed at construction time.
type Policy string

const (
	// FIFO evicts the least-recently-inserted entry.
	FIFO Policy = "fifo"
	// LRU evicts the least-recently-used entry.
	LRU Policy = "lru"
)

// Defaults mirror the service's production configuration.
const (
	DefaultCapacity = 1000
	DefaultTTL      = 600 * time.Second
)

type entry struct {
	key       string
	value     weather.Snapshot
	expiresAt time.Time
}

// Cache is a concurrency-safe key -> Snapshot store with a capacity ceiling
// and a uniform TTL. Values are replaced wholesale on overwrite, never
// mutated in place.
type Cache struct {
	mu sync.RWMutex

	capacity int
	ttl      time.Duration
	policy   Policy

	entries map[string]*list.Element
	order   *list.List // front = most recent insert (or use, under LRU)
}

// New creates a Cache. capacity <= 0 and ttl <= 0 fall back to the defaults.
func New(capacity int, ttl time.Duration, policy Policy) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if policy != FIFO {
		policy = LRU
	}
	return &Cache{
		capacity: capacity,
		ttl:      ttl,
		policy:   policy,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the snapshot stored under key if present and not expired.
// An expired entry counts as absent and is removed on the spot.
func (c *Cache) Get(key string) (weather.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return weather.Snapshot{}, false
	}

	ent := el.Value.(*entry)
	if time.Now().After(ent.expiresAt) {
		c.removeLocked(el)
		return weather.Snapshot{}, false
	}

	if c.policy == LRU {
		c.order.MoveToFront(el)
	}
	return ent.value, true
}

// Set inserts or overwrites key and resets its expiry to now + ttl. When the
// cache is full and key is new, one entry is evicted per the configured
// policy first.
func (c *Cache) Set(key string, value weather.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()

	if el, ok := c.entries[key]; ok {
		el.Value = &entry{key: key, value: value, expiresAt: now.Add(c.ttl)}
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		if back := c.order.Back(); back != nil {
			c.removeLocked(back)
		}
	}

	el := c.order.PushFront(&entry{key: key, value: value, expiresAt: now.Add(c.ttl)})
	c.entries[key] = el
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Stats reports current occupancy and configuration. No side effects:
// expired-but-unswept entries still count until touched.
func (c *Cache) Stats() weather.CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return weather.CacheStats{
		CurrentSize: c.order.Len(),
		MaxSize:     c.capacity,
		TTL:         int(c.ttl.Seconds()),
	}
}

// SweepExpired removes all expired entries and returns how many were
// dropped. Called periodically by the janitor so dead entries do not pin
// memory under the capacity ceiling.
func (c *Cache) SweepExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0

	var next *list.Element
	for el := c.order.Front(); el != nil; el = next {
		next = el.Next()
		if now.After(el.Value.(*entry).expiresAt) {
			c.removeLocked(el)
			removed++
		}
	}
	return removed
}

func (c *Cache) removeLocked(el *list.Element) {
	delete(c.entries, el.Value.(*entry).key)
	c.order.Remove(el)
}
