package feeds

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache holds parsed feed tables keyed by table and feed path.
// A zero ttl keeps entries until they are evicted by size or purged.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	ttl        time.Duration
	maxEntries int

	group singleflight.Group
	now   func() time.Time
}

type cacheEntry struct {
	value      any
	insertedAt time.Time
}

func NewCache(ttl time.Duration, maxEntries int) *Cache {
	return &Cache{
		entries:    map[string]*cacheEntry{},
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, found := c.entries[key]
	if !found {
		return nil, false
	}

	if c.ttl > 0 && c.now().Sub(entry.insertedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}

	return entry.value, true
}

func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}

	c.entries[key] = &cacheEntry{
		value:      value,
		insertedAt: c.now(),
	}
}

func (c *Cache) evictOldest() {
	var oldestKey string
	var oldest time.Time

	for key, entry := range c.entries {
		if oldestKey == "" || entry.insertedAt.Before(oldest) {
			oldestKey = key
			oldest = entry.insertedAt
		}
	}

	delete(c.entries, oldestKey)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = map[string]*cacheEntry{}
}

// getOrLoad runs load at most once at a time per key; values load reports as not ok are returned but not stored
func (c *Cache) getOrLoad(key string, load func() (any, bool)) any {
	if value, found := c.Get(key); found {
		return value
	}

	value, _, _ := c.group.Do(key, func() (interface{}, error) {
		if value, found := c.Get(key); found {
			return value, nil
		}

		value, ok := load()
		if ok {
			c.Set(key, value)
		}

		return value, nil
	})

	return value
}

func loadCached[T any](c *Cache, key string, load func() (T, bool)) T {
	if c == nil {
		value, _ := load()
		return value
	}

	return c.getOrLoad(key, func() (any, bool) {
		value, ok := load()
		return value, ok
	}).(T)
}
