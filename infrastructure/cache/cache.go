package cache

import (
	"sync"
	"time"
)

type item struct {
	value      []byte
	expiration time.Time
	lastAccess time.Time
}

func (i item) expired(now time.Time) bool {
	return !i.expiration.IsZero() && now.After(i.expiration)
}

type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

type Options struct {
	CleanupInterval time.Duration
	// MaxItems of zero means unbounded.
	MaxItems int
	Now      func() time.Time
}

func DefaultOptions() Options {
	return Options{
		CleanupInterval: 5 * time.Minute,
		MaxItems:        10000,
		Now:             time.Now,
	}
}

// Cache is an in-process byte cache with least recently used eviction.
type Cache struct {
	mu          sync.Mutex
	items       map[string]item
	maxItems    int
	now         func() time.Time
	stats       Stats
	stopCleanup chan struct{}
	closeOnce   sync.Once
}

func NewCache(options Options) *Cache {
	if options.Now == nil {
		options.Now = time.Now
	}

	c := &Cache{
		items:       make(map[string]item),
		maxItems:    options.MaxItems,
		now:         options.Now,
		stopCleanup: make(chan struct{}),
	}

	if options.CleanupInterval > 0 {
		go c.startCleanupTimer(options.CleanupInterval)
	}
	return c
}

func (c *Cache) startCleanupTimer(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *Cache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, it := range c.items {
		if it.expired(now) {
			delete(c.items, key)
		}
	}
}

// evict must be called with mu held.
func (c *Cache) evict() {
	var oldestKey string
	var oldest time.Time
	for key, it := range c.items {
		if oldestKey == "" || it.lastAccess.Before(oldest) {
			oldestKey = key
			oldest = it.lastAccess
		}
	}
	if oldestKey != "" {
		delete(c.items, oldestKey)
		c.stats.Evictions++
	}
}

func (c *Cache) Set(key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && c.maxItems > 0 && len(c.items) >= c.maxItems {
		c.evict()
	}

	now := c.now()
	it := item{value: value, lastAccess: now}
	if ttl > 0 {
		it.expiration = now.Add(ttl)
	}
	c.items[key] = it
}

func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	it, found := c.items[key]
	if !found || it.expired(now) {
		if found {
			delete(c.items, key)
		}
		c.stats.Misses++
		return nil, false
	}

	it.lastAccess = now
	c.items[key] = it
	c.stats.Hits++
	return it.value, true
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]item)
}

func (c *Cache) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Cache) Close() {
	c.closeOnce.Do(func() { close(c.stopCleanup) })
}
