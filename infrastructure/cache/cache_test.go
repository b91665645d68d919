package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(maxItems int) (*Cache, *time.Time) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	c := NewCache(Options{MaxItems: maxItems, Now: func() time.Time { return now }})
	return c, &now
}

func TestCacheSetGet(t *testing.T) {
	c, _ := newTestCache(0)
	defer c.Close()

	c.Set("user:1", []byte(`{"id":"1"}`), 0)

	value, found := c.Get("user:1")
	require.True(t, found)
	assert.Equal(t, `{"id":"1"}`, string(value))

	_, found = c.Get("user:2")
	assert.False(t, found)

	stats := c.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestCacheExpiration(t *testing.T) {
	c, now := newTestCache(0)
	defer c.Close()

	c.Set("k", []byte("v"), time.Minute)
	*now = now.Add(59 * time.Second)
	_, found := c.Get("k")
	assert.True(t, found)

	*now = now.Add(2 * time.Second)
	_, found = c.Get("k")
	assert.False(t, found)
	assert.Equal(t, 0, c.Count())
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c, now := newTestCache(2)
	defer c.Close()

	c.Set("a", []byte("1"), 0)
	*now = now.Add(time.Second)
	c.Set("b", []byte("2"), 0)
	*now = now.Add(time.Second)
	_, _ = c.Get("a")
	*now = now.Add(time.Second)
	c.Set("c", []byte("3"), 0)

	_, found := c.Get("b")
	assert.False(t, found)
	_, found = c.Get("a")
	assert.True(t, found)
	_, found = c.Get("c")
	assert.True(t, found)
	assert.Equal(t, int64(1), c.GetStats().Evictions)
}

func TestCacheDeleteAndFlush(t *testing.T) {
	c, _ := newTestCache(0)
	defer c.Close()

	c.Set("a", []byte("1"), 0)
	c.Set("b", []byte("2"), 0)
	c.Delete("a")
	assert.Equal(t, 1, c.Count())

	c.Flush()
	assert.Equal(t, 0, c.Count())
}
