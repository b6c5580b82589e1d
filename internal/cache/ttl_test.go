package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCacheExpiry(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	c := NewTTLCacheWithNow[string, int](func() time.Time { return now })

	c.Set("k", 42, 5*time.Minute)

	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	now = now.Add(5*time.Minute + time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestTTLCacheDeleteAndClear(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	c := NewTTLCacheWithNow[string, string](func() time.Time { return now })

	c.Set("a", "1", time.Hour)
	c.Set("b", "2", time.Hour)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Clear()
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestTTLCacheNonPositiveTTL(t *testing.T) {
	c := NewTTLCache[string, int]()

	c.Set("k", 1, 0)
	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Set("k", 1, -time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestTTLCacheOverwrite(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	c := NewTTLCacheWithNow[string, int](func() time.Time { return now })

	c.Set("k", 1, time.Minute)
	c.Set("k", 2, time.Hour)

	now = now.Add(30 * time.Minute)
	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}
