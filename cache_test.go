package assetcache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShardCount(t *testing.T) {
	tests := []struct {
		want, capacity, expected int
	}{
		{0, 100, 1},
		{1, 100, 1},
		{5, 100, 8},
		{16, 100, 16},
		{16, 10, 8},
		{16, 0, 16},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.want, tt.capacity), func(t *testing.T) {
			assert.Equal(t, tt.expected, shardCount(tt.want, tt.capacity))
		})
	}
}

func TestLocalCacheCapacity(t *testing.T) {
	c := NewLocalCache(CacheOptions{MaxEntries: 100, Shards: 16})
	for _, id := range assetIDs(1000) {
		c.Put(id, asset(id))
	}
	assert.Equal(t, 100, c.EstimatedSize())

	stats := c.Stats()
	assert.EqualValues(t, 900, stats.Evictions)
}

func TestLocalCacheHoldsMaxEntriesAcrossShards(t *testing.T) {
	c := NewLocalCache(CacheOptions{MaxEntries: 30000, Shards: 16})
	ids := assetIDs(30000)
	for _, id := range ids {
		c.Put(id, asset(id))
	}

	stats := c.Stats()
	assert.Zero(t, stats.Evictions)
	assert.Equal(t, 30000, stats.Size)
	for _, id := range ids {
		_, ok := c.Get(id)
		require.True(t, ok, id)
	}

	// one more id pushes exactly one entry out
	c.Put("EXTRA", asset("EXTRA"))
	stats = c.Stats()
	assert.EqualValues(t, 1, stats.Evictions)
	assert.Equal(t, 30000, stats.Size)
	_, ok := c.Get("EXTRA")
	assert.True(t, ok)
}

func TestLocalCacheReplaceKeepsSize(t *testing.T) {
	c := NewLocalCache(CacheOptions{MaxEntries: 2, Shards: 2})
	c.Put("A", asset("A"))
	c.Put("A", asset("A"))
	c.Put("B", asset("B"))

	stats := c.Stats()
	assert.Zero(t, stats.Evictions)
	assert.Equal(t, 2, stats.Size)
}

func TestLocalCacheGetPut(t *testing.T) {
	c := newTestCache()
	_, ok := c.Get("A")
	assert.False(t, ok)

	c.Put("A", asset("A"))
	got, ok := c.Get("A")
	require.True(t, ok)
	assert.Equal(t, asset("A"), got)

	stats := c.Stats()
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Size)
}

func TestLocalCacheExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		now = now.Add(d)
		mu.Unlock()
	}
	c := NewLocalCache(CacheOptions{
		MaxEntries:        10,
		Shards:            2,
		ExpireAfterAccess: 30 * time.Minute,
		ExpireAfterWrite:  60 * time.Minute,
		Now:               clock,
	})
	c.Put("A", asset("A"))
	c.Put("B", asset("B"))

	advance(20 * time.Minute)
	_, ok := c.Get("A")
	require.True(t, ok)

	advance(20 * time.Minute)
	_, ok = c.Get("A")
	assert.True(t, ok, "A was read 20 minutes ago")
	assert.Equal(t, 1, c.Purge(), "B idle for 40 minutes")

	advance(25 * time.Minute)
	_, ok = c.Get("A")
	assert.False(t, ok, "written 65 minutes ago")
	assert.EqualValues(t, 2, c.Stats().Expirations)
}

func TestLocalCacheConcurrentPut(t *testing.T) {
	c := newTestCache()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, id := range assetIDs(200) {
				c.Put(id, asset(id))
				c.Get(id)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 200, c.EstimatedSize())
}
