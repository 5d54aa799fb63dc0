package assetcache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/smartinsert/assetcache/lru"
	"github.com/smartinsert/assetcache/metrics"
)

var (
	cacheRequests = metrics.MustRegisterCounterVec("local_cache", "requests_total",
		"Local cache lookups by result.", "result")
	cacheRemovals = metrics.MustRegisterCounterVec("local_cache", "removals_total",
		"Entries leaving the local cache by reason.", "reason")
)

// CacheOptions bounds the local cache. Whichever TTL is reached first expires an entry.
type CacheOptions struct {
	MaxEntries        int
	Shards            int
	ExpireAfterAccess time.Duration
	ExpireAfterWrite  time.Duration
	// Now overrides the clock, used by tests.
	Now func() time.Time
}

// CacheStats is a snapshot of the local cache counters.
type CacheStats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	Expirations uint64
	Size        int
}

type cacheShard struct {
	mu  sync.Mutex
	lru *lru.Cache[Asset]
}

// LocalCache is the process-private, size and TTL bounded asset cache. It is
// split into independently locked shards so concurrent sub-batches rarely
// contend on the same mutex. The size bound applies to the whole cache, not
// to each shard. Concurrent Puts of one ID are last write wins.
type LocalCache struct {
	shards     []*cacheShard
	mask       uint32
	maxEntries int64
	size       atomic.Int64

	hits        atomic.Uint64
	misses      atomic.Uint64
	evictions   atomic.Uint64
	expirations atomic.Uint64
}

func NewLocalCache(opts CacheOptions) *LocalCache {
	n := shardCount(opts.Shards, opts.MaxEntries)
	c := &LocalCache{
		shards:     make([]*cacheShard, n),
		mask:       uint32(n - 1),
		maxEntries: int64(opts.MaxEntries),
	}
	onRemoved := func(_ string, _ Asset, reason lru.Reason) {
		c.size.Add(-1)
		if reason == lru.Expired {
			c.expirations.Add(1)
		} else {
			c.evictions.Add(1)
		}
		cacheRemovals.WithLabelValues(reason.String()).Inc()
	}
	for i := range c.shards {
		// shards are unbounded; Put enforces MaxEntries on the total
		c.shards[i] = &cacheShard{lru: lru.New(lru.Options[Asset]{
			MaxIdle:   opts.ExpireAfterAccess,
			MaxAge:    opts.ExpireAfterWrite,
			OnRemoved: onRemoved,
			Now:       opts.Now,
		})}
	}
	return c
}

// shardCount rounds want up to a power of two, never exceeding the capacity.
func shardCount(want, capacity int) int {
	if want < 1 {
		want = 1
	}
	n := 1
	for n < want {
		n <<= 1
	}
	for n > 1 && capacity > 0 && n > capacity {
		n >>= 1
	}
	return n
}

func (c *LocalCache) shardIndex(id string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return h.Sum32() & c.mask
}

func (c *LocalCache) shard(id string) *cacheShard {
	return c.shards[c.shardIndex(id)]
}

// Get returns the cached asset for id.
func (c *LocalCache) Get(id string) (Asset, bool) {
	s := c.shard(id)
	s.mu.Lock()
	a, ok := s.lru.Get(id)
	s.mu.Unlock()
	if ok {
		c.hits.Add(1)
		cacheRequests.WithLabelValues("hit").Inc()
	} else {
		c.misses.Add(1)
		cacheRequests.WithLabelValues("miss").Inc()
	}
	return a, ok
}

// Put stores a under id, restarting its TTLs. A new id that takes the cache
// past MaxEntries evicts the least recently used entry of its own shard, or
// of the next non-empty shard when the new id is alone in its shard.
func (c *LocalCache) Put(id string, a Asset) {
	idx := c.shardIndex(id)
	s := c.shards[idx]
	s.mu.Lock()
	added := s.lru.Add(id, a)
	s.mu.Unlock()
	if !added {
		return
	}
	if c.size.Add(1) <= c.maxEntries || c.maxEntries <= 0 {
		return
	}
	c.evictFrom(idx)
}

// evictFrom removes one entry, starting at shard idx and keeping the entry
// just written there.
func (c *LocalCache) evictFrom(idx uint32) {
	for i := uint32(0); i <= c.mask; i++ {
		s := c.shards[(idx+i)&c.mask]
		keep := 0
		if i == 0 {
			keep = 1
		}
		s.mu.Lock()
		if s.lru.Len() > keep {
			// onRemoved decrements size
			s.lru.RemoveOldest()
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
	}
}

// EstimatedSize counts live and not yet purged entries.
func (c *LocalCache) EstimatedSize() int {
	size := 0
	for _, s := range c.shards {
		s.mu.Lock()
		size += s.lru.Len()
		s.mu.Unlock()
	}
	return size
}

// Purge drops expired entries from every shard.
func (c *LocalCache) Purge() int {
	removed := 0
	for _, s := range c.shards {
		s.mu.Lock()
		removed += s.lru.Purge()
		s.mu.Unlock()
	}
	return removed
}

func (c *LocalCache) Stats() CacheStats {
	return CacheStats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions.Load(),
		Expirations: c.expirations.Load(),
		Size:        c.EstimatedSize(),
	}
}
