// Package lru implements an entry-count bounded LRU cache whose entries also
// expire after a period of inactivity (max idle) or a fixed lifetime since the
// last write (max age), whichever comes first.
//
// Cache is not safe for concurrent use; callers guard it with their own lock.
package lru

import (
	"container/list"
	"time"
)

// Reason tells an OnRemoved callback why an entry left the cache.
type Reason int

const (
	// Evicted means the entry was dropped to make room for a newer one.
	Evicted Reason = iota
	// Expired means the entry outlived its idle or write TTL.
	Expired
)

func (r Reason) String() string {
	switch r {
	case Evicted:
		return "evicted"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// OnRemoved is invoked for every entry leaving the cache other than through Remove.
type OnRemoved[V any] func(key string, value V, reason Reason)

// Options configures a Cache. Zero durations disable the matching TTL and a
// zero MaxEntries means unbounded.
type Options[V any] struct {
	MaxEntries int
	MaxIdle    time.Duration
	MaxAge     time.Duration
	OnRemoved  OnRemoved[V]
	// Now overrides the clock, used by tests.
	Now func() time.Time
}

type entry[V any] struct {
	key        string
	value      V
	insertedAt time.Time
	lastAccess time.Time
}

// Cache is the list+map LRU. The front of the list is the most recently used entry.
type Cache[V any] struct {
	maxEntries int
	maxIdle    time.Duration
	maxAge     time.Duration
	ll         *list.List
	items      map[string]*list.Element
	onRemoved  OnRemoved[V]
	now        func() time.Time
}

func New[V any](opts Options[V]) *Cache[V] {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Cache[V]{
		maxEntries: opts.MaxEntries,
		maxIdle:    opts.MaxIdle,
		maxAge:     opts.MaxAge,
		ll:         list.New(),
		items:      make(map[string]*list.Element),
		onRemoved:  opts.OnRemoved,
		now:        now,
	}
}

// Get returns the live value for key and marks it as recently used.
// An expired entry is dropped and reported as a miss.
func (c *Cache[V]) Get(key string) (value V, ok bool) {
	elem, hit := c.items[key]
	if !hit {
		return value, false
	}
	ent := elem.Value.(*entry[V])
	now := c.now()
	if c.expired(ent, now) {
		c.removeElement(elem, Expired)
		return value, false
	}
	ent.lastAccess = now
	c.ll.MoveToFront(elem)
	return ent.value, true
}

// Add inserts or replaces the value for key and reports whether key is new.
// Replacing restarts both TTLs.
func (c *Cache[V]) Add(key string, value V) bool {
	now := c.now()
	if elem, ok := c.items[key]; ok {
		ent := elem.Value.(*entry[V])
		ent.value = value
		ent.insertedAt = now
		ent.lastAccess = now
		c.ll.MoveToFront(elem)
		return false
	}
	elem := c.ll.PushFront(&entry[V]{key: key, value: value, insertedAt: now, lastAccess: now})
	c.items[key] = elem
	for c.maxEntries > 0 && c.ll.Len() > c.maxEntries {
		c.RemoveOldest()
	}
	return true
}

// Remove deletes key without calling OnRemoved. It reports whether key was present.
func (c *Cache[V]) Remove(key string) bool {
	elem, ok := c.items[key]
	if !ok {
		return false
	}
	c.ll.Remove(elem)
	delete(c.items, key)
	return true
}

// RemoveOldest evicts the least recently used entry.
func (c *Cache[V]) RemoveOldest() {
	if elem := c.ll.Back(); elem != nil {
		c.removeElement(elem, Evicted)
	}
}

// Purge drops every expired entry and returns how many were removed.
func (c *Cache[V]) Purge() int {
	now := c.now()
	removed := 0
	for elem := c.ll.Back(); elem != nil; {
		prev := elem.Prev()
		if c.expired(elem.Value.(*entry[V]), now) {
			c.removeElement(elem, Expired)
			removed++
		}
		elem = prev
	}
	return removed
}

// Len counts entries, including expired ones not yet purged.
func (c *Cache[V]) Len() int {
	return c.ll.Len()
}

func (c *Cache[V]) expired(ent *entry[V], now time.Time) bool {
	if c.maxIdle > 0 && now.Sub(ent.lastAccess) >= c.maxIdle {
		return true
	}
	return c.maxAge > 0 && now.Sub(ent.insertedAt) >= c.maxAge
}

func (c *Cache[V]) removeElement(elem *list.Element, reason Reason) {
	c.ll.Remove(elem)
	ent := elem.Value.(*entry[V])
	delete(c.items, ent.key)
	if c.onRemoved != nil {
		c.onRemoved(ent.key, ent.value, reason)
	}
}
