// Package cache provides a small thread-safe LRU cache.
package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 64

// Stats is a snapshot of cache counters.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns hits / (hits + misses), or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// LRU is a fixed-capacity cache evicting the least recently used entry.
//
// Values are stored as-is; callers must not modify a value after caching
// it.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	entries  map[K]*list.Element

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New returns an empty cache holding at most capacity entries.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU[K, V]{
		capacity: capacity,
		ll:       list.New(),
		entries:  make(map[K]*list.Element),
	}
}

// Get returns the value for key and marks it recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.ll.MoveToFront(el)
	c.hits.Add(1)
	return el.Value.(*entry[K, V]).value, true
}

// Set stores value under key, evicting the oldest entry when full.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value)
}

func (c *LRU[K, V]) setLocked(key K, value V) {
	if el, ok := c.entries[key]; ok {
		el.Value.(*entry[K, V]).value = value
		c.ll.MoveToFront(el)
		return
	}
	for c.ll.Len() >= c.capacity {
		oldest := c.ll.Back()
		c.ll.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry[K, V]).key)
		c.evictions.Add(1)
	}
	c.entries[key] = c.ll.PushFront(&entry[K, V]{key: key, value: value})
}

// GetOrCreate returns the cached value for key, or calls create and caches
// its result. Errors are returned and not cached.
//
// create runs with the cache locked, so concurrent callers for the same
// key create the value once. It must not use the cache.
func (c *LRU[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.ll.MoveToFront(el)
		c.hits.Add(1)
		return el.Value.(*entry[K, V]).value, nil
	}
	c.misses.Add(1)
	v, err := create()
	if err != nil {
		return v, err
	}
	c.setLocked(key, v)
	return v, nil
}

// Delete removes key and reports whether it was present.
func (c *LRU[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return false
	}
	c.ll.Remove(el)
	delete(c.entries, key)
	return true
}

// Clear removes every entry. Counters are kept.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.entries = make(map[K]*list.Element)
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int { return c.capacity }

// Stats returns the current counters.
func (c *LRU[K, V]) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// ResetStats zeroes the hit, miss and eviction counters.
func (c *LRU[K, V]) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}
