// Package cache provides a small bounded cache with least-recently-used
// eviction, used to deduplicate parsed entities.
package cache

import "container/list"

// LRU is a fixed-capacity string-keyed cache. Both Get and Put count as a
// use of the key; once the cache is full, inserting a new key evicts the
// least recently used entry. A capacity of zero is allowed and means
// nothing is ever retained.
//
// N.B. LRU is not safe for concurrent use. The parser owns one per
// instance and is itself documented as caller-must-synchronize, so no
// locking is done here.
type LRU[V any] struct {
	capacity int
	order    *list.List
	index    map[string]*list.Element
}

type lruEntry[V any] struct {
	key   string
	value V
}

// NewLRU creates an LRU bounded to capacity entries.
func NewLRU[V any](capacity int) *LRU[V] {
	if capacity < 0 {
		capacity = 0
	}
	return &LRU[V]{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element),
	}
}

// Get returns the cached value for key and refreshes its recency.
func (c *LRU[V]) Get(key string) (V, bool) {
	if elem, ok := c.index[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*lruEntry[V]).value, true
	}
	var zero V
	return zero, false
}

// Put inserts or replaces the value for key, evicting the least recently
// used entry if the cache is at capacity.
func (c *LRU[V]) Put(key string, value V) {
	if c.capacity == 0 {
		return
	}

	if elem, ok := c.index[key]; ok {
		elem.Value.(*lruEntry[V]).value = value
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		eldest := c.order.Back()
		if eldest != nil {
			c.order.Remove(eldest)
			delete(c.index, eldest.Value.(*lruEntry[V]).key)
		}
	}

	c.index[key] = c.order.PushFront(&lruEntry[V]{key: key, value: value})
}

// Len returns the number of cached entries.
func (c *LRU[V]) Len() int {
	return c.order.Len()
}
