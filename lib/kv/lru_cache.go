package kv

import (
	"fmt"

	"github.com/benz9527/xcontainer/lib/infra"
	"github.com/benz9527/xcontainer/lib/list"
)

type lruEntry[K any, V any] struct {
	key K
	val V
}

type LRUCacheOption[K any, V any] func(*LRUCache[K, V])

// WithLRUCacheEvictCallback is called with every entry pushed out by
// capacity, not with entries removed explicitly.
func WithLRUCacheEvictCallback[K any, V any](fn func(key K, val V)) LRUCacheOption[K, V] {
	return func(c *LRUCache[K, V]) {
		c.onEvict = fn
	}
}

// LRUCache keeps at most capacity entries and evicts the least recently
// used one. Recency lives in a linked list, most recent at the front, and
// an ordered map indexes the list elements by key.
type LRUCache[K any, V any] struct {
	capacity int64
	items    *list.LinkedList[lruEntry[K, V]]
	index    *OrderedMap[K, *list.Element[lruEntry[K, V]]]
	onEvict  func(key K, val V)
}

func NewLRUCache[K infra.OrderedKey, V any](capacity int, opts ...LRUCacheOption[K, V]) (*LRUCache[K, V], error) {
	return NewLRUCacheFunc[K, V](capacity, infra.OrderedKeyCmp[K](), opts...)
}

func NewLRUCacheFunc[K any, V any](capacity int, cmp infra.Comparator[K], opts ...LRUCacheOption[K, V]) (*LRUCache[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("[lru] capacity %d must be positive", capacity)
	}
	c := &LRUCache[K, V]{
		capacity: int64(capacity),
		items:    list.NewLinkedList[lruEntry[K, V]](),
		index:    NewOrderedMapFunc[K, *list.Element[lruEntry[K, V]]](cmp),
	}
	for _, o := range opts {
		if o != nil {
			o(c)
		}
	}
	return c, nil
}

func (c *LRUCache[K, V]) Len() int64 {
	return c.items.Len()
}

func (c *LRUCache[K, V]) Cap() int64 {
	return c.capacity
}

// Put inserts or refreshes key and marks it as the most recent one.
func (c *LRUCache[K, V]) Put(key K, val V) error {
	if it := c.index.Find(key); it.Valid() {
		e := it.Val()
		e.Value.val = val
		c.items.MoveToFront(e)
		return nil
	}
	e := c.items.PushFront(lruEntry[K, V]{key: key, val: val})
	if _, _, err := c.index.Insert(key, e); err != nil {
		_, _ = c.items.Remove(e)
		return err
	}
	if c.items.Len() > c.capacity {
		c.evict()
	}
	return nil
}

func (c *LRUCache[K, V]) evict() {
	oldest := c.items.Back()
	if oldest == nil {
		return
	}
	entry, _ := c.items.Remove(oldest)
	c.index.Erase(entry.key)
	if c.onEvict != nil {
		c.onEvict(entry.key, entry.val)
	}
}

// Get returns the value of key and marks it as the most recent one.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	it := c.index.Find(key)
	if !it.Valid() {
		var zero V
		return zero, false
	}
	e := it.Val()
	c.items.MoveToFront(e)
	return e.Value.val, true
}

// Peek reads key without touching its recency.
func (c *LRUCache[K, V]) Peek(key K) (V, bool) {
	it := c.index.Find(key)
	if !it.Valid() {
		var zero V
		return zero, false
	}
	return it.Val().Value.val, true
}

func (c *LRUCache[K, V]) Remove(key K) bool {
	it := c.index.Find(key)
	if !it.Valid() {
		return false
	}
	_, _ = c.items.Remove(it.Val())
	_, _ = c.index.EraseAt(it)
	return true
}

// Keys lists the keys from the most to the least recent one.
func (c *LRUCache[K, V]) Keys() []K {
	keys := make([]K, 0, c.items.Len())
	c.items.Foreach(func(_ int64, e *list.Element[lruEntry[K, V]]) bool {
		keys = append(keys, e.Value.key)
		return true
	})
	return keys
}

func (c *LRUCache[K, V]) Clear() {
	c.items.Clear()
	c.index.Clear()
}
