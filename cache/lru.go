package cache

import (
	"container/list"
	"sync"
)

// LRU implements a thread-safe least recently used cache
type LRU[K comparable, V any] struct {
	size      int
	evictList *list.List
	items     map[K]*list.Element
	mu        sync.Mutex
}

// entry is stored in the cache
type entry[K comparable, V any] struct {
	key   K
	value V
}

// NewLRU creates a new LRU cache holding at most size items. A size below
// one is treated as one.
func NewLRU[K comparable, V any](size int) *LRU[K, V] {
	if size < 1 {
		size = 1
	}
	return &LRU[K, V]{
		size:      size,
		evictList: list.New(),
		items:     make(map[K]*list.Element),
	}
}

// Get retrieves a value from the cache
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, exists := c.items[key]
	if !exists {
		var zero V
		return zero, false
	}

	c.evictList.MoveToFront(node)
	return node.Value.(*entry[K, V]).value, true
}

// Put adds or updates a value in the cache
func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, exists := c.items[key]; exists {
		c.evictList.MoveToFront(node)
		node.Value.(*entry[K, V]).value = value
		return
	}

	node := c.evictList.PushFront(&entry[K, V]{key: key, value: value})
	c.items[key] = node

	if c.evictList.Len() > c.size {
		c.removeOldest()
	}
}

// Remove deletes a key from the cache
func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, exists := c.items[key]; exists {
		c.evictList.Remove(node)
		delete(c.items, key)
	}
}

// removeOldest removes the least recently used item
func (c *LRU[K, V]) removeOldest() {
	node := c.evictList.Back()
	if node != nil {
		c.evictList.Remove(node)
		delete(c.items, node.Value.(*entry[K, V]).key)
	}
}

// Clear removes all items from the cache
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*list.Element)
	c.evictList.Init()
}

// Len returns the number of items in the cache
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.evictList.Len()
}
