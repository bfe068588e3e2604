package cache

import (
	"slices"
	"time"
)

type memoryItem struct {
	body    []byte
	expires time.Time
}

// Memory is an in-process response cache with a TTL, bounded by an LRU
type Memory struct {
	items *LRU[string, memoryItem]
	ttl   time.Duration
	now   func() time.Time
}

// NewMemory creates a memory cache holding at most size responses for ttl
func NewMemory(size int, ttl time.Duration) *Memory {
	return &Memory{
		items: NewLRU[string, memoryItem](size),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the cached body for key unless it has expired
func (m *Memory) Get(key string) ([]byte, bool) {
	item, ok := m.items.Get(key)
	if !ok {
		return nil, false
	}
	if m.now().After(item.expires) {
		m.items.Remove(key)
		return nil, false
	}
	return slices.Clone(item.body), true
}

// Put stores body under key
func (m *Memory) Put(key string, body []byte) error {
	m.items.Put(key, memoryItem{
		body:    slices.Clone(body),
		expires: m.now().Add(m.ttl),
	})
	return nil
}

// Len returns the number of cached responses, expired ones included
func (m *Memory) Len() int {
	return m.items.Len()
}

// Close empties the cache
func (m *Memory) Close() error {
	m.items.Clear()
	return nil
}
