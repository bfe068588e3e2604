package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRU(t *testing.T) {
	c := NewLRU[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	// a was used last, so b is evicted
	c.Put("c", 3)
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())

	c.Put("a", 10)
	v, _ = c.Get("a")
	assert.Equal(t, 10, v)
	assert.Equal(t, 2, c.Len())

	c.Remove("a")
	_, ok = c.Get("a")
	assert.False(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestLRU_MinimumSize(t *testing.T) {
	c := NewLRU[int, string](0)
	c.Put(1, "one")
	c.Put(2, "two")

	assert.Equal(t, 1, c.Len())
	v, ok := c.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "two", v)
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[string, int](50)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 200 {
				key := fmt.Sprintf("%d-%d", i, j%70)
				c.Put(key, j)
				c.Get(key)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}
