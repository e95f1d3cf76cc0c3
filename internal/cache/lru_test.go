package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndGet(t *testing.T) {
	c := NewLRU[string](3)

	c.Put("a", "1")
	c.Put("b", "2")

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[int](3)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	c.Put("d", 4)

	_, ok := c.Get("a")
	assert.False(t, ok, "eldest entry should have been evicted")

	for _, key := range []string{"b", "c", "d"} {
		_, ok := c.Get(key)
		assert.True(t, ok, "key %q should survive eviction", key)
	}
	assert.Equal(t, 3, c.Len())
}

func TestGetRefreshesRecency(t *testing.T) {
	c := NewLRU[int](3)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	// Touch "a" so "b" becomes eldest.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Put("d", 4)

	_, ok = c.Get("b")
	assert.False(t, ok, "least recently used entry should have been evicted")
	_, ok = c.Get("a")
	assert.True(t, ok, "recently read entry should survive")
}

func TestPutExistingKeyRefreshesRecency(t *testing.T) {
	c := NewLRU[int](2)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10)
	c.Put("c", 3)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v, "put on an existing key should replace the value")

	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestZeroCapacityNeverRetains(t *testing.T) {
	c := NewLRU[int](0)

	c.Put("a", 1)

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestNegativeCapacityTreatedAsZero(t *testing.T) {
	c := NewLRU[int](-5)

	c.Put("a", 1)

	_, ok := c.Get("a")
	assert.False(t, ok)
}
