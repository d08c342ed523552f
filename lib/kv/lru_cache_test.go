package kv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLRUCache(t *testing.T) {
	_, err := NewLRUCache[int, string](0)
	require.Error(t, err)

	evicted := make([]int, 0, 4)
	c, err := NewLRUCache[int, string](3, WithLRUCacheEvictCallback(func(key int, val string) {
		evicted = append(evicted, key)
	}))
	require.NoError(t, err)
	require.Equal(t, int64(3), c.Cap())

	for _, k := range []int{1, 2, 3} {
		require.NoError(t, c.Put(k, "v"))
	}
	require.Equal(t, []int{3, 2, 1}, c.Keys())

	v, ok := c.Get(1)
	require.True(t, ok)
	require.Equal(t, "v", v)
	require.Equal(t, []int{1, 3, 2}, c.Keys())

	// Peek leaves 2 as the oldest.
	_, ok = c.Peek(2)
	require.True(t, ok)
	require.NoError(t, c.Put(4, "four"))
	require.Equal(t, []int{2}, evicted)
	require.Equal(t, []int{4, 1, 3}, c.Keys())
	_, ok = c.Get(2)
	require.False(t, ok)

	require.NoError(t, c.Put(3, "three"))
	v, ok = c.Peek(3)
	require.True(t, ok)
	require.Equal(t, "three", v)
	require.Equal(t, []int{3, 4, 1}, c.Keys())
	require.Equal(t, int64(3), c.Len())

	require.True(t, c.Remove(4))
	require.False(t, c.Remove(4))
	require.Equal(t, []int{3, 1}, c.Keys())
	require.Equal(t, []int{2}, evicted)

	c.Clear()
	require.Equal(t, int64(0), c.Len())
	require.Empty(t, c.Keys())
	require.NoError(t, c.Put(7, "seven"))
	require.Equal(t, []int{7}, c.Keys())
}

func TestLRUCache_CustomKey(t *testing.T) {
	type point struct{ x, y int }
	c, err := NewLRUCacheFunc[point, int](2, func(i, j point) int64 {
		if i.x != j.x {
			return int64(i.x - j.x)
		}
		return int64(i.y - j.y)
	})
	require.NoError(t, err)
	require.NoError(t, c.Put(point{1, 2}, 1))
	require.NoError(t, c.Put(point{1, 3}, 2))
	require.NoError(t, c.Put(point{0, 0}, 3))
	_, ok := c.Get(point{1, 2})
	require.False(t, ok)
	v, ok := c.Get(point{1, 3})
	require.True(t, ok)
	require.Equal(t, 2, v)
}
