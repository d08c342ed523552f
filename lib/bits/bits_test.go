package bits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundupPowOf2(t *testing.T) {
	testcases := []struct {
		n        uint64
		expected uint64
		exp      uint8
	}{
		{0, 1, 0},
		{1, 1, 0},
		{7, 8, 3},
		{8, 8, 3},
		{10, 16, 4},
		{17, 32, 5},
		{127, 128, 7},
	}
	for _, tc := range testcases {
		assert.Equal(t, tc.expected, RoundupPowOf2(tc.n), tc.n)
		assert.Equal(t, tc.exp, CeilPowOf2(tc.n), tc.n)
	}
}

func TestHammingWeight(t *testing.T) {
	assert.Equal(t, uint8(3), HammingWeight[int](7))
	assert.Equal(t, uint8(0), HammingWeight[int64](0))
	assert.Equal(t, uint8(8), HammingWeight[int8](-1))
	assert.Equal(t, uint8(16), HammingWeight[int16](-1))
	assert.Equal(t, uint8(32), HammingWeight[int32](-1))
	assert.Equal(t, uint8(64), HammingWeight[int64](-1))
	assert.Equal(t, uint64(255), convert[int8](-1))
	assert.Equal(t, uint64(65535), convert[int16](-1))
}

func TestBitSet(t *testing.T) {
	bs := NewBitSet(100)
	bs2 := NewBitSet(100)
	positions := []int{9, 5, 7, 3, 2, 8, 1, 64, 99}
	for _, i := range positions {
		bs.Set(i)
		require.NoError(t, bs2.SetChecked(i))
	}
	require.True(t, bs.EqualTo(bs2))
	require.Equal(t, len(positions), bs.Count())
	require.False(t, bs.Test(4))
	require.True(t, bs.Test(64))

	visited := make([]int, 0, len(positions))
	bs.Foreach(func(i int) bool {
		visited = append(visited, i)
		return true
	})
	require.Equal(t, []int{1, 2, 3, 5, 7, 8, 9, 64, 99}, visited)

	bs.Reset(64)
	bs.Flip(4)
	require.False(t, bs.Test(64))
	require.True(t, bs.Test(4))
	require.False(t, bs.EqualTo(bs2))

	require.ErrorIs(t, bs.SetChecked(100), ErrOutOfRange)
	require.ErrorIs(t, bs.ResetChecked(-1), ErrOutOfRange)
	_, err := bs.TestChecked(100)
	require.ErrorIs(t, err, ErrOutOfRange)
	ok, err := bs.TestChecked(99)
	require.NoError(t, err)
	require.True(t, ok)

	bs.ClearAll()
	require.True(t, bs.None())
	require.Equal(t, 0, bs.Count())
}

func TestDynamicBitSet(t *testing.T) {
	ds := NewDynamicBitSet(0)
	require.False(t, ds.Test(10))
	require.NoError(t, ds.Set(10))
	require.Equal(t, 11, ds.Len())
	require.True(t, ds.Test(10))
	require.ErrorIs(t, ds.Set(-1), ErrOutOfRange)

	require.NoError(t, ds.Set(200))
	require.Equal(t, 201, ds.Len())
	require.Equal(t, 2, ds.Count())

	// Shrinking drops the bits above the new length, growing back exposes zeros.
	ds.Resize(100)
	require.Equal(t, 1, ds.Count())
	ds.Resize(201)
	require.False(t, ds.Test(200))
	require.Equal(t, 1, ds.Count())

	ds.Resize(5)
	ds.PushBack(true)
	ds.PushBack(false)
	require.Equal(t, 7, ds.Len())
	require.True(t, ds.Test(5))
	require.False(t, ds.Test(6))
	require.Equal(t, 1, ds.Count())
}
