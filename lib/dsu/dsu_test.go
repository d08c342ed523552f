package dsu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisjointSet(t *testing.T) {
	ds := NewDisjointSet(10)
	require.Equal(t, 10, ds.Sets())

	testcases := []struct {
		x, y   int
		merged bool
	}{
		{0, 1, true},
		{2, 3, true},
		{1, 3, true},
		{0, 2, false},
		{5, 6, true},
		{6, 5, false},
		{9, 9, false},
	}
	for _, tc := range testcases {
		merged, err := ds.Union(tc.x, tc.y)
		require.NoError(t, err)
		require.Equal(t, tc.merged, merged, "union %d %d", tc.x, tc.y)
	}
	require.Equal(t, 6, ds.Sets())

	same, err := ds.Same(0, 3)
	require.NoError(t, err)
	require.True(t, same)
	same, err = ds.Same(0, 5)
	require.NoError(t, err)
	require.False(t, same)

	r0, err := ds.Find(0)
	require.NoError(t, err)
	for _, x := range []int{1, 2, 3} {
		r, err := ds.Find(x)
		require.NoError(t, err)
		require.Equal(t, r0, r)
	}

	_, err = ds.Find(10)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = ds.Union(-1, 0)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = ds.Same(0, 10)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestDisjointSet_LongChain(t *testing.T) {
	n := 100000
	ds := NewDisjointSet(n)
	for i := 1; i < n; i++ {
		_, err := ds.Union(i-1, i)
		require.NoError(t, err)
	}
	require.Equal(t, 1, ds.Sets())
	same, err := ds.Same(0, n-1)
	require.NoError(t, err)
	require.True(t, same)
}
