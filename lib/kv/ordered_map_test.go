package kv

import (
	"strconv"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/benz9527/xcontainer/lib/alloc"
	"github.com/benz9527/xcontainer/lib/tree"
)

func requireMapValid[K any, V any](t *testing.T, m *OrderedMap[K, V]) {
	t.Helper()
	require.NoError(t, tree.RedViolationValidate[K, V](m.tree))
	require.NoError(t, tree.BlackViolationValidate[K, V](m.tree))
	require.NoError(t, tree.OrderViolationValidate[K, V](m.tree))
	require.NoError(t, tree.SizeValidate[K, V](m.tree))
}

func TestOrderedMap_InsertAndErase(t *testing.T) {
	m := NewOrderedMap[int, string]()
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		_, inserted, err := m.Insert(k, strconv.Itoa(k))
		require.NoError(t, err)
		require.True(t, inserted)
	}
	require.Equal(t, []int{1, 3, 4, 5, 7, 8, 9}, m.Keys())
	requireMapValid(t, m)

	require.Equal(t, 1, m.Erase(5))
	require.Equal(t, []int{1, 3, 4, 7, 8, 9}, m.Keys())
	require.Equal(t, int64(6), m.Len())
	require.Equal(t, 0, m.Erase(5))
	requireMapValid(t, m)
}

func TestOrderedMap_PopMinMax(t *testing.T) {
	m := NewOrderedMap[int, string]()
	_, _, err := m.PopMin()
	require.ErrorIs(t, err, ErrEmpty)
	_, _, err = m.PopMax()
	require.ErrorIs(t, err, ErrEmpty)

	for _, k := range []int{4, 2, 6, 1, 3, 5, 7} {
		_, _, err = m.Insert(k, strconv.Itoa(k))
		require.NoError(t, err)
	}
	k, v, err := m.PopMin()
	require.NoError(t, err)
	require.Equal(t, 1, k)
	require.Equal(t, "1", v)
	k, v, err = m.PopMax()
	require.NoError(t, err)
	require.Equal(t, 7, k)
	require.Equal(t, "7", v)
	require.Equal(t, []int{2, 3, 4, 5, 6}, m.Keys())
	requireMapValid(t, m)

	for m.Len() > 0 {
		_, _, err = m.PopMin()
		require.NoError(t, err)
	}
	_, _, err = m.PopMax()
	require.ErrorIs(t, err, ErrEmpty)
	requireMapValid(t, m)
}

func TestOrderedMap_RefInsertsDefault(t *testing.T) {
	m := NewOrderedMap[int, string]()
	v, err := m.Ref(42)
	require.NoError(t, err)
	require.Equal(t, "", *v)
	require.Equal(t, int64(1), m.Len())

	*v = "answer"
	again, err := m.Ref(42)
	require.NoError(t, err)
	require.Equal(t, "answer", *again)
	require.Equal(t, int64(1), m.Len())

	_, err = m.At(7)
	require.ErrorIs(t, err, ErrKeyNotFound)
	require.Equal(t, int64(1), m.Len())
	got, err := m.At(42)
	require.NoError(t, err)
	require.Equal(t, "answer", got)
}

func TestOrderedMap_InsertVsAssign(t *testing.T) {
	m := NewOrderedMap[string, int]()
	_, inserted, err := m.Insert("k", 1)
	require.NoError(t, err)
	require.True(t, inserted)

	it, inserted, err := m.Insert("k", 2)
	require.NoError(t, err)
	require.False(t, inserted)
	require.Equal(t, 1, it.Val())

	_, inserted, err = m.InsertOrAssign("k", 3)
	require.NoError(t, err)
	require.False(t, inserted)
	v, _ := m.At("k")
	require.Equal(t, 3, v)
	require.Equal(t, int64(1), m.Len())
	require.Equal(t, 1, m.Count("k"))
	require.Equal(t, 0, m.Count("x"))
}

func TestOrderedMap_Bounds(t *testing.T) {
	m := NewOrderedMap[int, int]()
	for _, k := range []int{10, 20, 30} {
		m.InsertOrAssign(k, k)
	}
	lower, upper := m.EqualRange(20)
	require.Equal(t, 20, lower.Key())
	require.Equal(t, 30, upper.Key())

	lower, upper = m.EqualRange(25)
	require.True(t, lower.Equal(upper))
	require.Equal(t, 30, lower.Key())

	require.False(t, m.UpperBound(30).Valid())
	require.True(t, m.Find(10).Equal(m.Begin()))
	require.True(t, m.Find(30).Equal(m.Last()))
	require.True(t, m.End().Prev().Equal(m.Last()))
}

func TestOrderedMap_EraseVariants(t *testing.T) {
	m := NewOrderedMap[int, int]()
	for _, k := range lo.Range(10) {
		m.InsertOrAssign(k, k*k)
	}

	next, err := m.EraseAt(m.Find(4))
	require.NoError(t, err)
	require.Equal(t, 5, next.Key())

	last, err := m.EraseRange(m.Find(5), m.Find(8))
	require.NoError(t, err)
	require.Equal(t, 8, last.Key())
	require.Equal(t, []int{0, 1, 2, 3, 8, 9}, m.Keys())

	erased := m.EraseIf(func(key int, val int) bool {
		return key%2 == 1
	})
	require.Equal(t, 3, erased)
	require.Equal(t, []int{0, 2, 8}, m.Keys())
	require.Equal(t, []int{0, 4, 64}, m.Values())
	requireMapValid(t, m)

	_, err = m.EraseRange(m.End(), m.Begin())
	require.ErrorIs(t, err, tree.ErrRBTreeInvalidIterator)

	_, err = m.EraseRange(m.Begin(), m.End())
	require.NoError(t, err)
	require.True(t, m.Empty())
}

func TestOrderedMap_RoundTrip(t *testing.T) {
	testcases := []struct {
		name string
		opts []OrderedMapOption[int, int]
	}{
		{name: "borrow pred"},
		{name: "borrow succ", opts: []OrderedMapOption[int, int]{WithOrderedMapRemoveBorrowSucc[int, int]()}},
		{name: "desc", opts: []OrderedMapOption[int, int]{WithOrderedMapDesc[int, int]()}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			m := NewOrderedMap[int, int](tc.opts...)
			for _, k := range lo.Shuffle(lo.Range(500)) {
				_, _, err := m.Insert(k, k)
				require.NoError(tt, err)
				requireMapValid(tt, m)
			}
			require.Equal(tt, int64(500), m.Len())
			for _, k := range lo.Shuffle(lo.Range(500)) {
				require.Equal(tt, 1, m.Erase(k))
				requireMapValid(tt, m)
			}
			require.Equal(tt, int64(0), m.Len())
			require.True(tt, m.Begin().Equal(m.End()))
		})
	}
}

func TestOrderedMap_Merge(t *testing.T) {
	m := NewOrderedMap[int, string]()
	other := NewOrderedMap[int, string]()
	for _, k := range []int{1, 3, 5} {
		m.InsertOrAssign(k, "m")
	}
	for _, k := range []int{2, 3, 4, 5, 6} {
		other.InsertOrAssign(k, "o")
	}

	require.NoError(t, m.Merge(other))
	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, m.Keys())
	require.Equal(t, []string{"m", "o", "m", "o", "m", "o"}, m.Values())
	// Colliding keys stay behind.
	require.Equal(t, []int{3, 5}, other.Keys())
	requireMapValid(t, m)
	requireMapValid(t, other)

	require.NoError(t, m.Merge(m))
	require.Equal(t, int64(6), m.Len())
}

func TestOrderedMap_MergeStopsOnFailure(t *testing.T) {
	bounded := tree.NewRBNodeBoundedAllocator[int, int](nil, 4)
	m := NewOrderedMap[int, int](WithOrderedMapAllocator[int, int](bounded))
	other := NewOrderedMap[int, int]()
	m.InsertOrAssign(0, 0)
	m.InsertOrAssign(2, 2)
	for _, k := range []int{1, 2, 3, 4, 5} {
		other.InsertOrAssign(k, k)
	}

	err := m.Merge(other)
	require.ErrorIs(t, err, alloc.ErrOutOfMemory)
	require.Equal(t, []int{0, 1, 2, 3}, m.Keys())
	require.Equal(t, []int{2, 4, 5}, other.Keys())
}

func TestOrderedMap_CloneCopyMove(t *testing.T) {
	m := NewOrderedMap[int, []int]()
	for _, k := range lo.Range(20) {
		m.InsertOrAssign(k, []int{k})
	}
	c, err := m.Clone()
	require.NoError(t, err)
	require.Equal(t, m.Keys(), c.Keys())
	requireMapValid(t, c)
	c.Find(3).SetVal(nil)
	require.Equal(t, []int{3}, m.Find(3).Val())

	dst := NewOrderedMap[int, []int]()
	dst.InsertOrAssign(100, nil)
	require.NoError(t, dst.CopyFrom(m))
	require.Equal(t, m.Keys(), dst.Keys())
	require.NoError(t, dst.CopyFrom(dst))
	require.Equal(t, int64(20), dst.Len())

	moved := NewOrderedMap[int, []int]()
	moved.MoveFrom(m)
	require.Equal(t, int64(20), moved.Len())
	require.True(t, m.Empty())
	moved.MoveFrom(moved)
	require.Equal(t, int64(20), moved.Len())

	m.InsertOrAssign(-1, nil)
	m.Swap(moved)
	require.Equal(t, int64(20), m.Len())
	require.Equal(t, []int{-1}, moved.Keys())

	m.Clear()
	require.True(t, m.Empty())
}

func TestOrderedMap_CopyFromFailureKeepsTarget(t *testing.T) {
	bounded := tree.NewRBNodeBoundedAllocator[int, int](nil, 6)
	src := NewOrderedMap[int, int](WithOrderedMapAllocator[int, int](bounded))
	for _, k := range lo.Range(4) {
		_, _, err := src.Insert(k, k)
		require.NoError(t, err)
	}
	dst := NewOrderedMap[int, int]()
	dst.InsertOrAssign(9, 9)

	// The copy would need 4 more nodes of the source allocator.
	require.ErrorIs(t, dst.CopyFrom(src), alloc.ErrOutOfMemory)
	require.Equal(t, []int{9}, dst.Keys())
	require.Equal(t, int64(4), bounded.(alloc.Stats).Live())

	_, err := src.Ref(10)
	require.NoError(t, err)
	_, err = src.Ref(11)
	require.NoError(t, err)
	_, err = src.Ref(12)
	require.ErrorIs(t, err, alloc.ErrOutOfMemory)
	require.Equal(t, int64(6), src.Len())
}

func TestOrderedMap_Comparator(t *testing.T) {
	type point struct{ x, y int }
	m := NewOrderedMapFunc[point, string](func(i, j point) int64 {
		if i.x != j.x {
			return int64(i.x - j.x)
		}
		return int64(i.y - j.y)
	})
	m.InsertOrAssign(point{2, 1}, "c")
	m.InsertOrAssign(point{1, 5}, "b")
	m.InsertOrAssign(point{1, 2}, "a")
	require.Equal(t, []string{"a", "b", "c"}, m.Values())

	entries := m.Entries()
	require.Equal(t, point{1, 2}, entries[0].Key)
}

func TestBPlusTree(t *testing.T) {
	bt := NewBPlusTree[string, int]()
	require.Nil(t, bt.Find("a"))
	require.NoError(t, bt.Insert("a", 1))
	require.NoError(t, bt.Insert("a", 2))
	v := bt.Find("a")
	require.NotNil(t, v)
	require.Equal(t, 2, *v)
	require.Equal(t, int64(1), bt.Len())
}
