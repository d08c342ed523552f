package vector

import (
	"errors"
	"strconv"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/benz9527/xcontainer/lib/alloc"
)

var errInjected = errors.New("injected failure")

type trackingAllocator[T any] struct {
	alloc.HeapAllocator[T]
	calls                int
	constructs, destroys int
	failConstructAt      int
}

func (a *trackingAllocator[T]) Construct(p *T, v T) error {
	a.calls++
	if a.failConstructAt > 0 && a.calls == a.failConstructAt {
		return errInjected
	}
	a.constructs++
	return a.HeapAllocator.Construct(p, v)
}

func (a *trackingAllocator[T]) Destroy(p *T) {
	a.destroys++
	a.HeapAllocator.Destroy(p)
}

func (a *trackingAllocator[T]) live() int {
	return a.constructs - a.destroys
}

func TestVector_PushBackGrowth(t *testing.T) {
	v := NewVector[int]()
	prevCap := v.Cap()
	for i := 0; i < 100; i++ {
		require.NoError(t, v.PushBack(i))
		require.GreaterOrEqual(t, v.Cap(), prevCap)
		prevCap = v.Cap()
	}
	require.Equal(t, 50, v.Index(50))
	require.Equal(t, 100, v.Len())
	require.GreaterOrEqual(t, v.Cap(), 100)
	require.Equal(t, 128, v.Cap())
	for i := 0; i < 100; i++ {
		e, err := v.At(i)
		require.NoError(t, err)
		require.Equal(t, i, e)
	}
}

func TestVector_GrowthSequence(t *testing.T) {
	v := NewVector[string]()
	caps := make([]int, 0, 8)
	for i := 0; i < 9; i++ {
		require.NoError(t, v.PushBack(strconv.Itoa(i)))
		caps = append(caps, v.Cap())
	}
	require.Equal(t, []int{1, 2, 4, 4, 8, 8, 8, 8, 16}, caps)
}

func TestVector_At(t *testing.T) {
	v, err := NewVectorFrom([]int{1, 2, 3})
	require.NoError(t, err)
	testcases := []struct {
		name  string
		idx   int
		value int
		err   error
	}{
		{name: "first", idx: 0, value: 1},
		{name: "last", idx: 2, value: 3},
		{name: "size", idx: 3, err: ErrOutOfRange},
		{name: "negative", idx: -1, err: ErrOutOfRange},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			e, err := v.At(tc.idx)
			if tc.err != nil {
				require.ErrorIs(tt, err, tc.err)
				return
			}
			require.NoError(tt, err)
			require.Equal(tt, tc.value, e)
		})
	}
	require.ErrorIs(t, v.Set(3, 0), ErrOutOfRange)
	require.NoError(t, v.Set(1, 20))
	require.Equal(t, []int{1, 20, 3}, v.Slice())
}

func TestVector_EmptyAccess(t *testing.T) {
	v := NewVector[int]()
	_, err := v.Front()
	require.ErrorIs(t, err, ErrEmpty)
	_, err = v.Back()
	require.ErrorIs(t, err, ErrEmpty)
	_, err = v.PopBack()
	require.ErrorIs(t, err, ErrEmpty)

	require.NoError(t, v.PushBack(1))
	require.NoError(t, v.PushBack(2))
	f, _ := v.Front()
	b, _ := v.Back()
	require.Equal(t, 1, f)
	require.Equal(t, 2, b)
	e, err := v.PopBack()
	require.NoError(t, err)
	require.Equal(t, 2, e)
	require.Equal(t, 1, v.Len())
	require.Equal(t, 2, v.Cap())
}

func TestVector_InsertErase(t *testing.T) {
	a := &trackingAllocator[int]{}
	v := NewVector[int](WithVectorAllocator[int](a))
	for _, e := range []int{1, 2, 4, 5} {
		require.NoError(t, v.PushBack(e))
	}
	require.NoError(t, v.Insert(2, 3))
	require.NoError(t, v.Insert(0, 0))
	require.NoError(t, v.Insert(v.Len(), 6))
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, v.Slice())
	require.ErrorIs(t, v.Insert(9, 9), ErrOutOfRange)
	require.Equal(t, 7, a.live())

	require.NoError(t, v.Erase(3))
	require.Equal(t, []int{0, 1, 2, 4, 5, 6}, v.Slice())
	require.Equal(t, 6, a.live())
	// Vacated slot is raw storage again.
	require.Equal(t, 0, v.Index(6))

	require.NoError(t, v.EraseRange(1, 3))
	require.Equal(t, []int{0, 4, 5, 6}, v.Slice())
	require.Equal(t, 4, a.live())
	require.ErrorIs(t, v.Erase(4), ErrOutOfRange)
	require.ErrorIs(t, v.EraseRange(3, 2), ErrOutOfRange)

	v.Clear()
	require.Equal(t, 0, a.live())
	require.Equal(t, 0, v.Len())
	require.Equal(t, 0, v.Cap())
}

func TestVector_ReserveResizeShrink(t *testing.T) {
	v := NewVector[int]()
	require.NoError(t, v.Reserve(10))
	require.Equal(t, 10, v.Cap())
	require.Equal(t, 0, v.Len())
	require.NoError(t, v.Reserve(5))
	require.Equal(t, 10, v.Cap())

	require.NoError(t, v.Resize(4, 7))
	require.Equal(t, []int{7, 7, 7, 7}, v.Slice())
	require.NoError(t, v.Resize(12, 1))
	require.Equal(t, 12, v.Len())
	require.Equal(t, 12, v.Cap())
	require.NoError(t, v.Resize(2, 0))
	require.Equal(t, []int{7, 7}, v.Slice())
	require.Equal(t, 12, v.Cap())
	require.ErrorIs(t, v.Resize(-1, 0), ErrOutOfRange)

	require.NoError(t, v.ShrinkToFit())
	require.Equal(t, 2, v.Cap())
	require.Equal(t, []int{7, 7}, v.Slice())

	filled, err := NewVectorFilled(3, "x")
	require.NoError(t, err)
	require.Equal(t, []string{"x", "x", "x"}, filled.Slice())
	sized, err := NewVectorSize[int](2)
	require.NoError(t, err)
	require.Equal(t, []int{0, 0}, sized.Slice())
}

func TestVector_PushBackStrongGuarantee(t *testing.T) {
	a := &trackingAllocator[int]{}
	v := NewVector[int](WithVectorAllocator[int](a))
	for i := 0; i < 4; i++ {
		require.NoError(t, v.PushBack(i))
	}
	require.Equal(t, 4, v.Cap())
	before := v.Slice()

	// The 5th push needs to grow and its construction fails.
	a.failConstructAt = a.calls + 1
	require.ErrorIs(t, v.PushBack(4), errInjected)
	require.Equal(t, 4, v.Len())
	require.Equal(t, 4, v.Cap())
	require.Equal(t, []int{0, 1, 2, 3}, v.Slice())
	require.True(t, &before[0] == v.Ref(0))
	require.Equal(t, 4, a.live())
}

func TestVector_AllocationFailure(t *testing.T) {
	bounded := alloc.NewBoundedAllocator[int](nil, 6)
	v := NewVector[int](WithVectorAllocator[int](bounded))
	for i := 0; i < 3; i++ {
		require.NoError(t, v.PushBack(i))
	}
	require.Equal(t, 4, v.Cap())
	require.NoError(t, v.PushBack(3))
	// 4 -> 8 needs 8 more slots while the old 4 are still held.
	require.ErrorIs(t, v.PushBack(4), alloc.ErrOutOfMemory)
	require.Equal(t, []int{0, 1, 2, 3}, v.Slice())
	require.ErrorIs(t, v.Reserve(100), alloc.ErrOutOfMemory)
	require.Equal(t, 4, v.Cap())
	require.Equal(t, int64(4), bounded.Live())
}

func TestVector_CloneCopyMove(t *testing.T) {
	v, err := NewVectorFrom(lo.Range(10))
	require.NoError(t, err)

	c, err := v.Clone()
	require.NoError(t, err)
	require.Equal(t, v.Slice(), c.Slice())
	require.NoError(t, c.Set(0, 100))
	e, _ := v.At(0)
	require.Equal(t, 0, e)

	dst := NewVector[int]()
	require.NoError(t, dst.PushBack(-1))
	require.NoError(t, dst.CopyFrom(v))
	require.Equal(t, v.Slice(), dst.Slice())
	require.NoError(t, dst.CopyFrom(dst))
	require.Equal(t, 10, dst.Len())

	moved := NewVector[int]()
	moved.MoveFrom(v)
	require.Equal(t, lo.Range(10), moved.Slice())
	require.Equal(t, 0, v.Len())
	require.Equal(t, 0, v.Cap())
	moved.MoveFrom(moved)
	require.Equal(t, 10, moved.Len())

	moved.Swap(c)
	require.Equal(t, 100, moved.Index(0))
	require.Equal(t, 0, c.Index(0))
}

func TestVector_CloneRollback(t *testing.T) {
	calls := 0
	cloner := func(s []byte) ([]byte, error) {
		calls++
		if calls == 3 {
			return nil, errInjected
		}
		return append([]byte(nil), s...), nil
	}
	a := &trackingAllocator[[]byte]{}
	v := NewVector[[]byte](WithVectorAllocator[[]byte](a), WithVectorCloner[[]byte](cloner))
	for _, s := range []string{"a", "b", "c", "d"} {
		require.NoError(t, v.PushBack([]byte(s)))
	}
	live := a.live()

	_, err := v.Clone()
	require.ErrorIs(t, err, errInjected)
	// The two clones built before the failure were destroyed.
	require.Equal(t, live, a.live())
	require.Equal(t, 4, v.Len())

	dst := NewVector[[]byte]()
	require.NoError(t, dst.PushBack([]byte("keep")))
	calls = 0
	require.ErrorIs(t, dst.CopyFrom(v), errInjected)
	require.Equal(t, 1, dst.Len())
	require.Equal(t, "keep", string(dst.Index(0)))

	calls = 10
	c, err := v.Clone()
	require.NoError(t, err)
	c.Index(0)[0] = 'z'
	require.Equal(t, "a", string(v.Index(0)))
}

func TestVector_Foreach(t *testing.T) {
	v, err := NewVectorFrom([]int{3, 2, 1})
	require.NoError(t, err)
	visited := make([]int, 0, 2)
	v.Foreach(func(idx int, val int) bool {
		visited = append(visited, val)
		return idx < 1
	})
	require.Equal(t, []int{3, 2}, visited)
	require.Equal(t, MaxSize, v.MaxSize())
	require.False(t, v.Empty())
}
