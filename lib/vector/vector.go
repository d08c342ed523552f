package vector

import (
	"fmt"

	"github.com/benz9527/xcontainer/lib/alloc"
)

// Vector is a contiguous, geometrically growing buffer that owns its
// elements. buf is the raw block (len(buf) == capacity), the prefix
// buf[:size] is constructed, the rest is raw storage.
//
// Growth relocates every element into a new block, so no element address
// (Ref, Slice) survives a call that may grow the buffer. That is part of
// the contract, not a bug.
//
// A Vector is not thread safe.
type Vector[T any] struct {
	buf    []T
	size   int
	alloc  alloc.Allocator[T]
	cloner Cloner[T]
}

type VectorOption[T any] func(*Vector[T])

func WithVectorAllocator[T any](a alloc.Allocator[T]) VectorOption[T] {
	return func(v *Vector[T]) {
		if a != nil {
			v.alloc = a
		}
	}
}

// WithVectorCloner sets how elements are deep-copied. Plain assignment is
// used when it is absent.
func WithVectorCloner[T any](fn Cloner[T]) VectorOption[T] {
	return func(v *Vector[T]) {
		v.cloner = fn
	}
}

func NewVector[T any](opts ...VectorOption[T]) *Vector[T] {
	v := &Vector[T]{}
	for _, o := range opts {
		if o != nil {
			o(v)
		}
	}
	if v.alloc == nil {
		v.alloc = alloc.HeapAllocator[T]{}
	}
	return v
}

// NewVectorSize builds a vector of n zero values.
func NewVectorSize[T any](n int, opts ...VectorOption[T]) (*Vector[T], error) {
	var zero T
	return NewVectorFilled[T](n, zero, opts...)
}

// NewVectorFilled builds a vector of n copies of val.
func NewVectorFilled[T any](n int, val T, opts ...VectorOption[T]) (*Vector[T], error) {
	v := NewVector[T](opts...)
	if err := v.Resize(n, val); err != nil {
		return nil, err
	}
	return v, nil
}

// NewVectorFrom copies the elements of src.
func NewVectorFrom[T any](src []T, opts ...VectorOption[T]) (*Vector[T], error) {
	v := NewVector[T](opts...)
	if len(src) == 0 {
		return v, nil
	}
	if err := v.Reserve(len(src)); err != nil {
		return nil, err
	}
	for _, e := range src {
		if err := v.PushBack(e); err != nil {
			v.Clear()
			return nil, err
		}
	}
	return v, nil
}

func (v *Vector[T]) Len() int {
	return v.size
}

func (v *Vector[T]) Cap() int {
	return len(v.buf)
}

func (v *Vector[T]) Empty() bool {
	return v.size == 0
}

func (v *Vector[T]) MaxSize() int {
	return MaxSize
}

// At is the bounds checked accessor.
func (v *Vector[T]) At(i int) (T, error) {
	if i < 0 || i >= v.size {
		var zero T
		return zero, fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, i, v.size)
	}
	return v.buf[i], nil
}

// Index is the unchecked accessor. An index in [Len, Cap) reads raw
// storage, beyond Cap the runtime panics. Checking is the caller's job.
func (v *Vector[T]) Index(i int) T {
	return v.buf[i]
}

// Ref returns the address of slot i, unchecked like Index. The address is
// invalidated by the next growth.
func (v *Vector[T]) Ref(i int) *T {
	return &v.buf[i]
}

// Set replaces element i, bounds checked.
func (v *Vector[T]) Set(i int, val T) error {
	if i < 0 || i >= v.size {
		return fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, i, v.size)
	}
	var tmp T
	if err := v.alloc.Construct(&tmp, val); err != nil {
		return err
	}
	v.alloc.Destroy(&v.buf[i])
	v.buf[i] = tmp
	return nil
}

func (v *Vector[T]) Front() (T, error) {
	if v.size == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return v.buf[0], nil
}

func (v *Vector[T]) Back() (T, error) {
	if v.size == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return v.buf[v.size-1], nil
}

// Slice views the constructed prefix. The view aliases the buffer and is
// invalidated by the next growth.
func (v *Vector[T]) Slice() []T {
	return v.buf[:v.size:v.size]
}

func (v *Vector[T]) Foreach(action func(idx int, val T) bool) {
	for i := 0; i < v.size; i++ {
		if !action(i, v.buf[i]) {
			return
		}
	}
}

func (v *Vector[T]) nextCap() int {
	return max(1, 2*len(v.buf))
}

// reallocate moves the live elements into a block of newCap slots.
// On allocation failure the vector is left untouched.
func (v *Vector[T]) reallocate(newCap int) error {
	g, err := alloc.Acquire[T](v.alloc, newCap)
	if err != nil {
		return err
	}
	g.Relocate(v.buf[:v.size])
	v.replaceBlock(g.Commit())
	return nil
}

// replaceBlock swaps in a block that already holds the live elements and
// releases the old one. The old slots were relocated, not copied, so they
// are cleared instead of destroyed.
func (v *Vector[T]) replaceBlock(block []T) {
	old := v.buf
	v.buf = block
	if old != nil {
		clear(old)
		v.alloc.Deallocate(old)
	}
}

// PushBack appends val in amortized O(1). When full, capacity grows to
// max(1, 2*cap). The new element is constructed in the new block before the
// old one is released, so a failed construction leaves the vector as it was.
func (v *Vector[T]) PushBack(val T) error {
	if v.size < len(v.buf) {
		if err := v.alloc.Construct(&v.buf[v.size], val); err != nil {
			return err
		}
		v.size++
		return nil
	}

	g, err := alloc.Acquire[T](v.alloc, v.nextCap())
	if err != nil {
		return err
	}
	defer g.Release()
	g.Relocate(v.buf[:v.size])
	if err = g.Emplace(val); err != nil {
		return err
	}
	v.replaceBlock(g.Commit())
	v.size++
	return nil
}

func (v *Vector[T]) PopBack() (T, error) {
	if v.size == 0 {
		var zero T
		return zero, ErrEmpty
	}
	v.size--
	val := v.buf[v.size]
	v.alloc.Destroy(&v.buf[v.size])
	return val, nil
}

// Insert places val at pos, shifting the tail right in O(n).
// pos == Len appends.
func (v *Vector[T]) Insert(pos int, val T) error {
	if pos < 0 || pos > v.size {
		return fmt.Errorf("%w: insert at %d, size %d", ErrOutOfRange, pos, v.size)
	}
	if err := v.PushBack(val); err != nil {
		return err
	}
	// Rotate the appended element into place, moves cannot fail.
	tail := v.buf[pos:v.size]
	last := tail[len(tail)-1]
	copy(tail[1:], tail[:len(tail)-1])
	tail[0] = last
	return nil
}

// Erase removes the element at pos, shifting the tail left in O(n).
// The erased element is destroyed exactly once. The vacated last slot only
// held a relocated copy, so it is cleared without a second destroy.
func (v *Vector[T]) Erase(pos int) error {
	if pos < 0 || pos >= v.size {
		return fmt.Errorf("%w: erase at %d, size %d", ErrOutOfRange, pos, v.size)
	}
	v.alloc.Destroy(&v.buf[pos])
	copy(v.buf[pos:], v.buf[pos+1:v.size])
	v.size--
	var zero T
	v.buf[v.size] = zero
	return nil
}

// EraseRange removes [first, last).
func (v *Vector[T]) EraseRange(first, last int) error {
	if first < 0 || last > v.size || first > last {
		return fmt.Errorf("%w: erase range [%d, %d), size %d", ErrOutOfRange, first, last, v.size)
	}
	for i := first; i < last; i++ {
		v.alloc.Destroy(&v.buf[i])
	}
	n := copy(v.buf[first:], v.buf[last:v.size])
	clear(v.buf[first+n : v.size])
	v.size -= last - first
	return nil
}

// Reserve grows capacity to at least n without touching Len.
func (v *Vector[T]) Reserve(n int) error {
	if n <= len(v.buf) {
		return nil
	}
	return v.reallocate(n)
}

// Resize shrinks by destroying the tail or grows by appending copies of fill.
func (v *Vector[T]) Resize(n int, fill T) error {
	if n < 0 {
		return fmt.Errorf("%w: resize to %d", ErrOutOfRange, n)
	}
	if n <= v.size {
		for i := v.size - 1; i >= n; i-- {
			v.alloc.Destroy(&v.buf[i])
		}
		v.size = n
		return nil
	}
	if err := v.Reserve(n); err != nil {
		return err
	}
	from := v.size
	for v.size < n {
		if err := v.alloc.Construct(&v.buf[v.size], fill); err != nil {
			// Strong guarantee for the element count.
			for i := v.size - 1; i >= from; i-- {
				v.alloc.Destroy(&v.buf[i])
			}
			v.size = from
			return err
		}
		v.size++
	}
	return nil
}

// ShrinkToFit drops unused capacity.
func (v *Vector[T]) ShrinkToFit() error {
	if v.size == len(v.buf) {
		return nil
	}
	if v.size == 0 {
		v.replaceBlock(nil)
		return nil
	}
	return v.reallocate(v.size)
}

// Clear destroys every element and releases the block.
func (v *Vector[T]) Clear() {
	for i := v.size - 1; i >= 0; i-- {
		v.alloc.Destroy(&v.buf[i])
	}
	v.size = 0
	if v.buf != nil {
		v.alloc.Deallocate(v.buf)
		v.buf = nil
	}
}

func (v *Vector[T]) cloneElement(e T) (T, error) {
	if v.cloner == nil {
		return e, nil
	}
	return v.cloner(e)
}

// Clone deep-copies the vector with the same allocator and cloner.
// On failure the partial copy is destroyed and the source is untouched.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	dst := &Vector[T]{
		alloc:  v.alloc,
		cloner: v.cloner,
	}
	if v.size == 0 {
		return dst, nil
	}
	block, err := v.cloneBlock()
	if err != nil {
		return nil, err
	}
	dst.buf, dst.size = block, v.size
	return dst, nil
}

func (v *Vector[T]) cloneBlock() ([]T, error) {
	g, err := alloc.Acquire[T](v.alloc, v.size)
	if err != nil {
		return nil, err
	}
	defer g.Release()
	for i := 0; i < v.size; i++ {
		e, err := v.cloneElement(v.buf[i])
		if err != nil {
			return nil, fmt.Errorf("[vector] clone element %d: %w", i, err)
		}
		if err = g.Emplace(e); err != nil {
			return nil, err
		}
	}
	return g.Commit(), nil
}

// CopyFrom is the deep copy assignment. The copy is built first and only
// then replaces the current content, self-assignment is a no-op.
func (v *Vector[T]) CopyFrom(src *Vector[T]) error {
	if src == nil || src == v {
		return nil
	}
	var block []T
	if src.size > 0 {
		// Elements are copied through the source's cloner into our storage.
		tmp := &Vector[T]{buf: src.buf, size: src.size, alloc: v.alloc, cloner: src.cloner}
		var err error
		if block, err = tmp.cloneBlock(); err != nil {
			return err
		}
	}
	v.Clear()
	v.buf, v.size = block, src.size
	return nil
}

// MoveFrom takes over src's storage and resets src to empty.
// Self-move is a no-op.
func (v *Vector[T]) MoveFrom(src *Vector[T]) {
	if src == nil || src == v {
		return
	}
	v.Clear()
	v.buf, v.size, v.alloc, v.cloner = src.buf, src.size, src.alloc, src.cloner
	src.buf, src.size = nil, 0
}

func (v *Vector[T]) Swap(other *Vector[T]) {
	if other == nil || other == v {
		return
	}
	v.buf, other.buf = other.buf, v.buf
	v.size, other.size = other.size, v.size
	v.alloc, other.alloc = other.alloc, v.alloc
	v.cloner, other.cloner = other.cloner, v.cloner
}
