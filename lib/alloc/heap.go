package alloc

var _ Allocator[int] = HeapAllocator[int]{}

// HeapAllocator leaves storage to the Go heap. Destroy only zeroes the slot
// so the GC can reclaim whatever the value referenced.
type HeapAllocator[T any] struct{}

func (HeapAllocator[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		return nil, ErrInvalidSize
	}
	return make([]T, n), nil
}

func (HeapAllocator[T]) Construct(p *T, v T) error {
	*p = v
	return nil
}

func (HeapAllocator[T]) Destroy(p *T) {
	var zero T
	*p = zero
}

func (HeapAllocator[T]) Deallocate([]T) {}

func NewHeapAllocator[T any]() Allocator[T] {
	return HeapAllocator[T]{}
}
