package alloc

var _ Allocator[int] = (*BoundedAllocator[int])(nil)

// BoundedAllocator puts a quota of live slots in front of another allocator.
type BoundedAllocator[T any] struct {
	inner Allocator[T]
	limit int64
	live  int64
}

func NewBoundedAllocator[T any](inner Allocator[T], limit int64) *BoundedAllocator[T] {
	if inner == nil {
		inner = HeapAllocator[T]{}
	}
	return &BoundedAllocator[T]{
		inner: inner,
		limit: limit,
	}
}

func (b *BoundedAllocator[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		return nil, ErrInvalidSize
	}
	if b.live+int64(n) > b.limit {
		return nil, ErrOutOfMemory
	}
	block, err := b.inner.Allocate(n)
	if err != nil {
		return nil, err
	}
	b.live += int64(len(block))
	return block, nil
}

func (b *BoundedAllocator[T]) Construct(p *T, v T) error {
	return b.inner.Construct(p, v)
}

func (b *BoundedAllocator[T]) Destroy(p *T) {
	b.inner.Destroy(p)
}

func (b *BoundedAllocator[T]) Deallocate(block []T) {
	b.live -= int64(len(block))
	b.inner.Deallocate(block)
}

func (b *BoundedAllocator[T]) Live() int64 {
	return b.live
}

// SetLimit changes the quota. Live slots above the new quota stay valid.
func (b *BoundedAllocator[T]) SetLimit(limit int64) {
	b.limit = limit
}
