package alloc

import (
	"sync"
	"unsafe"
)

var _ Allocator[int] = (*PoolAllocator[int])(nil)

// PoolAllocator recycles single slots (tree nodes, list cells) through a
// sync.Pool. Multi-slot requests fall through to the heap.
type PoolAllocator[T any] struct {
	slotPool *sync.Pool
}

func NewPoolAllocator[T any]() *PoolAllocator[T] {
	return &PoolAllocator[T]{
		slotPool: &sync.Pool{
			New: func() any {
				return new(T)
			},
		},
	}
}

func (p *PoolAllocator[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		return nil, ErrInvalidSize
	}
	if n > 1 {
		return make([]T, n), nil
	}
	slot := p.slotPool.Get().(*T)
	return unsafe.Slice(slot, 1), nil
}

func (p *PoolAllocator[T]) Construct(slot *T, v T) error {
	*slot = v
	return nil
}

func (p *PoolAllocator[T]) Destroy(slot *T) {
	var zero T
	*slot = zero
}

func (p *PoolAllocator[T]) Deallocate(block []T) {
	if len(block) != 1 {
		return
	}
	// Override only, the slot has been destroyed already.
	p.slotPool.Put(&block[0])
}
