package tree

import "github.com/benz9527/xcontainer/lib/alloc"

// RBNodeAllocator hands out tree nodes. The node type is private, so
// callers outside build one with the helpers below and, when it tracks
// them, read live counts through alloc.Stats.
type RBNodeAllocator[K any, V any] interface {
	alloc.Allocator[rbNode[K, V]]
}

func NewRBNodeHeapAllocator[K any, V any]() RBNodeAllocator[K, V] {
	return alloc.HeapAllocator[rbNode[K, V]]{}
}

func NewRBNodePoolAllocator[K any, V any]() RBNodeAllocator[K, V] {
	return alloc.NewPoolAllocator[rbNode[K, V]]()
}

// NewRBNodeArenaAllocator carves nodes out of growing chunks. limit 0 means
// unlimited.
func NewRBNodeArenaAllocator[K any, V any](chunkSize int, limit int64) RBNodeAllocator[K, V] {
	return alloc.NewArenaAllocator[rbNode[K, V]](
		alloc.WithArenaChunkSize[rbNode[K, V]](chunkSize),
		alloc.WithArenaLimit[rbNode[K, V]](limit),
	)
}

// NewRBNodeBoundedAllocator caps the live nodes of inner, nil inner means
// the heap.
func NewRBNodeBoundedAllocator[K any, V any](inner RBNodeAllocator[K, V], limit int64) RBNodeAllocator[K, V] {
	var a alloc.Allocator[rbNode[K, V]]
	if inner != nil {
		a = inner
	}
	return alloc.NewBoundedAllocator[rbNode[K, V]](a, limit)
}
