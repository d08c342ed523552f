package alloc

import "errors"

var (
	ErrOutOfMemory = errors.New("[alloc] out of memory")
	ErrInvalidSize = errors.New("[alloc] invalid allocation size")
)

// Allocator routes the whole lifetime of container storage:
// raw storage -> construct -> destroy -> release.
// Containers never assume a specific strategy, so heap, pool and arena
// allocators are interchangeable.
type Allocator[T any] interface {
	// Allocate returns raw storage for n slots. The slots hold zero values
	// and are not considered constructed.
	Allocate(n int) ([]T, error)
	// Construct builds v inside the slot p points to.
	Construct(p *T, v T) error
	// Destroy tears down the value inside p. The slot turns back into raw
	// storage and must be destroyed at most once per construction.
	Destroy(p *T)
	// Deallocate releases a block returned by Allocate. Every constructed
	// slot of the block must have been destroyed before.
	Deallocate(block []T)
}

// Stats reports the live slot count of an allocator, if it tracks one.
type Stats interface {
	Live() int64
}
