package alloc

import "unsafe"

var _ Allocator[int] = (*ArenaAllocator[int])(nil)

const (
	defaultArenaChunkSize = 64
	maxArenaChunkSize     = 1 << 16
)

// ArenaAllocator carves slots out of chunks that grow by doubling.
// Released single slots are kept on a free list and handed out again,
// bigger blocks are only reclaimed by Reset.
// It is not thread safe, same as the containers using it.
type ArenaAllocator[T any] struct {
	chunks    [][]T
	freeSlots []*T
	offset    int   // next free slot in the last chunk
	chunkSize int   // size of the next chunk
	limit     int64 // max live slots, 0 means unlimited
	live      int64
}

type ArenaOption[T any] func(*ArenaAllocator[T])

func WithArenaChunkSize[T any](size int) ArenaOption[T] {
	return func(arena *ArenaAllocator[T]) {
		if size <= 0 {
			size = defaultArenaChunkSize
		}
		arena.chunkSize = size
	}
}

// WithArenaLimit bounds the live slots. Allocations beyond the bound fail
// with ErrOutOfMemory.
func WithArenaLimit[T any](slots int64) ArenaOption[T] {
	return func(arena *ArenaAllocator[T]) {
		arena.limit = slots
	}
}

func NewArenaAllocator[T any](opts ...ArenaOption[T]) *ArenaAllocator[T] {
	arena := &ArenaAllocator[T]{
		chunkSize: defaultArenaChunkSize,
	}
	for _, o := range opts {
		if o != nil {
			o(arena)
		}
	}
	return arena
}

func (arena *ArenaAllocator[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		return nil, ErrInvalidSize
	}
	if arena.limit > 0 && arena.live+int64(n) > arena.limit {
		return nil, ErrOutOfMemory
	}
	arena.live += int64(n)

	if l := len(arena.freeSlots); n == 1 && l > 0 {
		slot := arena.freeSlots[l-1]
		arena.freeSlots[l-1] = nil
		arena.freeSlots = arena.freeSlots[:l-1]
		return unsafe.Slice(slot, 1), nil
	}
	return arena.carve(n), nil
}

func (arena *ArenaAllocator[T]) carve(n int) []T {
	var last []T
	if l := len(arena.chunks); l > 0 {
		last = arena.chunks[l-1]
	}
	if last == nil || len(last)-arena.offset < n {
		// double size increase
		size := arena.chunkSize
		if size < n {
			size = n
		}
		last = make([]T, size)
		arena.chunks = append(arena.chunks, last)
		arena.offset = 0
		if next := arena.chunkSize << 1; next <= maxArenaChunkSize {
			arena.chunkSize = next
		}
	}
	block := last[arena.offset : arena.offset+n : arena.offset+n]
	arena.offset += n
	return block
}

func (arena *ArenaAllocator[T]) Construct(p *T, v T) error {
	*p = v
	return nil
}

func (arena *ArenaAllocator[T]) Destroy(p *T) {
	var zero T
	*p = zero
}

func (arena *ArenaAllocator[T]) Deallocate(block []T) {
	if len(block) == 0 {
		return
	}
	arena.live -= int64(len(block))
	if len(block) == 1 {
		arena.freeSlots = append(arena.freeSlots, &block[0])
	}
}

// Live returns the number of slots handed out and not yet deallocated.
func (arena *ArenaAllocator[T]) Live() int64 {
	return arena.live
}

// Chunks returns the number of chunks carved so far.
func (arena *ArenaAllocator[T]) Chunks() int {
	return len(arena.chunks)
}

// Reset drops every chunk. All storage handed out before is invalid.
func (arena *ArenaAllocator[T]) Reset() {
	clear(arena.chunks)
	clear(arena.freeSlots)
	arena.chunks = arena.chunks[:0]
	arena.freeSlots = arena.freeSlots[:0]
	arena.offset = 0
	arena.live = 0
}
