package alloc

// Guard owns a freshly allocated block until it is committed.
// Releasing an uncommitted guard destroys whatever was constructed in the
// block, clears relocated slots and gives the storage back, so a failed
// construction never leaks or leaves half-built values reachable.
//
//	g, err := alloc.Acquire(a, 1)
//	if err != nil {
//		return err
//	}
//	defer g.Release()
//	if err = g.Emplace(v); err != nil {
//		return err
//	}
//	block := g.Commit()
type Guard[T any] struct {
	a           Allocator[T]
	block       []T
	relocated   int // [0, relocated) copied from an old block, not owned yet
	constructed int // [relocated, constructed) built by this guard
	committed   bool
}

// Acquire allocates n slots and wraps them in an uncommitted guard.
func Acquire[T any](a Allocator[T], n int) (*Guard[T], error) {
	block, err := a.Allocate(n)
	if err != nil {
		return nil, err
	}
	return &Guard[T]{
		a:     a,
		block: block,
	}, nil
}

// Block exposes the guarded storage.
func (g *Guard[T]) Block() []T {
	return g.block
}

// Len returns the number of occupied slots (relocated and constructed).
func (g *Guard[T]) Len() int {
	return g.constructed
}

// Relocate moves src into the head of the block. Relocation cannot fail,
// the source keeps ownership until Commit, so a rollback only clears the
// copies instead of destroying them.
func (g *Guard[T]) Relocate(src []T) {
	if g.constructed != 0 {
		// impossible run to here
		panic( /* debug assertion */ "[alloc] relocate after construct")
	}
	g.relocated = copy(g.block, src)
	g.constructed = g.relocated
}

// Emplace constructs v in the next free slot.
func (g *Guard[T]) Emplace(v T) error {
	if g.constructed >= len(g.block) {
		return ErrOutOfMemory
	}
	if err := g.a.Construct(&g.block[g.constructed], v); err != nil {
		return err
	}
	g.constructed++
	return nil
}

// Commit transfers ownership of the block to the caller.
func (g *Guard[T]) Commit() []T {
	g.committed = true
	return g.block
}

// Release rolls back an uncommitted guard. No-op after Commit.
func (g *Guard[T]) Release() {
	if g == nil || g.committed || g.block == nil {
		return
	}
	for i := g.constructed - 1; i >= g.relocated; i-- {
		g.a.Destroy(&g.block[i])
	}
	clear(g.block[:g.relocated])
	g.a.Deallocate(g.block)
	g.block = nil
	g.committed = true
}
