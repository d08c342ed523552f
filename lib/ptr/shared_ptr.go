package ptr

import "sync/atomic"

// controlBlock is shared by every SharedPtr and WeakPtr of one referent.
// The strong owners together hold a single weak reference, so the block
// outlives the referent until the last weak reference is gone.
type controlBlock[T any] struct {
	strong atomic.Int64
	weak   atomic.Int64
	ptr    atomic.Pointer[T]
	opts   ptrOptions[T]
	freed  atomic.Bool
}

func newControlBlock[T any](p *T, opts ptrOptions[T]) *controlBlock[T] {
	cb := &controlBlock[T]{opts: opts}
	cb.strong.Store(1)
	cb.weak.Store(1)
	cb.ptr.Store(p)
	return cb
}

func (cb *controlBlock[T]) releaseStrong() {
	n := cb.strong.Add(-1)
	if n > 0 {
		return
	} else if n < 0 {
		panic( /* debug assertion */ "[ptr] strong count underflow")
	}
	cb.opts.delete(cb.ptr.Swap(nil))
	cb.releaseWeak()
}

func (cb *controlBlock[T]) releaseWeak() {
	n := cb.weak.Add(-1)
	if n > 0 {
		return
	} else if n < 0 {
		panic( /* debug assertion */ "[ptr] weak count underflow")
	}
	cb.freed.Store(true)
}

// tryAcquire increments the strong count only if the referent is alive.
func (cb *controlBlock[T]) tryAcquire() bool {
	for {
		n := cb.strong.Load()
		if n == 0 {
			return false
		}
		if cb.strong.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// SharedPtr is a reference counted owner. A single SharedPtr value is not
// safe for concurrent mutation, distinct clones may be used from different
// goroutines.
type SharedPtr[T any] struct {
	p    *T
	ctrl *controlBlock[T]
}

func NewSharedPtr[T any](p *T, opts ...PtrOption[T]) *SharedPtr[T] {
	if p == nil {
		return &SharedPtr[T]{}
	}
	return &SharedPtr[T]{p: p, ctrl: newControlBlock[T](p, applyPtrOptions[T](opts...))}
}

func MakeShared[T any](val T, opts ...PtrOption[T]) *SharedPtr[T] {
	return NewSharedPtr[T](&val, opts...)
}

func (sp *SharedPtr[T]) Get() *T {
	return sp.p
}

func (sp *SharedPtr[T]) Valid() bool {
	return sp.p != nil
}

func (sp *SharedPtr[T]) Deref() (T, error) {
	if sp.p == nil {
		var zero T
		return zero, ErrNilPointer
	}
	return *sp.p, nil
}

func (sp *SharedPtr[T]) UseCount() int64 {
	if sp.ctrl == nil {
		return 0
	}
	return sp.ctrl.strong.Load()
}

// Clone returns a new owner of the same referent.
func (sp *SharedPtr[T]) Clone() *SharedPtr[T] {
	if sp.ctrl == nil {
		return &SharedPtr[T]{}
	}
	sp.ctrl.strong.Add(1)
	return &SharedPtr[T]{p: sp.p, ctrl: sp.ctrl}
}

// Release drops this owner. The deleter runs when it was the last one.
func (sp *SharedPtr[T]) Release() {
	ctrl := sp.ctrl
	sp.p, sp.ctrl = nil, nil
	if ctrl != nil {
		ctrl.releaseStrong()
	}
}

// Reset drops this owner and starts owning p with a fresh control block.
func (sp *SharedPtr[T]) Reset(p *T, opts ...PtrOption[T]) {
	sp.Release()
	if p != nil {
		sp.p, sp.ctrl = p, newControlBlock[T](p, applyPtrOptions[T](opts...))
	}
}

// MoveFrom transfers o's ownership into sp without touching the counts.
func (sp *SharedPtr[T]) MoveFrom(o *SharedPtr[T]) {
	if sp == o || o == nil {
		return
	}
	if sp.ctrl != nil && sp.ctrl == o.ctrl {
		// Same referent, drop the extra owner.
		o.Release()
		return
	}
	sp.Release()
	sp.p, sp.ctrl = o.p, o.ctrl
	o.p, o.ctrl = nil, nil
}

func (sp *SharedPtr[T]) Swap(o *SharedPtr[T]) {
	if sp == o || o == nil {
		return
	}
	*sp, *o = *o, *sp
}
