package ptr

// UniquePtr exclusively owns its referent. The zero value is empty.
type UniquePtr[T any] struct {
	p    *T
	opts ptrOptions[T]
}

func NewUniquePtr[T any](p *T, opts ...PtrOption[T]) *UniquePtr[T] {
	return &UniquePtr[T]{p: p, opts: applyPtrOptions[T](opts...)}
}

func MakeUnique[T any](val T, opts ...PtrOption[T]) *UniquePtr[T] {
	return NewUniquePtr[T](&val, opts...)
}

func (up *UniquePtr[T]) Get() *T {
	return up.p
}

func (up *UniquePtr[T]) Valid() bool {
	return up.p != nil
}

func (up *UniquePtr[T]) Deref() (T, error) {
	if up.p == nil {
		var zero T
		return zero, ErrNilPointer
	}
	return *up.p, nil
}

// Release gives up ownership without running the deleter.
func (up *UniquePtr[T]) Release() *T {
	p := up.p
	up.p = nil
	return p
}

// Reset deletes the current referent and takes p.
func (up *UniquePtr[T]) Reset(p *T) {
	if up.p == p {
		return
	}
	old := up.p
	up.p = p
	up.opts.delete(old)
}

// MoveFrom takes over o's referent and deleter, o is left empty.
func (up *UniquePtr[T]) MoveFrom(o *UniquePtr[T]) {
	if up == o || o == nil {
		return
	}
	p, opts := o.Release(), o.opts
	up.Reset(p)
	up.opts = opts
}

func (up *UniquePtr[T]) Swap(o *UniquePtr[T]) {
	if up == o || o == nil {
		return
	}
	*up, *o = *o, *up
}
