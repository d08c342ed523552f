package ptr

// WeakPtr observes a SharedPtr referent without keeping it alive.
type WeakPtr[T any] struct {
	ctrl *controlBlock[T]
}

func NewWeakPtr[T any](sp *SharedPtr[T]) *WeakPtr[T] {
	if sp == nil || sp.ctrl == nil {
		return &WeakPtr[T]{}
	}
	sp.ctrl.weak.Add(1)
	return &WeakPtr[T]{ctrl: sp.ctrl}
}

func (wp *WeakPtr[T]) Expired() bool {
	return wp.ctrl == nil || wp.ctrl.strong.Load() == 0
}

func (wp *WeakPtr[T]) UseCount() int64 {
	if wp.ctrl == nil {
		return 0
	}
	return wp.ctrl.strong.Load()
}

// Lock returns a new owner, or an empty SharedPtr if the referent is gone.
func (wp *WeakPtr[T]) Lock() *SharedPtr[T] {
	if wp.ctrl == nil || !wp.ctrl.tryAcquire() {
		return &SharedPtr[T]{}
	}
	return &SharedPtr[T]{p: wp.ctrl.ptr.Load(), ctrl: wp.ctrl}
}

func (wp *WeakPtr[T]) Clone() *WeakPtr[T] {
	if wp.ctrl == nil {
		return &WeakPtr[T]{}
	}
	wp.ctrl.weak.Add(1)
	return &WeakPtr[T]{ctrl: wp.ctrl}
}

func (wp *WeakPtr[T]) Release() {
	ctrl := wp.ctrl
	wp.ctrl = nil
	if ctrl != nil {
		ctrl.releaseWeak()
	}
}
