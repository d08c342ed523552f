package ptr

import "errors"

var ErrNilPointer = errors.New("[ptr] dereference of an empty pointer")

// Deleter tears down the referent once its last owner lets go.
type Deleter[T any] func(p *T)

type ptrOptions[T any] struct {
	deleter Deleter[T]
}

type PtrOption[T any] func(opts *ptrOptions[T])

func WithDeleter[T any](fn Deleter[T]) PtrOption[T] {
	return func(opts *ptrOptions[T]) {
		opts.deleter = fn
	}
}

func applyPtrOptions[T any](opts ...PtrOption[T]) ptrOptions[T] {
	o := ptrOptions[T]{}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o ptrOptions[T]) delete(p *T) {
	if p != nil && o.deleter != nil {
		o.deleter(p)
	}
}
