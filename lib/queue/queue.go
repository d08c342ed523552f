package queue

import "github.com/benz9527/xcontainer/lib/vector"

const compactThreshold = 32

// Queue is FIFO on top of a vector. Popped slots at the head are reclaimed
// in batches once they outnumber the live ones.
type Queue[T any] struct {
	vec  *vector.Vector[T]
	head int
}

func NewQueue[T any](opts ...vector.VectorOption[T]) *Queue[T] {
	return &Queue[T]{vec: vector.NewVector[T](opts...)}
}

func (q *Queue[T]) Push(v T) error {
	return q.vec.PushBack(v)
}

func (q *Queue[T]) Pop() (T, error) {
	var zero T
	if q.Empty() {
		return zero, ErrEmpty
	}
	v := q.vec.Index(q.head)
	// Drop the reference held by the popped slot.
	*q.vec.Ref(q.head) = zero
	q.head++
	if q.head == q.vec.Len() {
		q.vec.Clear()
		q.head = 0
	} else if q.head >= compactThreshold && q.head*2 >= q.vec.Len() {
		// Erasing a valid prefix cannot fail.
		_ = q.vec.EraseRange(0, q.head)
		q.head = 0
	}
	return v, nil
}

func (q *Queue[T]) Front() (T, error) {
	if q.Empty() {
		var zero T
		return zero, ErrEmpty
	}
	return q.vec.Index(q.head), nil
}

func (q *Queue[T]) Back() (T, error) {
	if q.Empty() {
		var zero T
		return zero, ErrEmpty
	}
	return q.vec.Index(q.vec.Len() - 1), nil
}

func (q *Queue[T]) Len() int {
	return q.vec.Len() - q.head
}

func (q *Queue[T]) Empty() bool {
	return q.Len() == 0
}
