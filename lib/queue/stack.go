package queue

import "github.com/benz9527/xcontainer/lib/vector"

// Stack is LIFO on top of a vector.
type Stack[T any] struct {
	vec *vector.Vector[T]
}

func NewStack[T any](opts ...vector.VectorOption[T]) *Stack[T] {
	return &Stack[T]{vec: vector.NewVector[T](opts...)}
}

func (s *Stack[T]) Push(v T) error {
	return s.vec.PushBack(v)
}

func (s *Stack[T]) Pop() (T, error) {
	v, err := s.vec.PopBack()
	if err != nil {
		return v, ErrEmpty
	}
	return v, nil
}

func (s *Stack[T]) Top() (T, error) {
	v, err := s.vec.Back()
	if err != nil {
		return v, ErrEmpty
	}
	return v, nil
}

func (s *Stack[T]) Len() int {
	return s.vec.Len()
}

func (s *Stack[T]) Empty() bool {
	return s.vec.Empty()
}
