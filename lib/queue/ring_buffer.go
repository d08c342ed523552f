package queue

import (
	"fmt"

	"github.com/benz9527/xcontainer/lib/vector"
)

// RingBuffer is a fixed capacity FIFO. Push on a full buffer overwrites the
// oldest element without telling, TryPush is the checked variant.
type RingBuffer[T any] struct {
	slots *vector.Vector[T]
	head  int
	size  int
}

func NewRingBuffer[T any](capacity int, opts ...vector.VectorOption[T]) (*RingBuffer[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("[queue] ring buffer capacity %d", capacity)
	}
	slots, err := vector.NewVectorSize[T](capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &RingBuffer[T]{slots: slots}, nil
}

func (rb *RingBuffer[T]) Cap() int {
	return rb.slots.Len()
}

func (rb *RingBuffer[T]) Len() int {
	return rb.size
}

func (rb *RingBuffer[T]) Empty() bool {
	return rb.size == 0
}

func (rb *RingBuffer[T]) Full() bool {
	return rb.size == rb.slots.Len()
}

func (rb *RingBuffer[T]) Push(v T) error {
	tail := (rb.head + rb.size) % rb.slots.Len()
	if err := rb.slots.Set(tail, v); err != nil {
		return err
	}
	if rb.Full() {
		rb.head = (rb.head + 1) % rb.slots.Len()
		return nil
	}
	rb.size++
	return nil
}

func (rb *RingBuffer[T]) TryPush(v T) error {
	if rb.Full() {
		return ErrFull
	}
	return rb.Push(v)
}

func (rb *RingBuffer[T]) Pop() (T, error) {
	var zero T
	if rb.size == 0 {
		return zero, ErrEmpty
	}
	v := rb.slots.Index(rb.head)
	// Drop the reference held by the slot.
	_ = rb.slots.Set(rb.head, zero)
	rb.head = (rb.head + 1) % rb.slots.Len()
	rb.size--
	return v, nil
}

func (rb *RingBuffer[T]) Front() (T, error) {
	if rb.size == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return rb.slots.Index(rb.head), nil
}

// Foreach walks from the oldest element to the newest.
func (rb *RingBuffer[T]) Foreach(action func(idx int, val T) bool) {
	for i := 0; i < rb.size; i++ {
		if !action(i, rb.slots.Index((rb.head+i)%rb.slots.Len())) {
			return
		}
	}
}
