package kv

import (
	"github.com/benz9527/xcontainer/lib/infra"
	"github.com/benz9527/xcontainer/lib/tree"
)

// OrderedSet is an OrderedMap without values.
type OrderedSet[K any] struct {
	m *OrderedMap[K, struct{}]
}

func NewOrderedSet[K infra.OrderedKey](opts ...OrderedMapOption[K, struct{}]) *OrderedSet[K] {
	return &OrderedSet[K]{m: NewOrderedMap[K, struct{}](opts...)}
}

func NewOrderedSetFunc[K any](cmp infra.Comparator[K], opts ...OrderedMapOption[K, struct{}]) *OrderedSet[K] {
	return &OrderedSet[K]{m: NewOrderedMapFunc[K, struct{}](cmp, opts...)}
}

// NewOrderedSetFrom builds a set out of keys, duplicates collapse.
func NewOrderedSetFrom[K infra.OrderedKey](keys []K, opts ...OrderedMapOption[K, struct{}]) (*OrderedSet[K], error) {
	s := NewOrderedSet[K](opts...)
	for _, k := range keys {
		if _, _, err := s.Insert(k); err != nil {
			s.Clear()
			return nil, err
		}
	}
	return s, nil
}

func (s *OrderedSet[K]) Len() int64 {
	return s.m.Len()
}

func (s *OrderedSet[K]) Empty() bool {
	return s.m.Empty()
}

func (s *OrderedSet[K]) Insert(key K) (tree.Iterator[K, struct{}], bool, error) {
	return s.m.Insert(key, struct{}{})
}

func (s *OrderedSet[K]) Find(key K) tree.Iterator[K, struct{}] {
	return s.m.Find(key)
}

func (s *OrderedSet[K]) Contains(key K) bool {
	return s.m.Contains(key)
}

func (s *OrderedSet[K]) Count(key K) int {
	return s.m.Count(key)
}

func (s *OrderedSet[K]) LowerBound(key K) tree.Iterator[K, struct{}] {
	return s.m.LowerBound(key)
}

func (s *OrderedSet[K]) UpperBound(key K) tree.Iterator[K, struct{}] {
	return s.m.UpperBound(key)
}

func (s *OrderedSet[K]) EqualRange(key K) (tree.Iterator[K, struct{}], tree.Iterator[K, struct{}]) {
	return s.m.EqualRange(key)
}

func (s *OrderedSet[K]) Begin() tree.Iterator[K, struct{}] {
	return s.m.Begin()
}

func (s *OrderedSet[K]) Last() tree.Iterator[K, struct{}] {
	return s.m.Last()
}

func (s *OrderedSet[K]) End() tree.Iterator[K, struct{}] {
	return s.m.End()
}

func (s *OrderedSet[K]) Erase(key K) int {
	return s.m.Erase(key)
}

func (s *OrderedSet[K]) EraseAt(it tree.Iterator[K, struct{}]) (tree.Iterator[K, struct{}], error) {
	return s.m.EraseAt(it)
}

func (s *OrderedSet[K]) EraseRange(first, last tree.Iterator[K, struct{}]) (tree.Iterator[K, struct{}], error) {
	return s.m.EraseRange(first, last)
}

func (s *OrderedSet[K]) EraseIf(pred func(key K) bool) int {
	return s.m.EraseIf(func(key K, _ struct{}) bool {
		return pred(key)
	})
}

func (s *OrderedSet[K]) PopMin() (K, error) {
	key, _, err := s.m.PopMin()
	return key, err
}

func (s *OrderedSet[K]) PopMax() (K, error) {
	key, _, err := s.m.PopMax()
	return key, err
}

// Merge moves the keys of other missing here into s. Self-merge is a no-op.
func (s *OrderedSet[K]) Merge(other *OrderedSet[K]) error {
	if other == nil || other == s {
		return nil
	}
	return s.m.Merge(other.m)
}

func (s *OrderedSet[K]) Clone() (*OrderedSet[K], error) {
	m, err := s.m.Clone()
	if err != nil {
		return nil, err
	}
	return &OrderedSet[K]{m: m}, nil
}

func (s *OrderedSet[K]) CopyFrom(other *OrderedSet[K]) error {
	if other == nil || other == s {
		return nil
	}
	return s.m.CopyFrom(other.m)
}

func (s *OrderedSet[K]) MoveFrom(other *OrderedSet[K]) {
	if other == nil || other == s {
		return
	}
	s.m.MoveFrom(other.m)
}

func (s *OrderedSet[K]) Swap(other *OrderedSet[K]) {
	if other == nil || other == s {
		return
	}
	s.m.Swap(other.m)
}

func (s *OrderedSet[K]) Clear() {
	s.m.Clear()
}

func (s *OrderedSet[K]) Foreach(action func(key K) bool) {
	s.m.Foreach(func(key K, _ struct{}) bool {
		return action(key)
	})
}

func (s *OrderedSet[K]) Keys() []K {
	return s.m.Keys()
}
