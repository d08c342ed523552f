package kv

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/benz9527/xcontainer/lib/infra"
	"github.com/benz9527/xcontainer/lib/tree"
)

type orderedMapConfig[K any, V any] struct {
	treeOpts []tree.RBTreeOpt[K, V]
}

type OrderedMapOption[K any, V any] func(*orderedMapConfig[K, V])

func WithOrderedMapDesc[K any, V any]() OrderedMapOption[K, V] {
	return func(c *orderedMapConfig[K, V]) {
		c.treeOpts = append(c.treeOpts, tree.WithRBTreeDesc[K, V]())
	}
}

func WithOrderedMapComparator[K any, V any](cmp infra.Comparator[K]) OrderedMapOption[K, V] {
	return func(c *orderedMapConfig[K, V]) {
		c.treeOpts = append(c.treeOpts, tree.WithRBTreeComparator[K, V](cmp))
	}
}

func WithOrderedMapAllocator[K any, V any](a tree.RBNodeAllocator[K, V]) OrderedMapOption[K, V] {
	return func(c *orderedMapConfig[K, V]) {
		c.treeOpts = append(c.treeOpts, tree.WithRBTreeAllocator[K, V](a))
	}
}

func WithOrderedMapRemoveBorrowSucc[K any, V any]() OrderedMapOption[K, V] {
	return func(c *orderedMapConfig[K, V]) {
		c.treeOpts = append(c.treeOpts, tree.WithRBTreeRemoveBorrowSucc[K, V]())
	}
}

// OrderedMap keeps unique keys sorted by a comparator on top of a
// red-black tree. Iterators stay valid until their own entry is erased.
// Not thread safe, see ThreadSafeOrderedMap.
type OrderedMap[K any, V any] struct {
	tree tree.RBTree[K, V]
}

func NewOrderedMap[K infra.OrderedKey, V any](opts ...OrderedMapOption[K, V]) *OrderedMap[K, V] {
	return NewOrderedMapFunc[K, V](infra.OrderedKeyCmp[K](), opts...)
}

func NewOrderedMapFunc[K any, V any](cmp infra.Comparator[K], opts ...OrderedMapOption[K, V]) *OrderedMap[K, V] {
	c := &orderedMapConfig[K, V]{}
	for _, o := range opts {
		if o != nil {
			o(c)
		}
	}
	return &OrderedMap[K, V]{
		tree: tree.NewRBTreeFunc[K, V](cmp, c.treeOpts...),
	}
}

func (m *OrderedMap[K, V]) Len() int64 {
	return m.tree.Len()
}

func (m *OrderedMap[K, V]) Empty() bool {
	return m.tree.Len() == 0
}

// Insert links key only when it is absent. An existing value is left
// untouched and the bool reports false.
func (m *OrderedMap[K, V]) Insert(key K, val V) (tree.Iterator[K, V], bool, error) {
	return m.tree.Insert(key, val, true)
}

// InsertOrAssign overwrites the value of an existing key.
func (m *OrderedMap[K, V]) InsertOrAssign(key K, val V) (tree.Iterator[K, V], bool, error) {
	return m.tree.Insert(key, val)
}

// Ref returns the address of key's value and inserts the zero value when
// key is absent, so a lookup through Ref may grow the map. The error is
// only the allocator's.
func (m *OrderedMap[K, V]) Ref(key K) (*V, error) {
	if it := m.tree.Find(key); it.Valid() {
		return it.ValRef(), nil
	}
	var zero V
	it, _, err := m.tree.Insert(key, zero, true)
	if err != nil {
		return nil, err
	}
	return it.ValRef(), nil
}

// At is the checked lookup, it never inserts.
func (m *OrderedMap[K, V]) At(key K) (V, error) {
	it := m.tree.Find(key)
	if !it.Valid() {
		var zero V
		return zero, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return it.Val(), nil
}

func (m *OrderedMap[K, V]) Find(key K) tree.Iterator[K, V] {
	return m.tree.Find(key)
}

func (m *OrderedMap[K, V]) Contains(key K) bool {
	return m.tree.Find(key).Valid()
}

// Count is 0 or 1, keys are unique.
func (m *OrderedMap[K, V]) Count(key K) int {
	if m.Contains(key) {
		return 1
	}
	return 0
}

func (m *OrderedMap[K, V]) LowerBound(key K) tree.Iterator[K, V] {
	return m.tree.LowerBound(key)
}

func (m *OrderedMap[K, V]) UpperBound(key K) tree.Iterator[K, V] {
	return m.tree.UpperBound(key)
}

// EqualRange returns [LowerBound(key), UpperBound(key)).
func (m *OrderedMap[K, V]) EqualRange(key K) (tree.Iterator[K, V], tree.Iterator[K, V]) {
	return m.tree.LowerBound(key), m.tree.UpperBound(key)
}

func (m *OrderedMap[K, V]) Begin() tree.Iterator[K, V] {
	return m.tree.Begin()
}

func (m *OrderedMap[K, V]) Last() tree.Iterator[K, V] {
	return m.tree.Last()
}

func (m *OrderedMap[K, V]) End() tree.Iterator[K, V] {
	return m.tree.End()
}

// Erase returns the number of removed entries, 0 or 1.
func (m *OrderedMap[K, V]) Erase(key K) int {
	if _, err := m.tree.Remove(key); err != nil {
		return 0
	}
	return 1
}

// EraseAt removes the entry at it and returns the iterator following it.
func (m *OrderedMap[K, V]) EraseAt(it tree.Iterator[K, V]) (tree.Iterator[K, V], error) {
	return m.tree.Erase(it)
}

// EraseRange removes [first, last) and returns last.
func (m *OrderedMap[K, V]) EraseRange(first, last tree.Iterator[K, V]) (tree.Iterator[K, V], error) {
	var err error
	for it := first; !it.Equal(last); {
		if !it.Valid() {
			return it, tree.ErrRBTreeInvalidIterator
		}
		if it, err = m.tree.Erase(it); err != nil {
			return it, err
		}
	}
	return last, nil
}

// EraseIf removes every entry matching pred and returns how many went.
func (m *OrderedMap[K, V]) EraseIf(pred func(key K, val V) bool) int {
	erased := 0
	for it := m.tree.Begin(); it.Valid(); {
		if !pred(it.Key(), it.Val()) {
			it = it.Next()
			continue
		}
		it, _ = m.tree.Erase(it)
		erased++
	}
	return erased
}

// PopMin extracts the entry with the smallest key.
func (m *OrderedMap[K, V]) PopMin() (K, V, error) {
	node, err := m.tree.RemoveMin()
	if err != nil {
		var (
			k K
			v V
		)
		if errors.Is(err, tree.ErrRBTreeEmpty) {
			err = ErrEmpty
		}
		return k, v, err
	}
	return node.Key(), node.Val(), nil
}

// PopMax extracts the entry with the largest key.
func (m *OrderedMap[K, V]) PopMax() (K, V, error) {
	it := m.tree.Last()
	if !it.Valid() {
		var (
			k K
			v V
		)
		return k, v, ErrEmpty
	}
	key, val := it.Key(), it.Val()
	_, err := m.tree.Erase(it)
	return key, val, err
}

// Merge moves every entry of other whose key is absent here into m, in
// ascending order. Entries whose keys already exist stay in other. An entry
// is inserted here before it is extracted from other, and merging stops at
// the first failure. Merging a map into itself is a no-op.
func (m *OrderedMap[K, V]) Merge(other *OrderedMap[K, V]) error {
	if other == nil || other == m {
		return nil
	}
	for it := other.tree.Begin(); it.Valid(); {
		if m.Contains(it.Key()) {
			it = it.Next()
			continue
		}
		if _, _, err := m.tree.Insert(it.Key(), it.Val(), true); err != nil {
			return err
		}
		next, err := other.tree.Erase(it)
		if err != nil {
			return fmt.Errorf("[kv] merge extract: %w", err)
		}
		it = next
	}
	return nil
}

// Clone deep-copies the tree, colors and all. A failed copy is rolled back.
func (m *OrderedMap[K, V]) Clone() (*OrderedMap[K, V], error) {
	t, err := m.tree.Clone()
	if err != nil {
		return nil, err
	}
	return &OrderedMap[K, V]{tree: t}, nil
}

// CopyFrom replaces the content with a deep copy of other. The copy is
// built first, on failure m is unchanged. Self-assignment is a no-op.
func (m *OrderedMap[K, V]) CopyFrom(other *OrderedMap[K, V]) error {
	if other == nil || other == m {
		return nil
	}
	t, err := other.tree.Clone()
	if err != nil {
		return err
	}
	m.tree.MoveFrom(t)
	return nil
}

// MoveFrom takes over other's entries, comparator and allocator and leaves
// other empty.
func (m *OrderedMap[K, V]) MoveFrom(other *OrderedMap[K, V]) {
	if other == nil || other == m {
		return
	}
	m.tree.MoveFrom(other.tree)
}

func (m *OrderedMap[K, V]) Swap(other *OrderedMap[K, V]) {
	if other == nil || other == m {
		return
	}
	m.tree.Swap(other.tree)
}

func (m *OrderedMap[K, V]) Clear() {
	m.tree.Release()
}

func (m *OrderedMap[K, V]) Foreach(action func(key K, val V) bool) {
	m.tree.Foreach(func(_ int64, _ tree.RBColor, key K, val V) bool {
		return action(key, val)
	})
}

// Entries lists the content in key order.
func (m *OrderedMap[K, V]) Entries() []lo.Entry[K, V] {
	entries := make([]lo.Entry[K, V], 0, m.tree.Len())
	m.Foreach(func(key K, val V) bool {
		entries = append(entries, lo.Entry[K, V]{Key: key, Value: val})
		return true
	})
	return entries
}

func (m *OrderedMap[K, V]) Keys() []K {
	return lo.Map(m.Entries(), func(e lo.Entry[K, V], _ int) K {
		return e.Key
	})
}

func (m *OrderedMap[K, V]) Values() []V {
	return lo.Map(m.Entries(), func(e lo.Entry[K, V], _ int) V {
		return e.Value
	})
}

func isKeyMissing(err error) bool {
	return errors.Is(err, tree.ErrRBTreeKeyNotFound) || errors.Is(err, tree.ErrRBTreeEmpty)
}
