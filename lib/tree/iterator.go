package tree

// Iterator is a non-owning handle on a tree node. A nil node is End.
// It stays valid until the node it points to is erased.
type Iterator[K any, V any] struct {
	node *rbNode[K, V]
	hdr  *rbHeader[K, V]
}

// ConstIterator is the read-only flavour of Iterator. Both step through
// the same node level succ/pred.
type ConstIterator[K any, V any] struct {
	node *rbNode[K, V]
	hdr  *rbHeader[K, V]
}

func next[K any, V any](node *rbNode[K, V]) *rbNode[K, V] {
	if node == nil {
		return nil
	}
	return node.succ()
}

// prev from End yields the maximum. Stepping back from the minimum yields
// End.
func prev[K any, V any](hdr *rbHeader[K, V], node *rbNode[K, V]) *rbNode[K, V] {
	if node == nil {
		if hdr == nil {
			return nil
		}
		return hdr.rightmost
	}
	return node.pred()
}

func (it Iterator[K, V]) Valid() bool {
	return it.node != nil
}

func (it Iterator[K, V]) Key() K {
	return it.node.key
}

func (it Iterator[K, V]) Val() V {
	return it.node.val
}

// ValRef exposes the value in place. Keys are never exposed mutably.
func (it Iterator[K, V]) ValRef() *V {
	return &it.node.val
}

func (it Iterator[K, V]) SetVal(val V) {
	it.node.val = val
}

func (it Iterator[K, V]) Next() Iterator[K, V] {
	return Iterator[K, V]{node: next(it.node), hdr: it.hdr}
}

func (it Iterator[K, V]) Prev() Iterator[K, V] {
	return Iterator[K, V]{node: prev(it.hdr, it.node), hdr: it.hdr}
}

func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	return it.node == other.node
}

func (it Iterator[K, V]) Const() ConstIterator[K, V] {
	return ConstIterator[K, V](it)
}

func (it ConstIterator[K, V]) Valid() bool {
	return it.node != nil
}

func (it ConstIterator[K, V]) Key() K {
	return it.node.key
}

func (it ConstIterator[K, V]) Val() V {
	return it.node.val
}

func (it ConstIterator[K, V]) Next() ConstIterator[K, V] {
	return ConstIterator[K, V]{node: next(it.node), hdr: it.hdr}
}

func (it ConstIterator[K, V]) Prev() ConstIterator[K, V] {
	return ConstIterator[K, V]{node: prev(it.hdr, it.node), hdr: it.hdr}
}

func (it ConstIterator[K, V]) Equal(other ConstIterator[K, V]) bool {
	return it.node == other.node
}
