package kv

import "github.com/benz9527/xcontainer/lib/infra"

// BPlusTree only offers the B+-tree surface, the storage is an OrderedMap.
type BPlusTree[K infra.OrderedKey, V any] struct {
	data *OrderedMap[K, V]
}

func NewBPlusTree[K infra.OrderedKey, V any]() *BPlusTree[K, V] {
	return &BPlusTree[K, V]{data: NewOrderedMap[K, V]()}
}

// Insert assigns val to key.
func (t *BPlusTree[K, V]) Insert(key K, val V) error {
	_, _, err := t.data.InsertOrAssign(key, val)
	return err
}

// Find returns nil when key is absent.
func (t *BPlusTree[K, V]) Find(key K) *V {
	it := t.data.Find(key)
	if !it.Valid() {
		return nil
	}
	return it.ValRef()
}

func (t *BPlusTree[K, V]) Len() int64 {
	return t.data.Len()
}
