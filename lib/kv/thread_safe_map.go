package kv

import (
	"fmt"
	"io"
	"reflect"
	"sync"

	"go.uber.org/multierr"

	"github.com/benz9527/xcontainer/lib/infra"
)

// threadSafeOrderedMap is the caller side mutex around an OrderedMap.
// The map itself never locks.
type threadSafeOrderedMap[K comparable, V any] struct {
	lock           sync.RWMutex
	items          *OrderedMap[K, V]
	cmp            infra.Comparator[K]
	isClosableItem bool
}

type ThreadSafeMapOption[K comparable, V any] func(*threadSafeOrderedMap[K, V])

// WithThreadSafeMapCloseableItemCheck makes Purge close the values that
// implement io.Closer.
func WithThreadSafeMapCloseableItemCheck[K comparable, V any]() ThreadSafeMapOption[K, V] {
	return func(t *threadSafeOrderedMap[K, V]) {
		t.isClosableItem = isCloserType[V]()
	}
}

func isCloserType[V any]() bool {
	closer := reflect.TypeOf((*io.Closer)(nil)).Elem()
	typ := reflect.TypeOf((*V)(nil)).Elem()
	return typ.Implements(closer) || reflect.PointerTo(typ).Implements(closer)
}

func (t *threadSafeOrderedMap[K, V]) AddOrUpdate(key K, obj V) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	_, _, err := t.items.InsertOrAssign(key, obj)
	return err
}

// Replace swaps the content for items. The new content is built aside, a
// failure leaves the old one in place.
func (t *threadSafeOrderedMap[K, V]) Replace(items map[K]V) error {
	fresh := NewOrderedMapFunc[K, V](t.cmp)
	for k, v := range items {
		if _, _, err := fresh.InsertOrAssign(k, v); err != nil {
			fresh.Clear()
			return err
		}
	}

	t.lock.Lock()
	defer t.lock.Unlock()
	t.items.MoveFrom(fresh)
	return nil
}

func (t *threadSafeOrderedMap[K, V]) Delete(key K) (V, error) {
	t.lock.Lock()
	defer t.lock.Unlock()
	node, err := t.items.tree.Remove(key)
	if err != nil {
		var zero V
		if isKeyMissing(err) {
			return zero, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
		}
		return zero, err
	}
	return node.Val(), nil
}

func (t *threadSafeOrderedMap[K, V]) Get(key K) (item V, exists bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()
	if it := t.items.Find(key); it.Valid() {
		return it.Val(), true
	}
	return
}

func (t *threadSafeOrderedMap[K, V]) ListKeys(filters ...SafeStoreKeyFilterFunc[K]) []K {
	realFilters := make([]SafeStoreKeyFilterFunc[K], 0, len(filters))
	for _, filter := range filters {
		if filter != nil {
			realFilters = append(realFilters, filter)
		}
	}
	if len(realFilters) == 0 {
		realFilters = append(realFilters, defaultAllKeysFilter[K])
	}

	t.lock.RLock()
	defer t.lock.RUnlock()

	keys := make([]K, 0, t.items.Len())
	t.items.Foreach(func(key K, _ V) bool {
		for _, filter := range realFilters {
			if filter(key) {
				keys = append(keys, key)
				break
			}
		}
		return true
	})
	return keys
}

// ListValues returns the values of keys in key order, or all values when
// no key is given. Absent keys are skipped.
func (t *threadSafeOrderedMap[K, V]) ListValues(keys ...K) (items []V) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	if len(keys) == 0 {
		return t.items.Values()
	}
	wanted := make(map[K]struct{}, len(keys))
	for _, key := range keys {
		wanted[key] = struct{}{}
	}
	values := make([]V, 0, len(wanted))
	t.items.Foreach(func(key K, val V) bool {
		if _, ok := wanted[key]; ok {
			values = append(values, val)
		}
		return true
	})
	return values
}

func (t *threadSafeOrderedMap[K, V]) Len() int64 {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.items.Len()
}

// Purge empties the map. With the closeable check enabled every io.Closer
// value is closed and all close errors are returned together.
func (t *threadSafeOrderedMap[K, V]) Purge() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	var merr error
	if t.isClosableItem {
		t.items.Foreach(func(key K, item V) bool {
			rv := reflect.ValueOf(&item).Elem()
			if k := rv.Kind(); (k == reflect.Pointer || k == reflect.Interface) && rv.IsNil() {
				return true
			}
			var closer io.Closer
			if c, ok := any(item).(io.Closer); ok {
				closer = c
			} else if c, ok := any(&item).(io.Closer); ok {
				closer = c
			}
			if closer != nil {
				if err := closer.Close(); err != nil {
					merr = multierr.Append(merr, fmt.Errorf("close %v: %w", key, err))
				}
			}
			return true
		})
	}

	t.items.Clear()
	return merr
}

func NewThreadSafeOrderedMap[K infra.OrderedKey, V any](opts ...ThreadSafeMapOption[K, V]) ThreadSafeStorer[K, V] {
	return NewThreadSafeOrderedMapFunc[K, V](infra.OrderedKeyCmp[K](), opts...)
}

func NewThreadSafeOrderedMapFunc[K comparable, V any](cmp infra.Comparator[K], opts ...ThreadSafeMapOption[K, V]) ThreadSafeStorer[K, V] {
	t := &threadSafeOrderedMap[K, V]{
		items: NewOrderedMapFunc[K, V](cmp),
		cmp:   cmp,
	}
	for _, o := range opts {
		if o != nil {
			o(t)
		}
	}
	return t
}
