package kv

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestThreadSafeOrderedMap_SimpleCRUD(t *testing.T) {
	keys := lo.Map(lo.Range(1000), func(i int, _ int) string {
		return "key-" + strconv.Itoa(i)
	})
	m := make(map[string]int, len(keys))
	for i, key := range keys {
		m[key] = i
	}
	_m := NewThreadSafeOrderedMap[string, int]()
	require.NoError(t, _m.Replace(m))

	_keys := _m.ListKeys()
	require.Equal(t, len(keys), len(_keys))
	require.ElementsMatch(t, keys, _keys)
	require.IsIncreasing(t, _keys)

	i := 101
	res, exists := _m.Get(keys[i])
	require.True(t, exists)
	require.Equal(t, i, res)

	res, err := _m.Delete(keys[i])
	require.NoError(t, err)
	require.Equal(t, i, res)
	_, err = _m.Delete(keys[i])
	require.ErrorIs(t, err, ErrKeyNotFound)
	_, exists = _m.Get(keys[i])
	require.False(t, exists)

	require.NoError(t, _m.AddOrUpdate(keys[i], i))
	require.Equal(t, int64(len(keys)), _m.Len())

	require.Equal(t, []int{1, 2}, _m.ListValues(keys[2], keys[1], "absent"))
	require.Len(t, _m.ListValues(), len(keys))

	filtered := _m.ListKeys(func(key string) bool {
		return key == "key-7" || key == "key-8"
	})
	require.Equal(t, []string{"key-7", "key-8"}, filtered)

	require.NoError(t, _m.Purge())
	require.Equal(t, int64(0), _m.Len())
}

func TestThreadSafeOrderedMap_Concurrent(t *testing.T) {
	m := NewThreadSafeOrderedMap[int, int]()
	pool, err := ants.NewPool(8)
	require.NoError(t, err)
	defer pool.Release()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		w := w
		wg.Add(1)
		require.NoError(t, pool.Submit(func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := w*500 + i
				_ = m.AddOrUpdate(key, key)
				if v, ok := m.Get(key); !ok || v != key {
					panic("lost write")
				}
				if i%2 == 0 {
					_, _ = m.Delete(key)
				}
			}
		}))
	}
	wg.Wait()
	require.Equal(t, int64(8*250), m.Len())
	require.IsIncreasing(t, m.ListKeys())
}

type closeRecorder struct {
	name   string
	closed *[]string
	err    error
}

func (c *closeRecorder) Close() error {
	*c.closed = append(*c.closed, c.name)
	return c.err
}

func TestThreadSafeOrderedMap_PurgeClosesItems(t *testing.T) {
	closed := make([]string, 0, 4)
	errA, errC := errors.New("a failed"), errors.New("c failed")
	m := NewThreadSafeOrderedMap[string, *closeRecorder](
		WithThreadSafeMapCloseableItemCheck[string, *closeRecorder](),
	)
	require.NoError(t, m.AddOrUpdate("a", &closeRecorder{name: "a", closed: &closed, err: errA}))
	require.NoError(t, m.AddOrUpdate("b", &closeRecorder{name: "b", closed: &closed}))
	require.NoError(t, m.AddOrUpdate("c", &closeRecorder{name: "c", closed: &closed, err: errC}))
	require.NoError(t, m.AddOrUpdate("nil", nil))

	err := m.Purge()
	require.Error(t, err)
	require.ErrorIs(t, err, errA)
	require.ErrorIs(t, err, errC)
	require.Len(t, multierr.Errors(err), 2)
	require.Equal(t, []string{"a", "b", "c"}, closed)
	require.Equal(t, int64(0), m.Len())

	plain := NewThreadSafeOrderedMap[string, *closeRecorder]()
	require.NoError(t, plain.AddOrUpdate("a", &closeRecorder{name: "a", closed: &closed, err: errA}))
	require.NoError(t, plain.Purge())
	require.Len(t, closed, 3)
}
