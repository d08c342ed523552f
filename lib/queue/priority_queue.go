package queue

import (
	"container/heap"
	"sync"
	"sync/atomic"

	"github.com/benz9527/xcontainer/lib/alloc"
	"github.com/benz9527/xcontainer/lib/vector"
)

type pqItem[E any] struct {
	priority int64
	index    int64
	value    E
}

func (item *pqItem[E]) Index() int64 {
	if item == nil {
		return -1
	}
	return atomic.LoadInt64(&item.index)
}

func (item *pqItem[E]) Value() (val E) {
	if item == nil {
		// return empty value by default
		return
	}
	return item.value
}

func (item *pqItem[E]) Priority() int64 {
	if item == nil {
		return -1
	}
	return atomic.LoadInt64(&item.priority)
}

func (item *pqItem[E]) SetIndex(idx int64) {
	if item == nil {
		return
	}
	atomic.SwapInt64(&item.index, idx)
}

func (item *pqItem[E]) SetPriority(pri int64) {
	if item == nil {
		return
	}
	atomic.SwapInt64(&item.priority, pri)
}

func NewPriorityQueueItem[E any](val E, pri int64) PQItem[E] {
	return &pqItem[E]{
		priority: pri,
		value:    val,
		index:    0,
	}
}

// arrayPQ is the heap.Interface over a vector. Items enter through
// ArrayPriorityQueue.Push, heap.Pop drives Pop.
type arrayPQ[E any] struct {
	capacity   int
	arr        *vector.Vector[PQItem[E]]
	comparator PQItemLessThenComparator[E]
}

func (pq *arrayPQ[E]) Len() int { return pq.arr.Len() }
func (pq *arrayPQ[E]) Less(i, j int) bool {
	res := pq.comparator(pq.arr.Index(i), pq.arr.Index(j))
	return res == iLTj
}
func (pq *arrayPQ[E]) Swap(i, j int) {
	pi, pj := pq.arr.Ref(i), pq.arr.Ref(j)
	*pi, *pj = *pj, *pi
	(*pi).SetIndex(int64(i))
	(*pj).SetIndex(int64(j))
}

func (pq *arrayPQ[E]) Pop() interface{} {
	item, err := pq.arr.PopBack()
	if err != nil {
		return nil
	}
	item.SetIndex(-1)
	return item
}

func (pq *arrayPQ[E]) Push(i interface{}) {
	item, ok := i.(PQItem[E])
	if !ok {
		return
	}
	if err := pq.arr.PushBack(item); err == nil {
		item.SetIndex(int64(pq.arr.Len() - 1))
	}
}

// ArrayPriorityQueue is a binary heap. Without a comparator the highest
// priority pops first.
type ArrayPriorityQueue[E any] struct {
	queue *arrayPQ[E]
	lock  *sync.Mutex
}

func (pq *ArrayPriorityQueue[E]) Len() int64 {
	if pq.lock != nil {
		pq.lock.Lock()
		defer pq.lock.Unlock()
	}
	return int64(pq.queue.arr.Len())
}

func (pq *ArrayPriorityQueue[E]) Pop() (ReadOnlyPQItem[E], error) {
	if pq.lock != nil {
		pq.lock.Lock()
		defer pq.lock.Unlock()
	}
	if pq.queue.arr.Empty() {
		return nil, ErrEmpty
	}
	item := heap.Pop(pq.queue)
	return item.(ReadOnlyPQItem[E]), nil
}

// Push only fails when the backing vector cannot grow, the heap is left as
// it was.
func (pq *ArrayPriorityQueue[E]) Push(item PQItem[E]) error {
	if pq.lock != nil {
		pq.lock.Lock()
		defer pq.lock.Unlock()
	}
	n := pq.queue.arr.Len()
	if err := pq.queue.arr.PushBack(item); err != nil {
		return err
	}
	item.SetIndex(int64(n))
	heap.Fix(pq.queue, n)
	return nil
}

func (pq *ArrayPriorityQueue[E]) Peek() (ReadOnlyPQItem[E], error) {
	if pq.lock != nil {
		pq.lock.Lock()
		defer pq.lock.Unlock()
	}
	if pq.queue.arr.Empty() {
		return nil, ErrEmpty
	}
	return pq.queue.arr.Index(0), nil
}

type ArrayPriorityQueueOption[E any] func(*ArrayPriorityQueue[E])

func maxPriorityFirst[E any](i, j ReadOnlyPQItem[E]) CmpEnum {
	res := j.Priority() - i.Priority()
	if res > 0 {
		return iGTj
	} else if res < 0 {
		return iLTj
	}
	return iEQj
}

func NewArrayPriorityQueue[E any](opts ...ArrayPriorityQueueOption[E]) PriorityQueue[E] {
	pq := &ArrayPriorityQueue[E]{
		queue: &arrayPQ[E]{
			arr: vector.NewVector[PQItem[E]](),
		},
	}
	for _, o := range opts {
		if o != nil {
			o(pq)
		}
	}
	if pq.queue.capacity <= 0 {
		pq.queue.capacity = 64
	}
	// A failed reservation is retried by the first Push that needs room.
	_ = pq.queue.arr.Reserve(pq.queue.capacity)
	if pq.queue.comparator == nil {
		pq.queue.comparator = maxPriorityFirst[E]
	}
	return pq
}

func WithArrayPriorityQueueCapacity[E any](capacity int) ArrayPriorityQueueOption[E] {
	return func(pq *ArrayPriorityQueue[E]) {
		if capacity <= 0 {
			capacity = 64
		}
		pq.queue.capacity = capacity
	}
}

// WithArrayPriorityQueueAllocator backs the heap slots with a.
func WithArrayPriorityQueueAllocator[E any](a alloc.Allocator[PQItem[E]]) ArrayPriorityQueueOption[E] {
	return func(pq *ArrayPriorityQueue[E]) {
		if a != nil {
			pq.queue.arr = vector.NewVector[PQItem[E]](vector.WithVectorAllocator[PQItem[E]](a))
		}
	}
}

func WithArrayPriorityQueueComparator[E any](fn PQItemLessThenComparator[E]) ArrayPriorityQueueOption[E] {
	return func(pq *ArrayPriorityQueue[E]) {
		if fn == nil {
			fn = maxPriorityFirst[E]
		}
		pq.queue.comparator = fn
	}
}

func WithArrayPriorityQueueEnableThreadSafe[E any]() ArrayPriorityQueueOption[E] {
	return func(pq *ArrayPriorityQueue[E]) {
		pq.lock = &sync.Mutex{}
	}
}
