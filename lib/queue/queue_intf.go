// Reference:
// https://github.com/nsqio/nsq/blob/master/internal/pqueue/pqueue.go

package queue

import "errors"

var (
	ErrEmpty = errors.New("[queue] empty")
	ErrFull  = errors.New("[queue] full")
)

type PriorityQueue[E any] interface {
	Len() int64
	Push(item PQItem[E]) error
	Pop() (ReadOnlyPQItem[E], error)
	Peek() (ReadOnlyPQItem[E], error)
}

type ReadOnlyPQItem[E any] interface {
	Index() int64
	Value() E
	Priority() int64
}

type CmpEnum int64

const (
	iLTj CmpEnum = -1 + iota
	iEQj
	iGTj
)

// PQItemLessThenComparator
// Priority queue item comparator, the "less" item pops first.
// if return 1, i > j
// if return 0, i == j
// if return -1, i < j
type PQItemLessThenComparator[E any] func(i, j ReadOnlyPQItem[E]) CmpEnum

type PQItem[E any] interface {
	ReadOnlyPQItem[E]
	SetIndex(idx int64)
	SetPriority(pri int64)
}
