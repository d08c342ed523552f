package tree

import "errors"

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=RBDirection
type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

var (
	ErrRBTreeEmpty           = errors.New("[rbtree] empty tree")
	ErrRBTreeKeyNotFound     = errors.New("[rbtree] key not found")
	ErrRBTreeInvalidIterator = errors.New("[rbtree] iterator does not point into this tree")
	ErrRBTreeRedViolation    = errors.New("[rbtree] red violation")
	ErrRBTreeBlackViolation  = errors.New("[rbtree] black violation")
	ErrRBTreeOrderViolation  = errors.New("[rbtree] order violation")
	ErrRBTreeSizeViolation   = errors.New("[rbtree] size violation")
)

type RBNode[K any, V any] interface {
	Key() K
	Val() V
	HasKeyVal() bool
	Color() RBColor
	Left() RBNode[K, V]
	Right() RBNode[K, V]
	Parent() RBNode[K, V]
}

// RBTree is an ordered set of unique keys. Nodes are relinked, never
// value-copied, so an Iterator stays valid until its own node is erased.
// Not thread safe.
type RBTree[K any, V any] interface {
	Len() int64
	Root() RBNode[K, V]
	// Insert overwrites the value of an existing key unless ifNotPresent is
	// set. The bool result reports whether a new node was linked.
	Insert(key K, val V, ifNotPresent ...bool) (Iterator[K, V], bool, error)
	Remove(key K) (RBNode[K, V], error)
	RemoveMin() (RBNode[K, V], error)
	// Erase removes the node at it and returns the iterator following it.
	Erase(it Iterator[K, V]) (Iterator[K, V], error)
	Find(key K) Iterator[K, V]
	LowerBound(key K) Iterator[K, V]
	UpperBound(key K) Iterator[K, V]
	Begin() Iterator[K, V]
	Last() Iterator[K, V]
	End() Iterator[K, V]
	Foreach(action func(idx int64, color RBColor, key K, val V) bool)
	ReverseForeach(action func(idx int64, color RBColor, key K, val V) bool)
	Clone() (RBTree[K, V], error)
	MoveFrom(other RBTree[K, V])
	Swap(other RBTree[K, V])
	Release()
}
