package list

// Element is a node of a doubly linked list. Elements removed from their
// list report no neighbours.
type Element[T any] struct {
	prev, next *Element[T]
	listRef    *LinkedList[T]
	Value      T
}

func (e *Element[T]) Next() *Element[T] {
	if e == nil || e.listRef == nil || e.next == e.listRef.root {
		return nil
	}
	return e.next
}

func (e *Element[T]) Prev() *Element[T] {
	if e == nil || e.listRef == nil || e.prev == e.listRef.root {
		return nil
	}
	return e.prev
}

// LinkedList is a doubly linked list with a sentinel root, root.next is the
// head and root.prev is the tail. The zero value is not usable, see
// NewLinkedList.
type LinkedList[T any] struct {
	root *Element[T]
	len  int64
}

func NewLinkedList[T any]() *LinkedList[T] {
	l := &LinkedList[T]{}
	l.root = &Element[T]{listRef: l}
	l.root.next, l.root.prev = l.root, l.root
	return l
}

func (l *LinkedList[T]) Len() int64 {
	return l.len
}

func (l *LinkedList[T]) Front() *Element[T] {
	if l.len == 0 {
		return nil
	}
	return l.root.next
}

func (l *LinkedList[T]) Back() *Element[T] {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}

func (l *LinkedList[T]) owns(e *Element[T]) bool {
	return e != nil && e.listRef == l && e != l.root
}

// link places e right after at.
func (l *LinkedList[T]) link(e, at *Element[T]) *Element[T] {
	e.prev, e.next = at, at.next
	at.next.prev = e
	at.next = e
	e.listRef = l
	l.len++
	return e
}

func (l *LinkedList[T]) unlink(e *Element[T]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev, e.next = nil, nil
	l.len--
}

func (l *LinkedList[T]) PushFront(v T) *Element[T] {
	return l.link(&Element[T]{Value: v}, l.root)
}

func (l *LinkedList[T]) PushBack(v T) *Element[T] {
	return l.link(&Element[T]{Value: v}, l.root.prev)
}

// InsertBefore returns nil if at does not belong to l.
func (l *LinkedList[T]) InsertBefore(v T, at *Element[T]) *Element[T] {
	if !l.owns(at) {
		return nil
	}
	return l.link(&Element[T]{Value: v}, at.prev)
}

// InsertAfter returns nil if at does not belong to l.
func (l *LinkedList[T]) InsertAfter(v T, at *Element[T]) *Element[T] {
	if !l.owns(at) {
		return nil
	}
	return l.link(&Element[T]{Value: v}, at)
}

// Remove unlinks e and returns its value. It reports false if e does not
// belong to l.
func (l *LinkedList[T]) Remove(e *Element[T]) (T, bool) {
	if !l.owns(e) {
		var zero T
		return zero, false
	}
	l.unlink(e)
	e.listRef = nil
	return e.Value, true
}

func (l *LinkedList[T]) move(e, at *Element[T]) bool {
	if e == at || e.prev == at {
		return false
	}
	e.prev.next = e.next
	e.next.prev = e.prev

	e.prev, e.next = at, at.next
	at.next.prev = e
	at.next = e
	return true
}

func (l *LinkedList[T]) MoveToFront(e *Element[T]) bool {
	if !l.owns(e) {
		return false
	}
	return l.move(e, l.root)
}

func (l *LinkedList[T]) MoveToBack(e *Element[T]) bool {
	if !l.owns(e) {
		return false
	}
	return l.move(e, l.root.prev)
}

func (l *LinkedList[T]) MoveBefore(e, mark *Element[T]) bool {
	if !l.owns(e) || !l.owns(mark) || e == mark {
		return false
	}
	return l.move(e, mark.prev)
}

func (l *LinkedList[T]) MoveAfter(e, mark *Element[T]) bool {
	if !l.owns(e) || !l.owns(mark) {
		return false
	}
	return l.move(e, mark)
}

// Foreach allows removing the visited element while iterating.
func (l *LinkedList[T]) Foreach(fn func(idx int64, e *Element[T]) bool) {
	var idx int64
	for it := l.root.next; it != l.root; idx++ {
		next := it.next
		if !fn(idx, it) {
			return
		}
		it = next
	}
}

// ReverseForeach allows removing the visited element while iterating.
func (l *LinkedList[T]) ReverseForeach(fn func(idx int64, e *Element[T]) bool) {
	var idx int64
	for it := l.root.prev; it != l.root; idx++ {
		prev := it.prev
		if !fn(idx, it) {
			return
		}
		it = prev
	}
}

func (l *LinkedList[T]) FindFirst(match func(v T) bool) (*Element[T], bool) {
	for it := l.root.next; it != l.root; it = it.next {
		if match(it.Value) {
			return it, true
		}
	}
	return nil, false
}

// Clear drops every element, detached elements keep their values.
func (l *LinkedList[T]) Clear() {
	for it := l.root.next; it != l.root; {
		next := it.next
		it.prev, it.next, it.listRef = nil, nil, nil
		it = next
	}
	l.root.next, l.root.prev = l.root, l.root
	l.len = 0
}
