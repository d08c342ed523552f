package infra

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is a constraint that permits any integer type.
type Integer interface {
	Signed | Unsigned
}

// Float is a constraint that permits any floating-point type.
type Float interface {
	~float32 | ~float64
}

// OrderedKey
// byte => ~uint8
type OrderedKey interface {
	Integer | Float | ~string
}

// OrderedKeyComparator
// Assume i is the new key.
//  1. i == j (i-j == 0, return 0)
//  2. i > j (i-j > 0, return 1), turn to right part.
//  3. i < j (i-j < 0, return -1), turn to left part.
type OrderedKeyComparator[K OrderedKey] func(i, j K) int64

// Comparator is the three-way form of a strict weak order over any key type.
// Keys i and j are equivalent when the comparator returns 0.
type Comparator[K any] func(i, j K) int64

// OrderedKeyCmp returns the natural ascending comparator of K.
// NaN keys are not a strict weak order, callers must filter them.
func OrderedKeyCmp[K OrderedKey]() Comparator[K] {
	return func(i, j K) int64 {
		if i < j {
			return -1
		} else if i > j {
			return 1
		}
		return 0
	}
}

// OrderedKeyDescCmp returns the natural descending comparator of K.
func OrderedKeyDescCmp[K OrderedKey]() Comparator[K] {
	return func(i, j K) int64 {
		if i < j {
			return 1
		} else if i > j {
			return -1
		}
		return 0
	}
}

// LessComparator turns a strict weak order "less" predicate into a three-way
// comparator. Equivalence is !less(i, j) && !less(j, i).
func LessComparator[K any](less func(i, j K) bool) Comparator[K] {
	return func(i, j K) int64 {
		if less(i, j) {
			return -1
		} else if less(j, i) {
			return 1
		}
		return 0
	}
}

// Reverse flips the order of cmp.
func (cmp Comparator[K]) Reverse() Comparator[K] {
	return func(i, j K) int64 {
		return cmp(j, i)
	}
}
