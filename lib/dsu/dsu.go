package dsu

import "errors"

var ErrOutOfRange = errors.New("[dsu] element out of range")

// DisjointSet is a union-find forest over the elements [0, n).
type DisjointSet struct {
	parent []int
	rank   []uint8
	sets   int
}

func NewDisjointSet(n int) *DisjointSet {
	if n < 0 {
		n = 0
	}
	ds := &DisjointSet{
		parent: make([]int, n),
		rank:   make([]uint8, n),
		sets:   n,
	}
	for i := range ds.parent {
		ds.parent[i] = i
	}
	return ds
}

func (ds *DisjointSet) Len() int {
	return len(ds.parent)
}

// Sets returns the number of disjoint sets.
func (ds *DisjointSet) Sets() int {
	return ds.sets
}

func (ds *DisjointSet) check(x int) error {
	if x < 0 || x >= len(ds.parent) {
		return ErrOutOfRange
	}
	return nil
}

func (ds *DisjointSet) find(x int) int {
	root := x
	for ds.parent[root] != root {
		root = ds.parent[root]
	}
	// Path compression.
	for ds.parent[x] != root {
		ds.parent[x], x = root, ds.parent[x]
	}
	return root
}

func (ds *DisjointSet) Find(x int) (int, error) {
	if err := ds.check(x); err != nil {
		return -1, err
	}
	return ds.find(x), nil
}

// Union merges the sets of x and y and reports whether they were apart.
func (ds *DisjointSet) Union(x, y int) (bool, error) {
	if err := ds.check(x); err != nil {
		return false, err
	}
	if err := ds.check(y); err != nil {
		return false, err
	}
	rx, ry := ds.find(x), ds.find(y)
	if rx == ry {
		return false, nil
	}
	switch {
	case ds.rank[rx] < ds.rank[ry]:
		ds.parent[rx] = ry
	case ds.rank[rx] > ds.rank[ry]:
		ds.parent[ry] = rx
	default:
		ds.parent[ry] = rx
		ds.rank[rx]++
	}
	ds.sets--
	return true, nil
}

func (ds *DisjointSet) Same(x, y int) (bool, error) {
	if err := ds.check(x); err != nil {
		return false, err
	}
	if err := ds.check(y); err != nil {
		return false, err
	}
	return ds.find(x) == ds.find(y), nil
}
