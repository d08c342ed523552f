package bits

import (
	"errors"
	"math/bits"
)

var ErrOutOfRange = errors.New("[bits] index out of range")

func wordsFor(n int) int {
	return (n + wordBits - 1) / wordBits
}

// BitSet has a fixed number of bits decided at construction.
// Set, Reset and Test do not check the index, an index beyond Len
// panics or touches the padding bits of the last word. Use the
// checked variants for untrusted input.
type BitSet struct {
	words []uint64
	n     int
}

func NewBitSet(n int) *BitSet {
	if n < 0 {
		n = 0
	}
	return &BitSet{words: make([]uint64, wordsFor(n)), n: n}
}

func (bs *BitSet) Len() int {
	return bs.n
}

func (bs *BitSet) Set(i int) {
	bs.words[i/wordBits] |= 1 << (uint(i) % wordBits)
}

func (bs *BitSet) Reset(i int) {
	bs.words[i/wordBits] &^= 1 << (uint(i) % wordBits)
}

func (bs *BitSet) Flip(i int) {
	bs.words[i/wordBits] ^= 1 << (uint(i) % wordBits)
}

func (bs *BitSet) Test(i int) bool {
	return bs.words[i/wordBits]&(1<<(uint(i)%wordBits)) != 0
}

func (bs *BitSet) inRange(i int) error {
	if i < 0 || i >= bs.n {
		return ErrOutOfRange
	}
	return nil
}

func (bs *BitSet) SetChecked(i int) error {
	if err := bs.inRange(i); err != nil {
		return err
	}
	bs.Set(i)
	return nil
}

func (bs *BitSet) ResetChecked(i int) error {
	if err := bs.inRange(i); err != nil {
		return err
	}
	bs.Reset(i)
	return nil
}

func (bs *BitSet) TestChecked(i int) (bool, error) {
	if err := bs.inRange(i); err != nil {
		return false, err
	}
	return bs.Test(i), nil
}

// Count returns the number of set bits.
func (bs *BitSet) Count() int {
	c := 0
	for _, w := range bs.words {
		c += int(HammingWeight(w))
	}
	return c
}

func (bs *BitSet) Any() bool {
	for _, w := range bs.words {
		if w != 0 {
			return true
		}
	}
	return false
}

func (bs *BitSet) None() bool {
	return !bs.Any()
}

func (bs *BitSet) ClearAll() {
	clear(bs.words)
}

// Foreach visits the set bits in ascending order.
func (bs *BitSet) Foreach(action func(i int) bool) {
	for wi, w := range bs.words {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			i := wi*wordBits + tz
			if i >= bs.n {
				return
			}
			if !action(i) {
				return
			}
			w &= w - 1
		}
	}
}

func (bs *BitSet) EqualTo(o *BitSet) bool {
	if o == nil || bs.n != o.n {
		return false
	}
	for i := range bs.words {
		if bs.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

// DynamicBitSet grows on demand. Set beyond Len grows the set, Test beyond
// Len reports false.
type DynamicBitSet struct {
	BitSet
}

func NewDynamicBitSet(n int) *DynamicBitSet {
	return &DynamicBitSet{BitSet: *NewBitSet(n)}
}

// Resize keeps the bits below n and drops the rest.
func (ds *DynamicBitSet) Resize(n int) {
	if n < 0 {
		n = 0
	}
	words := wordsFor(n)
	if words > cap(ds.words) {
		grown := make([]uint64, words, int(RoundupPowOf2(uint64(words))))
		copy(grown, ds.words)
		ds.words = grown
	} else {
		prev := len(ds.words)
		ds.words = ds.words[:words]
		if words > prev {
			clear(ds.words[prev:])
		}
	}
	ds.n = n
	if rem := n % wordBits; rem != 0 {
		ds.words[words-1] &= (1 << uint(rem)) - 1
	}
}

func (ds *DynamicBitSet) Set(i int) error {
	if i < 0 {
		return ErrOutOfRange
	}
	if i >= ds.n {
		ds.Resize(i + 1)
	}
	ds.BitSet.Set(i)
	return nil
}

func (ds *DynamicBitSet) Test(i int) bool {
	if i < 0 || i >= ds.n {
		return false
	}
	return ds.BitSet.Test(i)
}

func (ds *DynamicBitSet) PushBack(v bool) {
	i := ds.n
	ds.Resize(i + 1)
	if v {
		ds.BitSet.Set(i)
	}
}
