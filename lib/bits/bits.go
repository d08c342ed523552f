package bits

import (
	"math"
	"math/bits"
)

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

const wordBits = 64

// RoundupPowOf2 returns the smallest power of 2 that is not less than n.
func RoundupPowOf2(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	return 1 << (wordBits - bits.LeadingZeros64(n-1))
}

// CeilPowOf2 returns the exponent of RoundupPowOf2(n).
func CeilPowOf2(n uint64) uint8 {
	if n <= 1 {
		return 0
	}
	return uint8(math.Ceil(math.Log2(float64(n))))
}

func convert[T integer](n T) uint64 {
	switch any(n).(type) {
	case int8, uint8:
		return uint64(uint8(n))
	case int16, uint16:
		return uint64(uint16(n))
	case int32, uint32:
		return uint64(uint32(n))
	}
	return uint64(n)
}

// HammingWeight counts the one bits by SWAR.
func HammingWeight[T integer](n T) uint8 {
	x := convert[T](n)
	x = x - ((x >> 1) & 0x5555555555555555)
	x = (x & 0x3333333333333333) + ((x >> 2) & 0x3333333333333333)
	x = (x + (x >> 4)) & 0x0f0f0f0f0f0f0f0f
	return uint8((x * 0x0101010101010101) >> 56)
}
