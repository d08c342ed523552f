package vector

import (
	"errors"
	"math"
)

var (
	ErrOutOfRange = errors.New("[vector] index out of range")
	ErrEmpty      = errors.New("[vector] empty vector")
)

// MaxSize is the largest element count a vector can describe.
const MaxSize = math.MaxInt

// Cloner deep-copies one element for Clone and CopyFrom.
type Cloner[T any] func(T) (T, error)
