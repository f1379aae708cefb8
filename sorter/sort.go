package sorter

import (
	"github.com/ChristianF88/bitsort/bitmask"
	"golang.org/x/exp/constraints"
)

// Sort sorts a ascending, choosing per range between pigeonhole buckets
// (narrow key spaces) and radix passes (wide ones).
func Sort[T constraints.Signed](e *Engine, a []T) {
	e = engineOr(e)
	if len(a) < 2 {
		return
	}
	an := bitmask.AnalyzeSlice(a, bitmask.Width[T]())
	switch an.Kind {
	case bitmask.Uniform:
	case bitmask.MixedSign:
		split := SignSplit(a)
		Sort(e, a[:split])
		Sort(e, a[split:])
	default:
		if an.Bits() <= autoPigeonholeBits {
			PigeonholeAnalyzed(e, a, an)
		} else {
			RadixInts(e, a)
		}
	}
}

// SortRange sorts a[start:endP1] with Sort.
func SortRange[T constraints.Signed](e *Engine, a []T, start, endP1 int) error {
	if err := checkRange(len(a), start, endP1); err != nil {
		return err
	}
	Sort(e, a[start:endP1])
	return nil
}

// IsSorted reports whether a is in ascending order.
func IsSorted[T constraints.Signed](a []T) bool {
	for i := len(a) - 1; i > 0; i-- {
		if a[i] < a[i-1] {
			return false
		}
	}
	return true
}

// IsSortedFunc reports whether a is in ascending key order.
func IsSortedFunc[E any, K constraints.Signed](a []E, key func(E) K) bool {
	for i := len(a) - 1; i > 0; i-- {
		if key(a[i]) < key(a[i-1]) {
			return false
		}
	}
	return true
}
