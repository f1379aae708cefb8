package sorter

import (
	"github.com/ChristianF88/bitsort/bitmask"
	"golang.org/x/exp/constraints"
)

// offsets turns a histogram into exclusive prefix sums in place.
func offsets(counts []int) {
	total := 0
	for i, c := range counts {
		counts[i] = total
		total += c
	}
}

func blockCopy[E any](src []E, srcStart int, dst []E, dstStart, n int) {
	copy(dst[dstStart:dstStart+n], src[srcStart:srcStart+n])
}

// rebuild overwrites a in ascending key order, writing value(key) counts[key]
// times for every key, and stops once a is full.
func rebuild[T any](a []T, counts []int, value func(key int) T) {
	i := 0
	for key, c := range counts {
		if c == 0 {
			continue
		}
		v := value(key)
		for ; c > 0; c-- {
			a[i] = v
			i++
		}
		if i == len(a) {
			return
		}
	}
}

// SignSplit moves negative values in front of non-negative ones with
// swaps and returns the index of the first non-negative value. Order
// inside each side is not preserved.
func SignSplit[T constraints.Signed](a []T) int {
	i, j := 0, len(a)-1
	for {
		for i <= j && a[i] < 0 {
			i++
		}
		for i <= j && a[j] >= 0 {
			j--
		}
		if i >= j {
			return i
		}
		a[i], a[j] = a[j], a[i]
		i++
		j--
	}
}

// SignSplitStable moves elements with negative keys in front of the rest,
// keeping relative order on both sides, and returns the split index. aux must
// hold at least len(a) elements.
func SignSplitStable[E any, K constraints.Signed](a, aux []E, key func(E) K) int {
	return stablePartition(a, aux, func(x E) bool { return key(x) < 0 })
}

// stablePartition moves elements for which first is true to the front of a,
// keeping relative order on both sides, and returns how many there were.
func stablePartition[E any](a, aux []E, first func(E) bool) int {
	w, r := 0, 0
	for _, x := range a {
		if first(x) {
			a[w] = x
			w++
		} else {
			aux[r] = x
			r++
		}
	}
	blockCopy(aux, 0, a, w, r)
	return w
}

// countingPass stably reorders a by the section's bits of each key.
func countingPass[E any, K constraints.Signed](e *Engine, a, aux []E, key func(E) K, s bitmask.Section) {
	r := uint64(1) << uint(s.Bits)
	e.checkBucketRange(r)
	counts := e.buffers.GetCounts(int(r))
	defer e.buffers.ReturnCounts(counts)

	if s.Shift == 0 {
		for _, x := range a {
			counts[bitmask.Bits(key(x))&s.Mask]++
		}
	} else {
		for _, x := range a {
			counts[s.Key(bitmask.Bits(key(x)))]++
		}
	}
	offsets(counts)
	for _, x := range a {
		k := s.Key(bitmask.Bits(key(x)))
		aux[counts[k]] = x
		counts[k]++
	}
	blockCopy(aux, 0, a, 0, len(a))
}
