package sorter

import (
	"github.com/ChristianF88/bitsort/bitmask"
	"golang.org/x/exp/constraints"
)

// Radix sorts a ascending by key, keeping the relative order of elements
// with equal keys. One counting pass runs per section of differing key bits,
// least significant section first.
func Radix[E any, K constraints.Signed](e *Engine, a []E, key func(E) K) {
	e = engineOr(e)
	if len(a) < 2 {
		return
	}
	an := analyzeKeys(e, a, key)
	switch an.Kind {
	case bitmask.Uniform:
		return
	case bitmask.Sectioned:
		aux := make([]E, len(a))
		radixPasses(e, a, aux, key, an.Sections)
		return
	}

	// One aux buffer serves the split and both sides.
	aux := make([]E, len(a))
	split := SignSplitStable(a, aux, key)
	negatives, rest := a[:split], a[split:]

	var negAn, restAn bitmask.Analysis
	if len(negatives) > 1 {
		negAn = analyzeKeys(e, negatives, key)
	}
	if len(rest) > 1 {
		restAn = analyzeKeys(e, rest, key)
	}
	if negAn.Kind == bitmask.Sectioned {
		radixPasses(e, negatives, aux, key, negAn.Sections)
	}
	if restAn.Kind == bitmask.Sectioned {
		radixPasses(e, rest, aux, key, restAn.Sections)
	}
}

// RadixRange sorts a[start:endP1] with Radix.
func RadixRange[E any, K constraints.Signed](e *Engine, a []E, key func(E) K, start, endP1 int) error {
	if err := checkRange(len(a), start, endP1); err != nil {
		return err
	}
	Radix(e, a[start:endP1], key)
	return nil
}

// RadixInts sorts integers with Radix using the values as keys.
func RadixInts[T constraints.Signed](e *Engine, a []T) {
	Radix(e, a, func(v T) T { return v })
}

func analyzeKeys[E any, K constraints.Signed](e *Engine, a []E, key func(E) K) bitmask.Analysis {
	return bitmask.Analyze(bitmask.OfFunc(a, key), bitmask.Width[K](), e.sectionBits)
}

// radixPasses runs one stable pass per section in the given order.
func radixPasses[E any, K constraints.Signed](e *Engine, a, aux []E, key func(E) K, sections []bitmask.Section) {
	for _, s := range sections {
		if s.Bits == 1 {
			mask := s.Mask
			stablePartition(a, aux, func(x E) bool {
				return bitmask.Bits(key(x))&mask == 0
			})
			continue
		}
		countingPass(e, a, aux, key, s)
	}
}
