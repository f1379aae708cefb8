package sorter

import (
	"fmt"

	"github.com/ChristianF88/bitsort/diag"
	"golang.org/x/exp/constraints"
)

// NoMask sorts a ascending with one bucket per value between the minimum and
// maximum found by scanning a. No bit analysis is done.
func NoMask[T constraints.Signed](e *Engine, a []T) {
	if len(a) < 2 {
		return
	}
	lo, hi := a[0], a[0]
	for _, v := range a[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	noMask(engineOr(e), a, lo, hi, false)
}

// NoMaskBounds is NoMask with caller-supplied bounds. If the bounds do not
// form a usable range, or a value falls outside them, a diag.InvalidRange
// event is reported and a is left unmodified.
func NoMaskBounds[T constraints.Signed](e *Engine, a []T, min, max T) {
	if len(a) < 2 {
		return
	}
	noMask(engineOr(e), a, min, max, true)
}

// NoMaskRange sorts a[start:endP1] with NoMask.
func NoMaskRange[T constraints.Signed](e *Engine, a []T, start, endP1 int) error {
	if err := checkRange(len(a), start, endP1); err != nil {
		return err
	}
	NoMask(e, a[start:endP1])
	return nil
}

func noMask[T constraints.Signed](e *Engine, a []T, min, max T, checkBounds bool) {
	if max < min {
		e.reporter.Report(diag.Event{
			Kind:    diag.InvalidRange,
			Message: fmt.Sprintf("max %d is below min %d, nothing sorted", max, min),
		})
		return
	}
	// sign-extended subtraction wraps to the exact distance
	span := uint64(max) - uint64(min)
	if span >= uint64(1)<<uint(e.maxPigeonholeBits) {
		e.reporter.Report(diag.Event{
			Kind:    diag.InvalidRange,
			Message: fmt.Sprintf("range [%d, %d] is too wide to bucket, nothing sorted", min, max),
			Range:   span,
		})
		return
	}
	r := span + 1
	e.checkBucketRange(r)

	counts := e.buffers.GetCounts(int(r))
	defer e.buffers.ReturnCounts(counts)
	for _, v := range a {
		if checkBounds && (v < min || v > max) {
			e.reporter.Report(diag.Event{
				Kind:    diag.InvalidRange,
				Message: fmt.Sprintf("value %d outside bounds [%d, %d], nothing sorted", v, min, max),
				Range:   r,
			})
			return
		}
		counts[uint64(v)-uint64(min)]++
	}
	rebuild(a, counts, func(key int) T { return min + T(key) })
}
