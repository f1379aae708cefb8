package sorter

import (
	"fmt"

	"github.com/ChristianF88/bitsort/bitmask"
	"github.com/ChristianF88/bitsort/diag"
	"golang.org/x/exp/constraints"
)

// Pigeonhole sorts a ascending in place. Values are rebuilt from bucket
// counts, so the sort is destructive and not stable.
func Pigeonhole[T constraints.Signed](e *Engine, a []T) {
	if len(a) < 2 {
		return
	}
	PigeonholeAnalyzed(e, a, bitmask.AnalyzeSlice(a, bitmask.Width[T]()))
}

// PigeonholeRange sorts a[start:endP1] and leaves the rest of a untouched.
func PigeonholeRange[T constraints.Signed](e *Engine, a []T, start, endP1 int) error {
	if err := checkRange(len(a), start, endP1); err != nil {
		return err
	}
	Pigeonhole(e, a[start:endP1])
	return nil
}

// PigeonholeAnalyzed sorts a using an analysis already computed over exactly
// a, with sections no narrower than the key width. Sub-ranges created by a
// sign split are analysed afresh, as is a sectioned analysis without sections.
func PigeonholeAnalyzed[T constraints.Signed](e *Engine, a []T, an bitmask.Analysis) {
	e = engineOr(e)
	if len(a) < 2 {
		return
	}
	if an.Kind == bitmask.Sectioned && len(an.Sections) == 0 {
		an = bitmask.AnalyzeSlice(a, bitmask.Width[T]())
	}

	p := e.plan(an, bitmask.Bits(a[0]))
	switch p.Strategy {
	case StrategySignSplit:
		split := SignSplit(a)
		if split > 1 {
			Pigeonhole(e, a[:split])
		}
		if len(a)-split > 1 {
			Pigeonhole(e, a[split:])
		}
	case StrategyDirect:
		bucketDirect(e, a, p.Bits)
	case StrategyMaskedLow:
		bucketMaskedLow(e, a, p.Analysis.Sections[0].Mask, p.Shared)
	case StrategyShifted:
		s := p.Analysis.Sections[0]
		bucketKeyed(e, a, p.Bits, s.Key)
	case StrategyComposite:
		sections := p.Analysis.Sections
		bucketKeyed(e, a, p.Bits, func(v uint64) uint64 {
			return bitmask.PackKey(v, sections)
		})
	case StrategyFallback:
		e.reporter.ReportOnce(diag.Event{
			Kind:    diag.PigeonholeFallback,
			Message: fmt.Sprintf("%d key bits are too many to bucket (max %d), sorting with radix passes", p.Bits, e.maxPigeonholeBits),
		})
		RadixInts(e, a)
	}
}

// bucketDirect handles values that are their own keys.
func bucketDirect[T constraints.Signed](e *Engine, a []T, bits int) {
	r := uint64(1) << uint(bits)
	e.checkBucketRange(r)
	counts := e.buffers.GetCounts(int(r))
	defer e.buffers.ReturnCounts(counts)

	for _, v := range a {
		counts[bitmask.Bits(v)]++
	}
	rebuild(a, counts, func(key int) T { return T(key) })
}

// bucketMaskedLow buckets on the low bits and puts the shared high bits back.
func bucketMaskedLow[T constraints.Signed](e *Engine, a []T, mask, shared uint64) {
	r := mask + 1
	e.checkBucketRange(r)
	counts := e.buffers.GetCounts(int(r))
	defer e.buffers.ReturnCounts(counts)

	for _, v := range a {
		counts[bitmask.Bits(v)&mask]++
	}
	rebuild(a, counts, func(key int) T { return T(uint64(key) | shared) })
}

// bucketKeyed buckets on key(v) and keeps one stored value per bucket,
// since every value in a bucket is identical.
func bucketKeyed[T constraints.Signed](e *Engine, a []T, bits int, key func(uint64) uint64) {
	r := uint64(1) << uint(bits)
	e.checkBucketRange(r)
	counts := e.buffers.GetCounts(int(r))
	defer e.buffers.ReturnCounts(counts)
	values := e.buffers.GetValues(int(r))
	defer e.buffers.ReturnValues(values)

	for _, v := range a {
		b := bitmask.Bits(v)
		k := key(b)
		counts[k]++
		values[k] = b
	}
	rebuild(a, counts, func(k int) T { return T(values[k]) })
}
