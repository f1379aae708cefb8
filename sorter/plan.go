package sorter

import (
	"fmt"

	"github.com/ChristianF88/bitsort/bitmask"
	"golang.org/x/exp/constraints"
)

// Strategy is the bucket strategy the pigeonhole engine picks for a range.
type Strategy uint8

const (
	// StrategyNone: fewer than two values or a single distinct value.
	StrategyNone Strategy = iota
	// StrategySignSplit: negatives and non-negatives are split first and
	// each side is planned again.
	StrategySignSplit
	// StrategyDirect: one section at shift 0 and no other bit set anywhere;
	// values are their own bucket keys.
	StrategyDirect
	// StrategyMaskedLow: one section at shift 0 under a constant high
	// pattern that is re-attached when values are rebuilt.
	StrategyMaskedLow
	// StrategyShifted: one section above bit 0; a representative value is
	// kept per bucket.
	StrategyShifted
	// StrategyComposite: several sections packed into one bucket key.
	StrategyComposite
	// StrategyFallback: the key space is too wide to bucket; the range is
	// sorted with radix passes.
	StrategyFallback
)

var strategyNames = [...]string{
	StrategyNone:      "none",
	StrategySignSplit: "sign_split",
	StrategyDirect:    "direct",
	StrategyMaskedLow: "masked_low",
	StrategyShifted:   "shifted",
	StrategyComposite: "composite",
	StrategyFallback:  "fallback",
}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// Plan is the per-range decision of the pigeonhole engine.
type Plan struct {
	Strategy Strategy
	Analysis bitmask.Analysis
	// Bits is the width of the bucket key.
	Bits int
	// Shared holds the bits common to every value (StrategyMaskedLow).
	Shared uint64
}

// Buckets is the histogram size the plan needs.
func (p Plan) Buckets() uint64 {
	switch p.Strategy {
	case StrategyDirect, StrategyMaskedLow, StrategyShifted, StrategyComposite:
		return uint64(1) << uint(p.Bits)
	}
	return 0
}

// plan chooses the strategy for an analysed range. sample is the bit
// pattern of any value of the range.
func (e *Engine) plan(an bitmask.Analysis, sample uint64) Plan {
	p := Plan{Analysis: an}
	switch an.Kind {
	case bitmask.Uniform:
		p.Strategy = StrategyNone
		return p
	case bitmask.MixedSign:
		p.Strategy = StrategySignSplit
		return p
	}

	if len(an.Sections) == 0 {
		p.Strategy = StrategyNone
		return p
	}
	p.Bits = an.Bits()
	if p.Bits > e.maxPigeonholeBits {
		p.Strategy = StrategyFallback
		return p
	}
	if len(an.Sections) > 1 {
		p.Strategy = StrategyComposite
		return p
	}
	s := an.Sections[0]
	if s.Shift != 0 {
		p.Strategy = StrategyShifted
		return p
	}
	p.Shared = sample &^ s.Mask
	if p.Shared == 0 {
		p.Strategy = StrategyDirect
	} else {
		p.Strategy = StrategyMaskedLow
	}
	return p
}

// Explain returns the plan the pigeonhole engine would follow for the
// top level of a.
func Explain[T constraints.Signed](e *Engine, a []T) Plan {
	e = engineOr(e)
	an := bitmask.AnalyzeSlice(a, bitmask.Width[T]())
	if len(a) < 2 {
		return Plan{Strategy: StrategyNone, Analysis: an}
	}
	return e.plan(an, bitmask.Bits(a[0]))
}
