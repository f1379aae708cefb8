// Package sorter sorts integers, and records keyed by integers, by looking at
// which bits of the keys actually differ instead of comparing elements.
//
// Two engines are provided:
//   - Pigeonhole: destructive, non-stable bucket sort of raw integers. Values
//     are rebuilt from per-bucket counts.
//   - Radix: stable least-significant-section-first bucket passes over any
//     element type, driven by a key function.
//
// Both split mixed-sign ranges on the sign bit first and then bucket only on
// the bits that differ inside each side.
package sorter

import (
	"errors"
	"fmt"

	"github.com/ChristianF88/bitsort/diag"
	"github.com/ChristianF88/bitsort/pools"
)

const (
	// DefaultSectionBits caps the width of one radix pass (2048 slots).
	DefaultSectionBits = 11
	// DefaultWarnRange is the bucket count above which an oversized-range
	// warning is reported.
	DefaultWarnRange = 1 << 24
	// DefaultMaxPigeonholeBits is the widest key space bucketed directly
	// (64M slots). Wider ranges go to radix passes.
	DefaultMaxPigeonholeBits = 26

	// Sort picks pigeonhole up to this many key bits.
	autoPigeonholeBits = 20
)

// ErrRange is returned when a [start, endP1) range does not fit the slice.
var ErrRange = errors.New("invalid sort range")

// Engine holds the settings and diagnostics context shared by sort calls.
// An Engine is safe for concurrent use as long as calls sort distinct slices.
type Engine struct {
	reporter          *diag.Reporter
	buffers           *pools.Buffers
	sectionBits       int
	warnRange         uint64
	maxPigeonholeBits int
}

// Option configures an Engine.
type Option func(*Engine)

// WithReporter sets where diagnostics go.
func WithReporter(r *diag.Reporter) Option {
	return func(e *Engine) { e.reporter = r }
}

// WithBuffers sets the buffer pools used for histograms.
func WithBuffers(b *pools.Buffers) Option {
	return func(e *Engine) { e.buffers = b }
}

// WithSectionBits sets the widest radix pass.
func WithSectionBits(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.sectionBits = n
		}
	}
}

// WithWarnRange sets the oversized-range threshold.
func WithWarnRange(n uint64) Option {
	return func(e *Engine) {
		if n > 0 {
			e.warnRange = n
		}
	}
}

// WithMaxPigeonholeBits sets the widest key space the pigeonhole engine
// buckets before handing the range to radix passes.
func WithMaxPigeonholeBits(n int) Option {
	return func(e *Engine) {
		if n > 0 && n < 63 {
			e.maxPigeonholeBits = n
		}
	}
}

// New creates an Engine. Without WithReporter, diagnostics are logged as
// warnings on stderr.
func New(opts ...Option) *Engine {
	e := &Engine{
		buffers:           pools.Default,
		sectionBits:       DefaultSectionBits,
		warnRange:         DefaultWarnRange,
		maxPigeonholeBits: DefaultMaxPigeonholeBits,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.reporter == nil {
		e.reporter = defaultReporter()
	}
	return e
}

func defaultReporter() *diag.Reporter {
	logger, err := diag.NewLogger("warn", "console")
	if err != nil {
		logger = nil
	}
	return diag.NewReporter(diag.NewZapSink(logger))
}

// Default is used by every entry point called with a nil *Engine.
var Default = New()

func engineOr(e *Engine) *Engine {
	if e == nil {
		return Default
	}
	return e
}

// Reporter returns the engine's diagnostics context.
func (e *Engine) Reporter() *diag.Reporter {
	return engineOr(e).reporter
}

// SectionBits returns the widest radix pass.
func (e *Engine) SectionBits() int {
	return engineOr(e).sectionBits
}

func (e *Engine) checkBucketRange(r uint64) {
	if r <= e.warnRange {
		return
	}
	e.reporter.ReportOnce(diag.Event{
		Kind: diag.OversizedRange,
		Message: fmt.Sprintf("bucket range %d exceeds %d; pigeonhole sorting is best kept at or below 2^20 buckets",
			r, e.warnRange),
		Range: r,
	})
}

func checkRange(n, start, endP1 int) error {
	if start < 0 || endP1 < start || endP1 > n {
		return fmt.Errorf("%w: [%d, %d) of length %d", ErrRange, start, endP1, n)
	}
	return nil
}
