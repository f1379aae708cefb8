// Package diag carries sorting diagnostics. A Reporter is passed to the
// sorting engine explicitly, so which caller observes a one-time warning is
// decided by the Reporter it was handed and not by process-wide state.
package diag

import (
	"github.com/alphadose/haxmap"
)

// Kind identifies a diagnostic.
type Kind string

const (
	// OversizedRange is a performance warning: a bucket pass needed more
	// slots than the configured threshold. The sort still completes.
	OversizedRange Kind = "oversized_range"
	// InvalidRange is a usage guard: the derived numeric range could not be
	// used and the call returned leaving the data untouched.
	InvalidRange Kind = "invalid_range"
	// PigeonholeFallback reports that a key space was too wide to bucket and
	// the range was sorted by radix passes instead.
	PigeonholeFallback Kind = "pigeonhole_fallback"
)

// Event is a single diagnostic.
type Event struct {
	Kind    Kind
	Message string
	Range   uint64
}

// Sink receives events.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

type tee []Sink

func (t tee) Emit(e Event) {
	for _, s := range t {
		s.Emit(e)
	}
}

// Tee fans events out to every non-nil sink.
func Tee(sinks ...Sink) Sink {
	out := make(tee, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Reporter forwards events to a Sink and remembers which kinds were already
// reported once. It is safe for concurrent use.
type Reporter struct {
	sink  Sink
	latch *haxmap.Map[string, struct{}]
}

// NewReporter returns a Reporter writing to sink. A nil sink discards.
func NewReporter(sink Sink) *Reporter {
	if sink == nil {
		sink = Discard
	}
	return &Reporter{
		sink:  sink,
		latch: haxmap.New[string, struct{}](8),
	}
}

// Report emits e unconditionally. A nil Reporter drops the event.
func (r *Reporter) Report(e Event) {
	if r == nil {
		return
	}
	r.sink.Emit(e)
}

// ReportOnce emits e only if no event of the same kind was emitted through
// ReportOnce before. It returns whether e was emitted.
func (r *Reporter) ReportOnce(e Event) bool {
	if r == nil {
		return false
	}
	if _, loaded := r.latch.GetOrSet(string(e.Kind), struct{}{}); loaded {
		return false
	}
	r.sink.Emit(e)
	return true
}

// Reported reports whether kind went through ReportOnce already.
func (r *Reporter) Reported(kind Kind) bool {
	if r == nil {
		return false
	}
	_, ok := r.latch.Get(string(kind))
	return ok
}
