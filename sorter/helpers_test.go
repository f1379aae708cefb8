package sorter

import (
	"sort"
	"sync"
	"testing"

	"github.com/ChristianF88/bitsort/diag"
	"golang.org/x/exp/constraints"
)

// recorder collects diagnostics emitted during a test.
type recorder struct {
	mu     sync.Mutex
	events []diag.Event
}

func (r *recorder) Emit(e diag.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) count(kind diag.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func newTestEngine(opts ...Option) (*Engine, *recorder) {
	rec := &recorder{}
	opts = append([]Option{WithReporter(diag.NewReporter(rec))}, opts...)
	return New(opts...), rec
}

func sortedCopy[T constraints.Signed](a []T) []T {
	b := append([]T(nil), a...)
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	return b
}

func assertEqual[T comparable](t *testing.T, got, want []T) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("mismatch at index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
