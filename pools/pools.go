package pools

import (
	"sync"
)

// maxPooledLen caps the buffers kept for reuse. Larger histograms are rare
// (they already trigger an oversized-range warning) and are left to the GC.
const maxPooledLen = 1 << 20

// Buffers provides reusable scratch memory for bucket passes: histograms of
// counts and representative values indexed by bucket key.
type Buffers struct {
	Counts sync.Pool
	Values sync.Pool
}

// NewBuffers creates an empty set of pools.
func NewBuffers() *Buffers {
	return &Buffers{
		Counts: sync.Pool{
			New: func() interface{} {
				slice := make([]int, 0, 256)
				return &slice
			},
		},
		Values: sync.Pool{
			New: func() interface{} {
				slice := make([]uint64, 0, 256)
				return &slice
			},
		},
	}
}

// Default is the pool set used when an engine is not given its own.
var Default = NewBuffers()

// GetCounts returns a zeroed histogram of length n.
func (b *Buffers) GetCounts(n int) []int {
	if b == nil || n > maxPooledLen {
		return make([]int, n)
	}
	slicePtr := b.Counts.Get().(*[]int)
	s := *slicePtr
	if cap(s) < n {
		return make([]int, n)
	}
	s = s[:n]
	clear(s)
	return s
}

// ReturnCounts gives a histogram back to the pool.
func (b *Buffers) ReturnCounts(s []int) {
	if b == nil || cap(s) > maxPooledLen {
		return
	}
	emptySlice := s[:0]
	b.Counts.Put(&emptySlice)
}

// GetValues returns a representative buffer of length n. Its contents are
// not cleared: a slot is only read after it was written in the same pass.
func (b *Buffers) GetValues(n int) []uint64 {
	if b == nil || n > maxPooledLen {
		return make([]uint64, n)
	}
	slicePtr := b.Values.Get().(*[]uint64)
	s := *slicePtr
	if cap(s) < n {
		return make([]uint64, n)
	}
	return s[:n]
}

// ReturnValues gives a representative buffer back to the pool.
func (b *Buffers) ReturnValues(s []uint64) {
	if b == nil || cap(s) > maxPooledLen {
		return
	}
	emptySlice := s[:0]
	b.Values.Put(&emptySlice)
}

// Reset drops every pooled buffer (useful for testing)
func (b *Buffers) Reset() {
	b.Counts = sync.Pool{New: b.Counts.New}
	b.Values = sync.Pool{New: b.Values.New}
}
