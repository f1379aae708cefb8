package sorter

import (
	"math/rand"
	"testing"

	"github.com/ChristianF88/bitsort/testutil"
)

func TestOffsets(t *testing.T) {
	counts := []int{2, 0, 3, 1}
	offsets(counts)
	assertEqual(t, counts, []int{0, 2, 2, 5})
}

func TestRebuildStopsWhenFull(t *testing.T) {
	a := make([]int32, 3)
	calls := 0
	rebuild(a, []int{1, 2, 0, 0}, func(key int) int32 {
		calls++
		return int32(key * 10)
	})
	assertEqual(t, a, []int32{0, 10, 10})
	if calls != 2 {
		t.Errorf("expected 2 value lookups, got %d", calls)
	}
}

func TestSignSplit(t *testing.T) {
	tests := [][]int32{
		{},
		{-1},
		{1},
		{3, -1},
		{-5, 3, -1, 0, 2},
		{0, 0, 0},
		{-1, -2, -3},
	}
	rng := rand.New(rand.NewSource(3))
	tests = append(tests, testutil.RandomInts[int32](rng, 1000, -50, 50))

	for _, in := range tests {
		a := append([]int32(nil), in...)
		split := SignSplit(a)
		for i, v := range a {
			if i < split && v >= 0 {
				t.Fatalf("%v: non-negative %d before split %d", in, v, split)
			}
			if i >= split && v < 0 {
				t.Fatalf("%v: negative %d after split %d", in, v, split)
			}
		}
		assertEqual(t, sortedCopy(a), sortedCopy(in))
	}
}

func TestSignSplitStable(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	recs := testutil.RandomRecords(rng, 500, -20, 20)
	aux := make([]testutil.Record, len(recs))
	key := func(r testutil.Record) int32 { return r.Key }

	split := SignSplitStable(recs, aux, key)
	for i := 1; i < len(recs); i++ {
		sameSide := (i < split) == (i-1 < split)
		if sameSide && recs[i].ID < recs[i-1].ID {
			t.Fatalf("order not kept at %d: id %d after %d", i, recs[i].ID, recs[i-1].ID)
		}
	}
	for i, r := range recs {
		if (i < split) != (r.Key < 0) {
			t.Fatalf("record %+v on the wrong side of split %d", r, split)
		}
	}
}

func TestStablePartitionOneBit(t *testing.T) {
	a := []int32{5, 2, 7, 0, 4, 1}
	aux := make([]int32, len(a))
	n := stablePartition(a, aux, func(v int32) bool { return v&1 == 0 })
	if n != 3 {
		t.Fatalf("expected 3 even values, got %d", n)
	}
	assertEqual(t, a, []int32{2, 0, 4, 5, 7, 1})
}
