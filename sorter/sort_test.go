package sorter

import (
	"math/rand"
	"testing"

	"github.com/ChristianF88/bitsort/testutil"
)

func TestSortAuto(t *testing.T) {
	e, _ := newTestEngine()
	rng := rand.New(rand.NewSource(99))
	inputs := [][]int64{
		{-5, 3, -1, 0, 2},
		testutil.RandomInts[int64](rng, 5000, -100, 100),
		testutil.RandomInts[int64](rng, 5000, 0, 1<<40),
		testutil.RandomInts[int64](rng, 5000, -1<<63, 1<<63-1),
		{7, 7, 7},
		{},
	}
	for _, in := range inputs {
		a := append([]int64(nil), in...)
		Sort(e, a)
		assertEqual(t, a, sortedCopy(in))
		if !IsSorted(a) {
			t.Fatal("IsSorted disagrees with Sort")
		}
	}
}

func TestSortRange(t *testing.T) {
	e, _ := newTestEngine()
	a := []int32{4, 3, 2, 1}
	if err := SortRange(e, a, 0, 2); err != nil {
		t.Fatal(err)
	}
	assertEqual(t, a, []int32{3, 4, 2, 1})
}

func TestIsSortedFunc(t *testing.T) {
	if !IsSortedFunc([]keyed{{1, "a"}, {1, "b"}, {2, "c"}}, byK) {
		t.Error("expected sorted")
	}
	if IsSortedFunc([]keyed{{2, "a"}, {1, "b"}}, byK) {
		t.Error("expected unsorted")
	}
}

func TestNilEngineUsesDefault(t *testing.T) {
	a := []int32{3, -1, 2}
	Pigeonhole(nil, a)
	assertEqual(t, a, []int32{-1, 2, 3})
	if (*Engine)(nil).SectionBits() != DefaultSectionBits {
		t.Error("nil engine should report default section bits")
	}
}
