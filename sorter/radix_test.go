package sorter

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/ChristianF88/bitsort/testutil"
)

type keyed struct {
	k  int32
	id string
}

func byK(r keyed) int32 { return r.k }

func recordKey(r testutil.Record) int32 { return r.Key }

func TestRadixMapperStability(t *testing.T) {
	e, _ := newTestEngine()
	a := []keyed{{5, "a"}, {1, ""}, {5, "b"}, {3, ""}}
	Radix(e, a, byK)
	assertEqual(t, a, []keyed{{1, ""}, {3, ""}, {5, "a"}, {5, "b"}})
}

func TestRadixSignMixing(t *testing.T) {
	e, _ := newTestEngine()
	a := []int32{-5, 3, -1, 0, 2}
	RadixInts(e, a)
	assertEqual(t, a, []int32{-5, -1, 0, 2, 3})
}

func TestRadixMatchesStableSort(t *testing.T) {
	rng := rand.New(rand.NewSource(77))
	ranges := [][2]int32{
		{-1000, 1000},
		{0, 1 << 20},
		{-1 << 31, 1<<31 - 1},
		{-7, -1},
		{1 << 30, 1<<30 + 3},
	}
	for _, sectionBits := range []int{1, 3, 8, DefaultSectionBits, 16} {
		for _, r := range ranges {
			t.Run(fmt.Sprintf("bits%d_%d_%d", sectionBits, r[0], r[1]), func(t *testing.T) {
				e, _ := newTestEngine(WithSectionBits(sectionBits))
				in := testutil.RandomRecords(rng, 3000, r[0], r[1])

				want := append([]testutil.Record(nil), in...)
				sort.SliceStable(want, func(i, j int) bool { return want[i].Key < want[j].Key })

				got := append([]testutil.Record(nil), in...)
				Radix(e, got, recordKey)
				assertEqual(t, got, want)
			})
		}
	}
}

func TestRadixInt64(t *testing.T) {
	e, _ := newTestEngine()
	rng := rand.New(rand.NewSource(8))
	in := testutil.RandomInts[int64](rng, 30000, -1<<63, 1<<63-1)
	a := append([]int64(nil), in...)
	RadixInts(e, a)
	assertEqual(t, a, sortedCopy(in))
}

func TestRadixUniformKeepsOrder(t *testing.T) {
	e, _ := newTestEngine()
	a := []keyed{{2, "x"}, {2, "y"}, {2, "z"}}
	Radix(e, a, byK)
	assertEqual(t, a, []keyed{{2, "x"}, {2, "y"}, {2, "z"}})
}

func TestRadixOneSideUniform(t *testing.T) {
	e, _ := newTestEngine()
	a := []keyed{{-3, "a"}, {5, "b"}, {-3, "c"}, {1, "d"}, {-3, "e"}}
	Radix(e, a, byK)
	assertEqual(t, a, []keyed{{-3, "a"}, {-3, "c"}, {-3, "e"}, {1, "d"}, {5, "b"}})
}

func TestRadixBoundaries(t *testing.T) {
	e, _ := newTestEngine()
	var empty []keyed
	Radix(e, empty, byK)
	one := []keyed{{9, "only"}}
	Radix(e, one, byK)
	assertEqual(t, one, []keyed{{9, "only"}})
}

func TestRadixIdempotent(t *testing.T) {
	e, _ := newTestEngine()
	rng := rand.New(rand.NewSource(4))
	a := testutil.RandomRecords(rng, 2000, -300, 300)
	Radix(e, a, recordKey)
	once := append([]testutil.Record(nil), a...)
	Radix(e, a, recordKey)
	assertEqual(t, a, once)
}

func TestRadixRange(t *testing.T) {
	e, _ := newTestEngine()
	a := []keyed{{9, "a"}, {3, "b"}, {1, "c"}, {3, "d"}, {0, "e"}}
	if err := RadixRange(e, a, byK, 1, 4); err != nil {
		t.Fatal(err)
	}
	assertEqual(t, a, []keyed{{9, "a"}, {1, "c"}, {3, "b"}, {3, "d"}, {0, "e"}})
	if err := RadixRange(e, a, byK, 4, 3); !errors.Is(err, ErrRange) {
		t.Errorf("expected ErrRange, got %v", err)
	}
}

func TestRadixOneBitMatchesCountingPass(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	in := testutil.RandomRecords(rng, 1000, 0, 255)

	narrow, _ := newTestEngine(WithSectionBits(1))
	wide, _ := newTestEngine(WithSectionBits(8))
	a := append([]testutil.Record(nil), in...)
	b := append([]testutil.Record(nil), in...)
	Radix(narrow, a, recordKey)
	Radix(wide, b, recordKey)
	assertEqual(t, a, b)
}
