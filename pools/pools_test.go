package pools

import "testing"

func TestGetCountsZeroed(t *testing.T) {
	b := NewBuffers()
	c := b.GetCounts(16)
	for i := range c {
		c[i] = i + 1
	}
	b.ReturnCounts(c)

	for i := 0; i < 4; i++ {
		again := b.GetCounts(8)
		if len(again) != 8 {
			t.Fatalf("expected length 8, got %d", len(again))
		}
		for j, v := range again {
			if v != 0 {
				t.Fatalf("slot %d not zeroed: %d", j, v)
			}
		}
		b.ReturnCounts(again)
	}
}

func TestGetValuesLength(t *testing.T) {
	b := NewBuffers()
	v := b.GetValues(300)
	if len(v) != 300 {
		t.Fatalf("expected length 300, got %d", len(v))
	}
	b.ReturnValues(v)
	if got := b.GetValues(10); len(got) != 10 {
		t.Fatalf("expected length 10, got %d", len(got))
	}
}

func TestOversizedBuffersAreNotPooled(t *testing.T) {
	b := NewBuffers()
	big := b.GetCounts(maxPooledLen + 1)
	if len(big) != maxPooledLen+1 {
		t.Fatalf("unexpected length %d", len(big))
	}
	b.ReturnCounts(big)
	if got := b.GetCounts(4); cap(got) > maxPooledLen {
		t.Error("oversized buffer came back from the pool")
	}
}

func TestNilBuffers(t *testing.T) {
	var b *Buffers
	if len(b.GetCounts(3)) != 3 || len(b.GetValues(3)) != 3 {
		t.Fatal("nil Buffers should still allocate")
	}
	b.ReturnCounts(nil)
	b.ReturnValues(nil)
}

func TestReset(t *testing.T) {
	b := NewBuffers()
	b.ReturnCounts(make([]int, 0, 64))
	b.Reset()
	if len(b.GetCounts(2)) != 2 {
		t.Fatal("pool unusable after reset")
	}
}
