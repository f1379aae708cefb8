package testutil

import (
	"math/rand"
	"os"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/exp/constraints"
)

// RandomInts returns n values drawn uniformly from [min, max].
func RandomInts[T constraints.Signed](rng *rand.Rand, n int, min, max T) []T {
	span := uint64(max) - uint64(min) + 1
	out := make([]T, n)
	for i := range out {
		var off uint64
		if span == 0 { // full 64-bit range
			off = rng.Uint64()
		} else {
			off = rng.Uint64() % span
		}
		out[i] = min + T(off)
	}
	return out
}

// Record is a keyed element used to check stability.
type Record struct {
	Key int32
	ID  int
}

// RandomRecords returns n records with keys in [min, max] and IDs in input order.
func RandomRecords(rng *rand.Rand, n int, min, max int32) []Record {
	keys := RandomInts(rng, n, min, max)
	out := make([]Record, n)
	for i, k := range keys {
		out[i] = Record{Key: k, ID: i}
	}
	return out
}

// GenerateIntFile writes values one per line to a temporary file.
// Returns the file path and a cleanup function.
func GenerateIntFile(t *testing.T, values []int64) (string, func()) {
	t.Helper()

	var content strings.Builder
	for _, v := range values {
		content.WriteString(strconv.FormatInt(v, 10))
		content.WriteString("\n")
	}
	return WriteTempFile(t, "test_ints_*.txt", content.String())
}

// WriteTempFile writes content to a new temporary file.
func WriteTempFile(t *testing.T, pattern, content string) (string, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	tmpFile.Close()

	cleanup := func() {
		os.Remove(tmpFile.Name())
	}
	return tmpFile.Name(), cleanup
}
