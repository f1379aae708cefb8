package bitmask

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Section is a run of adjacent bit positions. Its key is (v & Mask) >> Shift,
// a value in [0, 2^Bits).
type Section struct {
	Bits  int
	Shift int
	Mask  uint64
}

func newSection(shift, width int) Section {
	return Section{Bits: width, Shift: shift, Mask: widthMask(width) << uint(shift)}
}

// Key extracts the section's bits from v.
func (s Section) Key(v uint64) uint64 {
	return (v & s.Mask) >> uint(s.Shift)
}

func (s Section) String() string {
	return fmt.Sprintf("{bits:%d shift:%d mask:%#x}", s.Bits, s.Shift, s.Mask)
}

// Sections groups a descending bit list into runs of adjacent positions no
// wider than maxBits. The result is ordered least significant run first.
func Sections(bitList []int, maxBits int) []Section {
	if maxBits < 1 {
		maxBits = 1
	}
	var sections []Section
	for i := len(bitList) - 1; i >= 0; {
		shift := bitList[i]
		width := 1
		i--
		for i >= 0 && bitList[i] == shift+width && width < maxBits {
			width++
			i--
		}
		sections = append(sections, newSection(shift, width))
	}
	return sections
}

// TotalBits sums the widths of sections.
func TotalBits(sections []Section) int {
	total := 0
	for _, s := range sections {
		total += s.Bits
	}
	return total
}

// PackKey gathers the bits selected by sections into one dense key. The most
// significant section lands in the most significant key bits, so two values
// that agree outside the sections keep their relative order as keys.
func PackKey(v uint64, sections []Section) uint64 {
	var key uint64
	for i := len(sections) - 1; i >= 0; i-- {
		s := sections[i]
		key = key<<uint(s.Bits) | s.Key(v)
	}
	return key
}

// UnpackKey scatters a packed key back onto the section positions.
func UnpackKey(key uint64, sections []Section) uint64 {
	var v uint64
	for _, s := range sections {
		v |= (key & widthMask(s.Bits)) << uint(s.Shift)
		key >>= uint(s.Bits)
	}
	return v
}

// Kind tags the outcome of analysing a range.
type Kind uint8

const (
	// Uniform ranges hold a single distinct key.
	Uniform Kind = iota
	// MixedSign ranges hold negative and non-negative keys and must be
	// split on the sign bit before any bucketing.
	MixedSign
	// Sectioned ranges can be bucketed on their sections directly.
	Sectioned
)

func (k Kind) String() string {
	switch k {
	case Uniform:
		return "uniform"
	case MixedSign:
		return "mixed_sign"
	case Sectioned:
		return "sectioned"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Analysis is the result of bit analysis over one range. Sections is only
// populated for Sectioned ranges.
type Analysis struct {
	Kind     Kind
	Mask     Mask
	Width    int
	Sections []Section
}

// Analyze classifies m for keys of the given width, grouping the differing
// bits into sections of at most maxBits.
func Analyze(m Mask, width, maxBits int) Analysis {
	an := Analysis{Mask: m, Width: width}
	switch {
	case m == 0:
		an.Kind = Uniform
	case m.Has(width - 1):
		an.Kind = MixedSign
	default:
		an.Kind = Sectioned
		an.Sections = Sections(m.BitList(), maxBits)
	}
	return an
}

// AnalyzeSlice runs Of and Analyze over a.
func AnalyzeSlice[T constraints.Signed](a []T, maxBits int) Analysis {
	return Analyze(Of(a), Width[T](), maxBits)
}

// Bits returns the number of key bits left undetermined by the analysis.
func (a Analysis) Bits() int {
	return TotalBits(a.Sections)
}
