// Package bitmask finds which bits differ across a range of integer keys and
// groups them into dense sections that can be used directly as bucket keys.
package bitmask

import (
	"fmt"
	"math/bits"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Mask has bit i set when at least two keys of a range differ in bit i.
type Mask uint64

func (m Mask) String() string {
	return fmt.Sprintf("%#x", uint64(m))
}

// Width returns the bit width of T.
func Width[T constraints.Signed]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

// Bits returns the two's complement pattern of v truncated to the width of T.
func Bits[T constraints.Signed](v T) uint64 {
	return uint64(v) & widthMask(Width[T]())
}

func widthMask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(width) - 1
}

// Of computes the mask of differing bits over a.
func Of[T constraints.Signed](a []T) Mask {
	if len(a) < 2 {
		return 0
	}
	first := a[0]
	var diff T
	for _, v := range a[1:] {
		diff |= v ^ first
	}
	return Mask(Bits(diff))
}

// OfFunc computes the mask of differing bits over the keys of a.
func OfFunc[E any, K constraints.Signed](a []E, key func(E) K) Mask {
	if len(a) < 2 {
		return 0
	}
	first := key(a[0])
	var diff K
	for i := 1; i < len(a); i++ {
		diff |= key(a[i]) ^ first
	}
	return Mask(Bits(diff))
}

// BitList returns the positions set in m, highest first.
func (m Mask) BitList() []int {
	list := make([]int, 0, bits.OnesCount64(uint64(m)))
	for v := uint64(m); v != 0; {
		b := bits.Len64(v) - 1
		list = append(list, b)
		v &^= 1 << uint(b)
	}
	return list
}

// Has reports whether bit b is set.
func (m Mask) Has(b int) bool {
	return uint64(m)&(1<<uint(b)) != 0
}
