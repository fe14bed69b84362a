// Package bits provides mask/shift helpers for packing small unsigned
// fields into 32-bit words.
//
// A field is described by its first bit and its width. All helpers assume
// bit0+width <= the bit size of T; callers keep their field tables as
// named constants so the ranges can be checked in one place.
package bits

import "golang.org/x/exp/constraints"

// Mask returns the mask covering width bits starting at bit0.
func Mask[T constraints.Unsigned](bit0, width uint) T {
	if width == 0 {
		return 0
	}
	return (^T(0) >> (bitSize[T]() - width)) << bit0
}

// Max returns the largest value representable in width bits.
func Max[T constraints.Unsigned](width uint) T {
	return Mask[T](0, width)
}

// Pack places v into the field [bit0, bit0+width). Bits of v that do not
// fit are dropped.
func Pack[T constraints.Unsigned](bit0, width uint, v T) T {
	return (v << bit0) & Mask[T](bit0, width)
}

// Unpack extracts the field [bit0, bit0+width) from packed.
func Unpack[T constraints.Unsigned](bit0, width uint, packed T) T {
	return (packed & Mask[T](bit0, width)) >> bit0
}

// Saturate clamps v to the largest value representable in width bits.
func Saturate[T constraints.Unsigned](width uint, v T) T {
	if m := Max[T](width); v > m {
		return m
	}
	return v
}

// Flag returns the single-bit mask at bit when set is true, 0 otherwise.
func Flag[T constraints.Unsigned](bit uint, set bool) T {
	if !set {
		return 0
	}
	return T(1) << bit
}

// Has reports whether bit is set in packed.
func Has[T constraints.Unsigned](bit uint, packed T) bool {
	return packed&(T(1)<<bit) != 0
}

func bitSize[T constraints.Unsigned]() uint {
	var n uint
	for v := ^T(0); v != 0; v >>= 1 {
		n++
	}
	return n
}
