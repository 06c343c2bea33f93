// Package numeric collects the total integer operations the predictor, mapper,
// and entropy coder all need at more than one integer width: floor division,
// sign with zero treated as positive, and clipping. Generalizes the
// per-type Abs/Sign/Min/Max helpers the teacher repository hand-rolled once
// per package (jpegls/common/utils.go) into generic functions shared by every
// caller in this module.
package numeric

import "golang.org/x/exp/constraints"

// Sign returns +1 for non-negative x and -1 for negative x. Unlike math.Signbit
// or a naive three-way sign, zero maps to +1: the weight-update step (spec
// section 4.7) requires this so that a run of exactly-predicted pixels still
// nudges the weight vector rather than stalling it.
func Sign[T constraints.Signed](x T) T {
	if x >= 0 {
		return 1
	}
	return -1
}

// Abs returns the absolute value of x.
func Abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Clip constrains x to [lo, hi].
func Clip[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// FloorDiv performs floor division (toward negative infinity), unlike Go's
// native integer division which truncates toward zero. Used throughout the
// predictor and entropy coder wherever the spec writes "⌊ · ⌋" on a value that
// may be negative.
func FloorDiv[T constraints.Integer](a, b T) T {
	q := a / b
	r := a % b
	if r != 0 && ((r < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorDivPow2 computes FloorDiv(a, 1<<uint(shift)) without materializing the
// divisor, for shift in [0, bits of T). Equivalent to an arithmetic right
// shift for two's-complement integers, which Go's >> already is for signed
// types — this wrapper exists so call sites read like the spec's "⌊x / 2^k⌋"
// rather than relying on the reader to know Go's >> is already floor-correct
// for negative signed operands.
func FloorDivPow2[T constraints.Signed](a T, shift uint) T {
	return a >> shift
}

// SignExtend reinterprets the low bits bits of v (an unsigned literal read
// MSB-first off the wire) as a signed two's-complement integer of that
// width. Used wherever a D-bit literal stands for a value that may be
// negative (spec sections 4.8/4.9's t=0 bootstrap pixel).
func SignExtend(v uint64, bits int) int64 {
	shift := uint(64 - bits)
	return int64(v<<shift) >> shift
}

// SignedMod reduces x into [-2^(bits-1), 2^(bits-1)) using the modular
// reduction spec section 4.4 requires: take x modulo 2^bits with the result
// interpreted as a signed two's-complement value of that width, rather than
// Go's native truncation-on-overflow (which is undefined for the bit widths
// the spec needs, since bits is a runtime parameter, not always 64).
func SignedMod(x int64, bits uint) int64 {
	if bits >= 64 {
		return x
	}
	mask := (int64(1) << bits) - 1
	v := x & mask
	signBit := int64(1) << (bits - 1)
	if v&signBit != 0 {
		v -= int64(1) << bits
	}
	return v
}
