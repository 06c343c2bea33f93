package ccsds123

import "github.com/cocosip/go-ccsds123/internal/numeric"

// mapperRange computes θ, the half-width of the "safe" region around the
// predicted sample within which a mapped value can be recovered by parity
// alone, and reports which side of the min was the tighter bound — the
// decoder needs that same side to invert the overflow branch (spec section
// 4.6 / 4.10 both key off the identity of the theta that one is).
func mapperRange(p Parameters, d Derived, sHat int64, t int) (theta int64, sminIsTighter bool) {
	if t == 0 {
		a := sHat - d.SMin
		b := d.SMax - sHat
		if a <= b {
			return a, true
		}
		return b, false
	}
	m := int64(p.MaxError)
	a := numeric.FloorDiv(sHat-d.SMin+m, 2*m+1)
	b := numeric.FloorDiv(d.SMax-sHat+m, 2*m+1)
	if a <= b {
		return a, true
	}
	return b, false
}

// zetaSign implements (-1)^sDR from spec sections 4.6 and 4.10: +1 when the
// double-resolution predicted sample is even, -1 when odd. sDR's low bit
// survives Go's two's-complement representation regardless of sign, so a
// plain bitwise AND gives the right parity for negative sDR too.
func zetaSign(sDR int64) int64 {
	if sDR&1 != 0 {
		return -1
	}
	return 1
}

// mapResidual implements the bijective mapper of spec section 4.6: fold the
// signed quantized residual q into a non-negative δ in [0, 2^D - 1],
// preferring the direction away from the nearer of s_min/s_max so that an
// entropy coder built only for non-negative symbols never has to see a sign.
func mapResidual(p Parameters, d Derived, q, sHat, sDR int64, t int) int64 {
	theta, _ := mapperRange(p, d, sHat, t)
	absQ := numeric.Abs(q)
	if absQ > theta {
		return absQ + theta
	}
	if zq := zetaSign(sDR) * q; 0 <= zq && zq <= theta {
		return 2 * absQ
	}
	return 2*absQ - 1
}

// unmapResidual is the exact inverse of mapResidual: given the same sHat and
// sDR the encoder used (the decoder always reconstructs these itself before
// reading δ), recover q from δ.
func unmapResidual(p Parameters, d Derived, delta, sHat, sDR int64, t int) int64 {
	theta, sminIsTighter := mapperRange(p, d, sHat, t)
	if delta > 2*theta {
		if sminIsTighter {
			return delta - theta
		}
		return theta - delta
	}
	zeta := zetaSign(sDR)
	if delta&1 == 0 {
		return zeta * (delta / 2)
	}
	return -zeta * ((delta + 1) / 2)
}
