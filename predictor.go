package ccsds123

import (
	"math/big"

	"github.com/cocosip/go-ccsds123/internal/numeric"
)

// localSum computes the wide neighbor-oriented local sum σ (spec section 4.1)
// for pixel (z, y, x) of rep, the sample-representative plane. The very first
// pixel of a band (t=0, i.e. y=0 and x=0) is defined as 0 rather than left
// truly undefined: the weight-update step still consumes the local-difference
// vector built from this value at t=0 (see DESIGN.md), matching the reference
// Python implementation's local_sums, which returns 0 for that case instead
// of skipping the call.
func localSum(rep *Image, z, y, x int) int64 {
	switch {
	case y == 0 && x == 0:
		return 0
	case y == 0:
		return 4 * rep.At(z, 0, x-1)
	case x == 0:
		return 2 * (rep.At(z, y-1, 0) + rep.At(z, y-1, 1))
	case x == rep.Nx-1:
		return rep.At(z, y, x-1) + rep.At(z, y-1, x-1) + 2*rep.At(z, y-1, x)
	default:
		return rep.At(z, y, x-1) + rep.At(z, y-1, x-1) + rep.At(z, y-1, x) + rep.At(z, y-1, x+1)
	}
}

// localDiffVector builds the local-difference vector U (spec section 4.2) in
// lock-step with the weight-vector ordering: three directional entries
// (N, W, NW) followed by up to numBands central entries, one per previous
// band already available at this z.
func localDiffVector(rep *Image, z, y, x int, sigma int64, numBands int) []int64 {
	var dN, dW, dNW int64
	switch {
	case y == 0:
		dN, dW, dNW = 0, 0, 0
	case x == 0:
		dN = 4*rep.At(z, y-1, x) - sigma
		dW, dNW = dN, dN
	default:
		dN = 4*rep.At(z, y-1, x) - sigma
		dW = 4*rep.At(z, y, x-1) - sigma
		dNW = 4*rep.At(z, y-1, x-1) - sigma
	}

	n := numeric.Min(numBands, z)
	u := make([]int64, 3+n)
	u[0], u[1], u[2] = dN, dW, dNW
	for i := 1; i <= n; i++ {
		u[2+i] = 4*rep.At(z-i, y, x) - sigma
	}
	return u
}

// initWeights constructs the default weight vector W at t=0 of band z (spec
// section 4.3): zero directional entries, then a geometrically-decaying
// chain of central entries seeded from ⌊(7/8)·2^Ω⌋.
func initWeights(omega, numBands, z int) []int64 {
	n := numeric.Min(numBands, z)
	w := make([]int64, 3+n)
	if n >= 1 {
		w[3] = numeric.FloorDiv(int64(7)<<uint(omega), 8)
		for i := 4; i < 3+n; i++ {
			w[i] = numeric.FloorDiv(w[i-1], 8)
		}
	}
	return w
}

// prediction holds the per-pixel quantities the predictor produces that
// downstream stages (quantizer, mapper, weight update) all need.
type prediction struct {
	sigma int64
	u     []int64
	sHR   int64
	sDR   int64
	sHat  int64
}

// predict runs spec section 4.4 for one pixel. prevBandSample is s'(z-1,y,x)
// (only consulted when t=0 and z>0); it is ignored otherwise.
func predict(p Parameters, d Derived, rep *Image, w []int64, z, y, x, t int, prevBandSample int64) prediction {
	sigma := localSum(rep, z, y, x)
	u := localDiffVector(rep, z, y, x, sigma, p.NumBands)

	var dHat int64
	for i := range w {
		dHat += w[i] * u[i]
	}

	section1 := dHat + (int64(1)<<uint(p.Omega))*(sigma-4*d.SMid)
	reduced := numeric.SignedMod(section1, uint(p.Register))
	sHRPre := reduced + (int64(1)<<uint(p.Omega+2))*d.SMid + (int64(1) << uint(p.Omega+1))
	lo := (int64(1) << uint(p.Omega+2)) * d.SMin
	hi := (int64(1)<<uint(p.Omega+2))*d.SMax + (int64(1) << uint(p.Omega+1))
	sHR := numeric.Clip(sHRPre, lo, hi)

	var sDR int64
	if t == 0 {
		if z == 0 || p.NumBands == 0 {
			sDR = 2 * d.SMid
		} else {
			sDR = 2 * prevBandSample
		}
	} else {
		sDR = numeric.FloorDivPow2(sHR, uint(p.Omega+1))
	}
	sHat := numeric.FloorDivPow2(sDR, 1)

	return prediction{sigma: sigma, u: u, sHR: sHR, sDR: sDR, sHat: sHat}
}

// quantized holds the quantizer/sample-representative outputs of spec
// section 4.5.
type quantized struct {
	q      int64
	sHatQ  int64
	sPrime int64
}

// quantizeAndRepresent runs spec section 4.5 for one pixel, given the actual
// sample s and the prediction pr. At t=0 the quantized residual is the exact
// (unquantized) residual regardless of z — see DESIGN.md for why this
// module departs from the distilled spec's "t=0, z=0: q=s_mid" branch, which
// would discard the first sample of the image entirely and break the
// lossless round-trip property the spec itself requires.
func quantizeAndRepresent(p Parameters, d Derived, s int64, pr prediction, t int) quantized {
	delta := s - pr.sHat

	var q int64
	if t == 0 {
		q = delta
	} else {
		m := int64(p.MaxError)
		q = numeric.Sign(delta) * numeric.FloorDiv(numeric.Abs(delta)+m, 2*m+1)
	}

	sHatQ := numeric.Clip(pr.sHat+q*(2*int64(p.MaxError)+1), d.SMin, d.SMax)

	var sPrime int64
	switch {
	case t == 0:
		sPrime = s
	case p.Theta == 0 && p.Phi == 0 && p.Psi == 0:
		sPrime = sHatQ
	default:
		theta := int64(p.Theta)
		phi := int64(p.Phi)
		psi := int64(p.Psi)
		signQ := numeric.Sign(q)
		term := 4*(int64(1)<<uint(theta)-phi)*(sHatQ*(int64(1)<<uint(p.Omega))-signQ*int64(p.MaxError)*psi*(int64(1)<<uint(p.Omega-p.Theta))) +
			phi*pr.sHR - phi*(int64(1)<<uint(p.Omega+1))
		sDRrep := numeric.FloorDiv(term, int64(1)<<uint(p.Omega+p.Theta+1))
		sPrime = numeric.FloorDiv(sDRrep+1, 2)
	}

	return quantized{q: q, sHatQ: sHatQ, sPrime: sPrime}
}

// updateWeights runs spec section 4.7 for one pixel: every entry of w is
// nudged toward reducing the double-resolution prediction error e, at a rate
// that decays over the band (governed by rho) and differs between
// directional (χ_intra) and central (χ_inter) entries. The previous weight
// vector is replaced; w is not mutated in place.
func updateWeights(p Parameters, d Derived, w, u []int64, e int64, t, nx int) []int64 {
	rho := numeric.Clip(int64(p.VMin)+numeric.FloorDiv(int64(t-nx), int64(p.TInc)), int64(p.VMin), int64(p.VMax)) +
		int64(p.D) - int64(p.Omega)
	signE := numeric.Sign(e)

	next := make([]int64, len(w))
	for i := range w {
		chi := int64(p.ChiInter)
		if i < 3 {
			chi = int64(p.ChiIntra)
		}
		k := int(rho + chi)
		delta := halfRoundedScale(signE*u[i], k)
		next[i] = numeric.Clip(w[i]+delta, d.WMin, d.WMax)
	}
	return next
}

// halfRoundedScale computes ⌊½·(signedU·2^(-k) + 1)⌋ exactly, for any integer
// k including negative k (a left shift, i.e. an exact multiply). Spec
// section 4.7 writes this as a single floor around a expression that mixes a
// fractional power of two with an integer addition; big.Int evaluates that
// single floor exactly instead of splitting it into two rounding steps.
func halfRoundedScale(signedU int64, k int) int64 {
	base := big.NewInt(signedU)
	var num, den *big.Int
	if k >= 0 {
		num = new(big.Int).Add(base, new(big.Int).Lsh(big.NewInt(1), uint(k)))
		den = new(big.Int).Lsh(big.NewInt(1), uint(k+1))
	} else {
		num = new(big.Int).Lsh(base, uint(-k))
		num.Add(num, big.NewInt(1))
		den = big.NewInt(2)
	}
	q, m := new(big.Int), new(big.Int)
	q.DivMod(num, den, m) // Euclidean division with a positive divisor is floor division
	return q.Int64()
}
