package ccsds123

import "github.com/cocosip/go-ccsds123/internal/numeric"

// bandCoder holds the per-band running statistics of spec section 4.8: the
// counter Γ and accumulator A that drive the Golomb-power-of-two code
// parameter k. One bandCoder is live per band, created at t=0 and discarded
// after the band's last pixel (spec section 5's per-band-context lifetime).
type bandCoder struct {
	gamma int64
	accum int64
}

// newBandCoder resets (Γ, A) to their band-initial values (spec section 4.8,
// "At t=0 of each band").
func newBandCoder(d Derived, p Parameters) *bandCoder {
	gamma := int64(1) << uint(p.InitialCountExp)
	accum := numeric.FloorDiv((3*(int64(1)<<uint(d.Kappa+6))-49)*gamma, 128)
	return &bandCoder{gamma: gamma, accum: accum}
}

// selectK picks the Golomb-power-of-two parameter k from the current (Γ, A)
// (spec section 4.8). The set of k satisfying Γ·2^k ≤ threshold is a prefix
// of {1..D} since Γ·2^k grows with k, so scanning upward and keeping the
// last success finds the largest such k directly.
func selectK(gamma, accum int64, D int) int {
	threshold := accum + numeric.FloorDiv(49*gamma, 128)
	if 2*gamma > threshold {
		return 0
	}
	k := 0
	for kk := 1; kk <= D; kk++ {
		if gamma*(int64(1)<<uint(kk)) > threshold {
			break
		}
		k = kk
	}
	return k
}

// update advances (Γ, A) after coding one non-bootstrap pixel's mapped
// residual delta (spec section 4.8's rescale-on-overflow rule).
func (bc *bandCoder) update(delta int64, p Parameters) {
	limit := int64(1)<<uint(p.CounterRescaleExp) - 1
	if bc.gamma < limit {
		bc.accum += delta
		bc.gamma++
		return
	}
	bc.accum = numeric.FloorDiv(bc.accum+delta+1, 2)
	bc.gamma = numeric.FloorDiv(bc.gamma+1, 2)
}

// encodeMapped writes one t>=1 pixel's mapped residual delta as a
// Golomb-power-of-two codeword and advances (Γ, A).
func encodeMapped(bw *bitWriter, bc *bandCoder, delta int64, p Parameters) {
	k := selectK(bc.gamma, bc.accum, p.D)
	u := numeric.FloorDivPow2(delta, uint(k))
	if u < int64(p.UnaryLimit) {
		bw.writeUnary(int(u))
		if k > 0 {
			r := delta & ((int64(1) << uint(k)) - 1)
			bw.writeBits(uint64(r), k)
		}
	} else {
		bw.writeUnary(p.UnaryLimit)
		bw.writeBits(uint64(delta), p.D)
	}
	bc.update(delta, p)
}

// decodeMapped reads one t>=1 pixel's mapped residual and advances (Γ, A) to
// match the encoder's update exactly.
func decodeMapped(br *bitReader, bc *bandCoder, p Parameters) (int64, error) {
	k := selectK(bc.gamma, bc.accum, p.D)
	count, hit, err := br.readUnary(p.UnaryLimit)
	if err != nil {
		return 0, err
	}
	var delta int64
	if hit {
		lit, err := br.readBits(p.D)
		if err != nil {
			return 0, err
		}
		delta = int64(lit)
	} else {
		var r uint64
		if k > 0 {
			r, err = br.readBits(k)
			if err != nil {
				return 0, err
			}
		}
		delta = (int64(count) << uint(k)) | int64(r)
	}
	bc.update(delta, p)
	return delta, nil
}
