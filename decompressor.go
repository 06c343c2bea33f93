package ccsds123

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cocosip/go-ccsds123/internal/numeric"
)

// Decompressor mirrors Compressor exactly (spec sections 4.9-4.11): for
// every pixel it reconstructs the same (σ, U, ŝ, s̃_dr) the compressor saw,
// so the two sides only ever need to exchange the entropy-coded residual
// stream, never any piece of predictor state.
type Decompressor struct {
	RunID   uuid.UUID
	Params  Parameters
	Derived Derived
}

// NewDecompressor validates p once and returns a Decompressor ready to
// decompress any number of streams encoded under that same parameter set.
func NewDecompressor(p Parameters) (*Decompressor, error) {
	p, d, err := NewParameters(p)
	if err != nil {
		return nil, err
	}
	return &Decompressor{RunID: uuid.New(), Params: p, Derived: d}, nil
}

// Decompress inverts Compressor.Compress given the same parameter set and
// the image dimensions (spec section 6; dimensions travel out of band, the
// code stream itself carries none).
func (dc *Decompressor) Decompress(data []byte, nz, ny, nx int) (*Image, error) {
	rep, err := NewImage(nz, ny, nx)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", dc.RunID, err)
	}
	out, err := NewImage(nz, ny, nx)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", dc.RunID, err)
	}

	br := newBitReader(data)

	for z := 0; z < nz; z++ {
		w := initWeights(dc.Params.Omega, dc.Params.NumBands, z)
		var bc *bandCoder

		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				t := y*nx + x
				if t == 0 {
					bc = newBandCoder(dc.Derived, dc.Params)
				}

				var prevBandSample int64
				if t == 0 && z > 0 {
					prevBandSample = rep.At(z-1, y, x)
				}

				pr := predict(dc.Params, dc.Derived, rep, w, z, y, x, t, prevBandSample)

				var s int64
				if t == 0 {
					lit, err := br.readBits(dc.Params.D)
					if err != nil {
						return nil, fmt.Errorf("run %s: %w", dc.RunID, err)
					}
					s = numeric.SignExtend(lit, dc.Params.D)
				} else {
					delta, err := decodeMapped(br, bc, dc.Params)
					if err != nil {
						return nil, fmt.Errorf("run %s: %w", dc.RunID, err)
					}
					q := unmapResidual(dc.Params, dc.Derived, delta, pr.sHat, pr.sDR, t)
					s = numeric.Clip(pr.sHat+q*(2*int64(dc.Params.MaxError)+1), dc.Derived.SMin, dc.Derived.SMax)
				}

				qz := quantizeAndRepresent(dc.Params, dc.Derived, s, pr, t)
				rep.Set(z, y, x, qz.sPrime)
				if t == 0 {
					out.Set(z, y, x, s)
				} else {
					out.Set(z, y, x, qz.sHatQ)
				}

				e := 2*qz.sHatQ - pr.sDR
				w = updateWeights(dc.Params, dc.Derived, w, pr.u, e, t, nx)
			}
		}
	}

	return out, nil
}
