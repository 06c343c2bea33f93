package ccsds123

import (
	"fmt"

	"github.com/google/uuid"
)

// Compressor runs the predictor/mapper/entropy-coder pipeline (spec sections
// 4.1-4.8) forward over an Image. Its RunID is assigned once at construction
// and tags every error its Compress calls return, so logs from concurrently
// running, independent Compressors can be told apart; every image compressed
// by the same Compressor carries the same RunID (spec section 5: no state is
// shared across images, only within one).
type Compressor struct {
	RunID   uuid.UUID
	Params  Parameters
	Derived Derived
}

// NewCompressor validates p once and returns a Compressor ready to compress
// any number of images sharing that parameter set.
func NewCompressor(p Parameters) (*Compressor, error) {
	p, d, err := NewParameters(p)
	if err != nil {
		return nil, err
	}
	return &Compressor{RunID: uuid.New(), Params: p, Derived: d}, nil
}

// Compress encodes img into a byte-aligned code stream (spec section 6).
// The returned slice is padded with zero bytes to a multiple of
// Params.OutputWordBytes.
func (c *Compressor) Compress(img *Image) ([]byte, error) {
	if err := img.validateRange(c.Derived); err != nil {
		return nil, fmt.Errorf("run %s: %w", c.RunID, err)
	}

	rep, err := NewImage(img.Nz, img.Ny, img.Nx)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", c.RunID, err)
	}

	bw := newBitWriter()
	dMask := (uint64(1) << uint(c.Params.D)) - 1

	for z := 0; z < img.Nz; z++ {
		w := initWeights(c.Params.Omega, c.Params.NumBands, z)
		var bc *bandCoder

		for y := 0; y < img.Ny; y++ {
			for x := 0; x < img.Nx; x++ {
				t := y*img.Nx + x
				if t == 0 {
					bc = newBandCoder(c.Derived, c.Params)
				}

				s := img.At(z, y, x)
				var prevBandSample int64
				if t == 0 && z > 0 {
					prevBandSample = rep.At(z-1, y, x)
				}

				pr := predict(c.Params, c.Derived, rep, w, z, y, x, t, prevBandSample)
				qz := quantizeAndRepresent(c.Params, c.Derived, s, pr, t)
				rep.Set(z, y, x, qz.sPrime)

				if t == 0 {
					bw.writeBits(uint64(s)&dMask, c.Params.D)
				} else {
					delta := mapResidual(c.Params, c.Derived, qz.q, pr.sHat, pr.sDR, t)
					encodeMapped(bw, bc, delta, c.Params)
				}

				e := 2*qz.sHatQ - pr.sDR
				w = updateWeights(c.Params, c.Derived, w, pr.u, e, t, img.Nx)
			}
		}
	}

	return padToWordSize(bw.bytes(), c.Params.OutputWordBytes), nil
}

// padToWordSize appends zero bytes until len(data) is a multiple of
// wordBytes, i.e. until the stream is a whole number of L_out-byte
// (8·L_out-bit) output words.
func padToWordSize(data []byte, wordBytes int) []byte {
	if wordBytes <= 1 {
		return data
	}
	if rem := len(data) % wordBytes; rem != 0 {
		data = append(data, make([]byte, wordBytes-rem)...)
	}
	return data
}
