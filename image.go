package ccsds123

import "fmt"

// Image is the 3-D sample array of spec section 3: Nz spectral bands by Ny
// rows by Nx columns, stored band-sequential (z outermost) to match the
// pipeline's traversal order. Samples are backed by a flat slice so a whole
// band is one contiguous, cache-friendly run — the layout the teacher's
// Encoder.pixelsToIntegers / getNeighbors addressing uses for a single 2-D
// plane, generalized to a third (band) axis.
type Image struct {
	Nz, Ny, Nx int
	Samples    []int64 // length Nz*Ny*Nx; index via At/Set or index()
}

// NewImage allocates a zeroed image of the given dimensions.
func NewImage(nz, ny, nx int) (*Image, error) {
	if nz <= 0 || ny <= 0 || nx <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got Nz=%d Ny=%d Nx=%d", ErrDimensionMismatch, nz, ny, nx)
	}
	return &Image{
		Nz: nz, Ny: ny, Nx: nx,
		Samples: make([]int64, nz*ny*nx),
	}, nil
}

// NewImageFromSamples wraps an existing flat, band-sequential sample slice.
// The slice is used directly, not copied.
func NewImageFromSamples(nz, ny, nx int, samples []int64) (*Image, error) {
	if nz <= 0 || ny <= 0 || nx <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got Nz=%d Ny=%d Nx=%d", ErrDimensionMismatch, nz, ny, nx)
	}
	if len(samples) != nz*ny*nx {
		return nil, fmt.Errorf("%w: got %d samples, want %d (Nz*Ny*Nx)", ErrDimensionMismatch, len(samples), nz*ny*nx)
	}
	return &Image{Nz: nz, Ny: ny, Nx: nx, Samples: samples}, nil
}

// index converts a (z, y, x) triple into a flat offset into Samples.
func (img *Image) index(z, y, x int) int {
	return (z*img.Ny+y)*img.Nx + x
}

// At returns the sample at (z, y, x).
func (img *Image) At(z, y, x int) int64 {
	return img.Samples[img.index(z, y, x)]
}

// Set stores v at (z, y, x).
func (img *Image) Set(z, y, x int, v int64) {
	img.Samples[img.index(z, y, x)] = v
}

// validateRange checks every sample of img against [d.SMin, d.SMax], the
// bound spec section 7 calls "sample-out-of-range".
func (img *Image) validateRange(d Derived) error {
	for i, v := range img.Samples {
		if v < d.SMin || v > d.SMax {
			z := i / (img.Ny * img.Nx)
			rem := i % (img.Ny * img.Nx)
			y := rem / img.Nx
			x := rem % img.Nx
			return fmt.Errorf("%w: sample %d at (z=%d,y=%d,x=%d) outside [%d,%d]",
				ErrSampleOutOfRange, v, z, y, x, d.SMin, d.SMax)
		}
	}
	return nil
}
