package ccsds123

import "testing"

// seedParams returns the parameter set the seed scenarios S1-S6 share.
func seedParams() Parameters {
	return Parameters{
		D:                 10,
		Omega:             4,
		Theta:             4,
		Phi:               0,
		Psi:               0,
		NumBands:          2,
		Register:          45,
		VMin:              -6,
		VMax:              9,
		TInc:              16,
		ChiIntra:          1,
		ChiInter:          1,
		MaxError:          0,
		UnaryLimit:        8,
		InitialCountExp:   1,
		AccumInitConst:    0,
		CounterRescaleExp: 5,
		OutputWordBytes:   1,
	}
}

func roundTrip(t *testing.T, p Parameters, img *Image) *Image {
	t.Helper()
	c, err := NewCompressor(p)
	if err != nil {
		t.Fatalf("NewCompressor: %v", err)
	}
	encoded, err := c.Compress(img)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	dc, err := NewDecompressor(p)
	if err != nil {
		t.Fatalf("NewDecompressor: %v", err)
	}
	decoded, err := dc.Decompress(encoded, img.Nz, img.Ny, img.Nx)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	return decoded
}

func assertExact(t *testing.T, want, got *Image) {
	t.Helper()
	if len(want.Samples) != len(got.Samples) {
		t.Fatalf("sample count mismatch: want %d got %d", len(want.Samples), len(got.Samples))
	}
	errors := 0
	for i := range want.Samples {
		if want.Samples[i] != got.Samples[i] {
			errors++
			if errors <= 10 {
				t.Errorf("sample %d: want %d got %d", i, want.Samples[i], got.Samples[i])
			}
		}
	}
	if errors > 0 {
		t.Errorf("total mismatches: %d / %d", errors, len(want.Samples))
	}
}

// S1: single-voxel image, value 0.
func TestSeedS1SingleVoxel(t *testing.T) {
	p := seedParams()
	img, err := NewImageFromSamples(1, 1, 1, []int64{0})
	if err != nil {
		t.Fatalf("NewImageFromSamples: %v", err)
	}
	c, err := NewCompressor(p)
	if err != nil {
		t.Fatalf("NewCompressor: %v", err)
	}
	encoded, err := c.Compress(img)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(encoded) != 2 || encoded[0] != 0x00 || encoded[1] != 0x00 {
		t.Fatalf("expected two zero bytes (10-bit literal 0 padded to a byte boundary), got % x", encoded)
	}
	decoded := roundTrip(t, p, img)
	assertExact(t, img, decoded)
}

// S2: 3x3x3 all-zero volume.
func TestSeedS2ZeroVolume(t *testing.T) {
	p := seedParams()
	img, err := NewImage(3, 3, 3)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	decoded := roundTrip(t, p, img)
	assertExact(t, img, decoded)
}

// S3: 3x3x3 with a single unit spike at the image's first sample.
func TestSeedS3UnitSpike(t *testing.T) {
	p := seedParams()
	img, err := NewImage(3, 3, 3)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	img.Set(0, 0, 0, 1)
	decoded := roundTrip(t, p, img)
	assertExact(t, img, decoded)
}

// S4: the "known example" 3x3x3 fixture, entries in [0,9] (see DESIGN.md's
// Open-question decisions for why this is a representative stand-in rather
// than the reference test suite's literal array). Exercises every local-sum
// neighbor branch (band edges, row edges, column edges, interior) over a
// small, fully hand-inspectable volume.
func TestSeedS4KnownExample(t *testing.T) {
	p := seedParams()
	samples := []int64{
		0, 1, 2, 3, 4, 5, 6, 7, 8, // z=0
		9, 8, 7, 6, 5, 4, 3, 2, 1, // z=1
		0, 2, 4, 6, 8, 9, 7, 5, 3, // z=2
	}
	img, err := NewImageFromSamples(3, 3, 3, samples)
	if err != nil {
		t.Fatalf("NewImageFromSamples: %v", err)
	}
	decoded := roundTrip(t, p, img)
	assertExact(t, img, decoded)
}

// S5-style: a synthetic gradient cube exercising every local-sum and
// local-difference branch (band edges, row edges, column edges, interior).
func syntheticGradient(nz, ny, nx int, smin, smax int64) *Image {
	img, _ := NewImage(nz, ny, nx)
	span := smax - smin + 1
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				v := int64(z*17+y*5+x*3) % span
				img.Set(z, y, x, smin+v)
			}
		}
	}
	return img
}

func TestSeedS5Gradient(t *testing.T) {
	p := seedParams()
	_, d, err := NewParameters(p)
	if err != nil {
		t.Fatalf("NewParameters: %v", err)
	}
	img := syntheticGradient(4, 6, 7, d.SMin, d.SMax)
	decoded := roundTrip(t, p, img)
	assertExact(t, img, decoded)
}

// S6: a parameter sweep over P, gamma*, U_max on S5's input.
func TestSeedS6ParameterSweep(t *testing.T) {
	base := seedParams()
	_, d, err := NewParameters(base)
	if err != nil {
		t.Fatalf("NewParameters: %v", err)
	}
	img := syntheticGradient(4, 6, 7, d.SMin, d.SMax)

	for _, numBands := range []int{0, 1, 2} {
		for _, gammaStar := range []int{4, 5, 6} {
			for _, uMax := range []int{8, 16} {
				p := base
				p.NumBands = numBands
				p.CounterRescaleExp = gammaStar
				p.UnaryLimit = uMax
				t.Run("", func(t *testing.T) {
					decoded := roundTrip(t, p, img)
					assertExact(t, img, decoded)
				})
			}
		}
	}
}

// TestNearLosslessWithinBound checks property P2: every reconstructed sample
// lies within ±m_err of the original when MaxError > 0.
func TestNearLosslessWithinBound(t *testing.T) {
	p := seedParams()
	p.MaxError = 3
	_, d, err := NewParameters(p)
	if err != nil {
		t.Fatalf("NewParameters: %v", err)
	}
	img := syntheticGradient(3, 5, 5, d.SMin, d.SMax)
	decoded := roundTrip(t, p, img)

	for i := range img.Samples {
		diff := img.Samples[i] - decoded.Samples[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > int64(p.MaxError) {
			t.Fatalf("sample %d: |%d - %d| = %d exceeds MaxError %d",
				i, img.Samples[i], decoded.Samples[i], diff, p.MaxError)
		}
	}
}

// TestSampleOutOfRangeRejected checks the error-handling design of spec
// section 7: a sample outside [s_min, s_max] must be rejected before any
// bits are emitted.
func TestSampleOutOfRangeRejected(t *testing.T) {
	p := seedParams()
	c, err := NewCompressor(p)
	if err != nil {
		t.Fatalf("NewCompressor: %v", err)
	}
	img, _ := NewImageFromSamples(1, 1, 1, []int64{1000})
	if _, err := c.Compress(img); err == nil {
		t.Fatal("expected an out-of-range error, got nil")
	}
}

// TestTruncatedStreamRejected checks that decoding a short buffer returns an
// error rather than panicking or silently zero-filling.
func TestTruncatedStreamRejected(t *testing.T) {
	p := seedParams()
	dc, err := NewDecompressor(p)
	if err != nil {
		t.Fatalf("NewDecompressor: %v", err)
	}
	if _, err := dc.Decompress(nil, 3, 3, 3); err == nil {
		t.Fatal("expected a truncated-stream error, got nil")
	}
}
