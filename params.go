package ccsds123

import "fmt"

// Parameters is the parameter set P of spec section 3: a single immutable
// bundle built once per image and shared, unmodified, by the compressor and
// the decompressor. Construct with NewParameters, which validates eagerly —
// mirroring the teacher's jpegls/nearlossless.Parameters.Validate, except
// where the teacher silently resets an out-of-range field to a default, this
// module refuses: silently changing a hyperspectral compression parameter
// would silently change the code stream the decompressor must agree on.
type Parameters struct {
	D int // dynamic range, 2..32

	Omega int // Ω, weight resolution, 4..19
	Theta int // Θ, sample-representative resolution, 0..4
	Phi   int // φ, damping, 0..2^Θ-1
	Psi   int // ψ, offset, 0..2^Θ-1

	NumBands int // P, previous bands used for prediction, 0..15
	Register int // R, register size in bits, max(32, D+Ω+1)..64

	VMin, VMax       int // weight-update rate bounds, -6 <= VMin < VMax <= 9
	TInc             int // t_inc, weight-update period, 2^4..2^11
	ChiIntra         int // χ_intra, -6..5
	ChiInter         int // χ_inter, -6..5
	MaxError         int // m_err, 0..s_max; 0 => lossless
	UnaryLimit       int // U_max, unary length limit, 8..32
	InitialCountExp  int // γ0, initial counter exponent, 1..8
	AccumInitConst   int // κ', 0..min(D-2, 14)
	CounterRescaleExp int // γ*, 4..11
	OutputWordBytes  int // L_out, 1..8 bytes
}

// Derived holds the values spec section 3 defines in terms of Parameters but
// that are cheap to precompute once instead of recomputing per pixel.
type Derived struct {
	SMin, SMax, SMid int64
	WMin, WMax       int64
	Kappa            int
}

// NewParameters validates p against the bounds in spec section 3 and returns
// the derived constants alongside it. The zero value of Parameters is not
// valid; always go through this constructor.
func NewParameters(p Parameters) (Parameters, Derived, error) {
	var d Derived

	if p.D < 2 || p.D > 32 {
		return p, d, fmt.Errorf("%w: D=%d must be in [2,32]", ErrParameterOutOfRange, p.D)
	}
	if p.Omega < 4 || p.Omega > 19 {
		return p, d, fmt.Errorf("%w: Omega=%d must be in [4,19]", ErrParameterOutOfRange, p.Omega)
	}
	if p.Theta < 0 || p.Theta > 4 {
		return p, d, fmt.Errorf("%w: Theta=%d must be in [0,4]", ErrParameterOutOfRange, p.Theta)
	}
	thetaMax := (1 << uint(p.Theta)) - 1
	if p.Phi < 0 || p.Phi > thetaMax {
		return p, d, fmt.Errorf("%w: Phi=%d must be in [0,%d]", ErrParameterOutOfRange, p.Phi, thetaMax)
	}
	if p.Psi < 0 || p.Psi > thetaMax {
		return p, d, fmt.Errorf("%w: Psi=%d must be in [0,%d]", ErrParameterOutOfRange, p.Psi, thetaMax)
	}
	if p.NumBands < 0 || p.NumBands > 15 {
		return p, d, fmt.Errorf("%w: NumBands=%d must be in [0,15]", ErrParameterOutOfRange, p.NumBands)
	}
	minRegister := 32
	if p.D+p.Omega+1 > minRegister {
		minRegister = p.D + p.Omega + 1
	}
	if p.Register < minRegister || p.Register > 64 {
		return p, d, fmt.Errorf("%w: Register=%d must be in [%d,64]", ErrParameterOutOfRange, p.Register, minRegister)
	}
	if p.VMin < -6 || p.VMax > 9 || p.VMin >= p.VMax {
		return p, d, fmt.Errorf("%w: VMin=%d VMax=%d must satisfy -6<=VMin<VMax<=9", ErrParameterOutOfRange, p.VMin, p.VMax)
	}
	if p.TInc < 1<<4 || p.TInc > 1<<11 {
		return p, d, fmt.Errorf("%w: TInc=%d must be in [2^4,2^11]", ErrParameterOutOfRange, p.TInc)
	}
	if p.ChiIntra < -6 || p.ChiIntra > 5 {
		return p, d, fmt.Errorf("%w: ChiIntra=%d must be in [-6,5]", ErrParameterOutOfRange, p.ChiIntra)
	}
	if p.ChiInter < -6 || p.ChiInter > 5 {
		return p, d, fmt.Errorf("%w: ChiInter=%d must be in [-6,5]", ErrParameterOutOfRange, p.ChiInter)
	}
	sMax := int64(1)<<uint(p.D-1) - 1
	sMin := -(int64(1) << uint(p.D-1))
	if p.MaxError < 0 || int64(p.MaxError) > sMax {
		return p, d, fmt.Errorf("%w: MaxError=%d must be in [0,%d]", ErrParameterOutOfRange, p.MaxError, sMax)
	}
	if p.UnaryLimit < 8 || p.UnaryLimit > 32 {
		return p, d, fmt.Errorf("%w: UnaryLimit=%d must be in [8,32]", ErrParameterOutOfRange, p.UnaryLimit)
	}
	if p.InitialCountExp < 1 || p.InitialCountExp > 8 {
		return p, d, fmt.Errorf("%w: InitialCountExp=%d must be in [1,8]", ErrParameterOutOfRange, p.InitialCountExp)
	}
	kappaPrimeMax := p.D - 2
	if kappaPrimeMax > 14 {
		kappaPrimeMax = 14
	}
	if p.AccumInitConst < 0 || p.AccumInitConst > kappaPrimeMax {
		return p, d, fmt.Errorf("%w: AccumInitConst=%d must be in [0,%d]", ErrParameterOutOfRange, p.AccumInitConst, kappaPrimeMax)
	}
	if p.CounterRescaleExp < 4 || p.CounterRescaleExp > 11 {
		return p, d, fmt.Errorf("%w: CounterRescaleExp=%d must be in [4,11]", ErrParameterOutOfRange, p.CounterRescaleExp)
	}
	if p.OutputWordBytes < 1 || p.OutputWordBytes > 8 {
		return p, d, fmt.Errorf("%w: OutputWordBytes=%d must be in [1,8]", ErrParameterOutOfRange, p.OutputWordBytes)
	}

	d.SMin = sMin
	d.SMax = sMax
	d.SMid = 0
	d.WMin = -(int64(1) << uint(p.Omega+2))
	d.WMax = int64(1)<<uint(p.Omega+2) - 1
	if p.AccumInitConst <= 30-p.D {
		d.Kappa = p.AccumInitConst
	} else {
		d.Kappa = 2*p.AccumInitConst + p.D - 30
	}

	return p, d, nil
}

// Lossless reports whether MaxError is zero, i.e. the quantizer and sample
// representative stages reduce to the identity (spec section 4.5).
func (p Parameters) Lossless() bool {
	return p.MaxError == 0
}
