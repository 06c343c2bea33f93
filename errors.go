package ccsds123

import "errors"

// Sentinel errors surfaced by the core pipeline. Wrap with fmt.Errorf("...: %w", ...)
// at call sites so callers can still errors.Is against the sentinel.
var (
	// ErrParameterOutOfRange is returned when a Parameters field violates the
	// bounds in spec section 3, or when a derived quantity (w_min/w_max, adjusted
	// kappa, register size) cannot be satisfied by the supplied fields.
	ErrParameterOutOfRange = errors.New("ccsds123: parameter out of range")

	// ErrSampleOutOfRange is returned when an input sample falls outside
	// [s_min, s_max] for the image's dynamic range D.
	ErrSampleOutOfRange = errors.New("ccsds123: sample out of range")

	// ErrTruncatedBitStream is returned by the decoder when the input is
	// exhausted mid-codeword or mid-literal.
	ErrTruncatedBitStream = errors.New("ccsds123: truncated bit stream")

	// ErrOversizedUnary is returned by the decoder when it reads more than
	// U_max consecutive one-bits without encountering the terminating zero or
	// the overflow-literal convention.
	ErrOversizedUnary = errors.New("ccsds123: oversized unary prefix")

	// ErrDimensionMismatch is returned when an image dimension is not
	// positive, or when an Image's backing slice does not match its declared
	// dimensions. Decompress always decodes exactly Nz*Ny*Nx pixels and does
	// not check the stream for data left over after them.
	ErrDimensionMismatch = errors.New("ccsds123: dimension mismatch")
)
