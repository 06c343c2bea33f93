// Package ccsds123 implements the CCSDS 123.0-B adaptive linear predictor,
// residual mapper, and sample-adaptive Golomb-power-of-two entropy coder for
// lossless and near-lossless compression of multispectral and hyperspectral
// image cubes.
//
// A Compressor and a Decompressor are built from the same Parameters value
// and must agree on it exactly — the code stream carries no header of its
// own beyond the per-band literal and codeword sequence described in
// section 4.8. Image holds samples band-sequential (Nz outermost), matching
// the order both sides walk the cube in.
package ccsds123
