// Package biquad implements second-order IIR filter sections in Direct
// Form II Transposed, together with the RBJ cookbook designs needed by a
// shelving/peaking equalizer.
//
// A Section keeps its two-sample delay line separate from its
// coefficients, so coefficients can be swapped in place on a running
// filter without a discontinuity in the output. The equalizer chain
// relies on this to change band gains without reallocating stages.
package biquad
