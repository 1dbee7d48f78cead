// Package waveform synthesizes smooth, boundary-anchored curves from a small
// vector of shape coefficients.
//
// A curve with l = floor((len(params)+1)/2) basis pairs is
//
//	w(t) = s * (1 + sum_{i<l} c[i]*t^(i+1) + c[l+i]*log2(1+(2^(2i+3)-1)*t)/(2i+3))
//
// on the normalized axis t in [0, 1), where s is the start point and
// c = [a1, params...]. The leading coefficient a1 is derived by
// [EndpointCoefficient] so that w(0) = s and w(t) tends to the end point as
// t approaches 1.
//
// [Synthesize] is the one-shot form; [Synthesizer] binds a [core.Grid] and can
// write into caller-owned buffers.
package waveform
