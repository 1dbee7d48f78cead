// Package resample rebuilds dense curves from sparse samples.
//
// [Curve] treats its input as evenly spaced over [0, tFinal] inclusive,
// fits a [interp.QuadraticSpline] and evaluates it every 1/sampleRate
// seconds over [0, tFinal). [Reconstruct] does the same for samples taken at
// arbitrary, strictly increasing times.
//
// Both fail with [ErrInsufficientSamples] for fewer than three samples and
// with [ErrOutOfDomain] when a requested point falls outside the sampled
// range.
package resample
