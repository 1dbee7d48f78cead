// Package sampler draws feasible coefficient vectors by rejection sampling.
//
// Two strategies share one retry loop:
//
//   - [Sampler.Uniform] draws each vector uniformly from the box
//     [min, max] until the predicate accepts it.
//   - [Sampler.Normal] draws each component from a Gaussian centred on a
//     base vector with sigma[i] = fraction*(max[i]-min[i]), clamps the
//     vector into the box and retries until the predicate accepts it.
//
// The retry loop is unbounded by default. [WithMaxAttempts] opts into
// [ErrSamplingExhausted] once a single draw needs more attempts.
//
// A Sampler owns its random source and is not safe for concurrent use.
// The package-level [Uniform] and [Normal] create a fresh Sampler per call.
package sampler
