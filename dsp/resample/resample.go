package resample

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-waveform/dsp/core"
	"github.com/cwbudde/algo-waveform/dsp/interp"
)

var (
	// ErrInsufficientSamples indicates fewer than three input samples.
	ErrInsufficientSamples = interp.ErrInsufficientSamples
	// ErrOutOfDomain indicates a requested point outside the sampled range.
	ErrOutOfDomain = interp.ErrOutOfDomain
	// ErrInvalidRate indicates an unusable duration/sample-rate pair.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
)

// Curve resamples sparse, assumed evenly spaced over [0, tFinal], onto a
// uniform grid at sampleRate covering [0, tFinal).
func Curve(sparse []float64, tFinal, sampleRate float64) ([]float64, error) {
	if len(sparse) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientSamples, len(sparse))
	}
	grid := core.Grid{Duration: tFinal, SampleRate: sampleRate}
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRate, err)
	}

	spline, err := interp.NewQuadraticSpline(linspace(0, tFinal, len(sparse)), sparse)
	if err != nil {
		return nil, err
	}
	return spline.Eval(grid.Times())
}

// Reconstruct fits the samples (times[i], values[i]) and evaluates the
// interpolant every 1/sampleRate seconds from times[0] up to, but excluding,
// the last sample time.
func Reconstruct(times, values []float64, sampleRate float64) ([]float64, error) {
	if len(times) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientSamples, len(times))
	}
	spline, err := interp.NewQuadraticSpline(times, values)
	if err != nil {
		return nil, err
	}

	start := times[0]
	grid := core.Grid{Duration: times[len(times)-1] - start, SampleRate: sampleRate}
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRate, err)
	}

	at := grid.Times()
	for i := range at {
		at[i] += start
	}
	return spline.Eval(at)
}

// linspace returns n evenly spaced values over [start, stop] with the last
// value pinned to stop.
func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = float64(i)*step + start
	}
	out[n-1] = stop
	return out
}
