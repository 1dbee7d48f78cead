package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGrid indicates a time grid with a non-positive or non-finite
// duration or sample rate.
var ErrInvalidGrid = errors.New("core: invalid time grid")

// Grid describes a uniform time axis over [0, Duration) sampled every
// 1/SampleRate seconds.
type Grid struct {
	Duration   float64
	SampleRate float64
}

// GridOption mutates a Grid.
type GridOption func(*Grid)

// DefaultGrid returns the unit-duration grid used for canonical curves.
func DefaultGrid() Grid {
	return Grid{
		Duration:   1,
		SampleRate: 3000,
	}
}

// WithDuration sets the grid duration (t_final).
func WithDuration(duration float64) GridOption {
	return func(g *Grid) {
		if duration > 0 && !math.IsInf(duration, 0) {
			g.Duration = duration
		}
	}
}

// WithSampleRate sets the grid sample rate.
func WithSampleRate(sampleRate float64) GridOption {
	return func(g *Grid) {
		if sampleRate > 0 && !math.IsInf(sampleRate, 0) {
			g.SampleRate = sampleRate
		}
	}
}

// NewGrid applies opts on top of DefaultGrid.
func NewGrid(opts ...GridOption) Grid {
	g := DefaultGrid()
	for _, opt := range opts {
		if opt != nil {
			opt(&g)
		}
	}
	return g
}

// Validate reports whether g describes a usable, non-empty grid.
func (g Grid) Validate() error {
	if !(g.Duration > 0) || math.IsInf(g.Duration, 0) {
		return fmt.Errorf("%w: duration must be > 0: %v", ErrInvalidGrid, g.Duration)
	}
	if !(g.SampleRate > 0) || math.IsInf(g.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be > 0: %v", ErrInvalidGrid, g.SampleRate)
	}
	if g.Len() == 0 {
		return fmt.Errorf("%w: duration %v at %v Hz yields no samples", ErrInvalidGrid, g.Duration, g.SampleRate)
	}
	return nil
}

// Step returns the sample spacing in seconds.
func (g Grid) Step() float64 {
	return 1.0 / g.SampleRate
}

// Len returns floor(Duration*SampleRate), or 0 for an invalid grid.
func (g Grid) Len() int {
	n := g.Duration * g.SampleRate
	if !(n >= 1) || math.IsInf(n, 0) {
		return 0
	}
	return int(math.Floor(n))
}

// Times returns the absolute sample times k*Step().
func (g Grid) Times() []float64 {
	out := make([]float64, g.Len())
	step := g.Step()
	for k := range out {
		out[k] = float64(k) * step
	}
	return out
}

// Normalized returns the sample times divided by Duration, so the values
// cover [0, 1).
func (g Grid) Normalized() []float64 {
	return g.NormalizedInto(nil)
}

// NormalizedInto is Normalized writing into buf, reusing its capacity.
func (g Grid) NormalizedInto(buf []float64) []float64 {
	out := EnsureLen(buf, g.Len())
	step := g.Step()
	for k := range out {
		out[k] = float64(k) * step / g.Duration
	}
	return out
}
