package waveform

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-waveform/dsp/core"
)

// ErrInvalidParameters indicates an unusable coefficient vector or boundary pair.
var ErrInvalidParameters = errors.New("waveform: invalid parameters")

// Synthesizer evaluates curves on a fixed time grid.
type Synthesizer struct {
	grid core.Grid
}

// NewSynthesizer creates a synthesizer on the grid described by opts.
func NewSynthesizer(opts ...core.GridOption) *Synthesizer {
	return &Synthesizer{grid: core.NewGrid(opts...)}
}

// Grid returns the synthesizer time grid.
func (s *Synthesizer) Grid() core.Grid {
	return s.grid
}

// Synthesize returns the curve from startpoint towards endpoint shaped by params.
func (s *Synthesizer) Synthesize(startpoint, endpoint float64, params []float64) ([]float64, error) {
	return s.SynthesizeInto(nil, startpoint, endpoint, params)
}

// SynthesizeInto is Synthesize writing into dst, reusing its capacity.
func (s *Synthesizer) SynthesizeInto(dst []float64, startpoint, endpoint float64, params []float64) ([]float64, error) {
	if err := s.grid.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}
	if err := validate(startpoint, endpoint, params); err != nil {
		return nil, err
	}

	coef := Coefficients(EndpointCoefficient(startpoint, endpoint, params), params)
	wave := core.EnsureLen(dst, s.grid.Len())
	accumulate(wave, s.grid, coef)
	vecmath.ScaleBlockInPlace(wave, startpoint)
	return wave, nil
}

// Synthesize samples the curve over [0, tFinal) at sampleRate.
// The result has floor(tFinal*sampleRate) samples and starts exactly at startpoint.
func Synthesize(startpoint, endpoint, tFinal, sampleRate float64, params []float64) ([]float64, error) {
	s := &Synthesizer{grid: core.Grid{Duration: tFinal, SampleRate: sampleRate}}
	return s.Synthesize(startpoint, endpoint, params)
}

// EndpointCoefficient derives the leading coefficient a1 that makes the curve
// approach endpoint as the normalized time tends to 1.
func EndpointCoefficient(startpoint, endpoint float64, params []float64) float64 {
	return endpoint/startpoint - 1 - sum(params)
}

// Coefficients returns the full basis coefficient sequence [a1, params...].
func Coefficients(a1 float64, params []float64) []float64 {
	coef := make([]float64, 0, len(params)+1)
	coef = append(coef, a1)
	return append(coef, params...)
}

// BasisPairs returns the number of polynomial/logarithmic term pairs used for
// numParams free coefficients. With an even numParams the last coefficient
// has no basis term.
func BasisPairs(numParams int) int {
	return (numParams + 1) / 2
}

// LogTerm returns the argument gain 2^(2i+3)-1 and the divisor 2i+3 of the
// i-th logarithmic basis term.
func LogTerm(i int) (gain, div float64) {
	e := 2*i + 3
	return math.Ldexp(1, e) - 1, float64(e)
}

func accumulate(wave []float64, grid core.Grid, coef []float64) {
	core.Fill(wave, 1)
	l := BasisPairs(len(coef) - 1)
	step := grid.Step()
	for i := 0; i < l; i++ {
		poly, logc := coef[i], coef[l+i]
		power := float64(i + 1)
		gain, div := LogTerm(i)
		for k := range wave {
			t := float64(k) * step / grid.Duration
			wave[k] = wave[k] + poly*math.Pow(t, power) + logc*math.Log2(1+gain*t)/div
		}
	}
}

func validate(startpoint, endpoint float64, params []float64) error {
	if len(params) == 0 {
		return fmt.Errorf("%w: at least one coefficient is required", ErrInvalidParameters)
	}
	if !core.AllFinite(params) {
		return fmt.Errorf("%w: coefficients must be finite: %v", ErrInvalidParameters, params)
	}
	if startpoint == 0 || math.IsNaN(startpoint) || math.IsInf(startpoint, 0) {
		return fmt.Errorf("%w: startpoint must be finite and non-zero: %v", ErrInvalidParameters, startpoint)
	}
	if math.IsNaN(endpoint) || math.IsInf(endpoint, 0) {
		return fmt.Errorf("%w: endpoint must be finite: %v", ErrInvalidParameters, endpoint)
	}
	return nil
}

func sum(x []float64) float64 {
	var total float64
	for _, v := range x {
		total += v
	}
	return total
}
