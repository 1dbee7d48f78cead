// Package feasibility decides whether a coefficient vector yields an
// acceptable canonical curve.
//
// The test runs in two stages. A cheap analytic pre-filter requires the
// initial slope of the normalized basis to be non-positive and smaller in
// magnitude than a limit. Only then is the canonical probe curve
// (start 1, end 0, unit duration) synthesized and required to stay inside
// the unit band [0, 1].
package feasibility

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-waveform/dsp/core"
	"github.com/cwbudde/algo-waveform/dsp/waveform"
)

const (
	// DefaultSlopeLimit bounds the magnitude of the initial slope.
	DefaultSlopeLimit = 50
	// DefaultProbeSampleRate is the resolution of the canonical probe curve.
	DefaultProbeSampleRate = 3000
)

// Verdict is the outcome of a feasibility test.
type Verdict int

const (
	// Feasible means the vector passed both stages.
	Feasible Verdict = iota
	// RejectedSlope means the initial slope was positive or too steep.
	RejectedSlope
	// RejectedRange means the probe curve left the unit band.
	RejectedRange
)

func (v Verdict) String() string {
	switch v {
	case Feasible:
		return "feasible"
	case RejectedSlope:
		return "slope"
	case RejectedRange:
		return "range"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

type config struct {
	slopeLimit      float64
	probeSampleRate float64
}

// Option configures a Tester.
type Option func(*config)

// WithSlopeLimit overrides the exclusive bound on |slope|.
func WithSlopeLimit(limit float64) Option {
	return func(cfg *config) {
		if limit > 0 && !math.IsInf(limit, 0) {
			cfg.slopeLimit = limit
		}
	}
}

// WithProbeSampleRate overrides the probe curve resolution.
func WithProbeSampleRate(rate float64) Option {
	return func(cfg *config) {
		if rate >= 1 && !math.IsInf(rate, 0) {
			cfg.probeSampleRate = rate
		}
	}
}

// Tester evaluates coefficient vectors. It is safe for concurrent use.
type Tester struct {
	slopeLimit float64
	probe      *waveform.Synthesizer
	scratch    sync.Pool
}

type probeBuf struct {
	data []float64
}

// New creates a Tester.
func New(opts ...Option) *Tester {
	cfg := config{
		slopeLimit:      DefaultSlopeLimit,
		probeSampleRate: DefaultProbeSampleRate,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Tester{
		slopeLimit: cfg.slopeLimit,
		probe:      waveform.NewSynthesizer(core.WithDuration(1), core.WithSampleRate(cfg.probeSampleRate)),
		scratch: sync.Pool{
			New: func() any { return &probeBuf{} },
		},
	}
}

var defaultTester = New()

// Default returns the shared Tester with default limits.
func Default() *Tester {
	return defaultTester
}

// Infeasible reports whether params must be rejected using the default Tester.
func Infeasible(params []float64) (bool, error) {
	return defaultTester.Infeasible(params)
}

// Infeasible reports whether params must be rejected.
func (t *Tester) Infeasible(params []float64) (bool, error) {
	v, err := t.Evaluate(params)
	if err != nil {
		return true, err
	}
	return v != Feasible, nil
}

// Evaluate runs both stages and reports which one, if any, rejected params.
func (t *Tester) Evaluate(params []float64) (Verdict, error) {
	if len(params) == 0 || !core.AllFinite(params) {
		return RejectedSlope, fmt.Errorf("%w: coefficients must be non-empty and finite: %v",
			waveform.ErrInvalidParameters, params)
	}

	slope := InitialSlope(params)
	if slope > 0 || math.Abs(slope) >= t.slopeLimit {
		return RejectedSlope, nil
	}

	buf := t.scratch.Get().(*probeBuf)
	defer t.scratch.Put(buf)

	wave, err := t.probe.SynthesizeInto(buf.data, 1, 0, params)
	if err != nil {
		return RejectedRange, err
	}
	buf.data = wave

	lo, hi := core.MinMax(wave)
	if hi <= 1 && lo >= 0 {
		return Feasible, nil
	}
	return RejectedRange, nil
}

// ProbeCoefficient derives the leading coefficient of the canonical probe
// curve, which runs from 1 to 0.
func ProbeCoefficient(params []float64) float64 {
	var total float64
	for _, p := range params {
		total += p
	}
	return -1 - total
}

// InitialSlope returns the slope probe of the normalized basis at t = 0:
// the leading coefficient plus each logarithmic coefficient weighted by
// (2^(2i+3)-1)/(2i+3).
func InitialSlope(params []float64) float64 {
	coef := waveform.Coefficients(ProbeCoefficient(params), params)
	l := waveform.BasisPairs(len(params))
	slope := coef[0]
	for i := 0; i < l; i++ {
		gain, div := waveform.LogTerm(i)
		slope += gain / div * coef[l+i]
	}
	return slope
}
