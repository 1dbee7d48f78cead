package sampler

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/cwbudde/algo-waveform/dsp/core"
	"github.com/cwbudde/algo-waveform/dsp/feasibility"
)

var (
	// ErrInvalidBounds indicates mismatched, empty, non-finite or inverted boundary vectors.
	ErrInvalidBounds = errors.New("sampler: invalid bounds")
	// ErrInvalidCount indicates a negative number of requested vectors.
	ErrInvalidCount = errors.New("sampler: invalid count")
	// ErrSamplingExhausted indicates that a draw hit the configured attempt cap.
	ErrSamplingExhausted = errors.New("sampler: sampling exhausted")
)

// Predicate reports whether params must be rejected and redrawn.
type Predicate func(params []float64) (reject bool, err error)

type config struct {
	src         rand.Source
	predicate   Predicate
	maxAttempts int
	logger      *slog.Logger
}

// Option configures a Sampler.
type Option func(*config)

// WithSeed seeds the sampler's own random source for reproducible draws.
func WithSeed(seed uint64) Option {
	return func(cfg *config) {
		cfg.src = rand.NewSource(seed)
	}
}

// WithSource uses src as the random source. The sampler takes ownership of it.
func WithSource(src rand.Source) Option {
	return func(cfg *config) {
		if src != nil {
			cfg.src = src
		}
	}
}

// WithPredicate replaces the default feasibility test.
func WithPredicate(p Predicate) Option {
	return func(cfg *config) {
		if p != nil {
			cfg.predicate = p
		}
	}
}

// WithMaxAttempts caps the attempts spent on a single vector. n <= 0 keeps
// the loop unbounded.
func WithMaxAttempts(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxAttempts = n
		}
	}
}

// WithLogger enables debug records per accepted vector.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Sampler draws feasible coefficient vectors.
type Sampler struct {
	src         rand.Source
	predicate   Predicate
	maxAttempts int
	logger      *slog.Logger
}

// New creates a Sampler. Without WithSeed or WithSource it is seeded from
// the wall clock.
func New(opts ...Option) *Sampler {
	cfg := config{
		predicate: feasibility.Default().Infeasible,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.src == nil {
		cfg.src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	return &Sampler{
		src:         cfg.src,
		predicate:   cfg.predicate,
		maxAttempts: cfg.maxAttempts,
		logger:      cfg.logger,
	}
}

// Uniform draws count vectors uniformly from the box using a fresh Sampler.
func Uniform(minBoundary, maxBoundary []float64, count int, opts ...Option) ([][]float64, error) {
	return New(opts...).Uniform(minBoundary, maxBoundary, count)
}

// Normal draws count vectors around base using a fresh Sampler.
func Normal(minBoundary, maxBoundary, base []float64, stdDevFraction float64, count int, opts ...Option) ([][]float64, error) {
	return New(opts...).Normal(minBoundary, maxBoundary, base, stdDevFraction, count)
}

// Uniform returns count accepted vectors drawn uniformly from
// [minBoundary, maxBoundary], in draw order.
func (s *Sampler) Uniform(minBoundary, maxBoundary []float64, count int) ([][]float64, error) {
	if err := validateBounds(minBoundary, maxBoundary); err != nil {
		return nil, err
	}

	bounds := make([]r1.Interval, len(minBoundary))
	for i := range bounds {
		bounds[i] = r1.Interval{Min: minBoundary[i], Max: maxBoundary[i]}
	}
	box := distmv.NewUniform(bounds, s.src)

	draw := func(dst []float64) {
		box.Rand(dst)
	}
	return s.collect("uniform", len(bounds), count, draw, nil)
}

// Normal returns count accepted vectors. Each component is drawn from
// Normal(base[i], stdDevFraction*(max[i]-min[i])) and the vector is clamped
// into the box before it is tested.
func (s *Sampler) Normal(minBoundary, maxBoundary, base []float64, stdDevFraction float64, count int) ([][]float64, error) {
	if err := validateBounds(minBoundary, maxBoundary); err != nil {
		return nil, err
	}
	if len(base) != len(minBoundary) {
		return nil, fmt.Errorf("%w: base has %d components, bounds have %d", ErrInvalidBounds, len(base), len(minBoundary))
	}
	if !core.AllFinite(base) {
		return nil, fmt.Errorf("%w: base must be finite: %v", ErrInvalidBounds, base)
	}
	if !(stdDevFraction >= 0) || math.IsInf(stdDevFraction, 0) {
		return nil, fmt.Errorf("%w: std dev fraction must be >= 0: %v", ErrInvalidBounds, stdDevFraction)
	}

	dists := make([]distuv.Normal, len(base))
	for i := range dists {
		dists[i] = distuv.Normal{
			Mu:    base[i],
			Sigma: stdDevFraction * (maxBoundary[i] - minBoundary[i]),
			Src:   s.src,
		}
	}

	draw := func(dst []float64) {
		for i := range dst {
			dst[i] = dists[i].Rand()
		}
	}
	clamp := func(dst []float64) {
		core.ClampBlock(dst, minBoundary, maxBoundary)
	}
	return s.collect("normal", len(base), count, draw, clamp)
}

// collect runs the shared accept-or-redraw loop: draw, clamp, test.
func (s *Sampler) collect(strategy string, dim, count int, draw, clamp func([]float64)) ([][]float64, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}

	out := make([][]float64, 0, count)
	for n := 0; n < count; n++ {
		params := make([]float64, dim)
		attempts := 0
		for {
			attempts++
			draw(params)
			if clamp != nil {
				clamp(params)
			}

			reject, err := s.predicate(params)
			if err != nil {
				return out, fmt.Errorf("sampler: %s draw %d: %w", strategy, n, err)
			}
			if !reject {
				break
			}
			if s.maxAttempts > 0 && attempts >= s.maxAttempts {
				s.logger.Warn("sampling exhausted",
					"strategy", strategy,
					"draw", n,
					"attempts", attempts,
				)
				return out, fmt.Errorf("%w: %s draw %d rejected %d times", ErrSamplingExhausted, strategy, n, attempts)
			}
		}
		s.logger.Debug("draw accepted",
			"strategy", strategy,
			"draw", n,
			"attempts", attempts,
		)
		out = append(out, params)
	}
	return out, nil
}

func validateBounds(minBoundary, maxBoundary []float64) error {
	if len(minBoundary) == 0 {
		return fmt.Errorf("%w: boundaries must not be empty", ErrInvalidBounds)
	}
	if len(minBoundary) != len(maxBoundary) {
		return fmt.Errorf("%w: min has %d components, max has %d", ErrInvalidBounds, len(minBoundary), len(maxBoundary))
	}
	if !core.AllFinite(minBoundary) || !core.AllFinite(maxBoundary) {
		return fmt.Errorf("%w: boundaries must be finite", ErrInvalidBounds)
	}
	for i := range minBoundary {
		if minBoundary[i] > maxBoundary[i] {
			return fmt.Errorf("%w: min[%d]=%v > max[%d]=%v", ErrInvalidBounds, i, minBoundary[i], i, maxBoundary[i])
		}
	}
	return nil
}
