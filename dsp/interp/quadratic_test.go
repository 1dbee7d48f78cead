package interp

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-waveform/internal/testutil"
)

func TestQuadraticSplinePassesThroughSamples(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		y    []float64
	}{
		{name: "three", x: []float64{0, 1, 2}, y: []float64{1, -1, 4}},
		{name: "uniform", x: testutil.Linspace(0, 10, 11), y: testutil.SampleCurve(math.Sin, 10, 11)},
		{name: "non-uniform", x: []float64{0, 0.4, 0.8, 1, 1.2, 1.4, 1.6}, y: []float64{1, 0.8, 0.3, 0.2, 0.1, 0.05, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewQuadraticSpline(tt.x, tt.y)
			if err != nil {
				t.Fatalf("NewQuadraticSpline() error = %v", err)
			}
			got, err := s.Eval(tt.x)
			if err != nil {
				t.Fatalf("Eval() error = %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, got, tt.y, 1e-12)
		})
	}
}

func TestQuadraticSplineReproducesQuadratics(t *testing.T) {
	f := func(x float64) float64 { return 2 - 3*x + 0.5*x*x }
	x := []float64{-1, -0.2, 0.5, 0.9, 2, 3.5}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = f(v)
	}
	s, err := NewQuadraticSpline(x, y)
	if err != nil {
		t.Fatalf("NewQuadraticSpline() error = %v", err)
	}
	for _, v := range testutil.Linspace(-1, 3.5, 97) {
		got, err := s.At(v)
		if err != nil {
			t.Fatalf("At(%v) error = %v", v, err)
		}
		if math.Abs(got-f(v)) > 1e-12 {
			t.Fatalf("At(%v) = %v, want %v", v, got, f(v))
		}
	}
}

func TestQuadraticSplineSmoothAccuracy(t *testing.T) {
	f := func(x float64) float64 { return math.Exp(-2*x) * math.Cos(3*x) }
	x := testutil.Linspace(0, 1, 201)
	s, err := NewQuadraticSpline(x, testutil.SampleCurve(f, 1, 201))
	if err != nil {
		t.Fatalf("NewQuadraticSpline() error = %v", err)
	}
	dense := testutil.Linspace(0, 1, 1001)
	got, err := s.Eval(dense)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	want := testutil.SampleCurve(f, 1, 1001)
	if d, _ := testutil.MaxAbsDiff(got, want); d > 1e-5 {
		t.Fatalf("max error = %v, want < 1e-5", d)
	}
}

func TestQuadraticSplineDomain(t *testing.T) {
	s, err := NewQuadraticSpline([]float64{1, 2, 3, 4}, []float64{0, 1, 0, 1})
	if err != nil {
		t.Fatalf("NewQuadraticSpline() error = %v", err)
	}
	lo, hi := s.Domain()
	if lo != 1 || hi != 4 {
		t.Fatalf("Domain() = (%v, %v), want (1, 4)", lo, hi)
	}
	for _, x := range []float64{0.999, 4.001, math.NaN()} {
		if _, err := s.At(x); !errors.Is(err, ErrOutOfDomain) {
			t.Fatalf("At(%v) error = %v, want ErrOutOfDomain", x, err)
		}
	}
	if _, err := s.Eval([]float64{2, 5}); !errors.Is(err, ErrOutOfDomain) {
		t.Fatalf("Eval() error = %v, want ErrOutOfDomain", err)
	}
}

func TestNewQuadraticSplineErrors(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		y    []float64
		want error
	}{
		{name: "two samples", x: []float64{0, 1}, y: []float64{0, 1}, want: ErrInsufficientSamples},
		{name: "empty", x: nil, y: nil, want: ErrInsufficientSamples},
		{name: "mismatch", x: []float64{0, 1, 2}, y: []float64{0, 1}, want: ErrLengthMismatch},
		{name: "duplicate site", x: []float64{0, 1, 1}, y: []float64{0, 1, 2}, want: ErrUnsortedSamples},
		{name: "decreasing", x: []float64{0, 2, 1}, y: []float64{0, 1, 2}, want: ErrUnsortedSamples},
		{name: "nan site", x: []float64{0, math.NaN(), 1}, y: []float64{0, 1, 2}, want: ErrUnsortedSamples},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewQuadraticSpline(tt.x, tt.y); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestKnotVector(t *testing.T) {
	got := knotVector([]float64{0, 1, 2, 3, 4})
	testutil.RequireSliceNearlyEqual(t, got, []float64{0, 0, 0, 1.5, 2.5, 4, 4, 4}, 0)
}
