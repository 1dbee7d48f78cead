package feasibility

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-waveform/dsp/waveform"
)

func TestInitialSlope(t *testing.T) {
	tests := []struct {
		name   string
		params []float64
		want   float64
	}{
		// a1 = -1, no log weight.
		{name: "zeros", params: []float64{0, 0, 0}, want: -1},
		// a1 = 1, coef = [1, -2, 0, 0].
		{name: "positive", params: []float64{-2, 0, 0}, want: 1},
		// a1 = -31, coef = [-31, 0, 30, 0]: -31 + 30*7/3.
		{name: "log weighted", params: []float64{0, 30, 0}, want: 39},
		// l = 1 for two params: coef = [-1.5, 0.5, 0], only coef[1] weighted by 7/3.
		{name: "even length", params: []float64{0.5, 0}, want: -1.5 + 0.5*7.0/3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InitialSlope(tt.params)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("InitialSlope() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProbeCoefficientMatchesCanonicalEndpoint(t *testing.T) {
	params := []float64{0.25, -0.5, 1.5}
	if got, want := ProbeCoefficient(params), waveform.EndpointCoefficient(1, 0, params); got != want {
		t.Fatalf("ProbeCoefficient() = %v, EndpointCoefficient(1, 0) = %v", got, want)
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		params []float64
		want   Verdict
	}{
		// Probe curve is 1 - t.
		{name: "linear", params: []float64{0, 0, 0}, want: Feasible},
		{name: "small perturbation", params: []float64{0.05, -0.05, 0.02}, want: Feasible},
		{name: "positive slope", params: []float64{-2, 0, 0}, want: RejectedSlope},
		// a1 = -51 gives slope -51.
		{name: "too steep", params: []float64{50, 0, 0}, want: RejectedSlope},
		// 1 - 3t + 2t^2 dips to -0.125 at t = 0.75.
		{name: "undershoot", params: []float64{2, 0, 0}, want: RejectedRange},
	}
	tester := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tester.Evaluate(tt.params)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInfeasibleReferenceScenario(t *testing.T) {
	reject, err := Infeasible([]float64{0, 0, 0})
	if err != nil {
		t.Fatalf("Infeasible() error = %v", err)
	}
	if reject {
		t.Fatal("expected [0 0 0] to be feasible")
	}
}

func TestInfeasibleAgreesWithProbeCurve(t *testing.T) {
	params := []float64{0.1, -0.3, 0.2}
	if InitialSlope(params) > 0 {
		t.Fatal("test vector must pass the slope stage")
	}
	wave, err := waveform.Synthesize(1, 0, 1, DefaultProbeSampleRate, params)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	inBand := true
	for _, v := range wave {
		if v < 0 || v > 1 {
			inBand = false
		}
	}
	reject, err := Infeasible(params)
	if err != nil {
		t.Fatalf("Infeasible() error = %v", err)
	}
	if reject == inBand {
		t.Fatalf("Infeasible() = %v, probe in band = %v", reject, inBand)
	}
}

func TestSlopeLimitOption(t *testing.T) {
	// Slope is -1.25: inside the default window, outside a limit of 1.
	params := []float64{0.25, 0, 0}
	if v, _ := New().Evaluate(params); v != Feasible {
		t.Fatalf("default Evaluate() = %v, want feasible", v)
	}
	if v, _ := New(WithSlopeLimit(1)).Evaluate(params); v != RejectedSlope {
		t.Fatalf("limited Evaluate() = %v, want slope rejection", v)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	tester := New(WithSlopeLimit(-1), WithProbeSampleRate(0))
	if tester.slopeLimit != DefaultSlopeLimit {
		t.Fatalf("slope limit = %v, want %v", tester.slopeLimit, DefaultSlopeLimit)
	}
	if rate := tester.probe.Grid().SampleRate; rate != DefaultProbeSampleRate {
		t.Fatalf("probe rate = %v, want %v", rate, DefaultProbeSampleRate)
	}
}

func TestEvaluateInvalidParameters(t *testing.T) {
	for _, params := range [][]float64{nil, {math.NaN(), 0, 0}, {0, math.Inf(-1), 0}} {
		reject, err := Infeasible(params)
		if !errors.Is(err, waveform.ErrInvalidParameters) {
			t.Fatalf("Infeasible(%v) error = %v, want ErrInvalidParameters", params, err)
		}
		if !reject {
			t.Fatalf("Infeasible(%v) = false, want rejection on error", params)
		}
	}
}

func TestTesterConcurrentUse(t *testing.T) {
	tester := New()
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if v, err := tester.Evaluate([]float64{0, 0, 0}); err != nil || v != Feasible {
					errs <- errors.New("unexpected verdict " + v.String())
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestVerdictString(t *testing.T) {
	if RejectedRange.String() != "range" || Verdict(9).String() != "Verdict(9)" {
		t.Fatalf("unexpected verdict strings %q %q", RejectedRange, Verdict(9))
	}
}
