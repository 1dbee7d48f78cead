// Package time summarizes sampled curves in the time domain.
package time

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Summary holds time-domain statistics of a curve.
type Summary struct {
	Length  int
	Start   float64
	End     float64
	Max     float64
	MaxPos  int
	Min     float64
	MinPos  int
	Range   float64 // max - min
	Mean    float64
	RMS     float64
	MaxStep float64 // largest |x[i] - x[i-1]|
	// NonIncreasing is true when no sample exceeds its predecessor.
	NonIncreasing bool
}

// Summarize computes all statistics in a single pass.
func Summarize(curve []float64) Summary {
	n := len(curve)
	if n == 0 {
		return Summary{
			Start: math.NaN(),
			End:   math.NaN(),
			Max:   math.NaN(),
			Min:   math.NaN(),
			Mean:  math.NaN(),
		}
	}

	s := Summary{
		Length:        n,
		Start:         curve[0],
		End:           curve[n-1],
		Max:           curve[0],
		Min:           curve[0],
		NonIncreasing: true,
	}
	for i := 1; i < n; i++ {
		x := curve[i]
		if x > s.Max {
			s.Max = x
			s.MaxPos = i
		}
		if x < s.Min {
			s.Min = x
			s.MinPos = i
		}
		step := x - curve[i-1]
		if step > 0 {
			s.NonIncreasing = false
		}
		if a := math.Abs(step); a > s.MaxStep {
			s.MaxStep = a
		}
	}

	nf := float64(n)
	s.Range = s.Max - s.Min
	s.Mean = vecmath.Sum(curve) / nf
	s.RMS = math.Sqrt(vecmath.DotProduct(curve, curve) / nf)
	return s
}

// InBand reports whether every sample lies within [lo, hi].
func (s Summary) InBand(lo, hi float64) bool {
	return s.Length > 0 && s.Min >= lo && s.Max <= hi
}
