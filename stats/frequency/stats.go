// Package frequency describes the spectral content of sampled curves.
//
// Smooth curves concentrate their energy in the lowest bins once the
// straight line between the end points is removed. Centroid and rolloff
// rise as a curve develops ripples.
package frequency

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrTooShort indicates a curve with fewer than two samples.
var ErrTooShort = errors.New("frequency: at least 2 samples are required")

// Stats holds frequency-domain statistics computed from a magnitude spectrum.
type Stats struct {
	BinCount int
	PeakBin  int
	Energy   float64 // sum of squared magnitudes
	Centroid float64 // spectral centroid (Hz)
	Rolloff  float64 // frequency below which 85% energy lies (Hz)
	Flatness float64 // geometric over arithmetic mean of power, 0..1
}

// Spectrum returns the one-sided magnitude spectrum of curve after removing
// the line through its first and last sample. The curve is zero-padded to
// the next power of two; the result has size/2+1 bins.
func Spectrum(curve []float64) ([]float64, error) {
	n := len(curve)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooShort, n)
	}

	size := 1
	for size < n {
		size <<= 1
	}

	in := make([]complex128, size)
	first, slope := curve[0], (curve[n-1]-curve[0])/float64(n-1)
	for i, v := range curve {
		in[i] = complex(v-(first+slope*float64(i)), 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("frequency: fft plan of size %d: %w", size, err)
	}
	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("frequency: forward fft: %w", err)
	}

	bins := size/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range re {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)
	return mag, nil
}

// binFreq returns the frequency in Hz of bin i of a one-sided spectrum.
func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// Calculate computes statistics from a one-sided magnitude spectrum
// (linear scale) of a curve sampled at sampleRate.
func Calculate(magnitude []float64, sampleRate float64) Stats {
	n := len(magnitude)
	if n < 2 {
		return Stats{BinCount: n}
	}

	s := Stats{BinCount: n}
	var sumMag, weighted, logPower float64
	peak := magnitude[0]
	zeroPower := false
	for i, m := range magnitude {
		p := m * m
		s.Energy += p
		sumMag += m
		weighted += m * binFreq(i, sampleRate, n)
		if m > peak {
			peak = m
			s.PeakBin = i
		}
		if p == 0 {
			zeroPower = true
		} else {
			logPower += math.Log(p)
		}
	}
	if sumMag == 0 {
		return s
	}

	s.Centroid = weighted / sumMag

	threshold := 0.85 * s.Energy
	var acc float64
	for i, m := range magnitude {
		acc += m * m
		if acc >= threshold {
			s.Rolloff = binFreq(i, sampleRate, n)
			break
		}
	}

	if !zeroPower {
		nf := float64(n)
		s.Flatness = math.Exp(logPower/nf) / (s.Energy / nf)
	}
	return s
}
