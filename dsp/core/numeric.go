package core

import "math"

const defaultEpsilon = 1e-12

var nan = math.NaN()

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampBlock clamps x componentwise into [lo[i], hi[i]] in-place.
// Values below lo are set to lo and values above hi are set to hi.
// Slices must have equal length. Panics if lengths differ.
func ClampBlock(x, lo, hi []float64) {
	if len(lo) != len(x) || len(hi) != len(x) {
		panic("core: slice length mismatch")
	}
	for i, v := range x {
		x[i] = Clamp(v, lo[i], hi[i])
	}
}

// AllFinite reports whether x contains neither NaN nor Inf.
func AllFinite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}
	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}
	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}
	return diff/largest <= eps
}
