package testutil

// Linspace returns n evenly spaced values over [start, stop], both inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// SampleCurve evaluates f at n evenly spaced points over [0, tFinal].
func SampleCurve(f func(float64) float64, tFinal float64, n int) []float64 {
	x := Linspace(0, tFinal, n)
	for i, v := range x {
		x[i] = f(v)
	}
	return x
}
