package interp

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrInsufficientSamples indicates fewer than three interpolation sites.
	ErrInsufficientSamples = errors.New("interp: at least 3 samples are required")
	// ErrOutOfDomain indicates an evaluation point outside the sampled range.
	ErrOutOfDomain = errors.New("interp: point outside interpolation domain")
	// ErrUnsortedSamples indicates sites that are not strictly increasing.
	ErrUnsortedSamples = errors.New("interp: sample sites must be strictly increasing")
	// ErrLengthMismatch indicates differing site and value counts.
	ErrLengthMismatch = errors.New("interp: sites and values differ in length")
	// ErrSingular indicates a collocation system that cannot be solved.
	ErrSingular = errors.New("interp: singular collocation system")
)

const degree = 2

// QuadraticSpline is an interpolating quadratic B-spline.
type QuadraticSpline struct {
	knots []float64
	coef  []float64
}

// NewQuadraticSpline fits the spline through (x[i], y[i]).
func NewQuadraticSpline(x, y []float64) (*QuadraticSpline, error) {
	n := len(x)
	if n != len(y) {
		return nil, fmt.Errorf("%w: %d sites, %d values", ErrLengthMismatch, n, len(y))
	}
	if n < degree+1 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientSamples, n)
	}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			return nil, fmt.Errorf("%w: site %d is %v", ErrUnsortedSamples, i, x[i])
		}
		if i > 0 && !(x[i] > x[i-1]) {
			return nil, fmt.Errorf("%w: x[%d]=%v, x[%d]=%v", ErrUnsortedSamples, i-1, x[i-1], i, x[i])
		}
	}

	s := &QuadraticSpline{knots: knotVector(x)}

	// Row i holds the basis values at x[i]; only columns i-1..i+1 can be
	// non-zero with this knot placement.
	sub := make([]float64, n)
	diag := make([]float64, n)
	sup := make([]float64, n)
	var basis [degree + 1]float64
	for i, xi := range x {
		j := s.span(xi)
		s.basis(j, xi, &basis)
		for k, b := range basis {
			if b == 0 {
				continue
			}
			switch col := j - degree + k; col - i {
			case -1:
				sub[i] = b
			case 0:
				diag[i] = b
			case 1:
				sup[i] = b
			default:
				return nil, fmt.Errorf("%w: basis %d active at site %d", ErrSingular, col, i)
			}
		}
	}

	coef, err := solveTridiagonal(sub, diag, sup, y)
	if err != nil {
		return nil, err
	}
	s.coef = coef
	return s, nil
}

// Domain returns the closed interval the spline is defined on.
func (s *QuadraticSpline) Domain() (lo, hi float64) {
	return s.knots[0], s.knots[len(s.knots)-1]
}

// At evaluates the spline at x.
func (s *QuadraticSpline) At(x float64) (float64, error) {
	lo, hi := s.Domain()
	if !(x >= lo && x <= hi) {
		return 0, fmt.Errorf("%w: %v not in [%v, %v]", ErrOutOfDomain, x, lo, hi)
	}
	j := s.span(x)
	var basis [degree + 1]float64
	s.basis(j, x, &basis)
	var v float64
	for k, b := range basis {
		v += b * s.coef[j-degree+k]
	}
	return v, nil
}

// Eval evaluates the spline at every point of xs into a new slice.
func (s *QuadraticSpline) Eval(xs []float64) ([]float64, error) {
	out := make([]float64, len(xs))
	for i, x := range xs {
		v, err := s.At(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// knotVector builds [x0 x0 x0 m1 .. m_{n-3} xn xn xn] with m_j the midpoint
// of x[j] and x[j+1].
func knotVector(x []float64) []float64 {
	n := len(x)
	t := make([]float64, 0, n+degree+1)
	for i := 0; i <= degree; i++ {
		t = append(t, x[0])
	}
	for j := 1; j < n-2; j++ {
		t = append(t, (x[j]+x[j+1])/2)
	}
	for i := 0; i <= degree; i++ {
		t = append(t, x[n-1])
	}
	return t
}

// span returns j with knots[j] <= x < knots[j+1], clamped to the last
// non-empty interval so the right end point is included.
func (s *QuadraticSpline) span(x float64) int {
	last := len(s.knots) - degree - 2
	j := sort.Search(len(s.knots), func(i int) bool { return s.knots[i] > x }) - 1
	if j < degree {
		return degree
	}
	if j > last {
		return last
	}
	return j
}

// basis writes the non-zero basis functions B_{j-2}, B_{j-1}, B_j at x.
func (s *QuadraticSpline) basis(j int, x float64, out *[degree + 1]float64) {
	var left, right [degree + 1]float64
	out[0] = 1
	for r := 1; r <= degree; r++ {
		left[r] = x - s.knots[j+1-r]
		right[r] = s.knots[j+r] - x
		saved := 0.0
		for k := 0; k < r; k++ {
			tmp := out[k] / (right[k+1] + left[r-k])
			out[k] = saved + right[k+1]*tmp
			saved = left[r-k] * tmp
		}
		out[r] = saved
	}
}

// solveTridiagonal solves the system with sub-, main- and super-diagonals
// by forward elimination and back substitution.
func solveTridiagonal(sub, diag, sup, rhs []float64) ([]float64, error) {
	n := len(diag)
	c := make([]float64, n)
	d := make([]float64, n)
	if diag[0] == 0 {
		return nil, fmt.Errorf("%w: zero pivot at row 0", ErrSingular)
	}
	c[0] = sup[0] / diag[0]
	d[0] = rhs[0] / diag[0]
	for i := 1; i < n; i++ {
		m := diag[i] - sub[i]*c[i-1]
		if m == 0 {
			return nil, fmt.Errorf("%w: zero pivot at row %d", ErrSingular, i)
		}
		c[i] = sup[i] / m
		d[i] = (rhs[i] - sub[i]*d[i-1]) / m
	}
	for i := n - 2; i >= 0; i-- {
		d[i] -= c[i] * d[i+1]
	}
	return d, nil
}
