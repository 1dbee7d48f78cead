// Package interp provides the quadratic spline interpolant used to turn
// sparse curve samples into dense curves.
//
// [QuadraticSpline] is the interpolating quadratic B-spline through n >= 3
// strictly increasing sites. Its knot vector repeats each end site three
// times and places interior knots at the midpoints between consecutive
// sites, skipping the first and last midpoint. The resulting collocation
// system is tridiagonal.
//
// Evaluation outside [x0, x_{n-1}] is an error; the spline never
// extrapolates.
package interp
