package geom

import "math"

// Epsilon is the default linear tolerance: two coordinates closer than
// this are considered equal.
const Epsilon = 1e-6

// AngleEpsilon is the default angular tolerance in radians, used by the
// parallel and perpendicular classifications.
const AngleEpsilon = 0.001

// EqualWithin reports whether a and b differ by less than tol.
func EqualWithin(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// Clamp limits v to the interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
