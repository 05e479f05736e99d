package geom

import "errors"

// Sentinel errors for the hard-failure cases: operations that are
// mathematically undefined on their input. Callers are expected to check
// IsValid / IsPlanar / IsClosed beforehand rather than branching on these.
var (
	// ErrZeroVector is returned when an operation needs a direction but
	// the operand has zero length.
	ErrZeroVector = errors.New("zero-length vector")

	// ErrZeroDivisor is returned when dividing by an exactly-zero scalar.
	ErrZeroDivisor = errors.New("division by zero")

	// ErrDegenerateLine is returned when a direction-dependent operation
	// is applied to a line whose endpoints coincide.
	ErrDegenerateLine = errors.New("degenerate line")

	// ErrDegeneratePlane is returned when a plane cannot be constructed
	// because its defining vectors are zero or parallel.
	ErrDegeneratePlane = errors.New("degenerate plane")

	// ErrNonAffine is returned by transform decomposition on a singular
	// (zero-determinant) matrix.
	ErrNonAffine = errors.New("non-affine transform")

	// ErrNotClosed is returned by polyline queries that require a closed
	// polyline.
	ErrNotClosed = errors.New("polyline is not closed")

	// ErrNotPlanar is returned by polyline queries that require a planar
	// polyline.
	ErrNotPlanar = errors.New("polyline is not planar")
)
