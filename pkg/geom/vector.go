package geom

import (
	"fmt"
	"math"
)

// Vector3d is a free direction or displacement in 3D space. It has no
// fixed location; it adds to points and transforms by the linear part of
// a Transform only.
type Vector3d struct {
	X, Y, Z float64
}

// NewVector3d creates a vector from its components.
func NewVector3d(x, y, z float64) Vector3d {
	return Vector3d{X: x, Y: y, Z: z}
}

// Parallelism classifies the relative orientation of two vectors.
type Parallelism int

const (
	NotParallel Parallelism = iota
	Parallel
	AntiParallel
)

func (p Parallelism) String() string {
	switch p {
	case Parallel:
		return "parallel"
	case AntiParallel:
		return "anti-parallel"
	case NotParallel:
		return "not parallel"
	}
	return fmt.Sprintf("Parallelism(%d)", int(p))
}

// Add returns the sum of two vectors.
func (v Vector3d) Add(other Vector3d) Vector3d {
	return Vector3d{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns the difference of two vectors.
func (v Vector3d) Sub(other Vector3d) Vector3d {
	return Vector3d{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Mul returns the vector scaled by s.
func (v Vector3d) Mul(s float64) Vector3d {
	return Vector3d{v.X * s, v.Y * s, v.Z * s}
}

// Div returns the vector divided by s. Dividing by an exactly-zero
// scalar is a hard failure.
func (v Vector3d) Div(s float64) (Vector3d, error) {
	if s == 0 {
		return Vector3d{}, fmt.Errorf("Vector3d.Div: %w", ErrZeroDivisor)
	}
	return Vector3d{v.X / s, v.Y / s, v.Z / s}, nil
}

// Dot returns the dot product of two vectors.
func (v Vector3d) Dot(other Vector3d) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product v × other.
func (v Vector3d) Cross(other Vector3d) Vector3d {
	return Vector3d{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the Euclidean magnitude of the vector.
func (v Vector3d) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// SquaredLength returns the squared magnitude, avoiding the sqrt.
func (v Vector3d) SquaredLength() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Unitize returns the vector scaled to unit length. It fails only when
// the length is exactly zero; a tiny-but-nonzero vector unitizes
// normally.
func (v Vector3d) Unitize() (Vector3d, error) {
	l := v.Length()
	if l == 0 {
		return Vector3d{}, fmt.Errorf("Vector3d.Unitize: %w", ErrZeroVector)
	}
	return Vector3d{v.X / l, v.Y / l, v.Z / l}, nil
}

// Reverse returns the vector with all components negated.
func (v Vector3d) Reverse() Vector3d {
	return Vector3d{-v.X, -v.Y, -v.Z}
}

// IsZero reports whether the vector's length is below tol.
func (v Vector3d) IsZero(tol float64) bool {
	return v.Length() < tol
}

// IsUnit reports whether the vector's length is 1 within tol.
func (v Vector3d) IsUnit(tol float64) bool {
	return EqualWithin(v.Length(), 1, tol)
}

// Equals reports component-wise equality within tol.
func (v Vector3d) Equals(other Vector3d, tol float64) bool {
	return EqualWithin(v.X, other.X, tol) &&
		EqualWithin(v.Y, other.Y, tol) &&
		EqualWithin(v.Z, other.Z, tol)
}

// Interpolate returns v + (other-v)*t.
func (v Vector3d) Interpolate(other Vector3d, t float64) Vector3d {
	return Vector3d{
		X: v.X + (other.X-v.X)*t,
		Y: v.Y + (other.Y-v.Y)*t,
		Z: v.Z + (other.Z-v.Z)*t,
	}
}

// VectorAngle returns the unsigned angle between a and b in [0, π].
// Either operand being epsilon-zero is a hard failure.
func VectorAngle(a, b Vector3d) (float64, error) {
	if a.IsZero(Epsilon) || b.IsZero(Epsilon) {
		return 0, fmt.Errorf("VectorAngle: %w", ErrZeroVector)
	}
	cos := a.Dot(b) / (a.Length() * b.Length())
	return math.Acos(Clamp(cos, -1, 1)), nil
}

// SignedVectorAngle returns the angle from a to b in [0, 2π), measured
// counter-clockwise around normal: the unsigned angle, reflected to
// 2π-angle when normal · (a×b) is negative.
func SignedVectorAngle(a, b, normal Vector3d) (float64, error) {
	angle, err := VectorAngle(a, b)
	if err != nil {
		return 0, err
	}
	if normal.Dot(a.Cross(b)) < 0 {
		angle = 2*math.Pi - angle
	}
	return angle, nil
}

// IsParallelTo classifies the orientation of v relative to other within
// the angular tolerance tol. A zero-length operand classifies as
// Parallel; that convention is arbitrary but matches the behavior
// callers depend on.
func (v Vector3d) IsParallelTo(other Vector3d, tol float64) Parallelism {
	angle, err := VectorAngle(v, other)
	if err != nil {
		return Parallel
	}
	if angle < tol {
		return Parallel
	}
	if math.Pi-angle < tol {
		return AntiParallel
	}
	return NotParallel
}

// IsPerpendicularTo reports whether v and other meet at a right angle
// within the angular tolerance tol. A zero-length operand reports true;
// same convention caveat as IsParallelTo.
func (v Vector3d) IsPerpendicularTo(other Vector3d, tol float64) bool {
	angle, err := VectorAngle(v, other)
	if err != nil {
		return true
	}
	return EqualWithin(angle, math.Pi/2, tol)
}

// PerpendicularVector returns a vector perpendicular to v. The result is
// chosen deterministically by comparing component magnitudes so that the
// implied cross product never collapses, which crossing with a fixed
// axis would do whenever v is parallel to that axis.
func (v Vector3d) PerpendicularVector() (Vector3d, error) {
	if v.X == 0 && v.Y == 0 && v.Z == 0 {
		return Vector3d{}, fmt.Errorf("Vector3d.PerpendicularVector: %w", ErrZeroVector)
	}
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	switch {
	case ax >= ay && ax >= az:
		// X dominates: pair it with the larger of Y, Z.
		if ay >= az {
			return Vector3d{-v.Y, v.X, 0}, nil
		}
		return Vector3d{-v.Z, 0, v.X}, nil
	case ay >= ax && ay >= az:
		if ax >= az {
			return Vector3d{v.Y, -v.X, 0}, nil
		}
		return Vector3d{0, -v.Z, v.Y}, nil
	default:
		if ax >= ay {
			return Vector3d{v.Z, 0, -v.X}, nil
		}
		return Vector3d{0, v.Z, -v.Y}, nil
	}
}

// Transform applies the linear part of m to the vector. The translation
// components are ignored: a direction has no position, so only the
// upper-left 3x3 participates. This is the deliberate contrast with
// Point3d.Transform.
func (v Vector3d) Transform(m Transform) Vector3d {
	return Vector3d{
		X: m.m[0]*v.X + m.m[1]*v.Y + m.m[2]*v.Z,
		Y: m.m[4]*v.X + m.m[5]*v.Y + m.m[6]*v.Z,
		Z: m.m[8]*v.X + m.m[9]*v.Y + m.m[10]*v.Z,
	}
}
