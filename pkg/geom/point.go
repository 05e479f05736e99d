package geom

import "math"

// Point3d is an affine position in 3D space. It differs from Vector3d
// only in how it combines with other values (points subtract to vectors,
// vectors add to points) and in transform semantics: a point moves under
// translation, a vector does not.
type Point3d struct {
	X, Y, Z float64
}

// NewPoint3d creates a point from its coordinates.
func NewPoint3d(x, y, z float64) Point3d {
	return Point3d{X: x, Y: y, Z: z}
}

// Origin returns the world origin (0,0,0).
func Origin() Point3d {
	return Point3d{}
}

// Add returns the point displaced by v.
func (p Point3d) Add(v Vector3d) Point3d {
	return Point3d{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Sub returns the displacement vector from other to p.
func (p Point3d) Sub(other Point3d) Vector3d {
	return Vector3d{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// AsVector returns the position vector from the origin to p.
func (p Point3d) AsVector() Vector3d {
	return Vector3d{p.X, p.Y, p.Z}
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point3d) DistanceTo(other Point3d) float64 {
	dx, dy, dz := p.X-other.X, p.Y-other.Y, p.Z-other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Equals reports component-wise equality within tol.
func (p Point3d) Equals(other Point3d, tol float64) bool {
	return EqualWithin(p.X, other.X, tol) &&
		EqualWithin(p.Y, other.Y, tol) &&
		EqualWithin(p.Z, other.Z, tol)
}

// Interpolate returns p + (other-p)*t.
func (p Point3d) Interpolate(other Point3d, t float64) Point3d {
	return Point3d{
		X: p.X + (other.X-p.X)*t,
		Y: p.Y + (other.Y-p.Y)*t,
		Z: p.Z + (other.Z-p.Z)*t,
	}
}

// Transform applies the full affine map m to the point, translation
// included. A projective bottom row is honored by dividing through by
// the resulting weight.
func (p Point3d) Transform(m Transform) Point3d {
	x := m.m[0]*p.X + m.m[1]*p.Y + m.m[2]*p.Z + m.m[3]
	y := m.m[4]*p.X + m.m[5]*p.Y + m.m[6]*p.Z + m.m[7]
	z := m.m[8]*p.X + m.m[9]*p.Y + m.m[10]*p.Z + m.m[11]
	w := m.m[12]*p.X + m.m[13]*p.Y + m.m[14]*p.Z + m.m[15]
	if w != 0 && w != 1 {
		return Point3d{x / w, y / w, z / w}
	}
	return Point3d{x, y, z}
}
