package geom

import "fmt"

// Plane is an oriented plane carrying a full frame: an origin and three
// mutually orthonormal axes. The normal is the ZAxis. Constructors
// re-orthonormalize their inputs, so a Plane built through them always
// satisfies the frame invariant.
type Plane struct {
	Origin              Point3d
	XAxis, YAxis, ZAxis Vector3d
}

// NewPlane builds a plane from an origin and two spanning vectors.
// The frame is orthonormalized in a fixed order: unitize xAxis, unitize
// yAxis, derive ZAxis = XAxis × YAxis, then re-derive YAxis = ZAxis ×
// XAxis. The final re-derivation guarantees exact orthogonality even
// when the inputs are merely independent; do not reorder these steps.
func NewPlane(origin Point3d, xAxis, yAxis Vector3d) (Plane, error) {
	x, err := xAxis.Unitize()
	if err != nil {
		return Plane{}, fmt.Errorf("NewPlane: x axis: %w", ErrDegeneratePlane)
	}
	y, err := yAxis.Unitize()
	if err != nil {
		return Plane{}, fmt.Errorf("NewPlane: y axis: %w", ErrDegeneratePlane)
	}
	z, err := x.Cross(y).Unitize()
	if err != nil {
		return Plane{}, fmt.Errorf("NewPlane: axes are parallel: %w", ErrDegeneratePlane)
	}
	y = z.Cross(x)
	return Plane{Origin: origin, XAxis: x, YAxis: y, ZAxis: z}, nil
}

// NewPlaneFromNormal builds a plane through origin with the given
// normal. The in-plane axes are derived deterministically: X is the
// normal's perpendicular vector, Y = Z × X.
func NewPlaneFromNormal(origin Point3d, normal Vector3d) (Plane, error) {
	z, err := normal.Unitize()
	if err != nil {
		return Plane{}, fmt.Errorf("NewPlaneFromNormal: %w", ErrDegeneratePlane)
	}
	perp, err := normal.PerpendicularVector()
	if err != nil {
		return Plane{}, fmt.Errorf("NewPlaneFromNormal: %w", ErrDegeneratePlane)
	}
	x, err := perp.Unitize()
	if err != nil {
		return Plane{}, fmt.Errorf("NewPlaneFromNormal: %w", ErrDegeneratePlane)
	}
	y := z.Cross(x)
	return Plane{Origin: origin, XAxis: x, YAxis: y, ZAxis: z}, nil
}

// NewPlaneFrom3Points builds a plane through a with normal
// (b-a) × (c-a). Collinear or coincident points are a hard failure.
func NewPlaneFrom3Points(a, b, c Point3d) (Plane, error) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.IsZero(Epsilon) {
		return Plane{}, fmt.Errorf("NewPlaneFrom3Points: collinear points: %w", ErrDegeneratePlane)
	}
	return NewPlaneFromNormal(a, n)
}

// WorldXY returns the world XY plane with its canonical frame.
func WorldXY() Plane {
	return Plane{
		Origin: Point3d{},
		XAxis:  Vector3d{X: 1},
		YAxis:  Vector3d{Y: 1},
		ZAxis:  Vector3d{Z: 1},
	}
}

// Normal returns the plane normal (the ZAxis).
func (p Plane) Normal() Vector3d {
	return p.ZAxis
}

// Flip returns the plane with its normal reversed; the X axis is kept
// and the Y axis reversed so the frame stays right-handed.
func (p Plane) Flip() Plane {
	return Plane{
		Origin: p.Origin,
		XAxis:  p.XAxis,
		YAxis:  p.YAxis.Reverse(),
		ZAxis:  p.ZAxis.Reverse(),
	}
}

// Equation returns the coefficients (a,b,c,d) of the plane equation
// ax + by + cz + d = 0, with (a,b,c) the unit normal.
func (p Plane) Equation() (a, b, c, d float64) {
	n := p.Normal()
	return n.X, n.Y, n.Z, -n.Dot(p.Origin.AsVector())
}

// ClosestParameter returns the (u,v) frame coordinates of the
// projection of pt onto the plane. Each coordinate comes from an
// independent 1D projection onto the axis line through the origin;
// that shortcut is exact because the axes are orthonormal (it would
// not survive an oblique basis).
func (p Plane) ClosestParameter(pt Point3d) (u, v float64) {
	d := pt.Sub(p.Origin)
	return d.Dot(p.XAxis), d.Dot(p.YAxis)
}

// PointAt evaluates the plane at frame coordinates (u,v).
func (p Plane) PointAt(u, v float64) Point3d {
	return p.Origin.Add(p.XAxis.Mul(u)).Add(p.YAxis.Mul(v))
}

// ClosestPoint returns the projection of pt onto the plane.
func (p Plane) ClosestPoint(pt Point3d) Point3d {
	u, v := p.ClosestParameter(pt)
	return p.PointAt(u, v)
}

// DistanceTo returns the signed distance from pt to the plane: the
// Euclidean distance to the projection, negative on the side the
// normal points away from.
func (p Plane) DistanceTo(pt Point3d) float64 {
	d := pt.DistanceTo(p.ClosestPoint(pt))
	if pt.Sub(p.Origin).Dot(p.Normal()) < 0 {
		return -d
	}
	return d
}

// IsPointCoplanar reports whether pt lies on the plane within tol.
func (p Plane) IsPointCoplanar(pt Point3d, tol float64) bool {
	return pt.Equals(p.ClosestPoint(pt), tol)
}

// IsLineCoplanar reports whether both endpoints of l lie on the plane
// within tol.
func (p Plane) IsLineCoplanar(l Line, tol float64) bool {
	return p.IsPointCoplanar(l.From, tol) && p.IsPointCoplanar(l.To, tol)
}

// Transform returns the plane carried through m: the origin maps as a
// point and the frame is rebuilt from the transformed axes.
func (p Plane) Transform(m Transform) (Plane, error) {
	return NewPlane(p.Origin.Transform(m), p.XAxis.Transform(m), p.YAxis.Transform(m))
}
