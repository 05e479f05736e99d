package geom

import (
	"fmt"
	"math"
)

// Line is a directed segment between two points. There is no separate
// infinite-line type: queries take a limitToFinite flag that clamps the
// parameter to [0,1] when set.
//
// A zero-length line (From == To) is legal to construct; direction-
// dependent operations on it fail with ErrDegenerateLine. The From and
// To fields are mutable; changing either silently changes Direction,
// Length and every derived query.
type Line struct {
	From, To Point3d
}

// NewLine creates the segment from one point to another.
func NewLine(from, to Point3d) Line {
	return Line{From: from, To: to}
}

// IsValid reports whether the endpoints are distinct within tol.
func (l Line) IsValid(tol float64) bool {
	return !l.From.Equals(l.To, tol)
}

// Direction returns To - From. Degenerate lines have no direction.
func (l Line) Direction() (Vector3d, error) {
	if !l.IsValid(Epsilon) {
		return Vector3d{}, fmt.Errorf("Line.Direction: %w", ErrDegenerateLine)
	}
	return l.To.Sub(l.From), nil
}

// UnitDirection returns the unitized direction of the line.
func (l Line) UnitDirection() (Vector3d, error) {
	d, err := l.Direction()
	if err != nil {
		return Vector3d{}, err
	}
	u, err := d.Unitize()
	if err != nil {
		return Vector3d{}, fmt.Errorf("Line.UnitDirection: %w", err)
	}
	return u, nil
}

// Length returns the distance between the endpoints.
func (l Line) Length() float64 {
	return l.From.DistanceTo(l.To)
}

// SetLength rescales the line to the given length keeping From fixed.
// A negative length flips the direction before scaling by its magnitude.
func (l *Line) SetLength(length float64) error {
	u, err := l.UnitDirection()
	if err != nil {
		return fmt.Errorf("Line.SetLength: %w", ErrDegenerateLine)
	}
	if length < 0 {
		u = u.Reverse()
		length = -length
	}
	l.To = l.From.Add(u.Mul(length))
	return nil
}

// Flip returns the line with its endpoints swapped.
func (l Line) Flip() Line {
	return Line{From: l.To, To: l.From}
}

// PointAt evaluates the parametrization From + t·(To-From). t in [0,1]
// covers the finite segment; other values extrapolate.
func (l Line) PointAt(t float64) Point3d {
	return l.From.Interpolate(l.To, t)
}

// PointAtLength returns the point at distance d from From along the
// line. On a degenerate line it returns From unchanged rather than
// failing; this asymmetry with Direction is intentional.
func (l Line) PointAtLength(d float64) Point3d {
	u, err := l.UnitDirection()
	if err != nil {
		return l.From
	}
	return l.From.Add(u.Mul(d))
}

// ClosestParameter returns the parameter of the point on the line
// closest to p, by projecting p onto the line's direction. With
// limitToFinite the parameter is clamped to [0,1]. A degenerate line
// projects everything to parameter 0.
func (l Line) ClosestParameter(p Point3d, limitToFinite bool) float64 {
	d := l.To.Sub(l.From)
	denom := d.Dot(d)
	if denom == 0 {
		return 0
	}
	t := p.Sub(l.From).Dot(d) / denom
	if limitToFinite {
		t = Clamp(t, 0, 1)
	}
	return t
}

// ClosestPoint returns the point on the line closest to p.
func (l Line) ClosestPoint(p Point3d, limitToFinite bool) Point3d {
	return l.PointAt(l.ClosestParameter(p, limitToFinite))
}

// DistanceTo returns the distance from p to the line.
func (l Line) DistanceTo(p Point3d, limitToFinite bool) float64 {
	return l.ClosestPoint(p, limitToFinite).DistanceTo(p)
}

// DistanceToLine returns the minimal distance between the two infinite
// lines: the closest-approach separation for non-parallel lines, the
// point-to-line distance for parallel or degenerate ones.
func (l Line) DistanceToLine(other Line) float64 {
	if ev, ok := CrossingLineLine(l, other, math.Inf(1), false); ok {
		return ev.PointA.DistanceTo(ev.PointB)
	}
	return other.DistanceTo(l.From, false)
}

// DistanceToPlane returns the minimal unsigned distance from the finite
// segment to the plane; zero when the segment crosses it.
func (l Line) DistanceToPlane(p Plane) float64 {
	d0 := p.DistanceTo(l.From)
	d1 := p.DistanceTo(l.To)
	if (d0 <= 0 && d1 >= 0) || (d0 >= 0 && d1 <= 0) {
		return 0
	}
	return math.Min(math.Abs(d0), math.Abs(d1))
}

// Extend returns the line with From moved back by startLength and To
// moved forward by endLength along the unit direction.
func (l Line) Extend(startLength, endLength float64) (Line, error) {
	u, err := l.UnitDirection()
	if err != nil {
		return Line{}, fmt.Errorf("Line.Extend: %w", ErrDegenerateLine)
	}
	return Line{
		From: l.From.Add(u.Mul(-startLength)),
		To:   l.To.Add(u.Mul(endLength)),
	}, nil
}

// Transform returns the line with both endpoints transformed.
func (l Line) Transform(m Transform) Line {
	return Line{From: l.From.Transform(m), To: l.To.Transform(m)}
}

// BoundingBox returns the axis-aligned box enclosing the segment.
func (l Line) BoundingBox() BoundingBox {
	return NewBoundingBoxFromPoints([]Point3d{l.From, l.To})
}
