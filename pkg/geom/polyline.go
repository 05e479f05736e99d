package geom

import (
	"fmt"
	"math"
)

// Polyline is an ordered sequence of points. A parameter t on a
// polyline is segmentIndex + localFraction: the integer part selects
// the segment, the fractional part interpolates inside it.
type Polyline []Point3d

// NewPolyline creates a polyline from a copy of the given points.
func NewPolyline(points []Point3d) Polyline {
	pl := make(Polyline, len(points))
	copy(pl, points)
	return pl
}

// Duplicate returns an independent copy of the polyline.
func (pl Polyline) Duplicate() Polyline {
	return NewPolyline(pl)
}

// SegmentCount returns the number of segments: max(0, len-1).
func (pl Polyline) SegmentCount() int {
	if len(pl) < 2 {
		return 0
	}
	return len(pl) - 1
}

// IsClosed reports whether the polyline closes onto itself: more than
// two points, with the first and last equal within tol.
func (pl Polyline) IsClosed(tol float64) bool {
	return len(pl) > 2 && pl[0].Equals(pl[len(pl)-1], tol)
}

// IsValid reports whether the polyline is well-formed: at least two
// points, no duplicate consecutive points, and at least four points
// when closed.
func (pl Polyline) IsValid() bool {
	if len(pl) < 2 {
		return false
	}
	for i := 1; i < len(pl); i++ {
		if pl[i].Equals(pl[i-1], Epsilon) {
			return false
		}
	}
	if pl.IsClosed(Epsilon) && len(pl) < 4 {
		return false
	}
	return true
}

// Length returns the total arc length.
func (pl Polyline) Length() float64 {
	sum := 0.0
	for i := 1; i < len(pl); i++ {
		sum += pl[i-1].DistanceTo(pl[i])
	}
	return sum
}

// SegmentAt returns segment i as a line, ok=false when out of range.
func (pl Polyline) SegmentAt(i int) (Line, bool) {
	if i < 0 || i >= pl.SegmentCount() {
		return Line{}, false
	}
	return Line{From: pl[i], To: pl[i+1]}, true
}

// segmentIndex splits a parameter into a segment index and a local
// fraction, clamping both so out-of-range parameters evaluate at the
// nearest endpoint instead of extrapolating.
func (pl Polyline) segmentIndex(t float64) (int, float64) {
	idx := int(math.Floor(t))
	if idx < 0 {
		idx = 0
	}
	if idx > len(pl)-2 {
		idx = len(pl) - 2
	}
	return idx, Clamp(t-float64(idx), 0, 1)
}

// PointAt evaluates the polyline at parameter t. Out-of-range
// parameters clamp to the nearest endpoint.
func (pl Polyline) PointAt(t float64) Point3d {
	switch len(pl) {
	case 0:
		return Point3d{}
	case 1:
		return pl[0]
	}
	idx, frac := pl.segmentIndex(t)
	return pl[idx].Interpolate(pl[idx+1], frac)
}

// TangentAt returns the unit direction of the segment containing
// parameter t. A degenerate segment has no tangent.
func (pl Polyline) TangentAt(t float64) (Vector3d, error) {
	if len(pl) < 2 {
		return Vector3d{}, fmt.Errorf("Polyline.TangentAt: %w", ErrDegenerateLine)
	}
	idx, _ := pl.segmentIndex(t)
	return Line{From: pl[idx], To: pl[idx+1]}.UnitDirection()
}

// ClosestParameter returns the polyline parameter closest to p by a
// brute-force scan of every segment with the finite clamp. Near-zero
// segments count as single points rather than dividing by a vanishing
// length. On a tie the earliest segment wins; the scan order is stable.
func (pl Polyline) ClosestParameter(p Point3d) float64 {
	best := 0.0
	bestDist := math.Inf(1)
	for i := 0; i+1 < len(pl); i++ {
		seg := Line{From: pl[i], To: pl[i+1]}
		var local float64
		var pt Point3d
		if !seg.IsValid(Epsilon) {
			local, pt = 0, seg.From
		} else {
			local = seg.ClosestParameter(p, true)
			pt = seg.PointAt(local)
		}
		if d := pt.DistanceTo(p); d < bestDist {
			bestDist = d
			best = float64(i) + local
		}
	}
	return best
}

// ClosestPoint returns the point on the polyline closest to p.
func (pl Polyline) ClosestPoint(p Point3d) Point3d {
	return pl.PointAt(pl.ClosestParameter(p))
}

// FitPlane returns the plane spanned by the first three points, ok only
// when every remaining point is coplanar with it within tol. Fewer than
// three points, or a collinear leading triple, yield no plane.
func (pl Polyline) FitPlane(tol float64) (Plane, bool) {
	if len(pl) < 3 {
		return Plane{}, false
	}
	plane, err := NewPlaneFrom3Points(pl[0], pl[1], pl[2])
	if err != nil {
		return Plane{}, false
	}
	for _, p := range pl[3:] {
		if !plane.IsPointCoplanar(p, tol) {
			return Plane{}, false
		}
	}
	return plane, true
}

// IsPlanar reports whether all points lie in a common plane within tol.
func (pl Polyline) IsPlanar(tol float64) bool {
	_, ok := pl.FitPlane(tol)
	return ok
}

// Area returns the enclosed area of a closed planar polyline: the
// polyline is re-oriented onto the world XY plane and the shoelace sum
// taken over the projected vertices. ok is false when the polyline is
// open or non-planar.
func (pl Polyline) Area(tol float64) (float64, bool) {
	if !pl.IsClosed(tol) {
		return 0, false
	}
	plane, ok := pl.FitPlane(tol)
	if !ok {
		return 0, false
	}
	m := PlaneToPlane(plane, WorldXY())
	flat := pl.Transform(m)
	sum := 0.0
	n := len(flat)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += flat[i].X*flat[j].Y - flat[j].X*flat[i].Y
	}
	return math.Abs(sum) / 2, true
}

// IsPointInside reports whether p lies strictly inside a closed planar
// polyline, by the even-odd rule evaluated in the polyline's own plane.
// Querying an open or non-planar polyline is a hard failure. A point
// off the plane, or on the boundary within tol, is outside.
func (pl Polyline) IsPointInside(p Point3d, tol float64) (bool, error) {
	if !pl.IsClosed(tol) {
		return false, fmt.Errorf("Polyline.IsPointInside: %w", ErrNotClosed)
	}
	plane, ok := pl.FitPlane(tol)
	if !ok {
		return false, fmt.Errorf("Polyline.IsPointInside: %w", ErrNotPlanar)
	}
	if !plane.IsPointCoplanar(p, tol) {
		return false, nil
	}
	if pl.ClosestPoint(p).DistanceTo(p) < tol {
		return false, nil
	}

	m := PlaneToPlane(plane, WorldXY())
	q := p.Transform(m)
	flat := pl.Transform(m)

	inside := false
	n := len(flat)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		yi, yj := flat[i].Y, flat[j].Y
		if (yi > q.Y) == (yj > q.Y) {
			continue
		}
		xInt := flat[i].X + (q.Y-yi)*(flat[j].X-flat[i].X)/(yj-yi)
		if xInt > q.X {
			inside = !inside
		}
	}
	return inside, nil
}

// Smooth returns the polyline with every vertex pulled toward the
// midpoint of its neighbors: v + (amount/2)·(mid(prev,next) − v). A
// closed polyline smooths its seam with wraparound neighbors; an open
// one keeps its endpoints fixed. ok is false with fewer than three
// points.
func (pl Polyline) Smooth(amount float64) (Polyline, bool) {
	n := len(pl)
	if n < 3 {
		return nil, false
	}
	out := pl.Duplicate()
	half := amount / 2

	smoothAt := func(prev, cur, next Point3d) Point3d {
		mid := prev.Interpolate(next, 0.5)
		return cur.Add(mid.Sub(cur).Mul(half))
	}

	if pl.IsClosed(Epsilon) {
		// The last point duplicates the first; smooth the unique run
		// with wraparound and re-close afterwards.
		u := n - 1
		for i := 0; i < u; i++ {
			prev := pl[(i-1+u)%u]
			next := pl[(i+1)%u]
			out[i] = smoothAt(prev, pl[i], next)
		}
		out[u] = out[0]
		return out, true
	}
	for i := 1; i < n-1; i++ {
		out[i] = smoothAt(pl[i-1], pl[i], pl[i+1])
	}
	return out, true
}

// DeleteShortSegments removes interior points that sit within tol of
// their predecessor, always keeping the first and last point. The
// forward greedy pass can still leave a kept point crowding the final
// one, so a backward pass anchored at the true last point absorbs
// those. The two passes are not interchangeable with a single
// symmetric sweep.
func (pl Polyline) DeleteShortSegments(tol float64) Polyline {
	if len(pl) < 3 {
		return pl.Duplicate()
	}
	kept := Polyline{pl[0]}
	for i := 1; i < len(pl)-1; i++ {
		if pl[i].DistanceTo(kept[len(kept)-1]) >= tol {
			kept = append(kept, pl[i])
		}
	}
	last := pl[len(pl)-1]
	cut := len(kept)
	for cut > 1 && kept[cut-1].DistanceTo(last) < tol {
		cut--
	}
	return append(kept[:cut], last)
}

// Trim returns the sub-polyline between parameters t0 and t1. The
// parameters clamp to the polyline's domain; an empty interval yields
// nil.
func (pl Polyline) Trim(t0, t1 float64) Polyline {
	if pl.SegmentCount() == 0 {
		return nil
	}
	limit := float64(pl.SegmentCount())
	t0 = Clamp(t0, 0, limit)
	t1 = Clamp(t1, 0, limit)
	if t1 <= t0 {
		return nil
	}
	out := Polyline{pl.PointAt(t0)}
	for i := int(math.Floor(t0)) + 1; float64(i) < t1; i++ {
		p := pl[i]
		if !p.Equals(out[len(out)-1], Epsilon) {
			out = append(out, p)
		}
	}
	end := pl.PointAt(t1)
	if !end.Equals(out[len(out)-1], Epsilon) {
		out = append(out, end)
	}
	return out
}

// Transform returns the polyline with every point transformed.
func (pl Polyline) Transform(m Transform) Polyline {
	out := make(Polyline, len(pl))
	for i, p := range pl {
		out[i] = p.Transform(m)
	}
	return out
}

// BoundingBox returns the smallest axis-aligned box containing every
// point, the empty sentinel for an empty polyline.
func (pl Polyline) BoundingBox() BoundingBox {
	return NewBoundingBoxFromPoints(pl)
}
