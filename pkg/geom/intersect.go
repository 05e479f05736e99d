package geom

import "math"

// IntersectionEvent is the result of a closest-approach query between
// two lines: the parameter and closest point on each. For skew lines
// PointA and PointB differ; their separation is the gap between the
// lines.
type IntersectionEvent struct {
	ParameterA, ParameterB float64
	PointA, PointB         Point3d
}

// closestApproach solves the two-line closest-approach system in closed
// form (the classic Bourke formulation). ok is false when the lines are
// parallel or either line is degenerate.
func closestApproach(a, b Line) (ta, tb float64, ok bool) {
	p13 := a.From.Sub(b.From)
	p43 := b.To.Sub(b.From)
	p21 := a.To.Sub(a.From)

	d1343 := p13.Dot(p43)
	d4321 := p43.Dot(p21)
	d1321 := p13.Dot(p21)
	d4343 := p43.Dot(p43)
	d2121 := p21.Dot(p21)

	denom := d2121*d4343 - d4321*d4321
	if math.Abs(denom) < Epsilon {
		return 0, 0, false
	}
	ta = (d1343*d4321 - d1321*d4343) / denom
	tb = (d1343 + ta*d4321) / d4343
	return ta, tb, true
}

// LineLine intersects two lines. Parallel lines never intersect. The
// closest-approach points are computed on each line; when they are
// farther apart than tol the lines merely cross without meeting, and
// there is no intersection. Otherwise the result is the midpoint of the
// two closest points. With limitToFinite both parameters must also fall
// in [0,1].
func LineLine(a, b Line, limitToFinite bool, tol float64) (Point3d, bool) {
	ta, tb, ok := closestApproach(a, b)
	if !ok {
		return Point3d{}, false
	}
	if limitToFinite && (ta < 0 || ta > 1 || tb < 0 || tb > 1) {
		return Point3d{}, false
	}
	pa := a.PointAt(ta)
	pb := b.PointAt(tb)
	if pa.DistanceTo(pb) > tol {
		return Point3d{}, false
	}
	return pa.Interpolate(pb, 0.5), true
}

// CrossingLineLine generalizes LineLine: it reports the full
// closest-approach event, keeping both raw parameters and both raw
// points even when they do not coincide. maxDistance caps the accepted
// separation (pass math.Inf(1) for the unrestricted crossing query);
// limitToFinite clamps both parameters to [0,1] before evaluating the
// points.
func CrossingLineLine(a, b Line, maxDistance float64, limitToFinite bool) (IntersectionEvent, bool) {
	ta, tb, ok := closestApproach(a, b)
	if !ok {
		return IntersectionEvent{}, false
	}
	if limitToFinite {
		ta = Clamp(ta, 0, 1)
		tb = Clamp(tb, 0, 1)
	}
	ev := IntersectionEvent{
		ParameterA: ta,
		ParameterB: tb,
		PointA:     a.PointAt(ta),
		PointB:     b.PointAt(tb),
	}
	if ev.PointA.DistanceTo(ev.PointB) > maxDistance {
		return IntersectionEvent{}, false
	}
	return ev, true
}

// LinePlane intersects a line with a plane. The returned parameter is
// the distance from line.From along the unit direction. A line parallel
// to the plane has no intersection; that includes a line lying in the
// plane, which is deliberately "no intersection" rather than
// "infinitely many". With limitToFinite the hit must fall between the
// endpoints (0 ≤ t ≤ length).
func LinePlane(line Line, plane Plane, limitToFinite bool) (Point3d, float64, bool) {
	u, err := line.UnitDirection()
	if err != nil {
		return Point3d{}, 0, false
	}
	n := plane.Normal()
	denom := u.Dot(n)
	if math.Abs(denom) < Epsilon {
		return Point3d{}, 0, false
	}
	t := -line.From.Sub(plane.Origin).Dot(n) / denom
	if limitToFinite && (t < 0 || t > line.Length()) {
		return Point3d{}, 0, false
	}
	return line.From.Add(u.Mul(t)), t, true
}

// PlanePlane intersects two planes. Planes with parallel (or
// anti-parallel) normals have no intersection line. Otherwise a helper
// plane through the midpoint of the two origins, with normal
// b.Normal × a.Normal, pins the system: the triple-plane solve yields a
// point on the line, and the helper normal is the line's direction.
func PlanePlane(a, b Plane) (Line, bool) {
	if a.Normal().IsParallelTo(b.Normal(), AngleEpsilon) != NotParallel {
		return Line{}, false
	}
	mid := a.Origin.Interpolate(b.Origin, 0.5)
	helper, err := NewPlaneFromNormal(mid, b.Normal().Cross(a.Normal()))
	if err != nil {
		return Line{}, false
	}
	pt, ok := PlanePlanePlane(a, b, helper)
	if !ok {
		return Line{}, false
	}
	return Line{From: pt, To: pt.Add(helper.Normal())}, true
}

// PlanePlanePlane intersects three planes by solving the 3x3 linear
// system of their plane equations with the closed-form adjugate
// inverse. An epsilon-zero determinant means the planes share no unique
// point (a parallel or otherwise degenerate triple).
func PlanePlanePlane(a, b, c Plane) (Point3d, bool) {
	a1, b1, c1, d1 := a.Equation()
	a2, b2, c2, d2 := b.Equation()
	a3, b3, c3, d3 := c.Equation()

	det := a1*(b2*c3-c2*b3) - b1*(a2*c3-c2*a3) + c1*(a2*b3-b2*a3)
	if math.Abs(det) < Epsilon {
		return Point3d{}, false
	}

	// Adjugate of the coefficient matrix, applied to the right-hand
	// side (-d1, -d2, -d3).
	r1, r2, r3 := -d1, -d2, -d3
	x := (b2*c3-c2*b3)*r1 + (c1*b3-b1*c3)*r2 + (b1*c2-c1*b2)*r3
	y := (c2*a3-a2*c3)*r1 + (a1*c3-c1*a3)*r2 + (c1*a2-a1*c2)*r3
	z := (a2*b3-b2*a3)*r1 + (b1*a3-a1*b3)*r2 + (a1*b2-b1*a2)*r3
	return Point3d{x / det, y / det, z / det}, true
}
