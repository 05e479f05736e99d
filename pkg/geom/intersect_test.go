package geom

import (
	"math"
	"testing"
)

func TestLineLineCrossing(t *testing.T) {
	a := NewLine(Point3d{3, 3, 0}, Point3d{5, 5, 0})
	b := NewLine(Point3d{3, 5, 0}, Point3d{5, 3, 0})

	pt, ok := LineLine(a, b, true, Epsilon)
	if !ok {
		t.Fatalf("LineLine reported no intersection")
	}
	pointApprox(t, "intersection", pt, Point3d{4, 4, 0}, 1e-9)

	// Determinism: repeated queries return the identical point.
	again, _ := LineLine(a, b, true, Epsilon)
	if pt != again {
		t.Errorf("LineLine not deterministic: %v vs %v", pt, again)
	}
}

func TestLineLineParallel(t *testing.T) {
	a := NewLine(Point3d{0, 0, 0}, Point3d{1, 0, 0})
	b := NewLine(Point3d{0, 1, 0}, Point3d{1, 1, 0})
	if _, ok := LineLine(a, b, false, Epsilon); ok {
		t.Errorf("parallel lines reported intersecting")
	}
	// Collinear lines are parallel too.
	c := NewLine(Point3d{2, 0, 0}, Point3d{3, 0, 0})
	if _, ok := LineLine(a, c, false, Epsilon); ok {
		t.Errorf("collinear lines reported intersecting")
	}
}

func TestLineLineSkewToleranceGate(t *testing.T) {
	a := NewLine(Point3d{-1, 0, 0}, Point3d{1, 0, 0})
	b := NewLine(Point3d{0, -1, 0.5}, Point3d{0, 1, 0.5})

	// Closest approach is 0.5 apart: too far for the default tolerance.
	if _, ok := LineLine(a, b, false, Epsilon); ok {
		t.Errorf("skew lines 0.5 apart reported intersecting at tolerance %v", Epsilon)
	}

	// A generous tolerance accepts them and returns the gap midpoint.
	pt, ok := LineLine(a, b, false, 1)
	if !ok {
		t.Fatalf("LineLine with loose tolerance reported no intersection")
	}
	pointApprox(t, "gap midpoint", pt, Point3d{0, 0, 0.25}, 1e-9)
}

func TestLineLineFiniteClamp(t *testing.T) {
	a := NewLine(Point3d{0, 0, 0}, Point3d{1, 0, 0})
	b := NewLine(Point3d{5, -1, 0}, Point3d{5, 1, 0})

	// The infinite lines cross at (5,0,0), outside a's segment.
	if _, ok := LineLine(a, b, true, Epsilon); ok {
		t.Errorf("out-of-segment crossing accepted with limitToFinite")
	}
	pt, ok := LineLine(a, b, false, Epsilon)
	if !ok {
		t.Fatalf("infinite-line crossing rejected")
	}
	pointApprox(t, "extended crossing", pt, Point3d{5, 0, 0}, 1e-9)
}

func TestCrossingLineLineEvent(t *testing.T) {
	a := NewLine(Point3d{-1, 0, 0}, Point3d{1, 0, 0})
	b := NewLine(Point3d{0, -1, 2}, Point3d{0, 1, 2})

	ev, ok := CrossingLineLine(a, b, math.Inf(1), false)
	if !ok {
		t.Fatalf("CrossingLineLine reported no event for skew lines")
	}
	approx(t, "ParameterA", ev.ParameterA, 0.5, 1e-9)
	approx(t, "ParameterB", ev.ParameterB, 0.5, 1e-9)
	pointApprox(t, "PointA", ev.PointA, Point3d{0, 0, 0}, 1e-9)
	pointApprox(t, "PointB", ev.PointB, Point3d{0, 0, 2}, 1e-9)

	// The same query gated by a max separation smaller than the gap.
	if _, ok := CrossingLineLine(a, b, 1, false); ok {
		t.Errorf("separation 2 accepted with maxDistance 1")
	}
}

func TestCrossingLineLineClampsParameters(t *testing.T) {
	a := NewLine(Point3d{0, 0, 0}, Point3d{1, 0, 0})
	b := NewLine(Point3d{5, -1, 0}, Point3d{5, 1, 0})

	ev, ok := CrossingLineLine(a, b, math.Inf(1), true)
	if !ok {
		t.Fatalf("CrossingLineLine reported no event")
	}
	approx(t, "clamped ParameterA", ev.ParameterA, 1, 1e-9)
	pointApprox(t, "clamped PointA", ev.PointA, Point3d{1, 0, 0}, 1e-9)
	pointApprox(t, "PointB", ev.PointB, Point3d{5, 0, 0}, 1e-9)
}

func TestLinePlane(t *testing.T) {
	plane, err := NewPlaneFromNormal(Point3d{0, 0, 1}, Vector3d{Z: 1})
	if err != nil {
		t.Fatalf("NewPlaneFromNormal error: %v", err)
	}

	l := NewLine(Point3d{0, 0, 0}, Point3d{0, 0, 4})
	pt, param, ok := LinePlane(l, plane, true)
	if !ok {
		t.Fatalf("LinePlane reported no intersection")
	}
	pointApprox(t, "hit", pt, Point3d{0, 0, 1}, 1e-9)
	approx(t, "parameter is arc length", param, 1, 1e-9)

	// Oblique hit.
	diag := NewLine(Point3d{0, 0, 0}, Point3d{2, 0, 2})
	pt, _, ok = LinePlane(diag, plane, true)
	if !ok {
		t.Fatalf("LinePlane reported no intersection for oblique line")
	}
	pointApprox(t, "oblique hit", pt, Point3d{1, 0, 1}, 1e-9)
}

func TestLinePlaneParallelPolicy(t *testing.T) {
	plane, err := NewPlaneFromNormal(Point3d{0, 0, 1}, Vector3d{Z: 1})
	if err != nil {
		t.Fatalf("NewPlaneFromNormal error: %v", err)
	}

	above := NewLine(Point3d{0, 0, 3}, Point3d{5, 0, 3})
	if _, _, ok := LinePlane(above, plane, false); ok {
		t.Errorf("parallel line reported intersecting")
	}

	// A line lying in the plane is also "no intersection": the
	// coincident case never reports an (infinite) hit.
	within := NewLine(Point3d{0, 0, 1}, Point3d{5, 0, 1})
	if _, _, ok := LinePlane(within, plane, false); ok {
		t.Errorf("coincident in-plane line reported intersecting")
	}
}

func TestLinePlaneFiniteClamp(t *testing.T) {
	plane, err := NewPlaneFromNormal(Point3d{0, 0, 5}, Vector3d{Z: 1})
	if err != nil {
		t.Fatalf("NewPlaneFromNormal error: %v", err)
	}
	short := NewLine(Point3d{0, 0, 0}, Point3d{0, 0, 1})

	if _, _, ok := LinePlane(short, plane, true); ok {
		t.Errorf("hit beyond segment accepted with limitToFinite")
	}
	pt, param, ok := LinePlane(short, plane, false)
	if !ok {
		t.Fatalf("infinite-line hit rejected")
	}
	pointApprox(t, "extended hit", pt, Point3d{0, 0, 5}, 1e-9)
	approx(t, "extended parameter", param, 5, 1e-9)
}

func TestPlanePlane(t *testing.T) {
	a, err := NewPlaneFromNormal(Point3d{0, 0, 0}, Vector3d{Z: 1})
	if err != nil {
		t.Fatalf("NewPlaneFromNormal error: %v", err)
	}
	b, err := NewPlaneFromNormal(Point3d{2, 0, 0}, Vector3d{X: 1})
	if err != nil {
		t.Fatalf("NewPlaneFromNormal error: %v", err)
	}

	line, ok := PlanePlane(a, b)
	if !ok {
		t.Fatalf("PlanePlane reported no intersection")
	}
	// The line must lie in both planes.
	if !a.IsLineCoplanar(line, 1e-9) {
		t.Errorf("intersection line not in plane a: %v", line)
	}
	if !b.IsLineCoplanar(line, 1e-9) {
		t.Errorf("intersection line not in plane b: %v", line)
	}
	// Expected: x=2, z=0, direction along Y.
	d, err := line.Direction()
	if err != nil {
		t.Fatalf("Direction error: %v", err)
	}
	if d.IsParallelTo(Vector3d{Y: 1}, AngleEpsilon) == NotParallel {
		t.Errorf("intersection direction = %v, want ±Y", d)
	}
}

func TestPlanePlaneParallel(t *testing.T) {
	a, _ := NewPlaneFromNormal(Point3d{0, 0, 0}, Vector3d{Z: 1})
	b, _ := NewPlaneFromNormal(Point3d{0, 0, 5}, Vector3d{Z: 1})
	if _, ok := PlanePlane(a, b); ok {
		t.Errorf("parallel planes reported intersecting")
	}
	// Anti-parallel normals are parallel planes too.
	c, _ := NewPlaneFromNormal(Point3d{0, 0, 5}, Vector3d{Z: -1})
	if _, ok := PlanePlane(a, c); ok {
		t.Errorf("anti-parallel planes reported intersecting")
	}
}

func TestPlanePlanePlane(t *testing.T) {
	mk := func(x, y, z float64) Plane {
		p, err := NewPlaneFromNormal(Point3d{x, y, z}, Vector3d{x, y, z})
		if err != nil {
			t.Fatalf("NewPlaneFromNormal error: %v", err)
		}
		return p
	}
	a := mk(1, 2, 3)
	b := mk(5, 5, 3)
	c := mk(7, 1, -4)

	pt, ok := PlanePlanePlane(a, b, c)
	if !ok {
		t.Fatalf("PlanePlanePlane reported no intersection")
	}
	// Exact solution of the integer system: (267/31, 109/31, -17/31).
	pointApprox(t, "triple point", pt,
		Point3d{8.612903225806452, 3.5161290322580645, -0.5483870967741935}, 1e-9)

	// Each plane contains the solution.
	for i, plane := range []Plane{a, b, c} {
		if !plane.IsPointCoplanar(pt, 1e-9) {
			t.Errorf("plane %d does not contain the triple point", i)
		}
	}
}

func TestPlanePlanePlaneDegenerate(t *testing.T) {
	a, _ := NewPlaneFromNormal(Point3d{0, 0, 0}, Vector3d{Z: 1})
	b, _ := NewPlaneFromNormal(Point3d{0, 0, 5}, Vector3d{Z: 1})
	c, _ := NewPlaneFromNormal(Point3d{1, 0, 0}, Vector3d{X: 1})
	if _, ok := PlanePlanePlane(a, b, c); ok {
		t.Errorf("two parallel planes in the triple reported a unique point")
	}
}

func TestAxisAlignedTriple(t *testing.T) {
	x, _ := NewPlaneFromNormal(Point3d{2, 0, 0}, Vector3d{X: 1})
	y, _ := NewPlaneFromNormal(Point3d{0, 3, 0}, Vector3d{Y: 1})
	z, _ := NewPlaneFromNormal(Point3d{0, 0, 4}, Vector3d{Z: 1})
	pt, ok := PlanePlanePlane(x, y, z)
	if !ok {
		t.Fatalf("axis-aligned triple reported no intersection")
	}
	pointApprox(t, "corner", pt, Point3d{2, 3, 4}, 1e-9)
}
