package geom

import (
	"errors"
	"testing"
)

func TestLineValidity(t *testing.T) {
	valid := NewLine(Point3d{0, 0, 0}, Point3d{1, 0, 0})
	if !valid.IsValid(Epsilon) {
		t.Errorf("distinct endpoints reported invalid")
	}
	degenerate := NewLine(Point3d{1, 2, 3}, Point3d{1, 2, 3})
	if degenerate.IsValid(Epsilon) {
		t.Errorf("coincident endpoints reported valid")
	}

	if _, err := degenerate.Direction(); !errors.Is(err, ErrDegenerateLine) {
		t.Errorf("Direction of degenerate line error = %v, want ErrDegenerateLine", err)
	}
	if _, err := degenerate.UnitDirection(); !errors.Is(err, ErrDegenerateLine) {
		t.Errorf("UnitDirection of degenerate line error = %v, want ErrDegenerateLine", err)
	}
}

func TestLineDirectionAndLength(t *testing.T) {
	l := NewLine(Point3d{1, 1, 1}, Point3d{4, 5, 1})
	d, err := l.Direction()
	if err != nil {
		t.Fatalf("Direction error: %v", err)
	}
	vecApprox(t, "Direction", d, Vector3d{3, 4, 0}, 1e-12)
	approx(t, "Length", l.Length(), 5, 1e-12)

	u, err := l.UnitDirection()
	if err != nil {
		t.Fatalf("UnitDirection error: %v", err)
	}
	vecApprox(t, "UnitDirection", u, Vector3d{0.6, 0.8, 0}, 1e-12)
}

func TestSetLength(t *testing.T) {
	l := NewLine(Point3d{0, 0, 0}, Point3d{2, 0, 0})
	if err := l.SetLength(5); err != nil {
		t.Fatalf("SetLength error: %v", err)
	}
	pointApprox(t, "From fixed", l.From, Point3d{}, 0)
	pointApprox(t, "To rescaled", l.To, Point3d{5, 0, 0}, 1e-12)

	// Negative length flips direction, then scales by the magnitude.
	if err := l.SetLength(-3); err != nil {
		t.Fatalf("SetLength(-3) error: %v", err)
	}
	pointApprox(t, "flipped To", l.To, Point3d{-3, 0, 0}, 1e-12)

	deg := NewLine(Point3d{1, 1, 1}, Point3d{1, 1, 1})
	if err := deg.SetLength(2); !errors.Is(err, ErrDegenerateLine) {
		t.Errorf("SetLength on degenerate line error = %v, want ErrDegenerateLine", err)
	}
}

func TestClosestParameter(t *testing.T) {
	l := NewLine(Point3d{0, 0, 0}, Point3d{10, 0, 0})
	tests := []struct {
		name   string
		p      Point3d
		finite bool
		want   float64
	}{
		{"mid above", Point3d{5, 3, 0}, true, 0.5},
		{"before start clamped", Point3d{-5, 1, 0}, true, 0},
		{"before start infinite", Point3d{-5, 1, 0}, false, -0.5},
		{"past end clamped", Point3d{25, 0, 1}, true, 1},
		{"past end infinite", Point3d{25, 0, 1}, false, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approx(t, "ClosestParameter", l.ClosestParameter(tt.p, tt.finite), tt.want, 1e-12)
		})
	}
}

func TestClosestPointAndDistance(t *testing.T) {
	l := NewLine(Point3d{0, 0, 0}, Point3d{10, 0, 0})
	p := NewPoint3d(4, 3, 0)
	pointApprox(t, "ClosestPoint", l.ClosestPoint(p, true), Point3d{4, 0, 0}, 1e-12)
	approx(t, "DistanceTo", l.DistanceTo(p, true), 3, 1e-12)

	// Beyond the segment the finite distance is to the endpoint.
	q := NewPoint3d(13, 4, 0)
	approx(t, "finite distance past end", l.DistanceTo(q, true), 5, 1e-12)
	approx(t, "infinite distance past end", l.DistanceTo(q, false), 4, 1e-12)
}

func TestDistanceToLine(t *testing.T) {
	a := NewLine(Point3d{0, 0, 0}, Point3d{1, 0, 0})
	skew := NewLine(Point3d{0, 0, 2}, Point3d{0, 1, 2})
	approx(t, "skew separation", a.DistanceToLine(skew), 2, 1e-9)

	parallel := NewLine(Point3d{0, 3, 0}, Point3d{5, 3, 0})
	approx(t, "parallel separation", a.DistanceToLine(parallel), 3, 1e-9)
}

func TestDistanceToPlane(t *testing.T) {
	plane, err := NewPlaneFromNormal(Origin(), Vector3d{Z: 1})
	if err != nil {
		t.Fatalf("NewPlaneFromNormal error: %v", err)
	}
	above := NewLine(Point3d{0, 0, 2}, Point3d{1, 0, 5})
	approx(t, "above plane", above.DistanceToPlane(plane), 2, 1e-12)

	crossing := NewLine(Point3d{0, 0, -1}, Point3d{0, 0, 4})
	approx(t, "crossing plane", crossing.DistanceToPlane(plane), 0, 1e-12)
}

func TestExtend(t *testing.T) {
	l := NewLine(Point3d{0, 0, 0}, Point3d{10, 0, 0})
	ext, err := l.Extend(2, 3)
	if err != nil {
		t.Fatalf("Extend error: %v", err)
	}
	pointApprox(t, "extended From", ext.From, Point3d{-2, 0, 0}, 1e-12)
	pointApprox(t, "extended To", ext.To, Point3d{13, 0, 0}, 1e-12)

	deg := NewLine(Point3d{}, Point3d{})
	if _, err := deg.Extend(1, 1); !errors.Is(err, ErrDegenerateLine) {
		t.Errorf("Extend on degenerate line error = %v, want ErrDegenerateLine", err)
	}
}

func TestPointAtLength(t *testing.T) {
	l := NewLine(Point3d{0, 0, 0}, Point3d{3, 4, 0})
	pointApprox(t, "half length", l.PointAtLength(2.5), Point3d{1.5, 2, 0}, 1e-12)

	// Degenerate lines return From unchanged instead of failing.
	deg := NewLine(Point3d{7, 7, 7}, Point3d{7, 7, 7})
	pointApprox(t, "degenerate", deg.PointAtLength(10), Point3d{7, 7, 7}, 0)
}

func TestPointAtExtrapolates(t *testing.T) {
	l := NewLine(Point3d{0, 0, 0}, Point3d{2, 0, 0})
	pointApprox(t, "inside", l.PointAt(0.5), Point3d{1, 0, 0}, 1e-12)
	pointApprox(t, "beyond", l.PointAt(2), Point3d{4, 0, 0}, 1e-12)
	pointApprox(t, "before", l.PointAt(-1), Point3d{-2, 0, 0}, 1e-12)
}

func TestLineFlipAndTransform(t *testing.T) {
	l := NewLine(Point3d{1, 2, 3}, Point3d{4, 5, 6})
	f := l.Flip()
	pointApprox(t, "flipped From", f.From, l.To, 0)
	pointApprox(t, "flipped To", f.To, l.From, 0)

	moved := l.Transform(Translation(Vector3d{1, 1, 1}))
	pointApprox(t, "transformed From", moved.From, Point3d{2, 3, 4}, 1e-12)
	approx(t, "length preserved", moved.Length(), l.Length(), 1e-12)
}

func TestMutatingEndpointChangesDerivedState(t *testing.T) {
	l := NewLine(Point3d{0, 0, 0}, Point3d{1, 0, 0})
	l.To = Point3d{0, 2, 0}
	approx(t, "length after mutation", l.Length(), 2, 1e-12)
	d, err := l.Direction()
	if err != nil {
		t.Fatalf("Direction error: %v", err)
	}
	vecApprox(t, "direction after mutation", d, Vector3d{0, 2, 0}, 0)
}
