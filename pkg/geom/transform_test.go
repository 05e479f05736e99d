package geom

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func mustRotation(t *testing.T, angle float64, axis Vector3d, center Point3d) Transform {
	t.Helper()
	r, err := Rotation(angle, axis, center)
	if err != nil {
		t.Fatalf("Rotation error: %v", err)
	}
	return r
}

func transformApprox(t *testing.T, name string, got, want Transform, tol float64) {
	t.Helper()
	if !got.Equals(want, tol) {
		t.Errorf("%s = %v, want %v", name, got.RowMajor(), want.RowMajor())
	}
}

func TestTranslationMatrixLayout(t *testing.T) {
	got := Translation(Vector3d{2.2, 1, 5.5}).RowMajor()
	want := [16]float64{
		1, 0, 0, 2.2,
		0, 1, 0, 1,
		0, 0, 1, 5.5,
		0, 0, 0, 1,
	}
	if got != want {
		t.Errorf("Translation matrix = %v, want %v", got, want)
	}
}

func TestRotationAboutOffsetAxis(t *testing.T) {
	rot := mustRotation(t, math.Pi/3, Vector3d{1, 2, 3}, Point3d{1, 2, 3})
	got := NewPoint3d(-5, 3, 0).Transform(rot)
	want := Point3d{-4.54738093877396, -1.9003968027185, 3.11605818140365}
	pointApprox(t, "rotated point", got, want, 1e-6)

	// The rotation center stays fixed.
	pointApprox(t, "fixed center", NewPoint3d(1, 2, 3).Transform(rot), Point3d{1, 2, 3}, 1e-12)
}

func TestRotationZeroAxis(t *testing.T) {
	_, err := Rotation(1, Vector3d{}, Origin())
	if !errors.Is(err, ErrZeroVector) {
		t.Errorf("Rotation with zero axis error = %v, want ErrZeroVector", err)
	}
}

func TestCombineAppliesLeftToRight(t *testing.T) {
	rot := mustRotation(t, math.Pi/2, Vector3d{Z: 1}, Origin())
	move := Translation(Vector3d{10, 0, 0})

	// Rotate first, then translate: (1,0,0) -> (0,1,0) -> (10,1,0).
	combined := Combine(rot, move)
	pointApprox(t, "rotate then translate", NewPoint3d(1, 0, 0).Transform(combined), Point3d{10, 1, 0}, 1e-12)

	// The reverse order lands elsewhere.
	reversed := Combine(move, rot)
	pointApprox(t, "translate then rotate", NewPoint3d(1, 0, 0).Transform(reversed), Point3d{0, 11, 0}, 1e-12)

	// Combine(a, b) must equal b.Multiply(a).
	transformApprox(t, "Combine vs Multiply", combined, move.Multiply(rot), 0)
}

func TestDeterminant(t *testing.T) {
	tests := []struct {
		name string
		m    Transform
		want float64
	}{
		{"identity", Identity(), 1},
		{"translation", Translation(Vector3d{5, -2, 9}), 1},
		{"uniform scale 2", Scale(Origin(), 2), 8},
		{"zero transformation", ZeroTransformation(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approx(t, "Determinant", tt.m.Determinant(), tt.want, 1e-9)
		})
	}
}

func TestInverseRoundTrip(t *testing.T) {
	rot := mustRotation(t, 0.7, Vector3d{1, -1, 2}, Point3d{3, 0, -1})
	m := Combine(Scale(Point3d{1, 1, 1}, 1.5), rot, Translation(Vector3d{4, -2, 0.5}))

	inv, ok := m.Inverse()
	if !ok {
		t.Fatalf("Inverse reported singular for an invertible transform")
	}
	transformApprox(t, "M·M⁻¹", m.Multiply(inv), Identity(), 1e-9)
	transformApprox(t, "M⁻¹·M", inv.Multiply(m), Identity(), 1e-9)
	transformApprox(t, "Combine(M, M⁻¹)", Combine(m, inv), Identity(), 1e-9)
}

func TestInverseSingular(t *testing.T) {
	if _, ok := ZeroTransformation().Inverse(); ok {
		t.Errorf("Inverse of ZeroTransformation reported ok")
	}
	plane, err := NewPlaneFromNormal(Point3d{0, 0, 2}, Vector3d{Z: 1})
	if err != nil {
		t.Fatalf("NewPlaneFromNormal error: %v", err)
	}
	// A planar projector is rank-deficient.
	if _, ok := PlanarProjection(plane).Inverse(); ok {
		t.Errorf("Inverse of a planar projection reported ok")
	}
}

// Cross-check the closed-form determinant and inverse against gonum's
// LU-based implementations on a well-conditioned affine transform.
func TestInverseMatchesGonum(t *testing.T) {
	rot := mustRotation(t, 1.1, Vector3d{2, 1, -1}, Point3d{0.5, -3, 2})
	m := Combine(rot, Translation(Vector3d{1, 2, 3}), Scale(Origin(), 0.75))

	rm := m.RowMajor()
	dense := mat.NewDense(4, 4, rm[:])

	approx(t, "determinant vs gonum", m.Determinant(), mat.Det(dense), 1e-9)

	inv, ok := m.Inverse()
	if !ok {
		t.Fatalf("Inverse reported singular")
	}
	var want mat.Dense
	if err := want.Inverse(dense); err != nil {
		t.Fatalf("gonum Inverse error: %v", err)
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(inv.At(i, j)-want.At(i, j)) > 1e-9 {
				t.Errorf("Inverse[%d][%d] = %v, gonum %v", i, j, inv.At(i, j), want.At(i, j))
			}
		}
	}
}

func TestScaleAboutCenter(t *testing.T) {
	m := Scale(Point3d{1, 1, 1}, 3)
	pointApprox(t, "center fixed", NewPoint3d(1, 1, 1).Transform(m), Point3d{1, 1, 1}, 1e-12)
	pointApprox(t, "scaled", NewPoint3d(2, 1, 1).Transform(m), Point3d{4, 1, 1}, 1e-12)
}

func TestMirror(t *testing.T) {
	plane, err := NewPlaneFromNormal(Point3d{0, 0, 1}, Vector3d{Z: 1})
	if err != nil {
		t.Fatalf("NewPlaneFromNormal error: %v", err)
	}
	m := Mirror(plane)

	pointApprox(t, "reflected", NewPoint3d(1, 2, 3).Transform(m), Point3d{1, 2, -1}, 1e-12)
	pointApprox(t, "plane point fixed", NewPoint3d(7, -4, 1).Transform(m), Point3d{7, -4, 1}, 1e-12)
	approx(t, "orientation flip", m.Determinant(), -1, 1e-9)
	transformApprox(t, "involution", m.Multiply(m), Identity(), 1e-9)
}

func TestPlanarProjection(t *testing.T) {
	plane, err := NewPlane(Point3d{1, 2, 3}, Vector3d{1, 1, 0}, Vector3d{0, 1, 1})
	if err != nil {
		t.Fatalf("NewPlane error: %v", err)
	}
	m := PlanarProjection(plane)

	p := NewPoint3d(-2, 5, 0.5)
	got := p.Transform(m)
	pointApprox(t, "projection vs ClosestPoint", got, plane.ClosestPoint(p), 1e-9)
	pointApprox(t, "idempotent", got.Transform(m), got, 1e-9)
	pointApprox(t, "plane point fixed", plane.PointAt(2, -3).Transform(m), plane.PointAt(2, -3), 1e-9)
}

func TestPlaneToPlane(t *testing.T) {
	from, err := NewPlane(Point3d{1, 0, 0}, Vector3d{1, 1, 0}, Vector3d{0, 0, 1})
	if err != nil {
		t.Fatalf("NewPlane error: %v", err)
	}
	to, err := NewPlaneFromNormal(Point3d{-3, 2, 5}, Vector3d{1, 2, -1})
	if err != nil {
		t.Fatalf("NewPlaneFromNormal error: %v", err)
	}
	m := PlaneToPlane(from, to)

	pointApprox(t, "origin maps to origin", from.Origin.Transform(m), to.Origin, 1e-9)
	pointApprox(t, "frame point maps to frame point",
		from.PointAt(2, -1).Transform(m), to.PointAt(2, -1), 1e-9)
	vecApprox(t, "normal maps to normal", from.Normal().Transform(m), to.Normal(), 1e-9)

	// Mapping a frame onto itself is the identity.
	transformApprox(t, "self map", PlaneToPlane(from, from), Identity(), 1e-9)
}

func TestDecomposition(t *testing.T) {
	rot := mustRotation(t, 0.4, Vector3d{0, 0, 1}, Origin())
	m := Combine(Scale(Origin(), 2), rot, Translation(Vector3d{5, 6, 7}))

	vecApprox(t, "TranslationVector", m.TranslationVector(), Vector3d{5, 6, 7}, 1e-12)

	sf, err := m.ScaleFactors()
	if err != nil {
		t.Fatalf("ScaleFactors error: %v", err)
	}
	vecApprox(t, "ScaleFactors", sf, Vector3d{2, 2, 2}, 1e-9)

	vecApprox(t, "LinearPart drops translation", m.LinearPart().TranslationVector(), Vector3d{}, 0)
	transformApprox(t, "parts recompose", m.TranslationPart().Multiply(m.LinearPart()), m, 1e-12)

	if _, err := ZeroTransformation().ScaleFactors(); !errors.Is(err, ErrNonAffine) {
		t.Errorf("ScaleFactors of singular transform error = %v, want ErrNonAffine", err)
	}
}

func TestIdentityPredicates(t *testing.T) {
	if !Identity().IsIdentity(Epsilon) {
		t.Errorf("Identity().IsIdentity = false")
	}
	if Identity().IsZeroTransformation(Epsilon) {
		t.Errorf("Identity().IsZeroTransformation = true")
	}
	if !ZeroTransformation().IsZeroTransformation(Epsilon) {
		t.Errorf("ZeroTransformation().IsZeroTransformation = false")
	}
	if got := Identity().MultiplyScalar(2).At(0, 0); got != 2 {
		t.Errorf("MultiplyScalar element = %v, want 2", got)
	}
}
