package geom

import (
	"fmt"
	"math"
)

// Transform is a 4x4 matrix stored row-major, mapping homogeneous
// column vectors on the right: result = M · operand. Affine maps keep
// the bottom row (0,0,0,1); nothing enforces that structurally, and a
// general projective bottom row is applied faithfully by
// Point3d.Transform.
type Transform struct {
	m [16]float64
}

// FromRowMajor builds a transform from 16 row-major elements.
func FromRowMajor(elements [16]float64) Transform {
	return Transform{m: elements}
}

// RowMajor returns the 16 elements in row-major order.
func (t Transform) RowMajor() [16]float64 {
	return t.m
}

// At returns the element at the given row and column (0-based).
func (t Transform) At(row, col int) float64 {
	return t.m[row*4+col]
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{m: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// ZeroTransformation returns the transform that collapses everything to
// the origin: a zero upper-left 3x3 with an affine bottom-right 1.
func ZeroTransformation() Transform {
	return Transform{m: [16]float64{
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 1,
	}}
}

// Equals reports element-wise equality within tol.
func (t Transform) Equals(other Transform, tol float64) bool {
	for i := range t.m {
		if !EqualWithin(t.m[i], other.m[i], tol) {
			return false
		}
	}
	return true
}

// IsIdentity reports whether the transform equals the identity within tol.
func (t Transform) IsIdentity(tol float64) bool {
	return t.Equals(Identity(), tol)
}

// IsZeroTransformation reports whether the transform equals
// ZeroTransformation within tol.
func (t Transform) IsZeroTransformation(tol float64) bool {
	return t.Equals(ZeroTransformation(), tol)
}

// Multiply returns the matrix product t · other. On a column vector this
// means other applies first, then t.
func (t Transform) Multiply(other Transform) Transform {
	var r Transform
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += t.m[i*4+k] * other.m[k*4+j]
			}
			r.m[i*4+j] = sum
		}
	}
	return r
}

// MultiplyScalar returns the transform with every element scaled by s.
func (t Transform) MultiplyScalar(s float64) Transform {
	var r Transform
	for i := range t.m {
		r.m[i] = t.m[i] * s
	}
	return r
}

// Combine returns the single transform equivalent to applying the given
// transforms in order: transforms[0] first, the last one last. Because
// application order is right-to-left in a matrix product, the list is
// folded in reverse.
func Combine(transforms ...Transform) Transform {
	r := Identity()
	for i := len(transforms) - 1; i >= 0; i-- {
		r = r.Multiply(transforms[i])
	}
	return r
}

// adjugate returns the classical adjoint: the transpose of the cofactor
// matrix. Dividing it by the determinant yields the inverse.
func (t Transform) adjugate() [16]float64 {
	m := t.m
	var a [16]float64

	a[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] +
		m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	a[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] -
		m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	a[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] +
		m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	a[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] -
		m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	a[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] -
		m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	a[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] +
		m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	a[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] -
		m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	a[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] +
		m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	a[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] +
		m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	a[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] -
		m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	a[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] +
		m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	a[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] -
		m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	a[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] -
		m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	a[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] +
		m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	a[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] -
		m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	a[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] +
		m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	return a
}

// Determinant returns the determinant by closed-form cofactor expansion
// along the first row. The same cofactors back Inverse, so the two agree
// exactly on singularity.
func (t Transform) Determinant() float64 {
	a := t.adjugate()
	return t.m[0]*a[0] + t.m[1]*a[4] + t.m[2]*a[8] + t.m[3]*a[12]
}

// Inverse returns the closed-form adjugate inverse. It reports ok=false
// only when the determinant is exactly zero; a near-singular matrix
// still yields a (numerically shaky) inverse. The exact-zero check is a
// deliberate compatibility choice, not an oversight.
func (t Transform) Inverse() (Transform, bool) {
	a := t.adjugate()
	det := t.m[0]*a[0] + t.m[1]*a[4] + t.m[2]*a[8] + t.m[3]*a[12]
	if det == 0 {
		return Transform{}, false
	}
	var r Transform
	for i := range a {
		r.m[i] = a[i] / det
	}
	return r, true
}

// ---------------------------------------------------------------------------
// Construction helpers
// ---------------------------------------------------------------------------

// Translation returns the transform that displaces points by v.
func Translation(v Vector3d) Transform {
	r := Identity()
	r.m[3] = v.X
	r.m[7] = v.Y
	r.m[11] = v.Z
	return r
}

// RotationAtOrigin returns the rotation by angle radians about an axis
// through the origin, built from Rodrigues' formula. The axis is
// unitized first; a zero-length axis is a hard failure.
func RotationAtOrigin(angle float64, axis Vector3d) (Transform, error) {
	u, err := axis.Unitize()
	if err != nil {
		return Transform{}, fmt.Errorf("RotationAtOrigin: %w", err)
	}
	c := math.Cos(angle)
	s := math.Sin(angle)
	k := 1 - c
	x, y, z := u.X, u.Y, u.Z

	r := Identity()
	r.m[0] = c + x*x*k
	r.m[1] = x*y*k - z*s
	r.m[2] = x*z*k + y*s
	r.m[4] = y*x*k + z*s
	r.m[5] = c + y*y*k
	r.m[6] = y*z*k - x*s
	r.m[8] = z*x*k - y*s
	r.m[9] = z*y*k + x*s
	r.m[10] = c + z*z*k
	return r, nil
}

// Rotation returns the rotation by angle radians about the axis through
// center: translate center to the origin, rotate there, translate back.
func Rotation(angle float64, axis Vector3d, center Point3d) (Transform, error) {
	rot, err := RotationAtOrigin(angle, axis)
	if err != nil {
		return Transform{}, err
	}
	toOrigin := Translation(center.Sub(Origin()).Reverse())
	back := Translation(center.Sub(Origin()))
	return Combine(toOrigin, rot, back), nil
}

// Scale returns the uniform scale by factor about center, using the same
// translate-scale-translate sandwich as Rotation.
func Scale(center Point3d, factor float64) Transform {
	core := Identity()
	core.m[0] = factor
	core.m[5] = factor
	core.m[10] = factor
	toOrigin := Translation(center.Sub(Origin()).Reverse())
	back := Translation(center.Sub(Origin()))
	return Combine(toOrigin, core, back)
}

// Mirror returns the reflection across the given plane: the linear part
// I - 2nnᵀ plus the translation term -2·D·n from the plane equation.
func Mirror(plane Plane) Transform {
	a, b, c, d := plane.Equation()
	r := Identity()
	r.m[0] = 1 - 2*a*a
	r.m[1] = -2 * a * b
	r.m[2] = -2 * a * c
	r.m[3] = -2 * a * d
	r.m[4] = -2 * b * a
	r.m[5] = 1 - 2*b*b
	r.m[6] = -2 * b * c
	r.m[7] = -2 * b * d
	r.m[8] = -2 * c * a
	r.m[9] = -2 * c * b
	r.m[10] = 1 - 2*c*c
	r.m[11] = -2 * c * d
	return r
}

// PlanarProjection returns the rank-deficient affine projector onto the
// plane, built from its two in-plane axes: the linear part is
// XXᵀ + YYᵀ and the translation keeps points already on the plane fixed.
func PlanarProjection(plane Plane) Transform {
	x := plane.XAxis
	y := plane.YAxis
	r := Identity()
	r.m[0] = x.X*x.X + y.X*y.X
	r.m[1] = x.X*x.Y + y.X*y.Y
	r.m[2] = x.X*x.Z + y.X*y.Z
	r.m[4] = x.Y*x.X + y.Y*y.X
	r.m[5] = x.Y*x.Y + y.Y*y.Y
	r.m[6] = x.Y*x.Z + y.Y*y.Z
	r.m[8] = x.Z*x.X + y.Z*y.X
	r.m[9] = x.Z*x.Y + y.Z*y.Y
	r.m[10] = x.Z*x.Z + y.Z*y.Z

	// Translation: origin minus the projection of origin through the
	// linear part, so points on the plane map to themselves.
	o := plane.Origin
	r.m[3] = o.X - (r.m[0]*o.X + r.m[1]*o.Y + r.m[2]*o.Z)
	r.m[7] = o.Y - (r.m[4]*o.X + r.m[5]*o.Y + r.m[6]*o.Z)
	r.m[11] = o.Z - (r.m[8]*o.X + r.m[9]*o.Y + r.m[10]*o.Z)
	return r
}

// worldToFrame maps world coordinates into the plane's frame: rows are
// the frame axes, translation carries the origin to zero.
func worldToFrame(p Plane) Transform {
	o := p.Origin.AsVector()
	r := Identity()
	r.m[0], r.m[1], r.m[2], r.m[3] = p.XAxis.X, p.XAxis.Y, p.XAxis.Z, -p.XAxis.Dot(o)
	r.m[4], r.m[5], r.m[6], r.m[7] = p.YAxis.X, p.YAxis.Y, p.YAxis.Z, -p.YAxis.Dot(o)
	r.m[8], r.m[9], r.m[10], r.m[11] = p.ZAxis.X, p.ZAxis.Y, p.ZAxis.Z, -p.ZAxis.Dot(o)
	return r
}

// frameToWorld maps the plane's frame coordinates back to world
// coordinates: columns are the frame axes, translation is the origin.
func frameToWorld(p Plane) Transform {
	r := Identity()
	r.m[0], r.m[1], r.m[2], r.m[3] = p.XAxis.X, p.YAxis.X, p.ZAxis.X, p.Origin.X
	r.m[4], r.m[5], r.m[6], r.m[7] = p.XAxis.Y, p.YAxis.Y, p.ZAxis.Y, p.Origin.Y
	r.m[8], r.m[9], r.m[10], r.m[11] = p.XAxis.Z, p.YAxis.Z, p.ZAxis.Z, p.Origin.Z
	return r
}

// PlaneToPlane returns the transform carrying the frame of from onto the
// frame of to: express the operand in from's coordinates, then rebuild
// it in to's. The two frames' origins need not coincide, so this cannot
// be a bare axis pairing.
func PlaneToPlane(from, to Plane) Transform {
	return frameToWorld(to).Multiply(worldToFrame(from))
}

// ---------------------------------------------------------------------------
// Decomposition
// ---------------------------------------------------------------------------

// TranslationVector returns the translation column of the transform.
func (t Transform) TranslationVector() Vector3d {
	return Vector3d{t.m[3], t.m[7], t.m[11]}
}

// TranslationPart returns the pure translation sub-transform.
func (t Transform) TranslationPart() Transform {
	return Translation(t.TranslationVector())
}

// LinearPart returns the transform with its translation column zeroed.
func (t Transform) LinearPart() Transform {
	r := t
	r.m[3], r.m[7], r.m[11] = 0, 0, 0
	return r
}

// ScaleFactors returns the per-axis scale of an affine similarity
// transform: the magnitudes of the upper-left 3x3 rows. A singular
// matrix has no meaningful decomposition and is a hard failure.
func (t Transform) ScaleFactors() (Vector3d, error) {
	if t.Determinant() == 0 {
		return Vector3d{}, fmt.Errorf("Transform.ScaleFactors: %w", ErrNonAffine)
	}
	return Vector3d{
		X: Vector3d{t.m[0], t.m[1], t.m[2]}.Length(),
		Y: Vector3d{t.m[4], t.m[5], t.m[6]}.Length(),
		Z: Vector3d{t.m[8], t.m[9], t.m[10]}.Length(),
	}, nil
}
