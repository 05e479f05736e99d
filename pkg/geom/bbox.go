package geom

import "math"

// BoundingBox is an axis-aligned box held as component-wise extremes.
// The Min and Max fields are mutable so boxes can be built up in place.
//
// The invalid ("empty") box is the sentinel Min=(1,0,0), Max=(-1,0,0):
// it violates the Min ≤ Max invariant on purpose so IsValid is false.
// Binary operations special-case invalid operands instead of computing
// through the sentinel coordinates.
type BoundingBox struct {
	Min, Max Point3d
}

// NewBoundingBox creates a box from its extreme corners. The corners
// are taken as given; pass them pre-ordered or the box will be invalid.
func NewBoundingBox(min, max Point3d) BoundingBox {
	return BoundingBox{Min: min, Max: max}
}

// EmptyBox returns the invalid sentinel box.
func EmptyBox() BoundingBox {
	return BoundingBox{
		Min: Point3d{X: 1},
		Max: Point3d{X: -1},
	}
}

// NewBoundingBoxFromPoints returns the smallest box containing all the
// given points, or the empty sentinel for an empty slice.
func NewBoundingBoxFromPoints(points []Point3d) BoundingBox {
	if len(points) == 0 {
		return EmptyBox()
	}
	b := BoundingBox{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Min.Z = math.Min(b.Min.Z, p.Z)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
		b.Max.Z = math.Max(b.Max.Z, p.Z)
	}
	return b
}

// IsValid reports whether Min ≤ Max on every axis.
func (b BoundingBox) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Point3d {
	return b.Min.Interpolate(b.Max, 0.5)
}

// Diagonal returns the vector from Min to Max.
func (b BoundingBox) Diagonal() Vector3d {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside the box. With strict set,
// points on a face do not count.
func (b BoundingBox) Contains(p Point3d, strict bool) bool {
	if !b.IsValid() {
		return false
	}
	if strict {
		return p.X > b.Min.X && p.X < b.Max.X &&
			p.Y > b.Min.Y && p.Y < b.Max.Y &&
			p.Z > b.Min.Z && p.Z < b.Max.Z
	}
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Corners returns the eight corners of the box, ordered bottom face
// counter-clockwise then top face counter-clockwise. An invalid box has
// no corners.
func (b BoundingBox) Corners() []Point3d {
	if !b.IsValid() {
		return nil
	}
	return []Point3d{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
	}
}

// Union returns the smallest box containing both operands. An invalid
// operand is ignored: the other operand is returned by value, never
// aliased. Two invalid operands yield the empty sentinel.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	switch {
	case !b.IsValid() && !other.IsValid():
		return EmptyBox()
	case !b.IsValid():
		return other
	case !other.IsValid():
		return b
	}
	return BoundingBox{
		Min: Point3d{
			X: math.Min(b.Min.X, other.Min.X),
			Y: math.Min(b.Min.Y, other.Min.Y),
			Z: math.Min(b.Min.Z, other.Min.Z),
		},
		Max: Point3d{
			X: math.Max(b.Max.X, other.Max.X),
			Y: math.Max(b.Max.Y, other.Max.Y),
			Z: math.Max(b.Max.Z, other.Max.Z),
		},
	}
}

// UnionPoint returns the box grown to contain p.
func (b BoundingBox) UnionPoint(p Point3d) BoundingBox {
	return b.Union(BoundingBox{Min: p, Max: p})
}

// Intersect returns the overlap of the two boxes. An invalid operand is
// ignored the same way as in Union. Disjoint boxes overlap nowhere and
// yield the empty sentinel.
func (b BoundingBox) Intersect(other BoundingBox) BoundingBox {
	switch {
	case !b.IsValid() && !other.IsValid():
		return EmptyBox()
	case !b.IsValid():
		return other
	case !other.IsValid():
		return b
	}
	r := BoundingBox{
		Min: Point3d{
			X: math.Max(b.Min.X, other.Min.X),
			Y: math.Max(b.Min.Y, other.Min.Y),
			Z: math.Max(b.Min.Z, other.Min.Z),
		},
		Max: Point3d{
			X: math.Min(b.Max.X, other.Max.X),
			Y: math.Min(b.Max.Y, other.Max.Y),
			Z: math.Min(b.Max.Z, other.Max.Z),
		},
	}
	if !r.IsValid() {
		return EmptyBox()
	}
	return r
}

// Inflate expands the box outward by the given amount per axis.
// Inflating an invalid box is a no-op, not an error.
func (b BoundingBox) Inflate(dx, dy, dz float64) BoundingBox {
	if !b.IsValid() {
		return b
	}
	return BoundingBox{
		Min: Point3d{b.Min.X - dx, b.Min.Y - dy, b.Min.Z - dz},
		Max: Point3d{b.Max.X + dx, b.Max.Y + dy, b.Max.Z + dz},
	}
}

// Transform returns the box re-fit around its eight transformed
// corners. A rotated box is never returned rotated; it is re-enclosed
// axis-aligned, which generally grows it.
func (b BoundingBox) Transform(m Transform) BoundingBox {
	corners := b.Corners()
	if corners == nil {
		return b
	}
	for i, c := range corners {
		corners[i] = c.Transform(m)
	}
	return NewBoundingBoxFromPoints(corners)
}

// ClosestPoint returns the point of the box closest to p: each
// coordinate clamped into [Min, Max]. Without includeInterior a point
// inside the box is pushed to the surface by snapping each interior
// axis to whichever face is nearer.
func (b BoundingBox) ClosestPoint(p Point3d, includeInterior bool) Point3d {
	r := Point3d{
		X: Clamp(p.X, b.Min.X, b.Max.X),
		Y: Clamp(p.Y, b.Min.Y, b.Max.Y),
		Z: Clamp(p.Z, b.Min.Z, b.Max.Z),
	}
	if includeInterior || !b.Contains(r, true) {
		return r
	}
	if r.X-b.Min.X <= b.Max.X-r.X {
		r.X = b.Min.X
	} else {
		r.X = b.Max.X
	}
	if r.Y-b.Min.Y <= b.Max.Y-r.Y {
		r.Y = b.Min.Y
	} else {
		r.Y = b.Max.Y
	}
	if r.Z-b.Min.Z <= b.Max.Z-r.Z {
		r.Z = b.Min.Z
	} else {
		r.Z = b.Max.Z
	}
	return r
}
