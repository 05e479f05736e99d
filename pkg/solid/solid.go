// Package solid bridges the geometry kernel to the github.com/deadsy/sdfx
// SDF-based CAD library: closed planar polylines become extruded solids
// that can be rendered to STL with marching cubes.
package solid

import (
	"fmt"
	"os"

	"github.com/chazu/xylem/pkg/geom"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// ExtrudePolyline turns a closed planar polyline into a solid of the given
// height. The extrusion starts on the polyline's plane and grows along its
// normal. The polyline must be closed and planar.
func ExtrudePolyline(pl geom.Polyline, height float64) (sdf.SDF3, error) {
	if !pl.IsClosed(geom.Epsilon) {
		return nil, fmt.Errorf("extrude: %w", geom.ErrNotClosed)
	}
	if !pl.IsPlanar(geom.Epsilon) {
		return nil, fmt.Errorf("extrude: %w", geom.ErrNotPlanar)
	}
	plane, ok := pl.FitPlane(geom.Epsilon)
	if !ok {
		return nil, fmt.Errorf("extrude: %w", geom.ErrNotPlanar)
	}

	// Flatten the loop into the world XY plane, where sdfx builds 2D
	// profiles.
	flat := pl.Transform(geom.PlaneToPlane(plane, geom.WorldXY()))

	// Drop the closing duplicate vertex; Polygon2D closes implicitly.
	pts := make([]v2.Vec, 0, len(flat)-1)
	for _, p := range flat[:len(flat)-1] {
		pts = append(pts, v2.Vec{X: p.X, Y: p.Y})
	}

	profile, err := sdf.Polygon2D(pts)
	if err != nil {
		return nil, fmt.Errorf("extrude: building profile: %w", err)
	}

	// Extrude3D is symmetric about z=0; shift so the base sits on the
	// profile plane, then map the solid back onto the polyline's frame.
	s := sdf.Extrude3D(profile, height)
	s = sdf.Transform3D(s, sdf.Translate3d(v3.Vec{Z: height / 2}))
	s = sdf.Transform3D(s, toM44(geom.PlaneToPlane(geom.WorldXY(), plane)))
	return s, nil
}

// toM44 converts a kernel transform into an sdfx matrix. Both are
// row-major 4x4.
func toM44(t geom.Transform) sdf.M44 {
	m := t.RowMajor()
	return sdf.M44{
		m[0], m[1], m[2], m[3],
		m[4], m[5], m[6], m[7],
		m[8], m[9], m[10], m[11],
		m[12], m[13], m[14], m[15],
	}
}

// Bounds converts a solid's bounding box into a kernel bounding box.
func Bounds(s sdf.SDF3) geom.BoundingBox {
	bb := s.BoundingBox()
	return geom.NewBoundingBox(
		geom.Point3d{X: bb.Min.X, Y: bb.Min.Y, Z: bb.Min.Z},
		geom.Point3d{X: bb.Max.X, Y: bb.Max.Y, Z: bb.Max.Z},
	)
}

// Triangles tessellates a solid with marching cubes at the given
// resolution. cells <= 0 selects the default resolution.
func Triangles(s sdf.SDF3, cells int) []*sdf.Triangle3 {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	return render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
}

// SaveSTL renders a solid to an STL file with marching cubes at the given
// resolution. cells <= 0 selects the default resolution. ToSTL reports
// write failures on its own log; the file check turns them into an error.
func SaveSTL(s sdf.SDF3, cells int, path string) error {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	render.ToSTL(s, path, render.NewMarchingCubesUniform(cells))
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return nil
}
