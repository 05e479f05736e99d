// Package geom is a self-contained 3D computational-geometry kernel:
// vectors, points, lines, planes, affine transforms, bounding boxes,
// polylines, and their pairwise intersections.
//
// All types are value types created by constructors and consumed
// functionally; operations return new values rather than mutating their
// receiver, except for the documented field setters (Line.SetLength and
// the exported coordinate fields). Operations that are mathematically
// undefined on their input return an error wrapping one of the package
// sentinel errors; operations whose "no answer" is an ordinary geometric
// outcome (parallel lines, a singular matrix) return an ok bool instead.
package geom
