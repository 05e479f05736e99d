// Package scene defines the JSON scene document for xylem.
// A scene is a flat collection of named geometry objects (polylines,
// lines, planes) that the CLI loads for reporting and extrusion.
package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chazu/xylem/pkg/geom"
	"github.com/sauerbraten/jsonfile"
)

// ---------------------------------------------------------------------------
// Document types
// ---------------------------------------------------------------------------

// Scene is the root of a scene document.
type Scene struct {
	Polylines []PolylineSpec `json:"polylines,omitempty"`
	Lines     []LineSpec     `json:"lines,omitempty"`
	Planes    []PlaneSpec    `json:"planes,omitempty"`
}

// PolylineSpec is a named point sequence.
type PolylineSpec struct {
	Name   string       `json:"name"`
	Points [][3]float64 `json:"points"`
}

// Polyline converts the entry into a kernel polyline.
func (s PolylineSpec) Polyline() geom.Polyline {
	pl := make(geom.Polyline, 0, len(s.Points))
	for _, p := range s.Points {
		pl = append(pl, geom.Point3d{X: p[0], Y: p[1], Z: p[2]})
	}
	return pl
}

// LineSpec is a named segment.
type LineSpec struct {
	Name string     `json:"name"`
	From [3]float64 `json:"from"`
	To   [3]float64 `json:"to"`
}

// Line converts the entry into a kernel line.
func (s LineSpec) Line() geom.Line {
	return geom.NewLine(
		geom.Point3d{X: s.From[0], Y: s.From[1], Z: s.From[2]},
		geom.Point3d{X: s.To[0], Y: s.To[1], Z: s.To[2]},
	)
}

// PlaneSpec is a named origin+normal plane.
type PlaneSpec struct {
	Name   string     `json:"name"`
	Origin [3]float64 `json:"origin"`
	Normal [3]float64 `json:"normal"`
}

// Plane converts the entry into a kernel plane. A zero normal is a hard
// error, same as the kernel constructor.
func (s PlaneSpec) Plane() (geom.Plane, error) {
	return geom.NewPlaneFromNormal(
		geom.Point3d{X: s.Origin[0], Y: s.Origin[1], Z: s.Origin[2]},
		geom.Vector3d{X: s.Normal[0], Y: s.Normal[1], Z: s.Normal[2]},
	)
}

// ---------------------------------------------------------------------------
// Loading and saving
// ---------------------------------------------------------------------------

// Load reads a scene document from path. The file may contain // comments;
// they are stripped before JSON decoding.
func Load(path string) (*Scene, error) {
	var s Scene
	if err := jsonfile.ParseFile(path, &s); err != nil {
		return nil, fmt.Errorf("loading scene %s: %w", path, err)
	}
	return &s, nil
}

// Save writes the scene document to path as indented JSON.
func Save(path string, s *Scene) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding scene: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("saving scene %s: %w", path, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Lookup and validation
// ---------------------------------------------------------------------------

// Polyline finds a polyline by name.
func (s *Scene) Polyline(name string) (geom.Polyline, bool) {
	for _, spec := range s.Polylines {
		if spec.Name == name {
			return spec.Polyline(), true
		}
	}
	return nil, false
}

// Validate reports structural problems with the document: duplicate or
// missing names, polylines with fewer than two points, zero plane normals.
func (s *Scene) Validate() []error {
	var errs []error
	seen := make(map[string]bool)

	check := func(kind, name string) {
		if name == "" {
			errs = append(errs, fmt.Errorf("%s with empty name", kind))
			return
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("duplicate object name %q", name))
		}
		seen[name] = true
	}

	for _, spec := range s.Polylines {
		check("polyline", spec.Name)
		if len(spec.Points) < 2 {
			errs = append(errs, fmt.Errorf("polyline %q has %d points, need at least 2", spec.Name, len(spec.Points)))
		}
	}
	for _, spec := range s.Lines {
		check("line", spec.Name)
	}
	for _, spec := range s.Planes {
		check("plane", spec.Name)
		if (geom.Vector3d{X: spec.Normal[0], Y: spec.Normal[1], Z: spec.Normal[2]}).IsZero(geom.Epsilon) {
			errs = append(errs, fmt.Errorf("plane %q has a zero normal", spec.Name))
		}
	}
	return errs
}

// ---------------------------------------------------------------------------
// Reporting
// ---------------------------------------------------------------------------

// ObjectStat summarizes one scene object for the info report.
type ObjectStat struct {
	Name   string
	Kind   string // "polyline", "line" or "plane"
	Length float64
	Area   float64 // 0 unless closed and planar
	Closed bool
	Planar bool
	Bounds geom.BoundingBox
}

// Stats computes per-object measurements in document order.
func (s *Scene) Stats() []ObjectStat {
	stats := make([]ObjectStat, 0, len(s.Polylines)+len(s.Lines)+len(s.Planes))

	for _, spec := range s.Polylines {
		pl := spec.Polyline()
		st := ObjectStat{
			Name:   spec.Name,
			Kind:   "polyline",
			Length: pl.Length(),
			Closed: pl.IsClosed(geom.Epsilon),
			Planar: pl.IsPlanar(geom.Epsilon),
			Bounds: pl.BoundingBox(),
		}
		if a, ok := pl.Area(geom.Epsilon); ok {
			st.Area = a
		}
		stats = append(stats, st)
	}
	for _, spec := range s.Lines {
		l := spec.Line()
		stats = append(stats, ObjectStat{
			Name:   spec.Name,
			Kind:   "line",
			Length: l.Length(),
			Bounds: l.BoundingBox(),
		})
	}
	for _, spec := range s.Planes {
		stats = append(stats, ObjectStat{
			Name:   spec.Name,
			Kind:   "plane",
			Planar: true,
			Bounds: geom.EmptyBox(),
		})
	}
	return stats
}
