package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/xylem/pkg/geom"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms xylem Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: intersect-lines -> intersect_lines
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing geometry values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec wraps a geom.Vector3d so it can be passed between builtins.
type sexpVec struct {
	v geom.Vector3d
}

func (s *sexpVec) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", s.v.X, s.v.Y, s.v.Z)
}
func (s *sexpVec) Type() *zygo.RegisteredType { return nil }

// sexpPoint wraps a geom.Point3d.
type sexpPoint struct {
	p geom.Point3d
}

func (s *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(point3 %g %g %g)", s.p.X, s.p.Y, s.p.Z)
}
func (s *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpLine wraps a geom.Line.
type sexpLine struct {
	l geom.Line
}

func (s *sexpLine) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(line (point3 %g %g %g) (point3 %g %g %g))",
		s.l.From.X, s.l.From.Y, s.l.From.Z, s.l.To.X, s.l.To.Y, s.l.To.Z)
}
func (s *sexpLine) Type() *zygo.RegisteredType { return nil }

// sexpPlane wraps a geom.Plane.
type sexpPlane struct {
	p geom.Plane
}

func (s *sexpPlane) SexpString(ps *zygo.PrintState) string {
	n := s.p.Normal()
	return fmt.Sprintf("(plane (point3 %g %g %g) (vec3 %g %g %g))",
		s.p.Origin.X, s.p.Origin.Y, s.p.Origin.Z, n.X, n.Y, n.Z)
}
func (s *sexpPlane) Type() *zygo.RegisteredType { return nil }

// sexpPolyline wraps a geom.Polyline.
type sexpPolyline struct {
	pl geom.Polyline
}

func (s *sexpPolyline) SexpString(ps *zygo.PrintState) string {
	var sb strings.Builder
	sb.WriteString("(polyline")
	for _, p := range s.pl {
		fmt.Fprintf(&sb, " (point3 %g %g %g)", p.X, p.Y, p.Z)
	}
	sb.WriteString(")")
	return sb.String()
}
func (s *sexpPolyline) Type() *zygo.RegisteredType { return nil }

// sexpTransform wraps a geom.Transform.
type sexpTransform struct {
	t geom.Transform
}

func (s *sexpTransform) SexpString(ps *zygo.PrintState) string {
	rm := s.t.RowMajor()
	return fmt.Sprintf("(transform %g %g %g %g ...)", rm[0], rm[1], rm[2], rm[3])
}
func (s *sexpTransform) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toVector extracts a Vector3d from a sexpVec.
func toVector(s zygo.Sexp) (geom.Vector3d, error) {
	if v, ok := s.(*sexpVec); ok {
		return v.v, nil
	}
	return geom.Vector3d{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toPoint extracts a Point3d from a sexpPoint.
func toPoint(s zygo.Sexp) (geom.Point3d, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.p, nil
	}
	return geom.Point3d{}, fmt.Errorf("expected point3, got %T (%s)", s, s.SexpString(nil))
}

// toLine extracts a Line from a sexpLine.
func toLine(s zygo.Sexp) (geom.Line, error) {
	if l, ok := s.(*sexpLine); ok {
		return l.l, nil
	}
	return geom.Line{}, fmt.Errorf("expected line, got %T (%s)", s, s.SexpString(nil))
}

// toPlane extracts a Plane from a sexpPlane.
func toPlane(s zygo.Sexp) (geom.Plane, error) {
	if p, ok := s.(*sexpPlane); ok {
		return p.p, nil
	}
	return geom.Plane{}, fmt.Errorf("expected plane, got %T (%s)", s, s.SexpString(nil))
}

// toPolyline extracts a Polyline from a sexpPolyline.
func toPolyline(s zygo.Sexp) (geom.Polyline, error) {
	if pl, ok := s.(*sexpPolyline); ok {
		return pl.pl, nil
	}
	return nil, fmt.Errorf("expected polyline, got %T (%s)", s, s.SexpString(nil))
}

// toTransform extracts a Transform from a sexpTransform.
func toTransform(s zygo.Sexp) (geom.Transform, error) {
	if t, ok := s.(*sexpTransform); ok {
		return t.t, nil
	}
	return geom.Transform{}, fmt.Errorf("expected transform, got %T (%s)", s, s.SexpString(nil))
}

// threeFloats extracts exactly three numeric arguments.
func threeFloats(name string, args []zygo.Sexp) (x, y, z float64, err error) {
	if len(args) != 3 {
		return 0, 0, 0, fmt.Errorf("%s requires exactly 3 arguments, got %d", name, len(args))
	}
	if x, err = toFloat64(args[0]); err != nil {
		return 0, 0, 0, fmt.Errorf("%s: x: %w", name, err)
	}
	if y, err = toFloat64(args[1]); err != nil {
		return 0, 0, 0, fmt.Errorf("%s: y: %w", name, err)
	}
	if z, err = toFloat64(args[2]); err != nil {
		return 0, 0, 0, fmt.Errorf("%s: z: %w", name, err)
	}
	return x, y, z, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the xylem geometry builtins into a zygomys
// environment. The builtins wrap pkg/geom values in Sexp carriers; hard
// kernel errors surface as zygomys eval errors, soft misses return nil.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals and
// kebab-case names match the underscore registrations below.
func registerBuiltins(env *zygo.Zlisp, res *Result) {

	// -----------------------------------------------------------------------
	// (emit x ...) — record the printed form of each argument in the result.
	// -----------------------------------------------------------------------
	env.AddFunction("emit", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		for _, a := range args {
			res.Values = append(res.Values, a.SexpString(nil))
		}
		if len(args) > 0 {
			return args[len(args)-1], nil
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// Constructors: (vec3 x y z), (point3 x y z), (line p q),
	// (plane origin normal), (polyline p1 p2 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		x, y, z, err := threeFloats("vec3", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec{v: geom.Vector3d{X: x, Y: y, Z: z}}, nil
	})

	env.AddFunction("point3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		x, y, z, err := threeFloats("point3", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPoint{p: geom.Point3d{X: x, Y: y, Z: z}}, nil
	})

	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("line requires exactly 2 points, got %d arguments", len(args))
		}
		from, err := toPoint(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: from: %w", err)
		}
		to, err := toPoint(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: to: %w", err)
		}
		return &sexpLine{l: geom.NewLine(from, to)}, nil
	})

	env.AddFunction("plane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("plane requires an origin and a normal, got %d arguments", len(args))
		}
		origin, err := toPoint(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("plane: origin: %w", err)
		}
		normal, err := toVector(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("plane: normal: %w", err)
		}
		p, err := geom.NewPlaneFromNormal(origin, normal)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("plane: %w", err)
		}
		return &sexpPlane{p: p}, nil
	})

	// (polyline p1 p2 ... [:closed true]) — :closed appends the first
	// point again when the loop is not already closed.
	env.AddFunction("polyline", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		pl := make(geom.Polyline, 0, len(pa.positional)+1)
		for i, a := range pa.positional {
			p, err := toPoint(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polyline: point %d: %w", i, err)
			}
			pl = append(pl, p)
		}
		if v, ok := pa.kw["closed"]; ok {
			want := true
			if b, isBool := v.(*zygo.SexpBool); isBool {
				want = b.Val
			}
			if want && len(pl) > 1 && !pl.IsClosed(geom.Epsilon) {
				pl = append(pl, pl[0])
			}
		}
		return &sexpPolyline{pl: pl}, nil
	})

	// -----------------------------------------------------------------------
	// Vector arithmetic: (vec-add a b), (vec-sub a b), (vec-scale v s), (dot a b),
	// (cross a b), (unitize v), (angle a b [normal])
	// -----------------------------------------------------------------------
	env.AddFunction("vec_add", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("vec-add requires exactly 2 arguments, got %d", len(args))
		}
		// point + vector moves the point; vector + vector adds.
		if p, ok := args[0].(*sexpPoint); ok {
			v, err := toVector(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec-add: %w", err)
			}
			return &sexpPoint{p: p.p.Add(v)}, nil
		}
		a, err := toVector(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec-add: %w", err)
		}
		b, err := toVector(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec-add: %w", err)
		}
		return &sexpVec{v: a.Add(b)}, nil
	})

	env.AddFunction("vec_sub", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("vec-sub requires exactly 2 arguments, got %d", len(args))
		}
		// point - point yields the displacement vector.
		if p, ok := args[0].(*sexpPoint); ok {
			q, err := toPoint(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec-sub: %w", err)
			}
			return &sexpVec{v: p.p.Sub(q)}, nil
		}
		a, err := toVector(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec-sub: %w", err)
		}
		b, err := toVector(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec-sub: %w", err)
		}
		return &sexpVec{v: a.Sub(b)}, nil
	})

	env.AddFunction("vec_scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("vec-scale requires exactly 2 arguments, got %d", len(args))
		}
		v, err := toVector(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec-scale: %w", err)
		}
		s, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec-scale: %w", err)
		}
		return &sexpVec{v: v.Mul(s)}, nil
	})

	env.AddFunction("dot", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("dot requires exactly 2 arguments, got %d", len(args))
		}
		a, err := toVector(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("dot: %w", err)
		}
		b, err := toVector(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("dot: %w", err)
		}
		return &zygo.SexpFloat{Val: a.Dot(b)}, nil
	})

	env.AddFunction("cross", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("cross requires exactly 2 arguments, got %d", len(args))
		}
		a, err := toVector(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cross: %w", err)
		}
		b, err := toVector(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cross: %w", err)
		}
		return &sexpVec{v: a.Cross(b)}, nil
	})

	env.AddFunction("unitize", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("unitize requires exactly 1 argument, got %d", len(args))
		}
		v, err := toVector(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("unitize: %w", err)
		}
		u, err := v.Unitize()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("unitize: %w", err)
		}
		return &sexpVec{v: u}, nil
	})

	env.AddFunction("angle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 && len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("angle requires 2 or 3 arguments, got %d", len(args))
		}
		a, err := toVector(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("angle: %w", err)
		}
		b, err := toVector(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("angle: %w", err)
		}
		if len(args) == 3 {
			n, err := toVector(args[2])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("angle: normal: %w", err)
			}
			theta, err := geom.SignedVectorAngle(a, b, n)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("angle: %w", err)
			}
			return &zygo.SexpFloat{Val: theta}, nil
		}
		theta, err := geom.VectorAngle(a, b)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("angle: %w", err)
		}
		return &zygo.SexpFloat{Val: theta}, nil
	})

	// -----------------------------------------------------------------------
	// Transforms: (translation v), (rotation angle axis center),
	// (scaling center factor), (mirror plane), (combine t ...), (transform t x)
	// -----------------------------------------------------------------------
	env.AddFunction("translation", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("translation requires exactly 1 vector, got %d arguments", len(args))
		}
		v, err := toVector(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translation: %w", err)
		}
		return &sexpTransform{t: geom.Translation(v)}, nil
	})

	env.AddFunction("rotation", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("rotation requires angle, axis and center, got %d arguments", len(args))
		}
		angle, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotation: angle: %w", err)
		}
		axis, err := toVector(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotation: axis: %w", err)
		}
		center, err := toPoint(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotation: center: %w", err)
		}
		t, err := geom.Rotation(angle, axis, center)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotation: %w", err)
		}
		return &sexpTransform{t: t}, nil
	})

	env.AddFunction("scaling", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("scaling requires a center and a factor, got %d arguments", len(args))
		}
		center, err := toPoint(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scaling: center: %w", err)
		}
		factor, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scaling: factor: %w", err)
		}
		return &sexpTransform{t: geom.Scale(center, factor)}, nil
	})

	env.AddFunction("mirror", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("mirror requires exactly 1 plane, got %d arguments", len(args))
		}
		p, err := toPlane(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mirror: %w", err)
		}
		return &sexpTransform{t: geom.Mirror(p)}, nil
	})

	env.AddFunction("combine", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		ts := make([]geom.Transform, 0, len(args))
		for i, a := range args {
			t, err := toTransform(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("combine: argument %d: %w", i, err)
			}
			ts = append(ts, t)
		}
		return &sexpTransform{t: geom.Combine(ts...)}, nil
	})

	env.AddFunction("transform", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("transform requires a transform and a value, got %d arguments", len(args))
		}
		t, err := toTransform(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("transform: %w", err)
		}
		switch v := args[1].(type) {
		case *sexpVec:
			return &sexpVec{v: v.v.Transform(t)}, nil
		case *sexpPoint:
			return &sexpPoint{p: v.p.Transform(t)}, nil
		case *sexpLine:
			return &sexpLine{l: v.l.Transform(t)}, nil
		case *sexpPolyline:
			return &sexpPolyline{pl: v.pl.Transform(t)}, nil
		case *sexpPlane:
			moved, err := v.p.Transform(t)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("transform: plane: %w", err)
			}
			return &sexpPlane{p: moved}, nil
		}
		return zygo.SexpNull, fmt.Errorf("transform: cannot transform %T (%s)", args[1], args[1].SexpString(nil))
	})

	// -----------------------------------------------------------------------
	// Queries: (closest-point obj p), (distance obj p), (length obj),
	// (area pl), (inside? pl p), (planar? pl)
	// Registered with underscores; the preprocessor converts kebab-case.
	// -----------------------------------------------------------------------
	env.AddFunction("closest_point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("closest-point requires an object and a point, got %d arguments", len(args))
		}
		p, err := toPoint(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("closest-point: %w", err)
		}
		switch v := args[0].(type) {
		case *sexpLine:
			return &sexpPoint{p: v.l.ClosestPoint(p, true)}, nil
		case *sexpPlane:
			return &sexpPoint{p: v.p.ClosestPoint(p)}, nil
		case *sexpPolyline:
			return &sexpPoint{p: v.pl.ClosestPoint(p)}, nil
		}
		return zygo.SexpNull, fmt.Errorf("closest-point: cannot query %T (%s)", args[0], args[0].SexpString(nil))
	})

	env.AddFunction("distance", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("distance requires an object and a point, got %d arguments", len(args))
		}
		p, err := toPoint(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("distance: %w", err)
		}
		switch v := args[0].(type) {
		case *sexpPoint:
			return &zygo.SexpFloat{Val: v.p.DistanceTo(p)}, nil
		case *sexpLine:
			return &zygo.SexpFloat{Val: v.l.DistanceTo(p, true)}, nil
		case *sexpPlane:
			return &zygo.SexpFloat{Val: v.p.DistanceTo(p)}, nil
		}
		return zygo.SexpNull, fmt.Errorf("distance: cannot query %T (%s)", args[0], args[0].SexpString(nil))
	})

	env.AddFunction("length", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("length requires exactly 1 argument, got %d", len(args))
		}
		switch v := args[0].(type) {
		case *sexpVec:
			return &zygo.SexpFloat{Val: v.v.Length()}, nil
		case *sexpLine:
			return &zygo.SexpFloat{Val: v.l.Length()}, nil
		case *sexpPolyline:
			return &zygo.SexpFloat{Val: v.pl.Length()}, nil
		}
		return zygo.SexpNull, fmt.Errorf("length: cannot measure %T (%s)", args[0], args[0].SexpString(nil))
	})

	env.AddFunction("area", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("area requires exactly 1 polyline, got %d arguments", len(args))
		}
		pl, err := toPolyline(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("area: %w", err)
		}
		a, ok := pl.Area(geom.Epsilon)
		if !ok {
			return zygo.SexpNull, nil
		}
		return &zygo.SexpFloat{Val: a}, nil
	})

	env.AddFunction("inside?", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("inside? requires a polyline and a point, got %d arguments", len(args))
		}
		pl, err := toPolyline(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("inside?: %w", err)
		}
		p, err := toPoint(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("inside?: %w", err)
		}
		in, err := pl.IsPointInside(p, geom.Epsilon)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("inside?: %w", err)
		}
		return &zygo.SexpBool{Val: in}, nil
	})

	env.AddFunction("planar?", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("planar? requires exactly 1 polyline, got %d arguments", len(args))
		}
		pl, err := toPolyline(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("planar?: %w", err)
		}
		return &zygo.SexpBool{Val: pl.IsPlanar(geom.Epsilon)}, nil
	})

	// -----------------------------------------------------------------------
	// Intersections: (intersect-lines a b), (intersect-line-plane l p),
	// (intersect-planes a b [c]). Misses return nil.
	// -----------------------------------------------------------------------
	env.AddFunction("intersect_lines", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("intersect-lines requires exactly 2 lines, got %d arguments", len(args))
		}
		a, err := toLine(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect-lines: %w", err)
		}
		b, err := toLine(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect-lines: %w", err)
		}
		pt, ok := geom.LineLine(a, b, true, geom.Epsilon)
		if !ok {
			return zygo.SexpNull, nil
		}
		return &sexpPoint{p: pt}, nil
	})

	env.AddFunction("intersect_line_plane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("intersect-line-plane requires a line and a plane, got %d arguments", len(args))
		}
		l, err := toLine(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect-line-plane: %w", err)
		}
		p, err := toPlane(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect-line-plane: %w", err)
		}
		pt, _, ok := geom.LinePlane(l, p, false)
		if !ok {
			return zygo.SexpNull, nil
		}
		return &sexpPoint{p: pt}, nil
	})

	env.AddFunction("intersect_planes", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		switch len(args) {
		case 2:
			a, err := toPlane(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("intersect-planes: %w", err)
			}
			b, err := toPlane(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("intersect-planes: %w", err)
			}
			l, ok := geom.PlanePlane(a, b)
			if !ok {
				return zygo.SexpNull, nil
			}
			return &sexpLine{l: l}, nil
		case 3:
			a, err := toPlane(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("intersect-planes: %w", err)
			}
			b, err := toPlane(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("intersect-planes: %w", err)
			}
			c, err := toPlane(args[2])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("intersect-planes: %w", err)
			}
			pt, ok := geom.PlanePlanePlane(a, b, c)
			if !ok {
				return zygo.SexpNull, nil
			}
			return &sexpPoint{p: pt}, nil
		}
		return zygo.SexpNull, fmt.Errorf("intersect-planes requires 2 or 3 planes, got %d arguments", len(args))
	})
}
