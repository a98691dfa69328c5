package geojson

import (
	"fmt"
	"strings"
)

// Geometry is one GeoJSON geometry object: a type, a coordinate tree whose
// nesting depth is determined by the type, and an optional cached bounding
// box. The zero value is a null geometry.
//
// Coordinates hold the canonical decoded form: []any nodes with float64
// leaves, positions being []any of 2 or 3 numbers. Direct field assignment
// is allowed; Validate accepts any slice kinds and the caller owns bbox
// staleness after mutation.
type Geometry struct {
	Type        GeometryType
	Coordinates any
	BBox        BBox
}

// NewGeometry builds a geometry from explicit fields. Coordinates may be any
// nested slice shape with numeric leaves; bbox may be nil.
func NewGeometry(typ GeometryType, coordinates any, bbox BBox) (*Geometry, error) {
	if typ == "" {
		if coordinates != nil {
			return nil, errFormatf("a null geometry cannot carry coordinates")
		}
		return &Geometry{}, nil
	}
	if _, ok := geometryDepth[typ]; !ok {
		return nil, errFormatf("unrecognized geometry type %q", typ)
	}
	coords, err := normalizeCoords(coordinates)
	if err != nil {
		return nil, err
	}
	return &Geometry{Type: typ, Coordinates: coords, BBox: bbox.Copy()}, nil
}

// GeometryFrom builds a geometry from whatever the caller has: another
// *Geometry (copied), a GeoJSON-shaped mapping, or any Mapper. nil yields a
// null geometry.
func GeometryFrom(obj any, opts Options) (*Geometry, error) {
	switch v := obj.(type) {
	case nil:
		return &Geometry{}, nil
	case *Geometry:
		if v == nil {
			return &Geometry{}, nil
		}
		return v.Copy(), nil
	case Geometry:
		return v.Copy(), nil
	}
	m, ok := asMapping(obj)
	if !ok {
		return nil, errFormatf("cannot build a geometry from %T", obj)
	}
	return geometryFromMapping(m, opts)
}

func geometryFromMapping(m mapping, opts Options) (*Geometry, error) {
	tv, hasType := m.get("type")
	cv, hasCoords := m.get("coordinates")

	// The null-geometry form: type absent or null, coordinates absent.
	if (!hasType || tv == nil) && (!hasCoords || cv == nil) {
		return &Geometry{}, nil
	}
	if !hasType || !hasCoords {
		return nil, errFormatf("a geometry mapping must have type and coordinates entries")
	}

	name, ok := tv.(string)
	if !ok {
		return nil, errFormatf("geometry type must be a string, got %T", tv)
	}
	typ := GeometryType(name)
	if _, ok := geometryDepth[typ]; !ok {
		fixed, fixable := fixGeometryType(name)
		if !fixable || !opts.FixErrors {
			return nil, errFormatf("unrecognized geometry type %q", name)
		}
		typ = fixed
	}

	coords, err := normalizeCoords(cv)
	if err != nil {
		return nil, err
	}
	g := &Geometry{Type: typ, Coordinates: coords}

	if bv, ok := m.get("bbox"); ok && bv != nil {
		bbox, err := parseBBox(bv)
		if err != nil {
			return nil, err
		}
		g.BBox = bbox
	}
	return g, nil
}

// fixGeometryType repairs case-mangled geometry type names such as "point"
// or "MULTIPOLYGON". Anything else is unfixable.
func fixGeometryType(name string) (GeometryType, bool) {
	lower := strings.ToLower(name)
	core := strings.TrimPrefix(lower, "multi")
	var base GeometryType
	switch core {
	case "point":
		base = Point
	case "linestring":
		base = LineString
	case "polygon":
		base = Polygon
	default:
		return "", false
	}
	if strings.HasPrefix(lower, "multi") {
		return "Multi" + base, true
	}
	return base, true
}

// IsNull reports whether this is a null geometry.
func (g *Geometry) IsNull() bool {
	return g == nil || g.Type == ""
}

// Copy returns an independent copy of the geometry.
func (g *Geometry) Copy() *Geometry {
	if g.IsNull() {
		return &Geometry{}
	}
	return &Geometry{
		Type:        g.Type,
		Coordinates: copyTree(g.Coordinates),
		BBox:        g.BBox.Copy(),
	}
}

// Validate walks the coordinate tree and checks that the nesting depth
// matches the geometry type, that every position holds 2 or 3 numbers, that
// lines have at least two positions and polygon rings at least three. The
// first mismatch in depth-first, left-to-right order is reported as an
// ErrFormat; Options.SkipErrors suppresses it.
func (g *Geometry) Validate(opts Options) error {
	err := g.validate()
	if err != nil && opts.SkipErrors {
		return nil
	}
	return err
}

func (g *Geometry) validate() error {
	if g.IsNull() {
		if g.Coordinates != nil {
			return errFormatf("a null geometry cannot carry coordinates")
		}
		return nil
	}
	depth, ok := geometryDepth[g.Type]
	if !ok {
		return errFormatf("unrecognized geometry type %q", g.Type)
	}
	return validateLevel(g.Coordinates, g.Type, depth, "coordinates")
}

func validateLevel(node any, typ GeometryType, depth int, path string) error {
	if depth == 1 {
		return validatePosition(node, path)
	}
	seq, ok := asSequence(node)
	if !ok {
		return errFormatf("%s: expected a coordinate sequence, got %T", path, node)
	}
	if n := minElements(typ, depth); len(seq) < n {
		return errFormatf("%s: %s needs at least %d elements here, got %d", path, typ, n, len(seq))
	}
	for i, child := range seq {
		if err := validateLevel(child, typ, depth-1, fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func validatePosition(node any, path string) error {
	seq, ok := asSequence(node)
	if !ok {
		return errFormatf("%s: expected a position, got %T", path, node)
	}
	if len(seq) < 2 || len(seq) > 3 {
		return errFormatf("%s: a position needs 2 or 3 values, got %d", path, len(seq))
	}
	for i, v := range seq {
		if _, ok := toFloat(v); !ok {
			return errFormatf("%s[%d]: not a number: %v", path, i, v)
		}
	}
	return nil
}

// minElements returns the minimum sequence length at a given nesting depth:
// lines need two positions, polygon rings three, and a polygon at least one
// ring.
func minElements(typ GeometryType, depth int) int {
	switch {
	case depth == 2 && (typ == MultiPoint || typ == LineString || typ == MultiLineString):
		return 2
	case depth == 2 && (typ == Polygon || typ == MultiPolygon):
		return 3
	case depth == 3 && (typ == Polygon || typ == MultiPolygon):
		return 1
	}
	return 0
}

// ComputeBBox flattens every position in the coordinate tree and reduces to
// the componentwise min and max per axis. The result has three axes when any
// position carries a third coordinate. Pure: the cached BBox field is left
// alone. Returns nil for a null geometry or one without positions.
func (g *Geometry) ComputeBBox() BBox {
	if g.IsNull() {
		return nil
	}
	var (
		xmin, ymin, zmin float64
		xmax, ymax, zmax float64
		seenXY, seenZ    bool
	)
	forEachPosition(g.Coordinates, func(pos []float64) {
		if len(pos) < 2 {
			return
		}
		x, y := pos[0], pos[1]
		if !seenXY {
			xmin, xmax, ymin, ymax = x, x, y, y
			seenXY = true
		} else {
			xmin = min(xmin, x)
			xmax = max(xmax, x)
			ymin = min(ymin, y)
			ymax = max(ymax, y)
		}
		if len(pos) >= 3 {
			z := pos[2]
			if !seenZ {
				zmin, zmax = z, z
				seenZ = true
			} else {
				zmin = min(zmin, z)
				zmax = max(zmax, z)
			}
		}
	})
	if !seenXY {
		return nil
	}
	if seenZ {
		return BBox{xmin, ymin, zmin, xmax, ymax, zmax}
	}
	return BBox{xmin, ymin, xmax, ymax}
}

// UpdateBBox recomputes the bounding box and stores it on the geometry.
func (g *Geometry) UpdateBBox() BBox {
	g.BBox = g.ComputeBBox()
	return g.BBox
}

// forEachPosition visits every position leaf in depth-first, left-to-right
// order. A sequence counts as a position when its first element is numeric.
func forEachPosition(node any, fn func(pos []float64)) {
	seq, ok := asSequence(node)
	if !ok || len(seq) == 0 {
		return
	}
	if _, numeric := toFloat(seq[0]); numeric {
		pos := make([]float64, 0, len(seq))
		for _, v := range seq {
			if f, ok := toFloat(v); ok {
				pos = append(pos, f)
			}
		}
		fn(pos)
		return
	}
	for _, child := range seq {
		forEachPosition(child, fn)
	}
}

// ToMapping serializes the geometry back to its GeoJSON mapping shape. The
// bbox entry is emitted only when one is currently cached, exactly as
// stored. A null geometry serializes to nil.
func (g *Geometry) ToMapping() map[string]any {
	if g.IsNull() {
		return nil
	}
	m := map[string]any{
		"type":        string(g.Type),
		"coordinates": g.Coordinates,
	}
	if g.BBox != nil {
		m["bbox"] = g.BBox
	}
	return m
}
