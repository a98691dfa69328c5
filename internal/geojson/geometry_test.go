package geojson

import (
	"errors"
	"testing"

	"github.com/cheekybits/is"
)

func TestComputeBBoxMatchesBruteForce(t *testing.T) {
	is := is.New(t)

	cases := []struct {
		name   string
		typ    GeometryType
		coords any
		want   BBox
	}{
		{
			name:   "point",
			typ:    Point,
			coords: []float64{5, -3},
			want:   BBox{5, -3, 5, -3},
		},
		{
			name:   "linestring",
			typ:    LineString,
			coords: [][]float64{{21, 3}, {33, 11}, {44, 22}},
			want:   BBox{21, 3, 44, 22},
		},
		{
			name:   "multipoint",
			typ:    MultiPoint,
			coords: [][]float64{{-10, 7}, {4, -2}},
			want:   BBox{-10, -2, 4, 7},
		},
		{
			name: "multilinestring",
			typ:  MultiLineString,
			coords: [][][]float64{
				{{0, 0}, {1, 1}},
				{{-5, 2}, {3, 9}},
			},
			want: BBox{-5, 0, 3, 9},
		},
		{
			name: "polygon with hole",
			typ:  Polygon,
			coords: [][][]float64{
				{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
				{{2, 2}, {4, 2}, {3, 4}, {2, 2}},
			},
			want: BBox{0, 0, 10, 10},
		},
		{
			name: "multipolygon",
			typ:  MultiPolygon,
			coords: [][][][]float64{
				{{{0, 0}, {2, 0}, {1, 2}, {0, 0}}},
				{{{5, 5}, {8, 5}, {6, 9}, {5, 5}}},
			},
			want: BBox{0, 0, 8, 9},
		},
		{
			name:   "linestring 3d",
			typ:    LineString,
			coords: [][]float64{{1, 2, 3}, {4, 5, -6}},
			want:   BBox{1, 2, -6, 4, 5, 3},
		},
	}

	for _, tc := range cases {
		g, err := NewGeometry(tc.typ, tc.coords, nil)
		is.NoErr(err)
		is.Equal(g.ComputeBBox(), tc.want)

		// brute-force scan over every leaf must agree
		var brute BBox
		forEachPosition(g.Coordinates, func(pos []float64) {
			brute = unionBBoxes([]BBox{brute, positionBox(pos)})
		})
		is.Equal(g.ComputeBBox(), brute)
	}
}

func positionBox(pos []float64) BBox {
	if len(pos) >= 3 {
		return BBox{pos[0], pos[1], pos[2], pos[0], pos[1], pos[2]}
	}
	return BBox{pos[0], pos[1], pos[0], pos[1]}
}

func TestNullGeometry(t *testing.T) {
	is := is.New(t)

	g, err := NewGeometry("", nil, nil)
	is.NoErr(err)
	is.OK(g.IsNull())
	is.Nil(g.ComputeBBox())
	is.NoErr(g.Validate(Options{}))
	is.Nil(g.ToMapping())

	// the null-geometry mapping form is valid
	g2, err := GeometryFrom(map[string]any{}, Options{})
	is.NoErr(err)
	is.OK(g2.IsNull())

	// but a null geometry must not carry coordinates
	_, err = NewGeometry("", []float64{1, 2}, nil)
	is.Err(err)
	is.OK(errors.Is(err, ErrFormat))
}

func TestValidateStructure(t *testing.T) {
	is := is.New(t)

	valid := []struct {
		typ    GeometryType
		coords any
	}{
		{Point, []float64{1, 2}},
		{Point, []float64{1, 2, 3}},
		{LineString, [][]float64{{1, 2}, {3, 4}}},
		{MultiPoint, [][]float64{{1, 2}, {3, 4}}},
		{Polygon, [][][]float64{{{0, 0}, {1, 0}, {0, 1}}}},
		{MultiPolygon, [][][][]float64{{{{0, 0}, {1, 0}, {0, 1}}}}},
	}
	for _, tc := range valid {
		g, err := NewGeometry(tc.typ, tc.coords, nil)
		is.NoErr(err)
		is.NoErr(g.Validate(Options{}))
	}

	invalid := []struct {
		typ    GeometryType
		coords any
	}{
		{Point, []float64{1}},                            // too few values
		{Point, []float64{1, 2, 3, 4}},                   // too many values
		{Point, [][]float64{{1, 2}}},                     // wrong depth
		{LineString, [][]float64{{1, 2}}},                // single position
		{LineString, []float64{1, 2}},                    // wrong depth
		{Polygon, [][][]float64{}},                       // no rings
		{Polygon, [][][]float64{{{0, 0}, {1, 1}}}},       // ring too short
		{MultiPolygon, [][][]float64{{{0, 0}, {1, 1}}}},  // wrong depth
		{LineString, []any{[]any{1.0, 2.0}, "not-a-pos"}},
	}
	for _, tc := range invalid {
		g := &Geometry{Type: tc.typ}
		var err error
		g.Coordinates, err = normalizeCoords(tc.coords)
		if err == nil {
			err = g.Validate(Options{})
		}
		is.Err(err)
		is.OK(errors.Is(err, ErrFormat))

		// skipErrors suppresses the same problem
		if g.Coordinates != nil {
			is.NoErr(g.Validate(Options{SkipErrors: true}))
		}
	}
}

func TestValidateReportsFirstMismatch(t *testing.T) {
	is := is.New(t)

	g, err := NewGeometry(MultiLineString, []any{
		[]any{[]any{0.0, 0.0}, []any{1.0, 1.0}},
		[]any{[]any{2.0, 2.0}, []any{3.0}},
	}, nil)
	is.NoErr(err)

	err = g.Validate(Options{})
	is.Err(err)
	is.Equal(err.Error(), "invalid geojson structure: coordinates[1][1]: a position needs 2 or 3 values, got 1")
}

func TestFixGeometryTypeCase(t *testing.T) {
	is := is.New(t)

	m := map[string]any{"type": "point", "coordinates": []float64{1, 2}}
	_, err := GeometryFrom(m, Options{})
	is.Err(err)
	is.OK(errors.Is(err, ErrFormat))

	g, err := GeometryFrom(m, Options{FixErrors: true})
	is.NoErr(err)
	is.Equal(g.Type, Point)

	m = map[string]any{"type": "MULTIPOLYGON", "coordinates": [][][][]float64{{{{0, 0}, {1, 0}, {0, 1}}}}}
	g, err = GeometryFrom(m, Options{FixErrors: true})
	is.NoErr(err)
	is.Equal(g.Type, MultiPolygon)

	m = map[string]any{"type": "circle", "coordinates": []float64{1, 2}}
	_, err = GeometryFrom(m, Options{FixErrors: true})
	is.Err(err)
}

func TestBBoxEmittedOnlyWhenCached(t *testing.T) {
	is := is.New(t)

	g, err := NewGeometry(LineString, [][]float64{{21, 3}, {44, 22}}, nil)
	is.NoErr(err)

	_, hasBBox := g.ToMapping()["bbox"]
	is.OK(!hasBBox)

	is.Equal(g.UpdateBBox(), BBox{21, 3, 44, 22})
	is.Equal(g.ToMapping()["bbox"], BBox{21, 3, 44, 22})

	// serialization never recomputes: a stored box is emitted as-is
	g.BBox = BBox{0, 0, 1, 1}
	is.Equal(g.ToMapping()["bbox"], BBox{0, 0, 1, 1})
}

func TestGeometryCopyIsIndependent(t *testing.T) {
	is := is.New(t)

	orig, err := NewGeometry(Point, []float64{1, 2}, BBox{1, 2, 1, 2})
	is.NoErr(err)

	cp, err := GeometryFrom(orig, Options{})
	is.NoErr(err)
	cp.Coordinates.([]any)[0] = 99.0
	cp.BBox[0] = 99

	is.Equal(orig.Coordinates.([]any)[0], 1.0)
	is.Equal(orig.BBox[0], 1.0)
}
