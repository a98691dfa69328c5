package processor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/geoj/internal/config"
	"github.com/woozymasta/geoj/internal/geojson"

	"github.com/cheekybits/is"
)

const sampleDoc = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "properties": {"name": "a"}, "geometry": {"type": "Point", "coordinates": [1, 2]}},
		{"type": "Feature", "properties": {"name": "b", "pop": 3}, "geometry": {"type": "LineString", "coordinates": [[0, 0], [4, 5]]}},
		{"type": "Feature", "properties": {"name": "c"}, "geometry": null}
	]
}`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.geojson")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessAppliesFixups(t *testing.T) {
	is := is.New(t)

	in := writeSample(t, sampleDoc)
	out := filepath.Join(t.TempDir(), "out.geojson")

	err := Process(config.Job{
		Input:     in,
		Output:    out,
		AddBBoxes: true,
		AddIDs:    true,
		CRS:       &config.CRS{Type: "name", Name: "urn:ogc:def:crs:EPSG::25833"},
	})
	is.NoErr(err)

	c, err := geojson.LoadFile(out, "", geojson.Options{})
	is.NoErr(err)
	is.Equal(c.Len(), 3)
	is.Equal(c.CRS.Kind, geojson.CRSNamed)
	is.Equal(c.BBox(), geojson.BBox{0, 0, 4, 5})

	for _, f := range c.All() {
		is.NotNil(f.ID)
		if !f.Geometry.IsNull() {
			is.NotNil(f.Geometry.BBox)
		}
	}
}

func TestProcessRewritesInPlace(t *testing.T) {
	is := is.New(t)

	in := writeSample(t, sampleDoc)
	is.NoErr(Process(config.Job{Input: in, Pretty: true}))

	raw, err := os.ReadFile(in)
	is.NoErr(err)
	is.OK(json.Valid(raw))

	c, err := geojson.LoadFile(in, "", geojson.Options{})
	is.NoErr(err)
	is.Equal(c.Len(), 3)
	is.NotNil(c.BBox()) // saving updates the collection bbox
}

func TestProcessPropagatesConflicts(t *testing.T) {
	is := is.New(t)

	in := writeSample(t, `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "id": 42, "properties": {}, "geometry": null}
		]
	}`)

	err := Process(config.Job{Input: in, AddIDs: true})
	is.Err(err)

	is.NoErr(Process(config.Job{Input: in, AddIDs: true, OverwriteIDs: true}))
}

func TestInspect(t *testing.T) {
	is := is.New(t)

	in := writeSample(t, sampleDoc)
	s, err := Inspect(in, "", geojson.Options{})
	is.NoErr(err)

	is.Equal(s.Features, 3)
	is.Equal(s.BBox, geojson.BBox{0, 0, 4, 5})
	is.Equal(s.GeometryTypes, map[string]int{"Point": 1, "LineString": 1})
	is.Equal(s.NullGeometries, 1)
	is.Equal(s.AllAttributes, []string{"name", "pop"})
	is.Equal(s.CommonAttributes, []string{"name"})
}

func TestMinifyFile(t *testing.T) {
	is := is.New(t)

	in := writeSample(t, sampleDoc)
	out := filepath.Join(t.TempDir(), "min.geojson")
	is.NoErr(MinifyFile(in, out))

	raw, err := os.ReadFile(out)
	is.NoErr(err)
	is.OK(json.Valid(raw))

	orig, err := os.ReadFile(in)
	is.NoErr(err)
	is.OK(len(raw) < len(orig))

	// semantics survive minification
	c, err := geojson.LoadFile(out, "", geojson.Options{})
	is.NoErr(err)
	is.Equal(c.Len(), 3)
}
