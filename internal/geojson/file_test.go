package geojson

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/cheekybits/is"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileAndSaveRoundTrip(t *testing.T) {
	is := is.New(t)

	path := writeTestFile(t, "in.geojson", `{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"properties": {"country": "Norway"},
			"geometry": {"type": "Polygon", "coordinates": [[[21,3],[33,11],[44,22]]]}
		}]
	}`)

	c, err := LoadFile(path, "", Options{})
	is.NoErr(err)
	is.Equal(c.Len(), 1)

	out := filepath.Join(t.TempDir(), "out.geojson")
	is.NoErr(c.Save(out, "", true))

	c2, err := LoadFile(out, "", Options{})
	is.NoErr(err)
	is.Equal(c2.Len(), 1)
	is.Equal(c2.BBox(), BBox{21, 3, 44, 22}) // save recomputed and stored the bbox
	f, _ := c2.At(0)
	v, _ := f.Properties.Get("country")
	is.Equal(v, "Norway")
}

func TestSaveWithLatin1Encoding(t *testing.T) {
	is := is.New(t)

	c := New()
	_, err := c.AddFeature(
		map[string]any{"type": "Point", "coordinates": []float64{6.1, 62.2}},
		map[string]any{"name": "Ørsta"},
	)
	is.NoErr(err)

	path := filepath.Join(t.TempDir(), "latin1.geojson")
	is.NoErr(c.Save(path, "latin1", true))

	raw, err := os.ReadFile(path)
	is.NoErr(err)
	is.OK(bytes.IndexByte(raw, 0xD8) >= 0) // Ø as a single latin-1 byte
	is.OK(!utf8.Valid(raw) || !bytes.Contains(raw, []byte("Ørsta")))

	c2, err := LoadFile(path, "latin1", Options{})
	is.NoErr(err)
	f, _ := c2.At(0)
	v, _ := f.Properties.Get("name")
	is.Equal(v, "Ørsta")
}

func TestUnknownEncoding(t *testing.T) {
	is := is.New(t)

	path := writeTestFile(t, "in.geojson", `{"type": "FeatureCollection", "features": []}`)
	_, err := LoadFile(path, "klingon-8", Options{})
	is.Err(err)
	is.OK(errors.Is(err, ErrConfig))

	err = New().Save(filepath.Join(t.TempDir(), "out.geojson"), "klingon-8", false)
	is.Err(err)
	is.OK(errors.Is(err, ErrConfig))
}

func TestLoadFileBadJSON(t *testing.T) {
	is := is.New(t)

	path := writeTestFile(t, "broken.geojson", `{"type": "FeatureCollection",`)
	_, err := LoadFile(path, "", Options{})
	is.Err(err)
	is.OK(errors.Is(err, ErrFormat))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.geojson"), "", Options{})
	is.Err(err)
}
