package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cheekybits/is"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	is := is.New(t)

	path := writeConfig(t, `
encoding: latin1
jobs:
  - input: a.geojson
    output: a.fixed.geojson
    fix_errors: true
    add_bboxes: true
    crs:
      type: name
      name: urn:ogc:def:crs:EPSG::25833
  - input: b.geojson
    encoding: utf-8
    add_ids: true
    pretty: true
`)

	cfg, err := Load(path)
	is.NoErr(err)
	is.Equal(len(cfg.Jobs), 2)

	a := cfg.Jobs[0]
	is.Equal(a.Input, "a.geojson")
	is.Equal(a.Output, "a.fixed.geojson")
	is.OK(a.FixErrors)
	is.OK(a.AddBBoxes)
	is.Equal(a.Encoding, "latin1") // inherited default
	is.NotNil(a.CRS)
	is.Equal(a.CRS.Type, "name")
	is.Equal(a.CRS.Name, "urn:ogc:def:crs:EPSG::25833")

	b := cfg.Jobs[1]
	is.Equal(b.Encoding, "utf-8") // explicit wins over the default
	is.OK(b.AddIDs)
	is.OK(b.Pretty)
	is.Nil(b.CRS)
}

func TestLoadRejectsJobWithoutInput(t *testing.T) {
	is := is.New(t)

	path := writeConfig(t, `
jobs:
  - output: out.geojson
`)
	_, err := Load(path)
	is.Err(err)
}

func TestLoadMissingFile(t *testing.T) {
	is := is.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	is.Err(err)
}
