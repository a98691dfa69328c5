package processor

import (
	"github.com/woozymasta/geoj/internal/geojson"
)

// Summary is the digest of a feature collection reported by geojinfo and the
// preview server.
type Summary struct {
	Path             string         `json:"path,omitempty"`
	Features         int            `json:"features"`
	BBox             geojson.BBox   `json:"bbox,omitempty"`
	CRS              string         `json:"crs"`
	GeometryTypes    map[string]int `json:"geometry_types"`
	NullGeometries   int            `json:"null_geometries"`
	AllAttributes    []string       `json:"all_attributes"`
	CommonAttributes []string       `json:"common_attributes"`
}

// Inspect loads a GeoJSON file and condenses it into a Summary. The
// collection bbox is recomputed so the report never shows stale extents.
func Inspect(path, encodingName string, opts geojson.Options) (*Summary, error) {
	c, err := geojson.LoadFile(path, encodingName, opts)
	if err != nil {
		return nil, err
	}
	s := Summarize(c)
	s.Path = path
	return s, nil
}

// Summarize builds the digest of an already-loaded collection.
func Summarize(c *geojson.Collection) *Summary {
	s := &Summary{
		Features:         c.Len(),
		BBox:             c.UpdateBBox(),
		CRS:              c.CRS.String(),
		GeometryTypes:    make(map[string]int),
		AllAttributes:    c.AllAttributes(),
		CommonAttributes: c.CommonAttributes(),
	}
	for _, f := range c.All() {
		if f.Geometry.IsNull() {
			s.NullGeometries++
			continue
		}
		s.GeometryTypes[string(f.Geometry.Type)]++
	}
	return s
}
