package geojson

import (
	"github.com/iancoleman/orderedmap"
)

// Feature pairs a geometry with a properties mapping and an optional
// identifier. The geometry is always present as a value: a feature without
// one owns an explicit null geometry, never a nil pointer. Properties keep
// their key order.
//
// Properties and Geometry may be reassigned freely; the owning collection's
// bbox goes stale and staying consistent is the caller's responsibility.
type Feature struct {
	Geometry   *Geometry
	Properties *orderedmap.OrderedMap

	// ID is the optional feature identifier (string or number), unique
	// within a collection when present.
	ID any
}

// NewFeature builds a feature from anything GeometryFrom accepts plus a
// properties mapping. Both arguments may be nil: the geometry defaults to a
// null geometry and the properties to an empty mapping.
func NewFeature(geometry, properties any) (*Feature, error) {
	geom, err := GeometryFrom(geometry, Options{})
	if err != nil {
		return nil, err
	}
	props, err := copyProperties(properties)
	if err != nil {
		return nil, err
	}
	return &Feature{Geometry: geom, Properties: props}, nil
}

// FeatureFrom builds a feature from another *Feature (copied), a
// Feature-shaped mapping or any Mapper.
func FeatureFrom(obj any, opts Options) (*Feature, error) {
	switch v := obj.(type) {
	case nil:
		return NewFeature(nil, nil)
	case *Feature:
		if v == nil {
			return NewFeature(nil, nil)
		}
		return v.Copy(), nil
	}
	m, ok := asMapping(obj)
	if !ok {
		return nil, errFormatf("cannot build a feature from %T", obj)
	}
	return featureFromMapping(m, opts)
}

func featureFromMapping(m mapping, opts Options) (*Feature, error) {
	tv, hasType := m.get("type")
	if s, _ := tv.(string); !hasType || s != "Feature" {
		if !opts.FixErrors {
			return nil, errFormatf(`a feature mapping must declare "type": "Feature"`)
		}
	}

	f := &Feature{}

	gv, hasGeom := m.get("geometry")
	switch {
	case hasGeom && gv != nil:
		geom, err := GeometryFrom(gv, opts)
		if err != nil {
			return nil, err
		}
		f.Geometry = geom
	case hasGeom: // explicit null geometry
		f.Geometry = &Geometry{}
	case opts.FixErrors:
		f.Geometry = &Geometry{}
	default:
		return nil, errFormatf("a feature mapping must contain a geometry entry")
	}

	// "properties": null is tolerated, a missing key is not
	pv, hasProps := m.get("properties")
	if !hasProps && !opts.FixErrors {
		return nil, errFormatf("a feature mapping must contain a properties entry")
	}
	props, err := copyProperties(pv)
	if err != nil {
		if !opts.FixErrors {
			return nil, err
		}
		props = orderedmap.New()
	}
	f.Properties = props

	if idv, ok := m.get("id"); ok && idv != nil {
		f.ID = idv
	}
	return f, nil
}

// Copy returns a deep copy of the feature: its own geometry, its own
// properties mapping in the same key order, same id value.
func (f *Feature) Copy() *Feature {
	return &Feature{
		Geometry:   f.Geometry.Copy(),
		Properties: copyOrdered(f.Properties),
		ID:         f.ID,
	}
}

// Validate checks the feature and delegates coordinate validation to the
// owned geometry. Options.FixErrors repairs a missing geometry or properties
// mapping in place; Options.SkipErrors suppresses the error.
func (f *Feature) Validate(opts Options) error {
	err := f.validate(opts)
	if err != nil && opts.SkipErrors {
		return nil
	}
	return err
}

func (f *Feature) validate(opts Options) error {
	if f.Geometry == nil {
		if !opts.FixErrors {
			return errFormatf("feature has no geometry")
		}
		f.Geometry = &Geometry{}
	}
	if f.Properties == nil {
		if !opts.FixErrors {
			return errFormatf("feature has no properties mapping")
		}
		f.Properties = orderedmap.New()
	}
	return f.Geometry.Validate(Options{FixErrors: opts.FixErrors})
}

// ToMapping serializes to the Feature mapping shape. The id entry appears
// only when an id is set; a null geometry becomes an explicit nil.
func (f *Feature) ToMapping() map[string]any {
	m := map[string]any{
		"type":       "Feature",
		"properties": f.Properties,
	}
	if f.Geometry.IsNull() {
		m["geometry"] = nil
	} else {
		m["geometry"] = f.Geometry.ToMapping()
	}
	if f.ID != nil {
		m["id"] = f.ID
	}
	return m
}
