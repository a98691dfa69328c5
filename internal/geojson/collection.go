package geojson

import (
	"fmt"
	"iter"
	"slices"
)

// Collection is an ordered sequence of features plus a collection-level CRS
// declaration and a cached bounding box.
//
// The cached bbox is authoritative only right after UpdateBBox, Load or a
// default Save; every mutation of the feature sequence marks it stale.
type Collection struct {
	CRS CRS

	features []*Feature
	bbox     BBox
	stale    bool
}

// New returns an empty collection with an unspecified CRS (WGS84 long/lat by
// default on output).
func New() *Collection {
	return &Collection{}
}

// Load builds a collection from a decoded GeoJSON mapping or any Mapper.
//
// The top-level object must declare "type": "FeatureCollection" and carry a
// "features" list. With Options.FixErrors a document that is itself a valid
// Feature or Geometry is wrapped into a one-feature collection instead of
// failing. Per-feature validation failures raise ErrFormat, or drop the
// feature when Options.SkipErrors is set (a fix is attempted first).
//
// A top-level "bbox" is taken over verbatim without recomputation; "crs" is
// parsed into its named or linked variant.
func Load(data any, opts Options) (*Collection, error) {
	m, ok := asMapping(data)
	if !ok {
		return nil, errFormatf("expected a mapping, got %T", data)
	}

	tv, hasType := m.get("type")
	if typ, _ := tv.(string); !hasType || typ != "FeatureCollection" {
		if opts.FixErrors {
			return wrapSingle(m, opts)
		}
		return nil, errFormatf(`the top-level "type" must be "FeatureCollection"`)
	}

	fv, ok := m.get("features")
	if !ok {
		return nil, errFormatf(`a feature collection needs a "features" entry`)
	}
	seq, ok := asSequence(fv)
	if !ok {
		return nil, errFormatf(`"features" must be a list, got %T`, fv)
	}

	c := New()
	parse := Options{FixErrors: opts.FixErrors}
	for i, raw := range seq {
		f, err := FeatureFrom(raw, parse)
		if err == nil {
			err = f.Validate(parse)
		}
		if err != nil {
			if opts.SkipErrors {
				continue
			}
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		c.features = append(c.features, f)
	}

	if cv, ok := m.get("crs"); ok && cv != nil {
		crs, err := crsFromMapping(cv)
		if err != nil {
			return nil, err
		}
		c.CRS = crs
	}

	if bv, ok := m.get("bbox"); ok && bv != nil {
		bbox, err := parseBBox(bv)
		if err != nil {
			return nil, err
		}
		c.bbox = bbox
	} else {
		c.stale = true
	}
	return c, nil
}

// wrapSingle coerces a document that is a bare Feature or Geometry into a
// one-feature collection. Anything else stays a format error.
func wrapSingle(m mapping, opts Options) (*Collection, error) {
	tv, _ := m.get("type")
	name, _ := tv.(string)
	parse := Options{FixErrors: opts.FixErrors}

	var f *Feature
	switch {
	case name == "Feature":
		feat, err := featureFromMapping(m, parse)
		if err == nil {
			err = feat.Validate(parse)
		}
		if err != nil {
			return nil, err
		}
		f = feat
	default:
		if _, isGeom := geometryDepth[GeometryType(name)]; !isGeom {
			return nil, errFormatf(`the top-level "type" must be "FeatureCollection", got %q`, name)
		}
		g, err := geometryFromMapping(m, parse)
		if err == nil {
			err = g.Validate(parse)
		}
		if err != nil {
			return nil, err
		}
		if f, err = NewFeature(g, nil); err != nil {
			return nil, err
		}
	}

	c := New()
	c.features = []*Feature{f}
	c.stale = true
	return c, nil
}

// Len returns the number of features.
func (c *Collection) Len() int {
	return len(c.features)
}

// At returns the feature at a 0-based index.
func (c *Collection) At(index int) (*Feature, error) {
	if err := c.check(index); err != nil {
		return nil, err
	}
	return c.features[index], nil
}

// Set replaces the feature at index with anything FeatureFrom accepts.
func (c *Collection) Set(index int, obj any) error {
	if err := c.check(index); err != nil {
		return err
	}
	f, err := FeatureFrom(obj, Options{})
	if err != nil {
		return err
	}
	c.features[index] = f
	c.stale = true
	return nil
}

// Insert places a new feature before index; index may equal Len to append.
func (c *Collection) Insert(index int, obj any) error {
	if index < 0 || index > len(c.features) {
		return fmt.Errorf("%w: %d with %d features", ErrIndex, index, len(c.features))
	}
	f, err := FeatureFrom(obj, Options{})
	if err != nil {
		return err
	}
	c.features = slices.Insert(c.features, index, f)
	c.stale = true
	return nil
}

// Remove deletes the feature at index.
func (c *Collection) Remove(index int) error {
	if err := c.check(index); err != nil {
		return err
	}
	c.features = slices.Delete(c.features, index, index+1)
	c.stale = true
	return nil
}

// Add appends anything FeatureFrom accepts.
func (c *Collection) Add(obj any) error {
	return c.Insert(len(c.features), obj)
}

// AddFeature constructs a feature from a geometry and properties argument
// and appends it, returning the stored feature.
func (c *Collection) AddFeature(geometry, properties any) (*Feature, error) {
	f, err := NewFeature(geometry, properties)
	if err != nil {
		return nil, err
	}
	c.features = append(c.features, f)
	c.stale = true
	return f, nil
}

func (c *Collection) check(index int) error {
	if index < 0 || index >= len(c.features) {
		return fmt.Errorf("%w: %d with %d features", ErrIndex, index, len(c.features))
	}
	return nil
}

// All iterates over the features in stored order. The sequence is lazy and
// restartable; mutating the collection while iterating is not supported.
func (c *Collection) All() iter.Seq2[int, *Feature] {
	return func(yield func(int, *Feature) bool) {
		for i, f := range c.features {
			if !yield(i, f) {
				return
			}
		}
	}
}

// AllAttributes returns the union of property keys across every feature, in
// first-seen order over the features in sequence order.
func (c *Collection) AllAttributes() []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, f := range c.features {
		for _, k := range f.Properties.Keys() {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}

// CommonAttributes returns the property keys present in every feature, in
// the key order of the first feature. An empty collection has none.
func (c *Collection) CommonAttributes() []string {
	out := []string{}
	if len(c.features) == 0 {
		return out
	}
	for _, k := range c.features[0].Properties.Keys() {
		inAll := true
		for _, f := range c.features[1:] {
			if _, ok := f.Properties.Get(k); !ok {
				inAll = false
				break
			}
		}
		if inAll {
			out = append(out, k)
		}
	}
	return out
}

// DefineCRS sets the coordinate reference system declaration. crsType is
// "name" or "link"; a name crs requires name, a link crs requires link, and
// linkType is optional.
func (c *Collection) DefineCRS(crsType, name, link, linkType string) error {
	switch crsType {
	case "name":
		if name == "" {
			return errConfigf("a name crs requires the name argument")
		}
		c.CRS = CRS{Kind: CRSNamed, Name: name}
	case "link":
		if link == "" {
			return errConfigf("a link crs requires the link argument")
		}
		c.CRS = CRS{Kind: CRSLinked, Href: link, LinkType: linkType}
	default:
		return errConfigf("crs type must be either name or link, got %q", crsType)
	}
	return nil
}

// AddAllBBoxes stores a bounding box on every non-null geometry that lacks
// one. With recalculate, existing boxes are recomputed as well.
func (c *Collection) AddAllBBoxes(recalculate bool) {
	for _, f := range c.features {
		if f.Geometry.IsNull() {
			continue
		}
		if recalculate || f.Geometry.BBox == nil {
			f.Geometry.UpdateBBox()
		}
	}
}

// AddUniqueID assigns sequential integer ids to all features. If any feature
// already carries an id the whole operation fails with ErrConflict, so
// user-assigned ids are never collided with. With overwrite set every id is
// reassigned instead.
func (c *Collection) AddUniqueID(overwrite bool) error {
	if !overwrite {
		for i, f := range c.features {
			if f.ID != nil {
				return fmt.Errorf("%w: feature %d already has id %v", ErrConflict, i, f.ID)
			}
		}
	}
	for i, f := range c.features {
		f.ID = i
	}
	return nil
}

// UpdateBBox recomputes the collection bounding box as the componentwise
// union of every member geometry's freshly computed box; cached per-geometry
// boxes are not trusted. Null geometries are skipped; an empty or all-null
// collection yields a nil box. Clears staleness.
func (c *Collection) UpdateBBox() BBox {
	var boxes []BBox
	for _, f := range c.features {
		if b := f.Geometry.ComputeBBox(); b != nil {
			boxes = append(boxes, b)
		}
	}
	c.bbox = unionBBoxes(boxes)
	c.stale = false
	return c.bbox
}

// BBox returns the cached collection box, nil when none was ever computed or
// loaded. Check Stale to know whether it still reflects the features.
func (c *Collection) BBox() BBox {
	return c.bbox
}

// Stale reports whether the cached bbox no longer reflects the feature
// sequence.
func (c *Collection) Stale() bool {
	return c.stale
}

// ToMapping serializes to the FeatureCollection mapping shape, including the
// crs declaration and the bbox when one is cached. By default the bbox is
// recomputed first; pass updateBBox=false to emit the stored state as-is.
func (c *Collection) ToMapping(updateBBox bool) map[string]any {
	if updateBBox {
		c.UpdateBBox()
	}
	feats := make([]any, len(c.features))
	for i, f := range c.features {
		feats[i] = f.ToMapping()
	}
	m := map[string]any{
		"type":     "FeatureCollection",
		"features": feats,
		"crs":      c.CRS.ToMapping(),
	}
	if c.bbox != nil {
		m["bbox"] = c.bbox
	}
	return m
}
