package geojson

// CRSKind discriminates the coordinate-reference-system variants.
type CRSKind int

const (
	// CRSUnspecified means no declaration was made; such a collection
	// serializes with the default WGS84 long/lat reference.
	CRSUnspecified CRSKind = iota
	CRSNamed
	CRSLinked
)

// DefaultCRSName is the WGS84 long/lat reference emitted for collections
// that never declared a CRS.
const DefaultCRSName = "urn:ogc:def:crs:OGC:2:84"

// CRS is a coordinate-reference-system declaration, either named by an OGC
// CRS string or linked to an online definition.
type CRS struct {
	Kind     CRSKind
	Name     string // CRSNamed
	Href     string // CRSLinked
	LinkType string // CRSLinked, optional
}

func crsFromMapping(obj any) (CRS, error) {
	m, ok := asMapping(obj)
	if !ok {
		return CRS{}, errFormatf("crs must be a mapping, got %T", obj)
	}
	tv, _ := m.get("type")
	typ, _ := tv.(string)

	var props mapping
	if pv, ok := m.get("properties"); ok && pv != nil {
		if props, ok = asMapping(pv); !ok {
			return CRS{}, errFormatf("crs properties must be a mapping, got %T", pv)
		}
	}
	getProp := func(key string) string {
		if props == nil {
			return ""
		}
		v, _ := props.get(key)
		s, _ := v.(string)
		return s
	}

	switch typ {
	case "name":
		name := getProp("name")
		if name == "" {
			return CRS{}, errFormatf("a name crs needs a properties.name entry")
		}
		return CRS{Kind: CRSNamed, Name: name}, nil
	case "link":
		href := getProp("href")
		if href == "" {
			return CRS{}, errFormatf("a link crs needs a properties.href entry")
		}
		return CRS{Kind: CRSLinked, Href: href, LinkType: getProp("type")}, nil
	}
	return CRS{}, errFormatf("crs type must be either name or link, got %q", typ)
}

// String renders the declaration for logs and summaries.
func (c CRS) String() string {
	switch c.Kind {
	case CRSNamed:
		return "name: " + c.Name
	case CRSLinked:
		if c.LinkType != "" {
			return "link: " + c.Href + " (" + c.LinkType + ")"
		}
		return "link: " + c.Href
	}
	return "unspecified (" + DefaultCRSName + ")"
}

// ToMapping serializes the declaration to its GeoJSON mapping shape. An
// unspecified CRS is emitted as the named WGS84 default.
func (c CRS) ToMapping() map[string]any {
	switch c.Kind {
	case CRSNamed:
		return map[string]any{
			"type":       "name",
			"properties": map[string]any{"name": c.Name},
		}
	case CRSLinked:
		props := map[string]any{"href": c.Href}
		if c.LinkType != "" {
			props["type"] = c.LinkType
		}
		return map[string]any{"type": "link", "properties": props}
	}
	return map[string]any{
		"type":       "name",
		"properties": map[string]any{"name": DefaultCRSName},
	}
}
