// Package geojson implements an in-memory object model over GeoJSON
// FeatureCollection documents: load, inspect, mutate and persist collections
// of features while keeping the structure format-correct and the derived
// metadata (bounding boxes, CRS declarations) consistent.
//
// The package operates on already-decoded mapping structures; file reading
// and writing is confined to LoadFile and Collection.Save.
package geojson

// GeometryType identifies one of the GeoJSON geometry kinds. The empty
// string stands for a null geometry.
type GeometryType string

const (
	Point           GeometryType = "Point"
	MultiPoint      GeometryType = "MultiPoint"
	LineString      GeometryType = "LineString"
	MultiLineString GeometryType = "MultiLineString"
	Polygon         GeometryType = "Polygon"
	MultiPolygon    GeometryType = "MultiPolygon"
)

// geometryDepth maps every recognized geometry type to the nesting depth of
// its coordinate tree (a Point is a bare position, a MultiPolygon is four
// levels deep). Doubles as the set of valid type names.
var geometryDepth = map[GeometryType]int{
	Point:           1,
	MultiPoint:      2,
	LineString:      2,
	MultiLineString: 3,
	Polygon:         3,
	MultiPolygon:    4,
}

// BBox is an axis-aligned bounding box in the GeoJSON order
// [minX, minY, (minZ,) maxX, maxY, (maxZ)]. Length is 4 or 6.
type BBox []float64

// Copy returns an independent copy of the box, nil for a nil box.
func (b BBox) Copy() BBox {
	if b == nil {
		return nil
	}
	return append(BBox(nil), b...)
}

// parseBBox converts a decoded bbox list into a BBox without recomputing it.
func parseBBox(v any) (BBox, error) {
	seq, ok := asSequence(v)
	if !ok {
		return nil, errFormatf("bbox must be a list of numbers, got %T", v)
	}
	if len(seq) != 4 && len(seq) != 6 {
		return nil, errFormatf("bbox needs 4 or 6 numbers, got %d", len(seq))
	}
	out := make(BBox, len(seq))
	for i, e := range seq {
		f, ok := toFloat(e)
		if !ok {
			return nil, errFormatf("bbox[%d] is not a number: %v", i, e)
		}
		out[i] = f
	}
	return out, nil
}

// unionBBoxes reduces boxes to their componentwise union. The result carries
// a Z axis if any input does; inputs without one leave it unconstrained.
// Returns nil for an empty input.
func unionBBoxes(boxes []BBox) BBox {
	var (
		xmin, ymin, zmin float64
		xmax, ymax, zmax float64
		seenXY, seenZ    bool
	)
	for _, b := range boxes {
		n := len(b) / 2
		if n < 2 {
			continue
		}
		if !seenXY {
			xmin, ymin, xmax, ymax = b[0], b[1], b[n], b[n+1]
			seenXY = true
		} else {
			xmin = min(xmin, b[0])
			ymin = min(ymin, b[1])
			xmax = max(xmax, b[n])
			ymax = max(ymax, b[n+1])
		}
		if n == 3 {
			if !seenZ {
				zmin, zmax = b[2], b[5]
				seenZ = true
			} else {
				zmin = min(zmin, b[2])
				zmax = max(zmax, b[5])
			}
		}
	}
	if !seenXY {
		return nil
	}
	if seenZ {
		return BBox{xmin, ymin, zmin, xmax, ymax, zmax}
	}
	return BBox{xmin, ymin, xmax, ymax}
}
