package geojson

import (
	"encoding/json"
	"reflect"
	"sort"

	"github.com/iancoleman/orderedmap"
)

// Mapper is the duck-typed "geo-interface": any value that can render itself
// as a GeoJSON-shaped mapping is accepted wherever a geometry, feature or
// collection argument is expected. Geometry, Feature and CRS implement it.
type Mapper interface {
	ToMapping() map[string]any
}

// mapping is the internal read view over the accepted mapping forms, so the
// rest of the package never cares whether input came from a plain map, an
// order-preserving decode or another object.
type mapping interface {
	get(key string) (any, bool)
	keys() []string
}

type plainMap map[string]any

func (m plainMap) get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// keys are sorted: Go maps carry no order of their own and iteration must
// stay deterministic.
func (m plainMap) keys() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type orderedView struct {
	om *orderedmap.OrderedMap
}

func (m orderedView) get(key string) (any, bool) { return m.om.Get(key) }
func (m orderedView) keys() []string             { return m.om.Keys() }

// asMapping normalizes an input value to a mapping view. Accepted forms:
// map[string]any, orderedmap.OrderedMap (value or pointer) and any Mapper.
func asMapping(obj any) (mapping, bool) {
	switch v := obj.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return plainMap(v), true
	case *orderedmap.OrderedMap:
		if v == nil {
			return nil, false
		}
		return orderedView{v}, true
	case orderedmap.OrderedMap:
		return orderedView{&v}, true
	case mapping:
		return v, true
	case Mapper:
		m := v.ToMapping()
		if m == nil {
			return nil, false
		}
		return plainMap(m), true
	}
	return nil, false
}

// asSequence flattens any slice or array value to []any. Returns false for
// non-sequence values.
func asSequence(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// toFloat coerces the numeric value kinds a decoded document or a caller may
// hand in. Booleans and strings are not numbers.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// normalizeCoords deep-copies a coordinate tree into the canonical form:
// []any nodes with float64 leaves. Any slice kind is accepted on the way in,
// so literal [][]float64 trees work as well as decoded []any ones.
func normalizeCoords(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if f, ok := toFloat(v); ok {
		return f, nil
	}
	seq, ok := asSequence(v)
	if !ok {
		return nil, errFormatf("coordinates contain a non-numeric value of type %T", v)
	}
	out := make([]any, len(seq))
	for i, child := range seq {
		c, err := normalizeCoords(child)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// copyProperties builds an order-preserving copy of a properties argument.
// A nil argument yields an empty mapping. Key order survives for ordered
// inputs; plain maps are inserted in sorted key order.
func copyProperties(obj any) (*orderedmap.OrderedMap, error) {
	out := orderedmap.New()
	if obj == nil {
		return out, nil
	}
	m, ok := asMapping(obj)
	if !ok {
		return nil, errFormatf("properties must be a mapping, got %T", obj)
	}
	for _, k := range m.keys() {
		v, _ := m.get(k)
		out.Set(k, v)
	}
	return out, nil
}

// copyTree deep-copies the container kinds that appear in decoded JSON
// values; scalars are returned as-is.
func copyTree(v any) any {
	switch n := v.(type) {
	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			out[i] = copyTree(e)
		}
		return out
	case []float64:
		return append([]float64(nil), n...)
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, e := range n {
			out[k] = copyTree(e)
		}
		return out
	case *orderedmap.OrderedMap:
		return copyOrdered(n)
	case orderedmap.OrderedMap:
		return copyOrdered(&n)
	}
	return v
}

func copyOrdered(om *orderedmap.OrderedMap) *orderedmap.OrderedMap {
	out := orderedmap.New()
	for _, k := range om.Keys() {
		v, _ := om.Get(k)
		out.Set(k, copyTree(v))
	}
	return out
}
