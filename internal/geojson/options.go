package geojson

// Options control how strictly parsing and validation treat malformed input.
// The zero value is fully strict; both relaxations are opt-in per call and
// never set globally.
//
// When both flags are set, a fix is attempted first; a feature is dropped
// only if the fix still does not produce a valid feature.
type Options struct {
	// SkipErrors drops features that fail to validate instead of raising,
	// and suppresses validation errors on individual geometries.
	SkipErrors bool

	// FixErrors attempts a best-effort structural coercion before failing:
	// case-mangled geometry type names are repaired, missing feature type,
	// geometry and properties entries are filled in, and a bare Feature or
	// Geometry document is wrapped into a one-feature collection.
	FixErrors bool
}
