package geojson

import (
	"errors"
	"fmt"
)

// Error kinds returned by this package. Wrapped errors carry context and are
// matched with errors.Is.
var (
	// ErrFormat reports a structural or schema mismatch during parsing or
	// validation: an unrecognized geometry type, wrong coordinate nesting,
	// or a top-level object that is not a FeatureCollection.
	ErrFormat = errors.New("invalid geojson structure")

	// ErrConfig reports invalid caller-supplied settings: bad CRS definition
	// arguments or an unknown text encoding name.
	ErrConfig = errors.New("invalid configuration")

	// ErrConflict reports an id-assignment collision.
	ErrConflict = errors.New("id conflict")

	// ErrIndex reports an out-of-range feature index.
	ErrIndex = errors.New("feature index out of range")
)

func errFormatf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}

func errConfigf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}
