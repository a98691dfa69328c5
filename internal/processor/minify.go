package processor

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
)

// MinifyFile rewrites a JSON or GeoJSON file without insignificant
// whitespace. Useful for shrinking pretty-printed documents before serving
// them.
func MinifyFile(input, output string) error {
	m := minify.New()
	m.AddFunc("application/json", mjson.Minify)

	raw, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	minified, err := m.Bytes("application/json", raw)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, minified, 0644); err != nil {
		return err
	}

	log.Info().
		Str("input", input).
		Str("output", output).
		Int("bytes_in", len(raw)).
		Int("bytes_out", len(minified)).
		Msg("Minified")
	return nil
}
