package server

import (
	"encoding/json"

	"github.com/woozymasta/geoj/internal/geojson"
	"github.com/woozymasta/geoj/internal/processor"

	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Path       string
	Collection *geojson.Collection
	Summary    *processor.Summary

	// payload is the serialized collection, rendered once at startup since
	// the preview server is read-only.
	payload []byte
}

// NewServerContext loads the collection from disk and prepares the served
// payload and summary.
func NewServerContext(path, encodingName string, opts geojson.Options) (*ServerContext, error) {
	c, err := geojson.LoadFile(path, encodingName, opts)
	if err != nil {
		return nil, err
	}

	summary := processor.Summarize(c)
	summary.Path = path

	payload, err := json.Marshal(c.ToMapping(true))
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("path", path).
		Int("features", summary.Features).
		Str("crs", summary.CRS).
		Strs("attributes", summary.AllAttributes).
		Msg("Feature collection loaded")

	return &ServerContext{
		Path:       path,
		Collection: c,
		Summary:    summary,
		payload:    payload,
	}, nil
}
