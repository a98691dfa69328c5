// Package processor handles loading, fixing up and writing GeoJSON files.
package processor

import (
	"encoding/json"
	"os"

	"github.com/woozymasta/geoj/internal/config"
	"github.com/woozymasta/geoj/internal/geojson"

	"github.com/rs/zerolog/log"
)

// Process runs one fix-up job: load the collection, apply the requested
// clean-ups and write the result.
func Process(job config.Job) error {
	opts := geojson.Options{
		FixErrors:  job.FixErrors,
		SkipErrors: job.SkipErrors,
	}

	c, err := geojson.LoadFile(job.Input, job.Encoding, opts)
	if err != nil {
		return err
	}

	log.Info().
		Str("input", job.Input).
		Int("features", c.Len()).
		Str("crs", c.CRS.String()).
		Msg("Loaded feature collection")

	if job.CRS != nil {
		if err := c.DefineCRS(job.CRS.Type, job.CRS.Name, job.CRS.Link, job.CRS.LinkType); err != nil {
			return err
		}
		log.Debug().Str("crs", c.CRS.String()).Msg("CRS redefined")
	}

	if job.AddBBoxes || job.RecalculateBBoxes {
		c.AddAllBBoxes(job.RecalculateBBoxes)
		log.Debug().Bool("recalculate", job.RecalculateBBoxes).Msg("Geometry bboxes stored")
	}

	if job.AddIDs {
		if err := c.AddUniqueID(job.OverwriteIDs); err != nil {
			return err
		}
		log.Debug().Int("assigned", c.Len()).Msg("Unique ids assigned")
	}

	out := job.Output
	if out == "" {
		out = job.Input
	}

	if job.Pretty {
		err = saveIndented(c, out, job.Encoding)
	} else {
		err = c.Save(out, job.Encoding, true)
	}
	if err != nil {
		return err
	}

	log.Info().
		Str("output", out).
		Str("bbox", bboxString(c.BBox())).
		Msg("Feature collection written")
	return nil
}

// saveIndented writes the collection with indentation for human inspection.
func saveIndented(c *geojson.Collection, path, encodingName string) error {
	data, err := json.MarshalIndent(c.ToMapping(true), "", "  ")
	if err != nil {
		return err
	}
	raw, err := geojson.EncodeText(data, encodingName)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

func bboxString(b geojson.BBox) string {
	if b == nil {
		return "none"
	}
	data, err := json.Marshal(b)
	if err != nil {
		return "none"
	}
	return string(data)
}
