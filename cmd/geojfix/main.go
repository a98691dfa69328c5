package main

import (
	"os"

	"github.com/woozymasta/geoj/internal/config"
	"github.com/woozymasta/geoj/internal/logger"
	"github.com/woozymasta/geoj/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to a YAML file with batch jobs; other job flags are ignored when set"`

	Input    string `short:"i" long:"in"       description:"Input GeoJSON file"`
	Output   string `short:"o" long:"out"      description:"Output file path. Rewrites the input in place if empty"`
	Encoding string `short:"e" long:"encoding" env:"GEOJSON_ENCODING" description:"Text encoding of input and output files" default:"utf-8"`

	FixErrors  bool `short:"f" long:"fix-errors"  description:"Attempt to fix minor structural errors instead of failing"`
	SkipErrors bool `short:"s" long:"skip-errors" description:"Drop features that fail to validate"`

	AddBBoxes         bool `short:"b" long:"add-bboxes"  description:"Store a bbox on every geometry lacking one"`
	RecalculateBBoxes bool `short:"B" long:"recalculate" description:"Recompute every geometry bbox, existing ones included"`
	AddIDs            bool `short:"u" long:"add-ids"     description:"Assign sequential unique ids to all features"`
	OverwriteIDs      bool `short:"U" long:"overwrite-ids" description:"Reassign ids even if some features already have one"`

	Pretty bool `short:"p" long:"pretty" description:"Indent the output instead of writing compact JSON"`

	CrsType     string `long:"crs-type"      description:"Redefine the CRS" choice:"name" choice:"link"`
	CrsName     string `long:"crs-name"      description:"OGC CRS name, required with --crs-type=name"`
	CrsLink     string `long:"crs-link"      description:"CRS definition URL, required with --crs-type=link"`
	CrsLinkType string `long:"crs-link-type" description:"Type of the linked CRS definition"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	var jobs []config.Job

	if opts.ConfigFile != "" {
		cfg, err := config.Load(opts.ConfigFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		jobs = cfg.Jobs
	} else {
		if opts.Input == "" {
			log.Fatal().Msg("Either --in or --config is required")
		}
		job := config.Job{
			Input:             opts.Input,
			Output:            opts.Output,
			Encoding:          opts.Encoding,
			FixErrors:         opts.FixErrors,
			SkipErrors:        opts.SkipErrors,
			AddBBoxes:         opts.AddBBoxes,
			RecalculateBBoxes: opts.RecalculateBBoxes,
			AddIDs:            opts.AddIDs,
			OverwriteIDs:      opts.OverwriteIDs,
			Pretty:            opts.Pretty,
		}
		if opts.CrsType != "" {
			job.CRS = &config.CRS{
				Type:     opts.CrsType,
				Name:     opts.CrsName,
				Link:     opts.CrsLink,
				LinkType: opts.CrsLinkType,
			}
		}
		jobs = []config.Job{job}
	}

	log.Info().Int("jobs", len(jobs)).Msg("Starting fix-up run")

	failed := 0
	for i, job := range jobs {
		if err := processor.Process(job); err != nil {
			log.Error().Err(err).Int("job", i).Str("input", job.Input).Msg("Job failed")
			failed++
		}
	}

	if failed > 0 {
		log.Fatal().Int("failed", failed).Msg("Fix-up run finished with errors")
	}
	log.Info().Msg("Fix-up run finished successfully")
}
