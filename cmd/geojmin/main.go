package main

import (
	"os"

	"github.com/woozymasta/geoj/internal/logger"
	"github.com/woozymasta/geoj/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input  string `short:"i" long:"in"  description:"Input GeoJSON file" required:"true"`
	Output string `short:"o" long:"out" description:"Output file path. Rewrites the input in place if empty"`
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

	out := opts.Output
	if out == "" {
		out = opts.Input
	}

	if err := processor.MinifyFile(opts.Input, out); err != nil {
		log.Fatal().Err(err).Msg("Minify failed")
	}
}
