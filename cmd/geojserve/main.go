package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/woozymasta/geoj/internal/geojson"
	"github.com/woozymasta/geoj/internal/logger"
	"github.com/woozymasta/geoj/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input    string `short:"i" long:"in"       description:"GeoJSON file to serve" required:"true"`
	Encoding string `short:"e" long:"encoding" env:"GEOJSON_ENCODING" description:"Text encoding of the input file" default:"utf-8"`
	Addr     string `short:"a" long:"addr"     env:"LISTEN_ADDRESS"   description:"Address to listen on" default:"0.0.0.0"`
	Port     int    `short:"p" long:"port"     env:"LISTEN_PORT"      description:"Port to listen on"    default:"8080"`

	FixErrors  bool `long:"fix-errors"  description:"Attempt to fix minor structural errors instead of failing"`
	SkipErrors bool `long:"skip-errors" description:"Drop features that fail to validate"`
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

	// Setup Logging
	opts.Logger.Setup()

	srvCtx, err := server.NewServerContext(opts.Input, opts.Encoding, geojson.Options{
		FixErrors:  opts.FixErrors,
		SkipErrors: opts.SkipErrors,
	})
	if err != nil {
		log.Fatal().Err(err).Str("path", opts.Input).Msg("Failed to load feature collection")
	}

	// Routes
	mux := http.NewServeMux()
	mux.HandleFunc("/collection.geojson", srvCtx.HandleCollection)
	mux.HandleFunc("/info", srvCtx.HandleInfo)
	mux.HandleFunc("/features/", srvCtx.HandleFeature)

	handler := server.RequestLogger(mux)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Int("features", srvCtx.Summary.Features).
		Msg("Preview server started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
