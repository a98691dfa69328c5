package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/woozymasta/geoj/internal/geojson"
	"github.com/woozymasta/geoj/internal/processor"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Input    string `short:"i" long:"in"       description:"Input GeoJSON file" required:"true"`
	Encoding string `short:"e" long:"encoding" env:"GEOJSON_ENCODING" description:"Text encoding of the input file" default:"utf-8"`
	Format   string `short:"f" long:"format"   description:"Output format" choice:"json" choice:"text" default:"text"`

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

	summary, err := processor.Inspect(opts.Input, opts.Encoding, geojson.Options{
		FixErrors:  opts.FixErrors,
		SkipErrors: opts.SkipErrors,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", opts.Input, err)
		os.Exit(1)
	}

	if opts.Format == "json" {
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling summary: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Printf("file:              %s\n", summary.Path)
	fmt.Printf("features:          %d\n", summary.Features)
	fmt.Printf("crs:               %s\n", summary.CRS)
	if summary.BBox != nil {
		fmt.Printf("bbox:              %v\n", []float64(summary.BBox))
	} else {
		fmt.Printf("bbox:              none\n")
	}
	fmt.Printf("geometry types:    %s\n", formatCounts(summary.GeometryTypes, summary.NullGeometries))
	fmt.Printf("all attributes:    %s\n", strings.Join(summary.AllAttributes, ", "))
	fmt.Printf("common attributes: %s\n", strings.Join(summary.CommonAttributes, ", "))
}

func formatCounts(counts map[string]int, nulls int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	if nulls > 0 {
		parts = append(parts, fmt.Sprintf("null=%d", nulls))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
