// Package config handles configuration loading and shared data structures.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure for batch runs.
type Config struct {
	// Encoding is the default text encoding for jobs that don't set one.
	Encoding string `yaml:"encoding,omitempty"`
	Jobs     []Job  `yaml:"jobs"`
}

// Job describes one fix-up run over a single GeoJSON file.
type Job struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output,omitempty"` // empty rewrites the input in place

	Encoding   string `yaml:"encoding,omitempty"`
	FixErrors  bool   `yaml:"fix_errors,omitempty"`
	SkipErrors bool   `yaml:"skip_errors,omitempty"`

	AddBBoxes         bool `yaml:"add_bboxes,omitempty"`
	RecalculateBBoxes bool `yaml:"recalculate_bboxes,omitempty"`
	AddIDs            bool `yaml:"add_ids,omitempty"`
	OverwriteIDs      bool `yaml:"overwrite_ids,omitempty"`

	Pretty bool `yaml:"pretty,omitempty"` // indented instead of compact output

	CRS *CRS `yaml:"crs,omitempty"`
}

// CRS optionally redefines the coordinate reference system of a job's output.
type CRS struct {
	Type     string `yaml:"type"` // "name" or "link"
	Name     string `yaml:"name,omitempty"`
	Link     string `yaml:"link,omitempty"`
	LinkType string `yaml:"link_type,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	for i := range cfg.Jobs {
		if cfg.Jobs[i].Input == "" {
			return nil, fmt.Errorf("job %d: input is required", i)
		}
		if cfg.Jobs[i].Encoding == "" {
			cfg.Jobs[i].Encoding = cfg.Encoding
		}
	}

	return &cfg, nil
}
