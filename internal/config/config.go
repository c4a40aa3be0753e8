// Package config loads the CLI's default settings from a YAML file.
// The pipeline itself takes configuration by value and reads nothing from
// the environment.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"docprep/internal/pipeline"
)

// File mirrors the on-disk YAML layout.
type File struct {
	Deskew       string `yaml:"deskew"`
	TargetDPI    int    `yaml:"target_dpi"`
	DebugCapture bool   `yaml:"debug_capture"`
	DebugDir     string `yaml:"debug_dir"`
	TrimBorder   bool   `yaml:"trim_border"`
	BorderMargin int    `yaml:"border_margin"`
	LogLevel     string `yaml:"log_level"`
}

// Default returns the settings used when no config file is given.
func Default() File {
	return File{
		Deskew:    pipeline.DeskewAuto.String(),
		TargetDPI: pipeline.DefaultTargetDPI,
		DebugDir:  "debug",
		LogLevel:  "info",
	}
}

// Load reads and parses a YAML config file, filling unset fields with
// defaults.
func Load(path string) (File, error) {
	f := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse config %s: %w", path, err)
	}

	if f.TargetDPI <= 0 {
		f.TargetDPI = pipeline.DefaultTargetDPI
	}
	if f.DebugDir == "" {
		f.DebugDir = "debug"
	}

	return f, nil
}

// Pipeline converts the file settings into a pipeline configuration.
func (f File) Pipeline() (pipeline.Config, error) {
	mode, err := pipeline.ParseDeskewMode(f.Deskew)
	if err != nil {
		return pipeline.Config{}, err
	}

	cfg := pipeline.DefaultConfig()
	cfg.Deskew = mode
	cfg.TargetDPI = f.TargetDPI
	cfg.DebugCapture = f.DebugCapture
	cfg.TrimBorder = f.TrimBorder
	if f.BorderMargin > 0 {
		cfg.BorderMargin = f.BorderMargin
	}

	return cfg, nil
}
