// Package config provides configuration file parsing for pareto.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/pareto/internal/render"
)

// LocalFile is the project-level config file name, looked up in the
// current directory.
const LocalFile = ".pareto.yaml"

// Dir returns the pareto config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/pareto if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "pareto"), nil
}

// Config holds render defaults read from a YAML file. Pointer fields
// distinguish "unset" from false.
type Config struct {
	Title             string    `yaml:"title"`
	Label             string    `yaml:"label"`
	FigureSize        []float64 `yaml:"figure_size,flow"`
	XAxisLabel        string    `yaml:"x_axis_label"`
	Show80PercentLine *bool     `yaml:"show_80_percent_line"`
	SaveToFile        *bool     `yaml:"save_to_file"`
	DPI               float64   `yaml:"dpi"`
	OutputDir         string    `yaml:"output_dir"`
	NoColor           *bool     `yaml:"no_color"`
}

// Path returns the config file to use. An explicit path wins; otherwise
// ./.pareto.yaml, then {Dir}/config.yaml. An empty result means no file.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(LocalFile); err == nil {
		return LocalFile
	}
	dir, err := Dir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// Load reads the config at path. An empty path returns an empty config.
// Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.FigureSize != nil {
		if len(c.FigureSize) != 2 {
			return fmt.Errorf("figure_size must be [width, height], got %v", c.FigureSize)
		}
		for _, v := range c.FigureSize {
			if !positive(v) {
				return fmt.Errorf("figure_size entries must be positive numbers, got %v", c.FigureSize)
			}
		}
	}
	// Zero dpi means unset.
	if c.DPI != 0 && !positive(c.DPI) {
		return fmt.Errorf("dpi must be positive, got %g", c.DPI)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// RenderOptions returns render.DefaultOptions with the configured values
// applied on top.
func (c *Config) RenderOptions() render.Options {
	opts := render.DefaultOptions()

	if c.Title != "" {
		opts.Title = c.Title
	}
	if len(c.FigureSize) == 2 {
		opts.FigureSize = render.FigureSize{Width: c.FigureSize[0], Height: c.FigureSize[1]}
	}
	if c.XAxisLabel != "" {
		opts.XAxisLabel = c.XAxisLabel
	}
	if c.Show80PercentLine != nil {
		opts.Show80PercentLine = *c.Show80PercentLine
	}
	if c.SaveToFile != nil {
		opts.SaveToFile = *c.SaveToFile
	}
	if c.DPI > 0 {
		opts.DPI = c.DPI
	}
	if c.OutputDir != "" {
		opts.OutputDir = c.OutputDir
	}

	return opts
}
