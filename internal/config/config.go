package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Config drives a run of the scenario runner.
type Config struct {
	ScenarioPaths []string // files or directories
	OutputDir     string
	Format        string // csv or yaml
	FPS           int
	Duration      time.Duration // zero samples each scenario's own length
	Workers       int
	ShowStats     bool
	Watch         bool
	Verbose       bool
	BuildVersion  string

	// Generate writes a demo scenario instead of running any.
	Generate       bool
	GenerateCount  int
	GenerateOutput string
	Width          int
	Height         int
	TotalDuration  float64 // seconds, for generated scenarios
}

// Default returns the runner defaults.
func Default() *Config {
	return &Config{
		OutputDir:     "traces",
		Format:        "csv",
		FPS:           30,
		Workers:       runtime.NumCPU(),
		GenerateCount: 6,
		Width:         1280,
		Height:        720,
		TotalDuration: 5,
	}
}

// Validate normalises the configuration and reports unusable values.
func (c *Config) Validate() error {
	c.Format = strings.ToLower(strings.TrimPrefix(c.Format, "."))
	switch c.Format {
	case "csv", "yaml":
	case "yml":
		c.Format = "yaml"
	default:
		return fmt.Errorf("unsupported trace format: %q", c.Format)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %v", c.Duration)
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Generate {
		if c.GenerateCount <= 0 {
			return fmt.Errorf("sprite count must be positive, got %d", c.GenerateCount)
		}
		if c.Width <= 0 || c.Height <= 0 {
			return fmt.Errorf("invalid viewport %dx%d", c.Width, c.Height)
		}
		return nil
	}
	if len(c.ScenarioPaths) == 0 {
		return errors.New("no scenarios given")
	}
	return nil
}

// TracePath returns the output file for the scenario at path.
func (c *Config) TracePath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(c.OutputDir, base+"."+c.Format)
}
