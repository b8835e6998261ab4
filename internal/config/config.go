// Package config holds runtime configuration: defaults, TOML file loading,
// and validation. The loaded Config is passed by value into every component;
// there are no process-wide settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

// Collection tags the two input collections.
type Collection string

const (
	CollectionProduct Collection = "product"
	CollectionSelfie  Collection = "selfie"
)

// Clips controls segment generation.
type Clips struct {
	Count       int `toml:"count"`       // Segments per source. Default: 30.
	Seconds     int `toml:"seconds"`     // Segment duration. Default: 4.
	Concurrency int `toml:"concurrency"` // Worker limit; 0 = max(2, NumCPU/2).
}

// Frame is the canonical output frame all segments are scaled and
// letterboxed into before concatenation.
type Frame struct {
	Width  int `toml:"width"`  // Default: 1080.
	Height int `toml:"height"` // Default: 1920.
}

// Video is the fixed encoding profile for segment and merge outputs.
type Video struct {
	Codec  string `toml:"codec"`  // Default: "libx264".
	CRF    int    `toml:"crf"`    // Default: 23.
	Preset string `toml:"preset"` // Default: "veryfast".
}

// Log controls logger construction.
type Log struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error". Default: "info".
	File  string `toml:"file"`  // Optional log file path.
}

// Config holds all runtime settings. Populated by [Default] and optionally
// overridden from a TOML file by [Load]; the DryRun flag comes from the CLI.
type Config struct {
	Root  string `toml:"root"` // Working root; all pipeline paths live under it.
	Clips Clips  `toml:"clips"`
	Frame Frame  `toml:"frame"`
	Video Video  `toml:"video"`
	Log   Log    `toml:"log"`

	DryRun bool `toml:"-"`
}

// Default returns a Config with repository defaults.
func Default() Config {
	return Config{
		Root: ".",
		Clips: Clips{
			Count:   30,
			Seconds: 4,
		},
		Frame: Frame{
			Width:  1080,
			Height: 1920,
		},
		Video: Video{
			Codec:  "libx264",
			CRF:    23,
			Preset: "veryfast",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load parses the TOML file at path over the defaults and validates the
// result. An empty path skips the file and returns validated defaults, so a
// config file is optional.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the numeric and enum fields.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New("root directory must not be empty")
	}
	if c.Clips.Count <= 0 || c.Clips.Count > 99 {
		return errors.New("clips.count must be between 1 and 99")
	}
	if c.Clips.Seconds <= 0 {
		return errors.New("clips.seconds must be positive")
	}
	if c.Clips.Concurrency < 0 {
		return errors.New("clips.concurrency must not be negative")
	}
	if c.Frame.Width <= 0 || c.Frame.Height <= 0 {
		return errors.New("frame dimensions must be positive")
	}
	if c.Video.Codec == "" {
		return errors.New("video.codec must not be empty")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return errors.New("invalid log level (use 'debug', 'info', 'warn' or 'error')")
	}
	return nil
}

// WorkerLimit returns the effective scheduler concurrency: the configured
// value, or max(2, NumCPU/2) when unset.
func (c *Config) WorkerLimit() int {
	if c.Clips.Concurrency > 0 {
		return c.Clips.Concurrency
	}
	limit := runtime.NumCPU() / 2
	if limit < 2 {
		limit = 2
	}
	return limit
}

// --- Directory layout (all relative to Root) ---

// InputDir returns the source directory for a collection.
func (c *Config) InputDir(col Collection) string {
	return filepath.Join(c.Root, "input", string(col))
}

// ClipsDir returns the transient segment scratch root.
func (c *Config) ClipsDir() string {
	return filepath.Join(c.Root, "clips")
}

// OutputDir returns the committed merge output root.
func (c *Config) OutputDir() string {
	return filepath.Join(c.Root, "output")
}

// CompletedDir returns the relocation target for processed inputs of a
// collection.
func (c *Config) CompletedDir(col Collection) string {
	return filepath.Join(c.Root, "completed", string(col))
}

// LockPath returns the single-instance lock file path.
func (c *Config) LockPath() string {
	return filepath.Join(c.Root, "clipweave.lock")
}

// WorkingDirs returns every directory the pipeline writes to, in creation
// order. Each is created and probe-tested before any pair is processed.
func (c *Config) WorkingDirs() []string {
	return []string{
		c.InputDir(CollectionProduct),
		c.InputDir(CollectionSelfie),
		c.ClipsDir(),
		c.OutputDir(),
		c.CompletedDir(CollectionProduct),
		c.CompletedDir(CollectionSelfie),
	}
}
