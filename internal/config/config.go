// Package config loads dungeonplot settings from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/dungeonplot/internal/logger"
	"github.com/samdwyer/dungeonplot/internal/telemetry"
	"github.com/samdwyer/dungeonplot/internal/world"
)

// Output formats accepted by Validate.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Environment variables read by ApplyEnv.
const (
	EnvSeed         = "DUNGEONPLOT_SEED"
	EnvWidth        = "DUNGEONPLOT_WIDTH"
	EnvHeight       = "DUNGEONPLOT_HEIGHT"
	EnvTheme        = "DUNGEONPLOT_THEME"
	EnvFormat       = "DUNGEONPLOT_FORMAT"
	EnvLogLevel     = "DUNGEONPLOT_LOG_LEVEL"
	EnvOTLPEndpoint = "DUNGEONPLOT_OTLP_ENDPOINT"
)

// Config holds everything needed for one generation run.
type Config struct {
	// Seed for the value source. 0 means derive one from the clock.
	Seed   int64  `yaml:"seed"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Theme  string `yaml:"theme"`
	// Format is the export format: "text" or "yaml".
	Format string `yaml:"format"`

	Logging   logger.Config    `yaml:"logging"`
	Telemetry telemetry.Config `yaml:"telemetry"`
}

// DefaultConfig returns the reference 60x40 configuration.
func DefaultConfig() *Config {
	return &Config{
		Width:     world.DefaultWidth,
		Height:    world.DefaultHeight,
		Theme:     "classic",
		Format:    FormatText,
		Logging:   logger.DefaultConfig(),
		Telemetry: telemetry.Config{},
	}
}

// Load reads configuration from a YAML file on top of the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from DUNGEONPLOT_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	if err := envInt(EnvWidth, &c.Width); err != nil {
		return err
	}
	if err := envInt(EnvHeight, &c.Height); err != nil {
		return err
	}
	if v := os.Getenv(EnvTheme); v != "" {
		c.Theme = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Format = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvOTLPEndpoint); v != "" {
		c.Telemetry.Enabled = true
		c.Telemetry.Endpoint = v
	}
	return nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// Validate rejects grids too small for a single minimum-size room with its
// buffer, and unknown output formats.
func (c *Config) Validate() error {
	minSide := world.MinRoomSize + 2
	if c.Width < minSide || c.Height < minSide {
		return fmt.Errorf("grid %dx%d is smaller than %dx%d", c.Width, c.Height, minSide, minSide)
	}
	if c.Theme == "" {
		return fmt.Errorf("theme must not be empty")
	}
	switch c.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", c.Format, FormatText, FormatYAML)
	}
	return nil
}
