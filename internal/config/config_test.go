package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samdwyer/dungeonplot/internal/world"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != 60 || cfg.Height != 40 {
		t.Errorf("expected 60x40, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Theme != "classic" {
		t.Errorf("expected theme classic, got %q", cfg.Theme)
	}
	if cfg.Seed != 0 {
		t.Errorf("expected seed 0, got %d", cfg.Seed)
	}
	if cfg.Telemetry.Enabled {
		t.Error("telemetry should be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Errorf("expected no error for missing file, got %v", err)
	}
	if cfg == nil || cfg.Width != world.DefaultWidth {
		t.Fatalf("expected default config for missing file, got %+v", cfg)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "dungeonplot.yaml")
	content := `
seed: 42
width: 80
height: 50
theme: garden
format: yaml
logging:
  level: DEBUG
telemetry:
  enabled: true
  endpoint: http://localhost:4318/v1/traces
  headers:
    x-team: abc
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Seed != 42 || cfg.Width != 80 || cfg.Height != 50 {
		t.Errorf("got seed=%d %dx%d", cfg.Seed, cfg.Width, cfg.Height)
	}
	if cfg.Theme != "garden" || cfg.Format != FormatYAML {
		t.Errorf("got theme=%q format=%q", cfg.Theme, cfg.Format)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("expected log level DEBUG, got %q", cfg.Logging.Level)
	}
	// Fields not in the file keep their defaults.
	if !cfg.Logging.ConsoleEnabled {
		t.Error("console logging default lost")
	}
	if !cfg.Telemetry.Enabled || cfg.Telemetry.Headers["x-team"] != "abc" {
		t.Errorf("telemetry block not loaded: %+v", cfg.Telemetry)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("width: [not a number"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err == nil {
		t.Error("expected parse error")
	}
	if cfg.Width != world.DefaultWidth {
		t.Errorf("expected defaults on parse error, got width %d", cfg.Width)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSeed, "-7")
	t.Setenv(EnvWidth, "100")
	t.Setenv(EnvHeight, "30")
	t.Setenv(EnvTheme, "blocks")
	t.Setenv(EnvFormat, "YAML")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvOTLPEndpoint, "http://collector:4318/v1/traces")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	if cfg.Seed != -7 || cfg.Width != 100 || cfg.Height != 30 {
		t.Errorf("got seed=%d %dx%d", cfg.Seed, cfg.Width, cfg.Height)
	}
	if cfg.Theme != "blocks" || cfg.Format != FormatYAML || cfg.Logging.Level != "warn" {
		t.Errorf("got theme=%q format=%q level=%q", cfg.Theme, cfg.Format, cfg.Logging.Level)
	}
	if !cfg.Telemetry.Enabled || cfg.Telemetry.Endpoint != "http://collector:4318/v1/traces" {
		t.Errorf("telemetry not enabled from env: %+v", cfg.Telemetry)
	}
}

func TestApplyEnv_BadNumber(t *testing.T) {
	for _, key := range []string{EnvSeed, EnvWidth, EnvHeight} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "lots")
			if err := DefaultConfig().ApplyEnv(); err == nil {
				t.Errorf("expected error for %s=lots", key)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"smallest grid", func(c *Config) { c.Width, c.Height = 8, 8 }, false},
		{"narrow grid", func(c *Config) { c.Width = 7 }, true},
		{"short grid", func(c *Config) { c.Height = 0 }, true},
		{"empty theme", func(c *Config) { c.Theme = "" }, true},
		{"yaml format", func(c *Config) { c.Format = FormatYAML }, false},
		{"unknown format", func(c *Config) { c.Format = "png" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
