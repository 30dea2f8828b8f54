package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/msto63/ecsfault/foundation/core/exception"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"hours", "720h", 720 * time.Hour, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{5 * time.Minute}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "5m0s" {
		t.Errorf("MarshalText() = %v, want 5m0s", string(result))
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.General.Name != "ecsfault" {
		t.Errorf("General.Name = %v, want ecsfault", cfg.General.Name)
	}
	if cfg.General.LogLevel != "info" {
		t.Errorf("General.LogLevel = %v, want info", cfg.General.LogLevel)
	}
	if cfg.Journal.Driver != "sqlite" {
		t.Errorf("Journal.Driver = %v, want sqlite", cfg.Journal.Driver)
	}
	if cfg.Journal.Retention.Duration != 720*time.Hour {
		t.Errorf("Journal.Retention = %v, want 720h", cfg.Journal.Retention.Duration)
	}
	if got := cfg.Feed.Address(); got != "127.0.0.1:9310" {
		t.Errorf("Feed.Address() = %v, want 127.0.0.1:9310", got)
	}
	if cfg.Feed.Path != "/faults" {
		t.Errorf("Feed.Path = %v, want /faults", cfg.Feed.Path)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.toml")
	if err == nil {
		t.Fatal("Load() expected error for non-existent file")
	}
	if !exception.HasCategory(err, CategoryConfig) {
		t.Errorf("Load() error = %v, want %s fault", err, CategoryConfig)
	}
	loc, _ := exception.LocationOf(err)
	if filepath.Base(loc.File) != "config.go" {
		t.Errorf("fault raised at %v, want config.go", loc)
	}
}

func TestLoad_TOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
[general]
name = "arena"
log_level = "debug"

[journal]
driver = "memory"
retention = "48h"

[report]
trim_prefix = "/src/"
no_color = true

[feed]
port = 9999
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.Name != "arena" {
		t.Errorf("General.Name = %v, want arena", cfg.General.Name)
	}
	if cfg.General.LogLevel != "debug" {
		t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.Journal.Driver != "memory" {
		t.Errorf("Journal.Driver = %v, want memory", cfg.Journal.Driver)
	}
	if cfg.Journal.Retention.Duration != 48*time.Hour {
		t.Errorf("Journal.Retention = %v, want 48h", cfg.Journal.Retention.Duration)
	}
	if cfg.Report.TrimPrefix != "/src/" || !cfg.Report.NoColor {
		t.Errorf("Report = %+v", cfg.Report)
	}
	if cfg.Feed.Port != 9999 {
		t.Errorf("Feed.Port = %v, want 9999", cfg.Feed.Port)
	}
	// Defaults still applied
	if cfg.General.Environment != "development" {
		t.Errorf("General.Environment = %v, want development", cfg.General.Environment)
	}
}

func TestLoad_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
general:
  name: arena-yaml
  log_format: json
journal:
  driver: sqlite
  path: $ECSFAULT_TEST_DIR/faults.db
  retention: 2h
feed:
  host: 0.0.0.0
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("ECSFAULT_TEST_DIR", tmpDir)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.Name != "arena-yaml" || cfg.General.LogFormat != "json" {
		t.Errorf("General = %+v", cfg.General)
	}
	if cfg.Journal.Retention.Duration != 2*time.Hour {
		t.Errorf("Journal.Retention = %v, want 2h", cfg.Journal.Retention.Duration)
	}
	if want := filepath.Join(tmpDir, "faults.db"); cfg.Journal.Path != want {
		t.Errorf("Journal.Path = %v, want %v", cfg.Journal.Path, want)
	}
	if cfg.Feed.Address() != "0.0.0.0:9310" {
		t.Errorf("Feed.Address() = %v, want 0.0.0.0:9310", cfg.Feed.Address())
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	if err := os.WriteFile(configPath, []byte("invalid toml content [[["), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() expected error for invalid config")
	}
	if !exception.HasCategory(err, CategoryConfig) {
		t.Errorf("Load() error = %v, want %s fault", err, CategoryConfig)
	}
}

func TestLoadFromEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom.toml")
	if err := os.WriteFile(configPath, []byte("[general]\nname = \"from-env\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv(EnvConfigPath, configPath)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.Name != "from-env" {
		t.Errorf("General.Name = %v, want from-env", cfg.General.Name)
	}
}

func TestLoadFromEnv_NoConfig(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	_, err := LoadFromEnv()
	if !errors.Is(err, ErrNoConfig) {
		t.Errorf("LoadFromEnv() error = %v, want ErrNoConfig", err)
	}
}
