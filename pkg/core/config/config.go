// ============================================================================
// ecsfault - Fault Reporting for the mDW ECS Toolkit
// ============================================================================
//
// Package:     config
// Description: Typed configuration loaded from TOML or YAML files
// Author:      Mike Stoffels
// Created:     2026-10-13
// License:     MIT
// ============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/msto63/ecsfault/foundation/core/exception"
)

// CategoryConfig tags faults raised while loading configuration
const CategoryConfig exception.Category = "Config"

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "ECSFAULT_CONFIG"

// ErrNoConfig is returned by LoadFromEnv when no config file could be found
var ErrNoConfig = errors.New("no config file found")

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Journal JournalConfig `toml:"journal" yaml:"journal"`
	Report  ReportConfig  `toml:"report" yaml:"report"`
	Feed    FeedConfig    `toml:"feed" yaml:"feed"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Environment string `toml:"environment" yaml:"environment"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	LogFormat   string `toml:"log_format" yaml:"log_format"`
}

// JournalConfig holds fault journal settings
type JournalConfig struct {
	Driver    string   `toml:"driver" yaml:"driver"` // "sqlite" or "memory"
	Path      string   `toml:"path" yaml:"path"`
	Retention Duration `toml:"retention" yaml:"retention"`
}

// ReportConfig holds settings for rendering faults in a terminal
type ReportConfig struct {
	TrimPrefix string `toml:"trim_prefix" yaml:"trim_prefix"`
	NoColor    bool   `toml:"no_color" yaml:"no_color"`
}

// FeedConfig holds settings for the live WebSocket fault feed
type FeedConfig struct {
	Host string `toml:"host" yaml:"host"`
	Port int    `toml:"port" yaml:"port"`
	Path string `toml:"path" yaml:"path"`
}

// Address returns host:port of the feed server
func (f FeedConfig) Address() string {
	return fmt.Sprintf("%s:%d", f.Host, f.Port)
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, exception.Raisef(exception.Categorized(CategoryConfig), "config file not found: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &cfg)
	default:
		_, err = toml.Decode(string(content), &cfg)
	}
	if err != nil {
		return nil, exception.Raisef(exception.Categorized(CategoryConfig), "failed to parse config %s: %v", path, err)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	return &cfg, nil
}

// LoadFromEnv loads configuration from the ECSFAULT_CONFIG environment
// variable or the first default location that exists
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, fmt.Errorf("%w, set %s or create configs/config.toml", ErrNoConfig, EnvConfigPath)
	}

	return Load(path)
}

// DefaultPaths returns the locations searched by LoadFromEnv
func DefaultPaths() []string {
	return []string{
		"./configs/config.toml",
		"./config.toml",
		filepath.Join(os.Getenv("HOME"), ".config/ecsfault/config.toml"),
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "ecsfault"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Journal
	if c.Journal.Driver == "" {
		c.Journal.Driver = "sqlite"
	}
	if c.Journal.Path == "" {
		c.Journal.Path = "./data/faults.db"
	}
	if c.Journal.Retention.Duration == 0 {
		c.Journal.Retention.Duration = 30 * 24 * time.Hour
	}

	// Feed
	if c.Feed.Host == "" {
		c.Feed.Host = "127.0.0.1"
	}
	if c.Feed.Port == 0 {
		c.Feed.Port = 9310
	}
	if c.Feed.Path == "" {
		c.Feed.Path = "/faults"
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Journal.Path = os.ExpandEnv(c.Journal.Path)
	c.Report.TrimPrefix = os.ExpandEnv(c.Report.TrimPrefix)
}
