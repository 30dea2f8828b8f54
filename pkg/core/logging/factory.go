// ============================================================================
// ecsfault - Fault Reporting for the mDW ECS Toolkit
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers from configuration
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	ecslog "github.com/msto63/ecsfault/foundation/core/log"
	"github.com/msto63/ecsfault/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format: "json", "text" or "console" (default: json)
	Format string

	// Verbose forces debug level
	Verbose bool

	// Primary output (default: stderr)
	Output io.Writer

	// Additional outputs
	AdditionalOutputs []io.Writer

	EnableCaller bool
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

// FromGeneral derives a logger configuration from the [general] section
func FromGeneral(general config.GeneralConfig) LoggerConfig {
	return LoggerConfig{
		ServiceName: general.Name,
		Level:       general.LogLevel,
		Format:      general.LogFormat,
	}
}

// NewLogger creates a new Foundation logger
func NewLogger(cfg LoggerConfig) *ecslog.Logger {
	level := parseLevel(cfg.Level)
	if cfg.Verbose && level > ecslog.LevelDebug {
		level = ecslog.LevelDebug
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	format, err := ecslog.ParseFormat(cfg.Format)
	if err != nil {
		format = ecslog.FormatJSON
	}

	return ecslog.NewWithConfig(ecslog.Config{
		Level:        level,
		Format:       format,
		Output:       output,
		Name:         cfg.ServiceName,
		EnableCaller: cfg.EnableCaller,
	})
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *ecslog.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}

// parseLevel converts a string level, falling back to info
func parseLevel(level string) ecslog.Level {
	parsed, err := ecslog.ParseLevel(level)
	if err != nil {
		return ecslog.LevelInfo
	}
	return parsed
}
