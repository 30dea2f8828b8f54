package logging

import (
	"bytes"
	"io"
	"strings"
	"testing"

	ecslog "github.com/msto63/ecsfault/foundation/core/log"
	"github.com/msto63/ecsfault/pkg/core/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  ecslog.Level
	}{
		{"trace", ecslog.LevelTrace},
		{"debug", ecslog.LevelDebug},
		{"info", ecslog.LevelInfo},
		{"warning", ecslog.LevelWarn},
		{"error", ecslog.LevelError},
		{"", ecslog.LevelInfo},
		{"loud", ecslog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		ServiceName: "physics",
		Level:       "warn",
		Format:      "json",
		Output:      &buf,
	})

	if logger.Name() != "physics" {
		t.Errorf("Name() = %q, want physics", logger.Name())
	}

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(out, `"message":"shown"`) {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestNewLoggerVerbose(t *testing.T) {
	tests := []struct {
		level string
		want  ecslog.Level
	}{
		{"error", ecslog.LevelDebug},
		{"trace", ecslog.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(LoggerConfig{Level: tt.level, Verbose: true, Output: &bytes.Buffer{}})
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("GetLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLoggerAdditionalOutputs(t *testing.T) {
	var primary, extra bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:             "info",
		Format:            "text",
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&extra},
	})

	logger.Info("component missing")

	if !strings.Contains(primary.String(), "component missing") || !strings.Contains(extra.String(), "component missing") {
		t.Errorf("outputs = %q / %q", primary.String(), extra.String())
	}
}

func TestFromGeneral(t *testing.T) {
	cfg := FromGeneral(config.GeneralConfig{Name: "ecsfault", LogLevel: "debug", LogFormat: "text"})

	if cfg.ServiceName != "ecsfault" || cfg.Level != "debug" || cfg.Format != "text" {
		t.Errorf("FromGeneral() = %+v", cfg)
	}
}

func TestNewSimpleLogger(t *testing.T) {
	logger := NewSimpleLogger("feed")
	if logger == nil || logger.Name() != "feed" {
		t.Fatal("NewSimpleLogger() returned unexpected logger")
	}
	if logger.GetLevel() != ecslog.LevelInfo {
		t.Errorf("GetLevel() = %v, want info", logger.GetLevel())
	}
}
