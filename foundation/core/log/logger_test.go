// File: logger_test.go
// Title: Logger Tests
// Description: Tests for logger configuration, persistent fields, level
//              filtering and fault logging.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-13 v0.1.0: Initial implementation
// - 2026-10-15 v0.1.0: LogFault tests

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/msto63/ecsfault/foundation/core/exception"
)

func newTestLogger(buf *bytes.Buffer, level Level) *Logger {
	return NewWithConfig(Config{
		Level:  level,
		Format: FormatJSON,
		Output: buf,
		Name:   "test",
	})
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var data map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &data); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	return data
}

func TestNew(t *testing.T) {
	logger := New()

	if logger.GetLevel() != DefaultLevel() {
		t.Errorf("New() level = %v, want %v", logger.GetLevel(), DefaultLevel())
	}
	if logger.contextFields == nil {
		t.Error("New() should initialize context fields")
	}
}

func TestWithMethodsDoNotModifyOriginal(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelInfo)

	debug := logger.WithLevel(LevelDebug)
	named := logger.WithName("world")
	withField := logger.WithField("tick", 12)

	if debug == logger || named == logger || withField == logger {
		t.Fatal("With* should return a new logger instance")
	}
	if logger.GetLevel() != LevelInfo {
		t.Errorf("original level = %v, want %v", logger.GetLevel(), LevelInfo)
	}
	if logger.Name() != "test" {
		t.Errorf("original name = %q, want %q", logger.Name(), "test")
	}
	if len(logger.contextFields) != 0 {
		t.Errorf("original fields = %v, want none", logger.contextFields)
	}
	if named.Name() != "world" {
		t.Errorf("WithName() name = %q, want %q", named.Name(), "world")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("below-level messages written: %q", buf.String())
	}

	logger.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("output = %q, want warn message", buf.String())
	}
}

func TestFieldsInOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelInfo).WithField("world", "arena")

	logger.Info("spawned", Int("entities", 3), String("archetype", "Player"))

	data := decodeLine(t, &buf)
	if data["message"] != "spawned" {
		t.Errorf("message = %v, want spawned", data["message"])
	}
	if data["world"] != "arena" {
		t.Errorf("world = %v, want arena", data["world"])
	}
	if data["entities"] != float64(3) {
		t.Errorf("entities = %v, want 3", data["entities"])
	}
	if data["logger"] != "test" {
		t.Errorf("logger = %v, want test", data["logger"])
	}
}

func TestErrorWithErr(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelInfo)

	logger.ErrorWithErr("flush failed", errors.New("disk full"))

	data := decodeLine(t, &buf)
	if data["error"] != "disk full" {
		t.Errorf("error = %v, want %q", data["error"], "disk full")
	}
	if data["level"] != "error" {
		t.Errorf("level = %v, want error", data["level"])
	}
}

func TestLogFault(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantCat   string
	}{
		{
			name:      "component fault",
			err:       exception.NewComponent("missing Transform", "world.cpp", "World::get", 42),
			wantLevel: "error",
			wantCat:   "Component",
		},
		{
			name:      "wrapped generic fault",
			err:       fmt.Errorf("tick 4: %w", exception.NewAt("boom", exception.CategoryNone, "main.go", "main.run", 9)),
			wantLevel: "warn",
			wantCat:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newTestLogger(&buf, LevelTrace)

			logger.LogFault(tt.err, Field("tick", 4))

			data := decodeLine(t, &buf)
			f, _ := exception.As(tt.err)

			if data["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %v", data["level"], tt.wantLevel)
			}
			if data["message"] != f.Describe() {
				t.Errorf("message = %v, want %q", data["message"], f.Describe())
			}
			if data["fault_category"] != tt.wantCat {
				t.Errorf("fault_category = %v, want %q", data["fault_category"], tt.wantCat)
			}
			if data["fault_file"] != f.Location().File {
				t.Errorf("fault_file = %v, want %q", data["fault_file"], f.Location().File)
			}
			if data["fault_line"] != float64(f.Location().Line) {
				t.Errorf("fault_line = %v, want %d", data["fault_line"], f.Location().Line)
			}
			if data["fault_function"] != f.Location().Function {
				t.Errorf("fault_function = %v, want %q", data["fault_function"], f.Location().Function)
			}
			if data["tick"] != float64(4) {
				t.Errorf("tick = %v, want 4", data["tick"])
			}
		})
	}
}

func TestLogFaultPlainError(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelInfo)

	logger.LogFault(errors.New("plain"))
	data := decodeLine(t, &buf)

	if data["level"] != "error" || data["message"] != "plain" {
		t.Errorf("plain error logged as %v", data)
	}
	if _, ok := data["fault_category"]; ok {
		t.Error("plain error should not carry fault fields")
	}
}

func TestLogFaultNil(t *testing.T) {
	var buf bytes.Buffer
	newTestLogger(&buf, LevelTrace).LogFault(nil)
	if buf.Len() != 0 {
		t.Errorf("LogFault(nil) wrote %q", buf.String())
	}
}

func TestCaller(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{
		Level:        LevelInfo,
		Format:       FormatJSON,
		Output:       &buf,
		EnableCaller: true,
	})

	logger.Info("with caller")

	data := decodeLine(t, &buf)
	caller, _ := data["caller"].(string)
	if !strings.HasPrefix(caller, "logger_test.go:") {
		t.Errorf("caller = %q, want logger_test.go:<line>", caller)
	}
}
