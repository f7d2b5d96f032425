package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewLogger_DefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelWarn {
		t.Errorf("expected default level to be warn, got %s", cfg.Level)
	}
	if cfg.ServiceName != "zoomchat" {
		t.Errorf("expected default service name to be 'zoomchat', got %s", cfg.ServiceName)
	}
	if cfg.JSONFormat {
		t.Error("expected default JSONFormat to be false")
	}
}

func TestNewLogger_NilConfig(t *testing.T) {
	log := NewLogger(nil)
	if log == nil {
		t.Error("expected non-nil logger with nil config")
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := &Config{
		Level:       LevelDebug,
		ServiceName: "test-service",
		JSONFormat:  true,
		Output:      buf,
	}

	log := NewLogger(cfg)
	log.Info("test message", F("key", "value"))

	var output map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	if output["message"] != "test message" {
		t.Errorf("expected message 'test message', got %v", output["message"])
	}
	if output["service_name"] != "test-service" {
		t.Errorf("expected service_name 'test-service', got %v", output["service_name"])
	}
	if output["key"] != "value" {
		t.Errorf("expected key 'value', got %v", output["key"])
	}
	if output["level"] != "info" {
		t.Errorf("expected level 'info', got %v", output["level"])
	}
}

func TestLogger_ConsoleFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger(&Config{Level: LevelInfo, NoColor: true, Output: buf})

	log.Info("Transcript parsed", F("messages", 3))

	out := buf.String()
	if !strings.Contains(out, "Transcript parsed") {
		t.Errorf("expected output to contain message, got %q", out)
	}
	if !strings.Contains(out, "messages=3") {
		t.Errorf("expected output to contain field, got %q", out)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     Level
		logFunc   func(Logger)
		shouldLog bool
	}{
		{"debug at debug level", LevelDebug, func(l Logger) { l.Debug("test") }, true},
		{"debug at info level", LevelInfo, func(l Logger) { l.Debug("test") }, false},
		{"info at warn level", LevelWarn, func(l Logger) { l.Info("test") }, false},
		{"warn at warn level", LevelWarn, func(l Logger) { l.Warn("test") }, true},
		{"error at error level", LevelError, func(l Logger) { l.Error("test") }, true},
		{"warn at error level", LevelError, func(l Logger) { l.Warn("test") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := NewLogger(&Config{Level: tt.level, JSONFormat: true, Output: buf})

			tt.logFunc(log)

			hasOutput := buf.Len() > 0
			if hasOutput != tt.shouldLog {
				t.Errorf("expected shouldLog=%v, got output=%v", tt.shouldLog, hasOutput)
			}
		})
	}
}

func TestLogger_FieldTypes(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger(&Config{Level: LevelDebug, JSONFormat: true, Output: buf})

	log.Info("typed",
		F("str", "s"),
		F("int", 42),
		F("int64", int64(7)),
		F("float", 1.5),
		F("bool", true),
		F("dur", 2*time.Second),
		Err(errors.New("boom")),
	)

	var output map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	if output["str"] != "s" {
		t.Errorf("expected str 's', got %v", output["str"])
	}
	if output["int"] != float64(42) {
		t.Errorf("expected int 42, got %v", output["int"])
	}
	if output["int64"] != float64(7) {
		t.Errorf("expected int64 7, got %v", output["int64"])
	}
	if output["float"] != 1.5 {
		t.Errorf("expected float 1.5, got %v", output["float"])
	}
	if output["bool"] != true {
		t.Errorf("expected bool true, got %v", output["bool"])
	}
	if output["error"] != "boom" {
		t.Errorf("expected error 'boom', got %v", output["error"])
	}
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger(&Config{Level: LevelInfo, JSONFormat: true, Output: buf})

	child := log.With(F("room", "John Smith"))
	child.Info("child message")

	var output map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if output["room"] != "John Smith" {
		t.Errorf("expected room 'John Smith', got %v", output["room"])
	}
}

func TestLogger_WithContext(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger(&Config{Level: LevelInfo, JSONFormat: true, Output: buf})

	ctx := context.WithValue(context.Background(), TraceIDKey, "trace-123")
	ctx = context.WithValue(ctx, SessionIDKey, "session-456")

	log.WithContext(ctx).Info("traced")

	var output map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if output["trace_id"] != "trace-123" {
		t.Errorf("expected trace_id 'trace-123', got %v", output["trace_id"])
	}
	if output["session_id"] != "session-456" {
		t.Errorf("expected session_id 'session-456', got %v", output["session_id"])
	}
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()

	// None of these should panic.
	log.Debug("debug")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")
	log.With(F("k", "v")).Info("with")
	log.WithContext(context.Background()).Info("ctx")
}
