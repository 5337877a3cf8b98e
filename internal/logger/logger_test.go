package logger

import (
	"bytes"
	"encoding/json/v2"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestProductionJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Environment: "production", Level: slog.LevelInfo})

	l.Info("server started", "port", 8080)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "server started" {
		t.Errorf("unexpected msg %v", record["msg"])
	}
}

func TestPrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Environment: "development", Level: slog.LevelDebug})

	l.Warn("low disk", "free", "1GB")

	out := buf.String()
	if !strings.Contains(out, "WRN") {
		t.Errorf("expected level label in %q", out)
	}
	if !strings.Contains(out, "low disk") || !strings.Contains(out, "free=1GB") {
		t.Errorf("expected message and attr in %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Environment: "development", Level: slog.LevelWarn})

	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info suppressed, got %q", buf.String())
	}
	l.Error("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected error logged, got %q", buf.String())
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Environment: "development", Level: slog.LevelInfo})

	l.WithError(errTest{}).Error("operation failed")
	if !strings.Contains(buf.String(), "error=boom") {
		t.Errorf("expected error attr, got %q", buf.String())
	}
}

type errTest struct{}

func (errTest) Error() string { return "boom" }
