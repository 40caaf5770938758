package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for input, expected := range testCases {
		if got := ParseLevel(input); got != expected {
			t.Errorf("ParseLevel(%q): expected %v, got %v", input, expected, got)
		}
	}
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, slog.LevelInfo, "json").Info("plan saved", "plan_id", "abc")
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"plan_id":"abc"`) {
		t.Errorf("Expected JSON output, got %q", buf.String())
	}

	buf.Reset()
	newLogger(&buf, slog.LevelInfo, "text").Info("plan saved", "plan_id", "abc")
	if !strings.Contains(buf.String(), "plan_id=abc") {
		t.Errorf("Expected text output, got %q", buf.String())
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, slog.LevelWarn, "text")
	l.Info("hidden")
	l.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("Expected info message to be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("Expected warn message to be logged")
	}
}

func TestConfigure(t *testing.T) {
	Configure("debug", "text")
	if !Get().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Expected debug level enabled after Configure")
	}
	Configure("error", "json")
	if Get().Enabled(context.Background(), slog.LevelWarn) {
		t.Error("Expected warn level disabled after Configure(error)")
	}
}
