package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("subtitle stored", String(FieldInput, "movie.mkv"), Int("bytes", 42))

	line := buf.String()
	if !strings.Contains(line, "INFO") {
		t.Fatalf("missing level in %q", line)
	}
	if !strings.Contains(line, "subtitle stored") {
		t.Fatalf("missing message in %q", line)
	}
	if !strings.Contains(line, "input=movie.mkv") || !strings.Contains(line, "bytes=42") {
		t.Fatalf("missing attrs in %q", line)
	}
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Warn("lookup failed", Error(errors.New("connection refused by peer")))

	if !strings.Contains(buf.String(), `error="connection refused by peer"`) {
		t.Fatalf("expected quoted error value, got %q", buf.String())
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	handler := newConsoleHandler(&buf, levelVar)

	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info should be disabled at warn level")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("error should be enabled at warn level")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}

func TestNewComponentLoggerNilBase(t *testing.T) {
	logger := NewComponentLogger(nil, "batch")
	// Must not panic and must swallow output.
	logger.Info("ignored")
}
