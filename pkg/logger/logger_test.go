package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
	Named("test").Info(context.Background(), "test message", String("k", "v"))
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	_ = SetLevelString("info")
	l := New(WithWriter(&buf), WithFormat("JSON")).Named("lane")

	l.Info(context.Background(), "shot recorded",
		String("shot", "X"),
		Int("frame", 3),
		Bool("game_over", false),
		Error(errors.New("boom")),
	)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "shot recorded" {
		t.Errorf("unexpected msg %v", entry["msg"])
	}
	if entry["component"] != "lane" {
		t.Errorf("expected component field, got %v", entry["component"])
	}
	if entry["shot"] != "X" || entry["frame"] != float64(3) || entry["game_over"] != false {
		t.Errorf("unexpected fields %v", entry)
	}
	source, _ := entry["source"].(string)
	if !strings.Contains(source, "logger_test.go:") {
		t.Errorf("expected source to point at the test, got %q", source)
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithWriter(&buf))

	if err := SetLevelString("warn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = SetLevelString("info") }()

	l.Info(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered, got %q", buf.String())
	}
	l.With(String("game_id", "g-1")).Warn(context.Background(), "shown")
	if !strings.Contains(buf.String(), "game_id=g-1") {
		t.Errorf("expected bound field in output, got %q", buf.String())
	}
}

func TestSetLevelString(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "", "warning", "warn", "error"} {
		if err := SetLevelString(level); err != nil {
			t.Errorf("level %q: unexpected error %v", level, err)
		}
	}
	if err := SetLevelString("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
	_ = SetLevelString("info")
}
