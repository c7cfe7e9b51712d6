package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"":         zapcore.InfoLevel,
		"DEBUG":    zapcore.DebugLevel,
		"info":     zapcore.InfoLevel,
		"Warning":  zapcore.WarnLevel,
		"WARN":     zapcore.WarnLevel,
		"ERROR":    zapcore.ErrorLevel,
		"CRITICAL": zapcore.FatalLevel,
	}

	for name, want := range tests {
		got, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		if got != want {
			t.Fatalf("parse %q = %v, want %v", name, got, want)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestBuildFormat(t *testing.T) {
	var buf bytes.Buffer
	log := Build(zapcore.InfoLevel, zapcore.AddSync(&buf))

	log.Debug("hidden")
	log.Info("sync file", zap.String("src", "/src/a.txt"))
	log.Warn("careful")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}

	re := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3} - INFO - sync file - \{"src": "/src/a.txt"\}$`)
	if !re.MatchString(lines[0]) {
		t.Fatalf("unexpected info line: %q", lines[0])
	}

	if !strings.Contains(lines[1], " - WARNING - careful") {
		t.Fatalf("unexpected warn line: %q", lines[1])
	}
}

func TestBuildTeesSinks(t *testing.T) {
	var a, b bytes.Buffer
	log := Build(zapcore.DebugLevel, zapcore.AddSync(&a), zapcore.AddSync(&b))

	log.Error("boom")

	if a.String() != b.String() || !strings.Contains(a.String(), " - ERROR - boom") {
		t.Fatalf("sinks differ or missing record: %q vs %q", a.String(), b.String())
	}
}

func TestInitAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.log")
	if err := os.WriteFile(path, []byte("previous\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	prev := Log
	t.Cleanup(func() { Log = prev })

	if err := Init(Options{Level: "INFO", File: path}); err != nil {
		t.Fatalf("init: %v", err)
	}
	Log.Info("started")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "previous\n") || !strings.Contains(string(data), " - INFO - started") {
		t.Fatalf("unexpected log file: %q", data)
	}
}

func TestInitRejectsBadLevel(t *testing.T) {
	if err := Init(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error")
	}
}
