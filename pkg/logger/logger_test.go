package logx

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	configx "github.com/tanpawarit/sierra-outfitters-agent/pkg/config"
)

func TestBuildLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := build(Config{}, &buf)
	logger.Debug().Msg("hidden")
	logger.Info().Str("session_id", "s1").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "shown" || entry["session_id"] != "s1" {
		t.Fatalf("unexpected entry: %#v", entry)
	}

	buf.Reset()
	debug := build(Config{Debug: true}, &buf)
	debug.Debug().Msg("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}

func TestNewWritesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "agent.log")
	logger, closer, err := New(Config{File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info().Msg("turn complete")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "turn complete") {
		t.Fatalf("log file missing entry: %q", data)
	}
}

func TestNewBadPath(t *testing.T) {
	t.Parallel()

	_, _, err := New(Config{File: filepath.Join(t.TempDir(), "missing", "agent.log")})
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func TestConfigDefaultsToLogFile(t *testing.T) {
	t.Setenv("LOG_FILE", "placeholder")
	os.Unsetenv("LOG_FILE")

	cfg, err := configx.New[Config]("LOG")
	if err != nil {
		t.Fatalf("configx.New() error = %v", err)
	}
	if cfg.File != "sierra-outfitters-agent.log" {
		t.Fatalf("expected default log file, got %q", cfg.File)
	}
}

func TestConfigExplicitEmptyFileKeepsStderr(t *testing.T) {
	t.Setenv("LOG_FILE", "")

	cfg, err := configx.New[Config]("LOG")
	if err != nil {
		t.Fatalf("configx.New() error = %v", err)
	}
	if cfg.File != "" {
		t.Fatalf("expected cleared log file, got %q", cfg.File)
	}
}
