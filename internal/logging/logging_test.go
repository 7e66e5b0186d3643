package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", "json")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info().Msg("dropped")
	logger.Warn().Str("step", "budget").Msg("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected json line: %v", err)
	}
	if entry["message"] != "kept" || entry["step"] != "budget" || entry["service"] != "leadform" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "", "console")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info().Msg("listening")
	out := buf.String()
	if strings.HasPrefix(out, "{") || !strings.Contains(out, "listening") {
		t.Fatalf("expected console output, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel(" DEBUG "); err != nil || lvl != zerolog.DebugLevel {
		t.Fatalf("expected debug, got %v (%v)", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected unknown level to fail")
	}
}
