package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "debug", FormatJSON)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Debug().Str("type", "Module").Msg("component created")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["message"] != "component created" || entry["type"] != "Module" || entry["level"] != "debug" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "", FormatConsole)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Info().Msg("hidden")
	logger.Warn().Msg("fragment dropped")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "fragment dropped") {
		t.Errorf("output = %q", out)
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud", FormatJSON); err == nil {
		t.Error("expected error for bad level")
	}
	if _, err := New(&bytes.Buffer{}, "info", "xml"); err == nil {
		t.Error("expected error for bad format")
	}
}
