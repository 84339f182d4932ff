package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/msomdec/moviweb/internal/config"
	"github.com/msomdec/moviweb/internal/logging"
)

func TestNewBothFormats(t *testing.T) {
	var console, jsonOut bytes.Buffer
	logger, err := logging.New(config.LoggingConfig{Level: "info", Format: "both"}, &console, &jsonOut)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("movie added", "title", "Inception")
	logger.Debug("hidden")

	if !strings.Contains(console.String(), "movie added") {
		t.Fatalf("expected console output, got %q", console.String())
	}
	if strings.Contains(console.String(), "hidden") {
		t.Fatal("debug line should be filtered at info level")
	}

	var entry map[string]any
	if err := json.Unmarshal(jsonOut.Bytes(), &entry); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, jsonOut.String())
	}
	if entry["msg"] != "movie added" || entry["title"] != "Inception" {
		t.Fatalf("unexpected json entry: %v", entry)
	}
}

func TestNewJSONOnly(t *testing.T) {
	var console, jsonOut bytes.Buffer
	logger, err := logging.New(config.LoggingConfig{Level: "debug", Format: "json"}, &console, &jsonOut)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("lookup")

	if console.Len() != 0 {
		t.Fatalf("expected no console output, got %q", console.String())
	}
	if !strings.Contains(jsonOut.String(), `"lookup"`) {
		t.Fatalf("expected debug json line, got %q", jsonOut.String())
	}
}

func TestNewInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	if _, err := logging.New(config.LoggingConfig{Level: "loud", Format: "console"}, &buf, &buf); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
