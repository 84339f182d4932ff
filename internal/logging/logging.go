// Package logging builds the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/msomdec/moviweb/internal/config"
)

// New returns a logger writing human-readable lines to console and/or JSON
// lines to jsonOut, depending on cfg.Format.
func New(cfg config.LoggingConfig, console, jsonOut io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.Level))); err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	consoleHandler := log.NewWithOptions(console, log.Options{
		ReportTimestamp: true,
		Level:           log.Level(level),
	})
	jsonHandler := slog.NewJSONHandler(jsonOut, &slog.HandlerOptions{Level: level})

	switch cfg.Format {
	case "console":
		return slog.New(consoleHandler), nil
	case "json":
		return slog.New(jsonHandler), nil
	default:
		return slog.New(slog.NewMultiHandler(consoleHandler, jsonHandler)), nil
	}
}
