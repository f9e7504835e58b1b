// Package logging provides structured logging setup for homebase.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New builds a logger writing to w.
// Dev mode uses human-readable text at debug level; prod uses JSON at info.
func New(devMode bool, w io.Writer) *slog.Logger {
	if devMode {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// Setup initializes the default slog logger on stdout.
func Setup(devMode bool) {
	slog.SetDefault(New(devMode, os.Stdout))
}
