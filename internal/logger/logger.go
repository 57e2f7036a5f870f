// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
)

// Level is the level of the default logger. Diagnostics are hidden unless
// debugging is enabled.
var Level = new(slog.LevelVar)

// Setup installs a text logger writing to w as the slog default.
func Setup(w io.Writer) *slog.Logger {
	Level.Set(slog.LevelWarn)

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level,
	}))
	slog.SetDefault(logger)
	return logger
}

// SetDebug lowers the level to Debug when debug is true.
func SetDebug(debug bool) {
	if debug {
		Level.Set(slog.LevelDebug)
	}
}
