// Package logger builds the application's structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/shweta-bavishi/github-auto-review-bot/internal/config"
)

// New initializes a slog logger from the log configuration. A nil output
// defaults to stdout.
func New(cfg config.LogConfig, output io.Writer) *slog.Logger {
	if output == nil {
		output = os.Stdout
	}

	level := new(slog.Level)
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		*level = slog.LevelInfo
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})
	default:
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}
