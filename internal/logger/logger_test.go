package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shweta-bavishi/github-auto-review-bot/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LogConfig
		logAt    slog.Level
		wantLine bool
		wantJSON bool
	}{
		{
			name:     "text handler at info level",
			cfg:      config.LogConfig{Level: "info", Format: "text"},
			logAt:    slog.LevelInfo,
			wantLine: true,
		},
		{
			name:     "json handler emits json",
			cfg:      config.LogConfig{Level: "info", Format: "json"},
			logAt:    slog.LevelInfo,
			wantLine: true,
			wantJSON: true,
		},
		{
			name:     "debug suppressed at info level",
			cfg:      config.LogConfig{Level: "info", Format: "text"},
			logAt:    slog.LevelDebug,
			wantLine: false,
		},
		{
			name:     "invalid level falls back to info",
			cfg:      config.LogConfig{Level: "noisy", Format: "text"},
			logAt:    slog.LevelInfo,
			wantLine: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.cfg, &buf)
			log.Log(context.Background(), tt.logAt, "hello", "key", "value")

			out := buf.String()
			if !tt.wantLine {
				assert.Empty(t, out)
				return
			}
			assert.Contains(t, out, "hello")
			if tt.wantJSON {
				assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"))
			}
		})
	}
}
