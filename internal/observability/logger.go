// Package observability provides the logger and Prometheus metrics shared by
// the command-line tools.
package observability

import (
	"io"
	"log/slog"
	"strings"

	"github.com/couchcryptid/shooting-analytics/internal/config"
)

// NewLogger builds a slog.Logger writing to w according to cfg.LogLevel
// ("debug", "info", "warn", "error") and cfg.LogFormat ("json" or "text").
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var h slog.Handler
	if strings.EqualFold(cfg.LogFormat, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
