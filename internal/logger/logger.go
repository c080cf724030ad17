// Package logger builds the application's *slog.Logger from config.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/aanand-mishra/college-api/internal/config"
)

// New returns a logger writing to w.
//
// Production (prod) always logs JSON so aggregators can ingest it; other
// environments use the configured format. The level and the timestamp
// layout come from cfg.Log, and every record carries app=<cfg.Log.Name>.
func New(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Log.Level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey && cfg.Log.TimeFormat != "" {
				return slog.String(slog.TimeKey, a.Value.Time().Format(cfg.Log.TimeFormat))
			}
			return a
		},
	}

	var h slog.Handler
	if cfg.Env == "prod" || cfg.Log.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h).With(slog.String("app", cfg.Log.Name))
}

// ParseLevel maps a config string to a slog level. Unknown values mean debug.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
