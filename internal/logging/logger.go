package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/tidecloud/tidebridge/pkg/domain"
)

// New creates a configured application logger.
// It writes to Stderr; Stdout belongs to the stdio transport (JSON-RPC).
// It standardizes common keys (e.g., "error" -> "err") and masks credential
// material before a record is written.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Level maps the --log-level flag value onto a slog level.
// Unrecognized values fall back to Info.
func Level(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	// Standardize 'error' key to 'err'
	if a.Key == "error" {
		a.Key = "err"
	}
	if sensitiveKey(a.Key) {
		a.Value = slog.StringValue(domain.MaskedSecret)
	}
	return a
}

func sensitiveKey(key string) bool {
	switch key {
	case "secret", "keySecret", "apiSecret":
		return true
	}
	return false
}
