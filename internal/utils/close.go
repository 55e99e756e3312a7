package utils

import (
	"io"
	"log/slog"
)

// Close closes c, discarding the error. For defers where best-effort
// cleanup is enough (response bodies, read-only files).
func Close(c io.Closer) {
	_ = c.Close()
}

// MustClose closes c and logs a close failure instead of dropping it.
func MustClose(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("close failed", "error", err)
	}
}
