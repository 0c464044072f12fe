package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors, enabling safe usage without nil checks.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component tags log entries with the subsystem that produced them, e.g.
// "session.cleanup" or "middleware.session".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Count creates an attribute for a quantity such as rows swept or retries
// taken.
func Count(n int64) slog.Attr {
	return slog.Int64("count", n)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed calculates and logs the duration since the start time.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}
