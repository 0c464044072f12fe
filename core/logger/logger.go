package logger

import (
	"io"
	"log/slog"
)

// Discard returns a logger that drops every record. Library code defaults to
// it so logging stays opt-in: nothing is written unless the integrator
// injects a real logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Default returns log or, when it is nil, a discard logger. Call sites use
// it to make nil logger fields safe without per-call checks.
func Default(log *slog.Logger) *slog.Logger {
	if log == nil {
		return Discard()
	}
	return log
}
