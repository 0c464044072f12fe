// Package logger provides structured logging utilities built on Go's
// standard slog package: discard-by-default logger construction and
// type-safe attribute helpers for common logging patterns.
//
// Attribute helpers use the empty Attr pattern for nil safety, so calls
// like log.Error("save failed", logger.Error(err)) need no explicit nil
// checks:
//
//	log.Info("expired sessions removed",
//		logger.Component("session.cleanup"),
//		logger.Count(deleted),
//		logger.Elapsed(start),
//	)
package logger
