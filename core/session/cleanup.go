package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/authkit-dev/authkit/core/logger"
)

// RunCleanup sweeps expired sessions on a fixed cadence until ctx is
// canceled. It is independent of request traffic: correctness never depends
// on the sweep (expiry is checked lazily on load), it only bounds storage
// growth. Run it in its own goroutine bound to process lifetime:
//
//	go session.RunCleanup(ctx, store, cfg.CleanupInterval, logger)
func RunCleanup(ctx context.Context, cleaner Cleaner, interval time.Duration, log *slog.Logger) {
	log = logger.Default(log)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			deleted, err := cleaner.DeleteExpired(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.LogAttrs(ctx, slog.LevelError, "session cleanup failed",
					logger.Component("session.cleanup"), logger.Error(err))
				continue
			}
			if deleted > 0 {
				log.LogAttrs(ctx, slog.LevelDebug, "expired sessions removed",
					logger.Component("session.cleanup"), logger.Count(deleted), logger.Elapsed(start))
			}
		}
	}
}
