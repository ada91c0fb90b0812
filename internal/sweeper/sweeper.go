// Package sweeper runs periodic cleanup of expired token revocations.
package sweeper

import (
	"context"
	"log/slog"
	"time"
)

// Purger removes revocation records that expired before now.
type Purger interface {
	PurgeExpiredRevocations(ctx context.Context, now time.Time) (int64, error)
}

// Start runs a background goroutine that sweeps expired revocations every
// interval until ctx is canceled. The returned channel closes when the
// goroutine exits.
func Start(ctx context.Context, purger Purger, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		slog.Info("Revocation sweeper started", "interval", interval)

		for {
			select {
			case <-ticker.C:
				Sweep(ctx, purger, time.Now())
			case <-ctx.Done():
				slog.Info("Revocation sweeper shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
	return done
}

// Sweep purges revocations that expired before now and returns the count.
func Sweep(ctx context.Context, purger Purger, now time.Time) int64 {
	deleted, err := purger.PurgeExpiredRevocations(ctx, now)
	if err != nil {
		if ctx.Err() != nil {
			slog.Debug("Revocation sweep canceled", "error", err)
			return 0
		}
		slog.Error("Revocation sweep failed", "error", err)
		return 0
	}
	if deleted > 0 {
		slog.Info("Revocation sweep removed expired tokens", "count", deleted)
	}
	return deleted
}
