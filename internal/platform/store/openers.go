package store

import (
	"context"
	"fmt"
	"time"

	perr "hubtally/internal/platform/errors"
	"hubtally/internal/platform/store/rds"
)

// openRDS opens redis and wraps it with the counters adapter
func openRDS(ctx context.Context, cfg Config, s *Store) (Counters, error) {
	c := rds.Open(rds.Config{
		Addr:     cfg.RDS.Addr,
		DB:       cfg.RDS.DB,
		Password: cfg.RDS.Password,
	})

	// Connection guardrails: ping with retry/backoff before publishing the seam
	attempts := cfg.RDS.ConnectRetries
	if attempts <= 0 {
		attempts = 6
	}
	pingTO := cfg.RDS.PingTimeout
	if pingTO <= 0 {
		pingTO = 3 * time.Second
	}
	const (
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)

	ttl := cfg.RDS.CounterTTL
	if ttl <= 0 {
		ttl = DefaultCounterTTL
	}

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTO)
		lastErr = c.Ping(toCtx)
		cancel()

		if lastErr == nil {
			a := newCountersAdapter(c, ttl) // publish adapter only after the client is healthy
			s.RDS = a
			return a, nil
		}
		if ctx.Err() != nil {
			_ = c.Close()
			return nil, ctx.Err()
		}
		// only transient failures heal with a retry; auth or protocol errors fail now
		if !perr.Retryable(lastErr) {
			break
		}
		time.Sleep(backoff)
		if backoff < backoffCeiling {
			backoff *= 2
			if backoff > backoffCeiling {
				backoff = backoffCeiling
			}
		}
	}

	_ = c.Close()
	return nil, fmt.Errorf("redis ping failed after %d attempts: %w", attempts, lastErr)
}
