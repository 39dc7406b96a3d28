// Package store provides a unified interface to optional storage backends
package store

import (
	"context"
	"errors"
	"fmt"

	"hubtally/internal/platform/logger"
)

// Store is the facade for optional backends
// zero value is safe but does nothing
type Store struct {
	// Log is the logger used by subclients
	// zero means a no op zerolog logger
	Log logger.Logger

	// RDS is the counter store seam, nil when disabled
	RDS Counters
}

// Counters is the seam over the counter store. Every write issued through a
// Batch also re-arms the key's TTL, so unused counters age out on their own
type Counters interface {
	// Batch starts an empty batch of counter updates. Updates are assembled
	// locally and applied in one atomic round trip by Exec
	Batch() Batch

	// Close releases the underlying connection
	Close() error
}

// Batch accumulates counter updates for a single atomic execution.
// Methods queue locally and never fail; Exec applies everything at once
type Batch interface {
	// IncrBy adds delta to a scalar counter
	IncrBy(key string, delta int64)

	// HIncrBy adds delta to one field of a field histogram
	HIncrBy(key, field string, delta int64)

	// ZIncrBy adds delta to a member's score in a ranking set
	ZIncrBy(key, member string, delta float64)

	// Len reports the number of queued counter updates (TTL refreshes excluded)
	Len() int

	// Exec applies the batch atomically; the batch must not be reused after
	Exec(ctx context.Context) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store with the requested backends
// backends not enabled in cfg remain nil on the Store
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// defaults for zero logger to avoid nil checks
	s.Log = s.Log.With().Logger()

	if cfg.RDS.Enabled {
		c, err := openRDS(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.RDS = c
	}

	return s, nil
}

// Guard verifies all configured seams the Store knows about
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	if s.RDS != nil {
		if p, ok := any(s.RDS).(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("rds: %w", err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes all initialized backends gracefully
// nil backends are ignored
func (s *Store) Close(_ context.Context) error {
	var errs []error

	if s.RDS != nil {
		if e := s.RDS.Close(); e != nil {
			errs = append(errs, e)
		}
	}

	return errors.Join(errs...)
}
