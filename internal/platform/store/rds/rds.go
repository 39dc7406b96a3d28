// Package rds provides a Redis client used as the counter store backend
package rds

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures the Redis connection
type Config struct {
	Addr     string
	DB       int
	Password string

	// DialTimeout bounds connection establishment; zero keeps the driver default
	DialTimeout time.Duration
}

// RDS is a thin wrapper around the go-redis client
type RDS struct {
	Client *redis.Client
}

// Open creates a new RDS client with the given config.
// Connectivity is not verified here; callers guard with Ping
func Open(cfg Config) *RDS {
	opt := &redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	}
	if cfg.DialTimeout > 0 {
		opt.DialTimeout = cfg.DialTimeout
	}
	return &RDS{Client: redis.NewClient(opt)}
}

// Ping verifies connectivity
func (r *RDS) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return redis.ErrClosed
	}
	return r.Client.Ping(ctx).Err()
}

// Pipeline returns a fresh transactional pipeline (MULTI/EXEC).
// A batch applies all or nothing; a reader on another connection never
// observes a partially applied batch
func (r *RDS) Pipeline() redis.Pipeliner { return r.Client.TxPipeline() }

// Close closes the underlying client
func (r *RDS) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
