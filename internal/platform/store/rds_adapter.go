package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	perr "hubtally/internal/platform/errors"
	"hubtally/internal/platform/store/rds"
)

// newCountersAdapter is called by openers.go to wrap an existing *rds.RDS
// and return the store.Counters seam
func newCountersAdapter(c *rds.RDS, ttl time.Duration) Counters {
	return &countersAdapter{inner: c, ttl: ttl}
}

// countersAdapter adapts *rds.RDS to the store.Counters interface
type countersAdapter struct {
	inner *rds.RDS
	ttl   time.Duration
}

var _ Counters = (*countersAdapter)(nil)

// TTL reports the rolling expiry applied to every written key
func (a *countersAdapter) TTL() time.Duration { return a.ttl }

func (a *countersAdapter) Batch() Batch {
	return &pipeBatch{pipe: a.inner.Pipeline(), ttl: a.ttl}
}

func (a *countersAdapter) Close() error { return a.inner.Close() }

// Ping verifies connectivity with Redis
func (a *countersAdapter) Ping(ctx context.Context) error {
	if a == nil || a.inner == nil {
		return errors.New("store: nil counters adapter")
	}
	return a.inner.Ping(ctx)
}

// pipeBatch queues counter updates on a go-redis transactional pipeline.
// Every increment is followed by an EXPIRE on the same key so the whole
// family of counters carries the rolling TTL contract.
// Queue-time contexts are placeholders; the driver only uses the Exec context
type pipeBatch struct {
	pipe redis.Pipeliner
	ttl  time.Duration
	n    int
	done bool
}

var _ Batch = (*pipeBatch)(nil)

func (b *pipeBatch) IncrBy(key string, delta int64) {
	ctx := context.Background()
	b.pipe.IncrBy(ctx, key, delta)
	b.pipe.Expire(ctx, key, b.ttl)
	b.n++
}

func (b *pipeBatch) HIncrBy(key, field string, delta int64) {
	ctx := context.Background()
	b.pipe.HIncrBy(ctx, key, field, delta)
	b.pipe.Expire(ctx, key, b.ttl)
	b.n++
}

func (b *pipeBatch) ZIncrBy(key, member string, delta float64) {
	ctx := context.Background()
	b.pipe.ZIncrBy(ctx, key, delta, member)
	b.pipe.Expire(ctx, key, b.ttl)
	b.n++
}

func (b *pipeBatch) Len() int { return b.n }

func (b *pipeBatch) Exec(ctx context.Context) error {
	if b.done {
		return perr.Storef("counter batch already executed")
	}
	b.done = true
	if b.n == 0 {
		return nil
	}
	if _, err := b.pipe.Exec(ctx); err != nil {
		return perr.FromRedis(err, "counter batch exec")
	}
	return nil
}
