// Package guardrails holds cross cutting safety helpers for stats ingestion
package guardrails

import (
	"context"
	"time"
)

// Timeouts is an optional budget bundle for one day of work.
// Zero values mean no extra timeout at that level
type Timeouts struct {
	// Day is the overall time budget for one orchestrated day
	Day time.Duration

	// Fetch caps a single hour shard download
	Fetch time.Duration

	// Store caps the counter batch submission for one shard
	Store time.Duration
}

// WithDay returns a context limited by the day budget without extending any parent deadline
func WithDay(parent context.Context, t Timeouts) (context.Context, context.CancelFunc) {
	return withChildTimeout(parent, t.Day)
}

// ForFetch returns a sub context for one shard download bounded by Fetch and any remaining parent budget
func ForFetch(parent context.Context, t Timeouts) (context.Context, context.CancelFunc) {
	return withChildTimeout(parent, t.Fetch)
}

// ForStore returns a sub context for the batch submission bounded by Store and any remaining parent budget
func ForStore(parent context.Context, t Timeouts) (context.Context, context.CancelFunc) {
	return withChildTimeout(parent, t.Store)
}

// Remaining returns the time until the deadline on ctx or zero when none is set or already expired
func Remaining(ctx context.Context) time.Duration {
	if dl, ok := ctx.Deadline(); ok {
		d := time.Until(dl)
		if d > 0 {
			return d
		}
	}
	return 0
}

// withChildTimeout chooses the tighter of the requested duration and any parent remainder.
// Never extends the parent deadline.
// When d is zero it returns a simple cancelable child inheriting the parent deadline
func withChildTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(parent)
	}
	if rem := Remaining(parent); rem > 0 && rem < d {
		return context.WithTimeout(parent, rem)
	}
	return context.WithTimeout(parent, d)
}
