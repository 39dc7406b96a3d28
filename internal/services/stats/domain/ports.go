package domain

import (
	"context"
	"io"
)

// RunnerPort is the public port exposed by the module (what other modules would call)
type RunnerPort interface {
	// RunDay fetches and processes one day
	RunDay(ctx context.Context, day DayRef) (DayReport, error)

	// RunSince fetches and processes every day from start up to but excluding today
	RunSince(ctx context.Context, start DayRef) (RunReport, error)
}

// MirrorPort is the local hour file mirror interface
type MirrorPort interface {
	// Ensure makes the hour file present locally; fetched reports a download
	Ensure(ctx context.Context, hour HourRef) (fetched bool, err error)

	// Open opens the local hour file
	Open(hour HourRef) (io.ReadCloser, error)

	// CachedHours lists the hours of the day present locally, ascending
	CachedHours(year, month, day int) ([]HourRef, error)
}

// ReaderPort is the event reader interface
type ReaderPort interface {
	Next() (EventEnvelope, error)
	Close() error
	Line() int
	Stats() (events int, bytes int64)
}

// ReaderFactory is the event reader factory interface
type ReaderFactory interface {
	New(io.ReadCloser) (ReaderPort, error)
}

// Normalizer is the identity normalizer interface
type Normalizer interface {
	Normalize(s string) string
}
