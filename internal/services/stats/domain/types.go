// Package domain holds the core types and ports for the stats service
package domain

import (
	"fmt"
	"time"

	"hubtally/internal/adapters/ingest/gharchive"
)

// EventEnvelope re-exports the event envelope shape read from hour files
type EventEnvelope = gharchive.EventEnvelope

// ErrMalformedLine re-exports the reader's malformed line sentinel
var ErrMalformedLine = gharchive.ErrMalformedLine

// HourRef re-exports the hour shard reference
type HourRef = gharchive.HourRef

// DayRef is a reference to a specific UTC calendar day
type DayRef struct{ Year, Month, Day int }

// NewDayRef creates a DayRef from a time.Time, converting to UTC
func NewDayRef(t time.Time) DayRef {
	ut := t.UTC()
	return DayRef{Year: ut.Year(), Month: int(ut.Month()), Day: ut.Day()}
}

// UTC returns midnight UTC of the day
func (d DayRef) UTC() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the day as YYYY-MM-DD
func (d DayRef) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Next returns the following day
func (d DayRef) Next() DayRef {
	return NewDayRef(d.UTC().AddDate(0, 0, 1))
}

// Hour returns the HourRef for hour h of the day
func (d DayRef) Hour(h int) HourRef {
	return HourRef{Year: d.Year, Month: d.Month, Day: d.Day, Hour: h}
}

// ShardReport summarizes one processed hour shard
type ShardReport struct {
	Hour    HourRef
	Scored  int // events that produced counter updates
	Ignored int // malformed or unattributable lines
	Updates int // counter updates submitted in the batch
	Elapsed time.Duration
}

// DayReport summarizes one orchestrated day
type DayReport struct {
	Day     DayRef
	Fetched int // shards downloaded this run
	Shards  int // shards found on disk and processed
	Failed  int // shards aborted by a store failure
	Scored  int
	Ignored int
	Elapsed time.Duration
}

// RunReport summarizes a multi day backfill
type RunReport struct {
	Days       int
	FailedDays []DayRef
}
