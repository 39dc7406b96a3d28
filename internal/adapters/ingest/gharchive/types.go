package gharchive

import (
	"fmt"
	"strings"
	"time"
)

// HourRef identifies a GH Archive hour (UTC).
type HourRef struct {
	Year  int
	Month int
	Day   int
	Hour  int
}

// NewHourRef creates an HourRef from a time.Time, converting to UTC
func NewHourRef(t time.Time) HourRef {
	ut := t.UTC()
	return HourRef{Year: ut.Year(), Month: int(ut.Month()), Day: ut.Day(), Hour: ut.Hour()}
}

// String returns the string representation of the HourRef in GH Archive format
func (h HourRef) String() string {
	// Matches GH Archive naming: YYYY-MM-DD-H.json.gz
	return fmt.Sprintf("%04d-%02d-%02d-%d", h.Year, h.Month, h.Day, h.Hour)
}

// UTC returns the time at the start of the hour
func (h HourRef) UTC() time.Time {
	return time.Date(h.Year, time.Month(h.Month), h.Day, h.Hour, 0, 0, 0, time.UTC)
}

// Weekday returns the weekday of the hour's calendar date (Sunday = 0).
// Derived from the shard's own date fields, which approximates the weekday of
// the events inside; individual event timestamps are not consulted
func (h HourRef) Weekday() int {
	return int(h.UTC().Weekday())
}

// ParseHourName parses an HourRef from a file name like 2024-03-14-9.json.gz
func ParseHourName(name string) (HourRef, bool) {
	base := strings.TrimSuffix(name, ".json.gz")
	if base == name {
		return HourRef{}, false
	}
	t, err := time.Parse("2006-01-02-15", base)
	if err != nil {
		return HourRef{}, false
	}
	return NewHourRef(t), true
}

// EventEnvelope is the outer event format GH Archive stores per line.
// We keep only the fields the aggregation pass needs
type EventEnvelope struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Actor     Actor     `json:"actor"`
	Repo      Repo      `json:"repo"`
	CreatedAt time.Time `json:"created_at"`
}

// Actor is the user who triggered the event
type Actor struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// Repo is the repository the event occurred in
type Repo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"` // owner/name
	Language string `json:"language,omitempty"`
}

// Split returns the owner and bare name halves of the repo identifier.
// ok is false unless both halves are non empty
func (r Repo) Split() (owner, name string, ok bool) {
	i := strings.IndexByte(r.Name, '/')
	if i <= 0 || i+1 >= len(r.Name) {
		return "", "", false
	}
	return r.Name[:i], r.Name[i+1:], true
}
