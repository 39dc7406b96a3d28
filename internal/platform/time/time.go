// Package time contains time related helpers
package time

import "time"

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// DayUTC truncates t to midnight UTC
func DayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// YesterdayUTC returns midnight UTC of the previous calendar day
func YesterdayUTC() time.Time {
	return DayUTC(time.Now().UTC().AddDate(0, 0, -1))
}
