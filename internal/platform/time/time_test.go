package time

import (
	"testing"
	"time"
)

func TestPtr(t *testing.T) {
	t.Parallel()

	if Ptr(time.Time{}) != nil {
		t.Fatalf("Ptr(zero) should be nil")
	}
	now := time.Now()
	if p := Ptr(now); p == nil || !p.Equal(now) {
		t.Fatalf("Ptr(now) mismatch")
	}
}

func TestDayUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+9", 9*3600)
	in := time.Date(2024, 3, 14, 3, 30, 0, 0, loc) // 2024-03-13T18:30Z
	got := DayUTC(in)
	want := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DayUTC = %v, want %v", got, want)
	}
}

func TestYesterdayUTC(t *testing.T) {
	t.Parallel()

	y := YesterdayUTC()
	if y.Hour() != 0 || y.Minute() != 0 || y.Location() != time.UTC {
		t.Fatalf("YesterdayUTC not midnight UTC: %v", y)
	}
	if !y.Before(time.Now().UTC()) {
		t.Fatalf("YesterdayUTC should be in the past")
	}
}
