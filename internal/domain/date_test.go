package domain

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	if got := DaysBetween(start, end); got != 10 {
		t.Errorf("DaysBetween = %d, want 10", got)
	}
	if got := DaysBetween(start, start); got != 1 {
		t.Errorf("DaysBetween same day = %d, want 1", got)
	}
	if got := DaysBetween(end, start); got != 0 {
		t.Errorf("DaysBetween reversed = %d, want 0", got)
	}
}

func TestDayWindow(t *testing.T) {
	at := time.Date(2024, 3, 15, 17, 42, 9, 0, time.UTC)
	start, end := DayWindow(at)

	if !start.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", end)
	}
	if !at.After(start) || !at.Before(end) {
		t.Errorf("timestamp should fall inside its own day window")
	}
}

func TestDateOfNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	at := time.Date(2024, 6, 1, 2, 0, 0, 0, loc) // 2024-05-31T21:00Z

	got := DateOf(at)
	want := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOf = %v, want %v", got, want)
	}
}
