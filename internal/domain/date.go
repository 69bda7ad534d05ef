package domain

import "time"

// Calendar dates are represented as time.Time values normalized to
// midnight UTC. Attendance rows and collection records key on the
// calendar day, not the instant.

// DateOf truncates a timestamp to its calendar day in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date ("2006-01-02").
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// DayWindow returns the [start, end) bounds of the given calendar day.
func DayWindow(date time.Time) (time.Time, time.Time) {
	start := DateOf(date)
	return start, start.AddDate(0, 0, 1)
}

// DaysBetween counts calendar days from start to end, inclusive.
// Returns 0 when start is after end.
func DaysBetween(start, end time.Time) int {
	s, e := DateOf(start), DateOf(end)
	if s.After(e) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
