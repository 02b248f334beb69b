package utils

import "time"

// DateOnly truncates a time.Time to a timezone-free calendar date at
// midnight UTC, the representation every date in this repo is kept in
// (spec.md §9: "ISO calendar dates, timezone-free").
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MondayOnOrBefore returns the Monday on or before t, per the week
// numbering invariant in spec.md §3 (Monday = 0).
func MondayOnOrBefore(t time.Time) time.Time {
	t = DateOnly(t)
	// time.Weekday: Sunday=0 .. Saturday=6; convert to Monday=0 .. Sunday=6.
	wd := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -wd)
}

// DaysBetween returns the integer number of calendar days between two
// dates (b - a), truncating any time-of-day component first.
func DaysBetween(a, b time.Time) int {
	a, b = DateOnly(a), DateOnly(b)
	return int(b.Sub(a).Hours() / 24)
}

// WeekNumber is ((date - firstMonday)/7) + 1, per spec.md §4.5/§4.6.
func WeekNumber(firstMonday, date time.Time) int {
	return DaysBetween(firstMonday, date)/7 + 1
}

// ParseISODate parses a YYYY-MM-DD string into a date-only time.Time.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// FormatISODate formats a date-only time.Time as YYYY-MM-DD.
func FormatISODate(t time.Time) string {
	return t.Format("2006-01-02")
}
