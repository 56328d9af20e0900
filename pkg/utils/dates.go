// Package utils provides small shared helpers (calendar math, validation).
package utils

import (
	"time"
)

// DayStartUTC truncates t to UTC midnight. All streak and heatmap math
// works on these normalized day boundaries.
func DayStartUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey formats t as a YYYY-MM-DD key in UTC
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DaysBetween returns the whole-day difference b-a, both normalized to
// UTC midnight first. Positive when b is after a.
func DaysBetween(a, b time.Time) int {
	return int(DayStartUTC(b).Sub(DayStartUTC(a)).Hours() / 24)
}

// SameDay reports whether a and b fall on the same UTC calendar date
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// IsWeekend reports whether t falls on Saturday or Sunday (UTC)
func IsWeekend(t time.Time) bool {
	wd := t.UTC().Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
