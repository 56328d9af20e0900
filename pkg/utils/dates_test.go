package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayStartUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)

	// 01:30 local on Mar 15 is 22:30 UTC on Mar 14
	local := time.Date(2026, 3, 15, 1, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), DayStartUTC(local))

	utc := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), DayStartUTC(utc))
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2026-03-15", DayKey(time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 5, DaysBetween(a, b))
	assert.Equal(t, -5, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 3, 15, 0, 0, 1, 0, time.UTC)
	b := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}

func TestIsWeekend(t *testing.T) {
	saturday := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsWeekend(saturday))
	assert.True(t, IsWeekend(sunday))
	assert.False(t, IsWeekend(monday))
}
