package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstreak/pkg/models"
)

var testNow = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

// readingOn builds a minimal ledger entry for a given day offset from testNow
func readingOn(daysAgo, pages int) models.Reading {
	day := testNow.AddDate(0, 0, -daysAgo)
	return models.Reading{
		Date:      time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		PagesRead: pages,
		CreatedAt: day,
	}
}

func TestComputeStreaksEmpty(t *testing.T) {
	result := ComputeStreaks(nil, testNow)

	assert.Equal(t, 0, result.Current)
	assert.Equal(t, 0, result.Longest)
	assert.Nil(t, result.LastReadDate)
}

func TestComputeStreaksThreeConsecutiveDays(t *testing.T) {
	readings := []models.Reading{
		readingOn(2, 10),
		readingOn(1, 20),
		readingOn(0, 5),
	}

	result := ComputeStreaks(readings, testNow)

	assert.Equal(t, 3, result.Current)
	assert.Equal(t, 3, result.Longest)
	require.NotNil(t, result.LastReadDate)
	assert.Equal(t, "2026-03-15", result.LastReadDate.Format("2006-01-02"))
}

func TestComputeStreaksGapResetsCurrent(t *testing.T) {
	// Old 2-day run, a gap, then a fresh 2-day run ending today
	readings := []models.Reading{
		readingOn(10, 10),
		readingOn(9, 10),
		readingOn(1, 10),
		readingOn(0, 10),
	}

	result := ComputeStreaks(readings, testNow)

	assert.Equal(t, 2, result.Current)
	assert.Equal(t, 2, result.Longest)
}

func TestComputeStreaksYesterdayGrace(t *testing.T) {
	// Last reading was yesterday: the streak is still alive
	readings := []models.Reading{
		readingOn(3, 10),
		readingOn(2, 10),
		readingOn(1, 10),
	}

	result := ComputeStreaks(readings, testNow)

	assert.Equal(t, 3, result.Current)
}

func TestComputeStreaksStaleLedger(t *testing.T) {
	// Last reading two days ago: current is dead, longest survives
	readings := []models.Reading{
		readingOn(6, 10),
		readingOn(5, 10),
		readingOn(4, 10),
		readingOn(3, 10),
		readingOn(2, 10),
	}

	result := ComputeStreaks(readings, testNow)

	assert.Equal(t, 0, result.Current)
	assert.Equal(t, 5, result.Longest)
}

func TestComputeStreaksSameDayDuplicates(t *testing.T) {
	// Multiple readings on one date count as one streak day
	readings := []models.Reading{
		readingOn(1, 10),
		readingOn(1, 30),
		readingOn(0, 5),
		readingOn(0, 15),
	}

	result := ComputeStreaks(readings, testNow)

	assert.Equal(t, 2, result.Current)
	assert.Equal(t, 2, result.Longest)
}

func TestComputeStreaksLongestNeverBelowCurrent(t *testing.T) {
	cases := [][]models.Reading{
		{readingOn(0, 10)},
		{readingOn(1, 10), readingOn(0, 10)},
		{readingOn(7, 10), readingOn(1, 10), readingOn(0, 10)},
		{readingOn(20, 10), readingOn(19, 10), readingOn(18, 10), readingOn(0, 10)},
	}

	for _, readings := range cases {
		result := ComputeStreaks(readings, testNow)
		assert.GreaterOrEqual(t, result.Longest, result.Current)
	}
}

func TestComputeStreaksLongestInMiddle(t *testing.T) {
	// 4-day historical run beats the 2-day current run
	readings := []models.Reading{
		readingOn(15, 10),
		readingOn(14, 10),
		readingOn(13, 10),
		readingOn(12, 10),
		readingOn(1, 10),
		readingOn(0, 10),
	}

	result := ComputeStreaks(readings, testNow)

	assert.Equal(t, 2, result.Current)
	assert.Equal(t, 4, result.Longest)
}

func TestComputeStreaksTimezoneNormalization(t *testing.T) {
	// A late-evening reading in UTC+3 and a UTC reading the same UTC day
	// must not double-count
	loc := time.FixedZone("UTC+3", 3*60*60)
	readings := []models.Reading{
		{Date: time.Date(2026, 3, 15, 1, 0, 0, 0, loc), PagesRead: 10}, // Mar 14 22:00 UTC
		{Date: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), PagesRead: 10},
		{Date: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC), PagesRead: 10},
	}

	result := ComputeStreaks(readings, testNow)

	assert.Equal(t, 2, result.Current)
	assert.Equal(t, 2, result.Longest)
}
