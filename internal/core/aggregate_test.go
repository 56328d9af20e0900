package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstreak/pkg/models"
)

func TestHeatLevelBuckets(t *testing.T) {
	cases := []struct {
		pages int
		level int
	}{
		{0, 0},
		{1, 1},
		{20, 1},
		{21, 2},
		{50, 2},
		{51, 3},
		{100, 3},
		{101, 4},
		{500, 4},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.level, heatLevel(tc.pages), "pages=%d", tc.pages)
	}
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	week := PeriodStart(models.PeriodWeek, now)
	assert.Equal(t, now.Add(-7*24*time.Hour), week)

	month := PeriodStart(models.PeriodMonth, now)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), month)

	year := PeriodStart(models.PeriodYear, now)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), year)

	all := PeriodStart(models.PeriodAll, now)
	assert.True(t, all.Before(time.Date(1971, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestSummarizePeriodEmpty(t *testing.T) {
	summary := SummarizePeriod(nil, models.PeriodAll, testNow)

	assert.Equal(t, 0, summary.TotalPagesRead)
	assert.Equal(t, 0, summary.ActiveDays)
	assert.Equal(t, 0, summary.AveragePerDay)
	assert.Empty(t, summary.DailyData)
	assert.Empty(t, summary.HeatmapData)
}

func TestSummarizePeriodSameDayMerged(t *testing.T) {
	readings := []models.Reading{
		readingOn(1, 30),
		readingOn(1, 25),
		readingOn(0, 60),
	}

	summary := SummarizePeriod(readings, models.PeriodAll, testNow)

	assert.Equal(t, 115, summary.TotalPagesRead)
	assert.Equal(t, 2, summary.ActiveDays)
	require.Len(t, summary.DailyData, 2)

	// Day-ordered ascending, same-day events pre-summed
	assert.Equal(t, "2026-03-14", summary.DailyData[0].Date)
	assert.Equal(t, 55, summary.DailyData[0].Pages)
	assert.Equal(t, "2026-03-15", summary.DailyData[1].Date)
	assert.Equal(t, 60, summary.DailyData[1].Pages)

	require.Len(t, summary.HeatmapData, 2)
	assert.Equal(t, 3, summary.HeatmapData[0].Level) // 55 pages
	assert.Equal(t, 3, summary.HeatmapData[1].Level) // 60 pages
}

func TestSummarizePeriodAverageRounds(t *testing.T) {
	readings := []models.Reading{
		readingOn(2, 10),
		readingOn(1, 10),
		readingOn(0, 11),
	}

	summary := SummarizePeriod(readings, models.PeriodAll, testNow)

	// 31 / 3 = 10.33 -> 10
	assert.Equal(t, 10, summary.AveragePerDay)
}

func TestSummarizePeriodWeekWindow(t *testing.T) {
	readings := []models.Reading{
		readingOn(30, 100), // outside the rolling week
		readingOn(3, 40),
		readingOn(0, 10),
	}

	summary := SummarizePeriod(readings, models.PeriodWeek, testNow)

	assert.Equal(t, 50, summary.TotalPagesRead)
	assert.Equal(t, 2, summary.ActiveDays)
}

func TestSumPagesOnDay(t *testing.T) {
	readings := []models.Reading{
		readingOn(0, 30),
		readingOn(0, 25),
		readingOn(1, 99),
	}

	assert.Equal(t, 55, SumPagesOnDay(readings, testNow))
	assert.Equal(t, 99, SumPagesOnDay(readings, testNow.AddDate(0, 0, -1)))
	assert.Equal(t, 0, SumPagesOnDay(readings, testNow.AddDate(0, 0, -5)))
}
