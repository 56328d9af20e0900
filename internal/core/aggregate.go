package core

import (
	"math"
	"sort"
	"time"

	"bookstreak/pkg/models"
	"bookstreak/pkg/utils"
)

// Heat level thresholds are fixed; changing them is a behavior change that
// needs explicit catalog/version coordination with the frontend.
func heatLevel(pages int) int {
	switch {
	case pages > 100:
		return 4
	case pages > 50:
		return 3
	case pages > 20:
		return 2
	case pages > 0:
		return 1
	default:
		return 0
	}
}

// PeriodStart resolves a reporting period to its inclusive start instant.
// week is a rolling 7 days; month and year snap to calendar boundaries;
// anything else is unbounded.
func PeriodStart(period string, now time.Time) time.Time {
	u := now.UTC()
	switch period {
	case models.PeriodWeek:
		return u.Add(-7 * 24 * time.Hour)
	case models.PeriodMonth:
		return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
	case models.PeriodYear:
		return time.Date(u.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Unix(0, 0).UTC()
	}
}

// FilterSince keeps readings whose date is not before start
func FilterSince(readings []models.Reading, start time.Time) []models.Reading {
	out := make([]models.Reading, 0, len(readings))
	for _, r := range readings {
		if !r.Date.Before(start) {
			out = append(out, r)
		}
	}
	return out
}

// SummarizePeriod reduces readings into the period totals, the day-ordered
// chart series, and the heatmap classification. Events on the same day are
// pre-summed; each date appears at most once in the output, ascending.
func SummarizePeriod(readings []models.Reading, period string, now time.Time) models.PeriodSummary {
	readings = FilterSince(readings, PeriodStart(period, now))

	perDay := make(map[string]int, len(readings))
	total := 0
	for _, r := range readings {
		key := utils.DayKey(r.Date)
		perDay[key] += r.PagesRead
		total += r.PagesRead
	}

	keys := make([]string, 0, len(perDay))
	for k := range perDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	daily := make([]models.DailyPages, 0, len(keys))
	heatmap := make([]models.HeatmapDay, 0, len(keys))
	for _, k := range keys {
		pages := perDay[k]
		daily = append(daily, models.DailyPages{Date: k, Pages: pages})
		heatmap = append(heatmap, models.HeatmapDay{Date: k, Count: pages, Level: heatLevel(pages)})
	}

	avg := 0
	if len(perDay) > 0 {
		avg = int(math.Round(float64(total) / float64(len(perDay))))
	}

	return models.PeriodSummary{
		TotalPagesRead: total,
		ActiveDays:     len(perDay),
		AveragePerDay:  avg,
		DailyData:      daily,
		HeatmapData:    heatmap,
	}
}

// SumPagesOnDay totals pages across all readings whose date falls on the
// same UTC calendar day as day.
func SumPagesOnDay(readings []models.Reading, day time.Time) int {
	key := utils.DayKey(day)
	total := 0
	for _, r := range readings {
		if utils.DayKey(r.Date) == key {
			total += r.PagesRead
		}
	}
	return total
}
