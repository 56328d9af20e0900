// Package core - Core Business Logic
// Reading activity analytics: streaks, period aggregates, and the
// achievement rule engine. Every function here takes the reference instant
// as a parameter instead of reading the clock, so behavior is deterministic
// under test.
package core

import (
	"sort"
	"time"

	"bookstreak/pkg/models"
	"bookstreak/pkg/utils"
)

// ComputeStreaks derives current/longest consecutive-day streaks from an
// unordered set of readings. Multiple readings on one calendar date count
// once. The current streak only survives if the most recent reading day is
// today or yesterday relative to now (UTC day boundaries); a gap of two or
// more days resets it to zero.
func ComputeStreaks(readings []models.Reading, now time.Time) models.StreakResult {
	dates := distinctDays(readings)
	if len(dates) == 0 {
		return models.StreakResult{}
	}

	today := utils.DayStartUTC(now)
	yesterday := today.AddDate(0, 0, -1)
	last := dates[len(dates)-1]

	current := 0
	if last.Equal(today) || last.Equal(yesterday) {
		current = 1
		for i := len(dates) - 2; i >= 0; i-- {
			if utils.DaysBetween(dates[i], dates[i+1]) == 1 {
				current++
			} else {
				break
			}
		}
	}

	longest := 0
	run := 1
	for i := 1; i < len(dates); i++ {
		if utils.DaysBetween(dates[i-1], dates[i]) == 1 {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}
	if current > longest {
		longest = current
	}

	lastCopy := last
	return models.StreakResult{
		Current:      current,
		Longest:      longest,
		LastReadDate: &lastCopy,
	}
}

// distinctDays reduces readings to their sorted distinct UTC reading days
func distinctDays(readings []models.Reading) []time.Time {
	seen := make(map[string]time.Time, len(readings))
	for _, r := range readings {
		day := utils.DayStartUTC(r.Date)
		seen[utils.DayKey(day)] = day
	}

	dates := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
