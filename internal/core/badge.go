package core

import (
	"math"
	"time"

	"bookstreak/pkg/models"
	"bookstreak/pkg/utils"
)

// BadgeFacts is everything the rule engine may consult when deciding
// whether a badge requirement is met. It is assembled once per check so
// every rule sees one consistent view.
type BadgeFacts struct {
	Readings            []models.Reading
	CurrentStreak       int
	TotalPagesRead      int
	TotalBooksCompleted int
	PagesToday          int
	FriendCount         int
	AccountCreatedAt    time.Time
	Now                 time.Time
}

// MeetsRequirement evaluates one badge definition against the facts.
// The category picks the metric; special badges dispatch on their id.
func MeetsRequirement(def models.BadgeDefinition, facts BadgeFacts) bool {
	switch def.Category {
	case models.CategoryStreak:
		return facts.CurrentStreak >= def.Requirement
	case models.CategoryPages:
		return facts.TotalPagesRead >= def.Requirement
	case models.CategoryBooks:
		return facts.TotalBooksCompleted >= def.Requirement
	case models.CategorySpeed:
		return facts.PagesToday >= def.Requirement
	case models.CategoryConsistency:
		return meetsConsistency(def, facts)
	case models.CategorySpecial:
		return meetsSpecial(def, facts)
	}
	return false
}

func meetsConsistency(def models.BadgeDefinition, facts BadgeFacts) bool {
	switch def.ID {
	case "weekly_goal_4":
		return consecutiveActiveWeeks(facts.Readings, facts.Now) >= def.Requirement
	case "consistent_reader":
		return dailyMinimumRun(facts.Readings, facts.Now, 10) >= def.Requirement
	}
	return false
}

func meetsSpecial(def models.BadgeDefinition, facts BadgeFacts) bool {
	switch def.ID {
	case "early_bird":
		return countReadingsInHours(facts.Readings, 6, 8) >= def.Requirement
	case "night_owl":
		return countReadingsInHours(facts.Readings, 22, 24) >= def.Requirement
	case "weekend_warrior":
		return countWeekendDays(facts.Readings) >= def.Requirement
	case "first_friend", "social_butterfly":
		return facts.FriendCount >= def.Requirement
	case "year_veteran":
		if facts.AccountCreatedAt.IsZero() {
			return false
		}
		return utils.DaysBetween(facts.AccountCreatedAt, facts.Now) >= def.Requirement
	}
	return false
}

// Progress reports completion toward a badge as 0-100. Only the simple
// counter categories report partial progress; pattern-based badges show 0
// until unlocked.
func Progress(def models.BadgeDefinition, facts BadgeFacts) int {
	var current int
	switch def.Category {
	case models.CategoryStreak:
		current = facts.CurrentStreak
	case models.CategoryPages:
		current = facts.TotalPagesRead
	case models.CategoryBooks:
		current = facts.TotalBooksCompleted
	default:
		return 0
	}

	pct := int(math.Round(float64(current) / float64(def.Requirement) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// consecutiveActiveWeeks counts rolling 7-day windows, newest first, in
// which the user read on at least 5 distinct days. The count stops at the
// first window that misses the mark. The newest window ends after today,
// so a reading logged today counts toward it.
func consecutiveActiveWeeks(readings []models.Reading, now time.Time) int {
	end := utils.DayStartUTC(now).AddDate(0, 0, 1)

	weeks := 0
	for {
		windowEnd := end.AddDate(0, 0, -7*weeks)
		windowStart := windowEnd.AddDate(0, 0, -7)

		days := make(map[string]struct{})
		for _, r := range readings {
			d := utils.DayStartUTC(r.Date)
			if !d.Before(windowStart) && d.Before(windowEnd) {
				days[utils.DayKey(d)] = struct{}{}
			}
		}
		if len(days) < 5 {
			return weeks
		}
		weeks++
	}
}

// dailyMinimumRun counts how many consecutive days ending today (or
// yesterday, same grace as streaks) the user read at least minPages.
func dailyMinimumRun(readings []models.Reading, now time.Time, minPages int) int {
	perDay := make(map[string]int, len(readings))
	for _, r := range readings {
		perDay[utils.DayKey(r.Date)] += r.PagesRead
	}

	day := utils.DayStartUTC(now)
	if perDay[utils.DayKey(day)] < minPages {
		day = day.AddDate(0, 0, -1)
	}

	run := 0
	for perDay[utils.DayKey(day)] >= minPages {
		run++
		day = day.AddDate(0, 0, -1)
	}
	return run
}

// countReadingsInHours counts log events whose creation hour falls in
// [fromHour, toHour) UTC.
func countReadingsInHours(readings []models.Reading, fromHour, toHour int) int {
	count := 0
	for _, r := range readings {
		h := r.CreatedAt.UTC().Hour()
		if h >= fromHour && h < toHour {
			count++
		}
	}
	return count
}

// countWeekendDays counts distinct Saturdays and Sundays with a reading
func countWeekendDays(readings []models.Reading) int {
	days := make(map[string]struct{})
	for _, r := range readings {
		if utils.IsWeekend(r.Date) {
			days[utils.DayKey(r.Date)] = struct{}{}
		}
	}
	return len(days)
}
