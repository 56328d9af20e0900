package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bookstreak/pkg/models"
)

func def(id string, cat models.BadgeCategory, req int) models.BadgeDefinition {
	return models.BadgeDefinition{ID: id, Category: cat, Requirement: req, Rarity: models.RarityCommon}
}

func TestMeetsRequirementCounters(t *testing.T) {
	facts := BadgeFacts{
		CurrentStreak:       7,
		TotalPagesRead:      1000,
		TotalBooksCompleted: 5,
		PagesToday:          100,
		Now:                 testNow,
	}

	assert.True(t, MeetsRequirement(def("streak_7", models.CategoryStreak, 7), facts))
	assert.False(t, MeetsRequirement(def("streak_30", models.CategoryStreak, 30), facts))

	// Exact boundary unlocks
	assert.True(t, MeetsRequirement(def("pages_1000", models.CategoryPages, 1000), facts))
	assert.False(t, MeetsRequirement(def("pages_5000", models.CategoryPages, 5000), facts))

	assert.True(t, MeetsRequirement(def("books_5", models.CategoryBooks, 5), facts))
	assert.True(t, MeetsRequirement(def("speed_100_day", models.CategorySpeed, 100), facts))
	assert.False(t, MeetsRequirement(def("speed_200_day", models.CategorySpeed, 200), facts))
}

func TestMeetsRequirementSocial(t *testing.T) {
	facts := BadgeFacts{FriendCount: 1, Now: testNow}
	assert.True(t, meetsSpecial(def("first_friend", models.CategorySpecial, 1), facts))
	assert.False(t, meetsSpecial(def("social_butterfly", models.CategorySpecial, 10), facts))
}

func TestMeetsRequirementYearVeteran(t *testing.T) {
	young := BadgeFacts{AccountCreatedAt: testNow.AddDate(0, 0, -100), Now: testNow}
	old := BadgeFacts{AccountCreatedAt: testNow.AddDate(0, 0, -365), Now: testNow}

	veteran := def("year_veteran", models.CategorySpecial, 365)
	assert.False(t, meetsSpecial(veteran, young))
	assert.True(t, meetsSpecial(veteran, old))
}

func TestProgressClampsAt100(t *testing.T) {
	facts := BadgeFacts{CurrentStreak: 5, TotalPagesRead: 2500}

	assert.Equal(t, 100, Progress(def("streak_3", models.CategoryStreak, 3), facts))
	assert.Equal(t, 50, Progress(def("pages_5000", models.CategoryPages, 5000), facts))
	assert.Equal(t, 71, Progress(def("streak_7", models.CategoryStreak, 7), facts)) // 5/7 -> 71

	// Pattern badges report no partial progress
	assert.Equal(t, 0, Progress(def("weekly_goal_4", models.CategoryConsistency, 4), facts))
	assert.Equal(t, 0, Progress(def("early_bird", models.CategorySpecial, 10), facts))
}

func TestConsecutiveActiveWeeks(t *testing.T) {
	// 4 full weeks of 5 reading days each: Mon-Fri pattern per window
	var readings []models.Reading
	for week := 0; week < 4; week++ {
		for day := 1; day <= 5; day++ {
			readings = append(readings, readingOn(week*7+day, 10))
		}
	}
	assert.Equal(t, 4, consecutiveActiveWeeks(readings, testNow))

	// The third window dropping to 4 days breaks the chain at 2
	var broken []models.Reading
	for week := 0; week < 4; week++ {
		days := 5
		if week == 2 {
			days = 4
		}
		for day := 1; day <= days; day++ {
			broken = append(broken, readingOn(week*7+day, 10))
		}
	}
	assert.Equal(t, 2, consecutiveActiveWeeks(broken, testNow))

	assert.Equal(t, 0, consecutiveActiveWeeks(nil, testNow))
}

func TestConsecutiveActiveWeeksCountsToday(t *testing.T) {
	// 5 distinct days ending with a reading logged today. The check runs
	// the moment a reading is logged, so today belongs to the newest window.
	var readings []models.Reading
	for day := 0; day < 5; day++ {
		readings = append(readings, readingOn(day, 10))
	}
	assert.Equal(t, 1, consecutiveActiveWeeks(readings, testNow))

	// Day 5 of the window arriving today tips the count from 0 to 1
	assert.Equal(t, 0, consecutiveActiveWeeks(readings[1:], testNow))
}

func TestDailyMinimumRun(t *testing.T) {
	// 30 consecutive days at 10+ pages, counting back from today
	var readings []models.Reading
	for day := 0; day < 30; day++ {
		readings = append(readings, readingOn(day, 10))
	}
	assert.Equal(t, 30, dailyMinimumRun(readings, testNow, 10))

	// A 9-page day breaks the run
	var thin []models.Reading
	for day := 0; day < 30; day++ {
		pages := 10
		if day == 5 {
			pages = 9
		}
		thin = append(thin, readingOn(day, pages))
	}
	assert.Equal(t, 5, dailyMinimumRun(thin, testNow, 10))

	// No reading today yet: the run counts from yesterday
	var graced []models.Reading
	for day := 1; day <= 10; day++ {
		graced = append(graced, readingOn(day, 15))
	}
	assert.Equal(t, 10, dailyMinimumRun(graced, testNow, 10))
}

func TestCountReadingsInHours(t *testing.T) {
	at := func(hour int) models.Reading {
		return models.Reading{CreatedAt: time.Date(2026, 3, 15, hour, 30, 0, 0, time.UTC)}
	}

	readings := []models.Reading{at(6), at(7), at(8), at(12), at(22), at(23)}

	assert.Equal(t, 2, countReadingsInHours(readings, 6, 8))   // 06:30, 07:30
	assert.Equal(t, 2, countReadingsInHours(readings, 22, 24)) // 22:30, 23:30
	assert.Equal(t, 1, countReadingsInHours(readings, 12, 13))
}

func TestCountWeekendDays(t *testing.T) {
	// 2026-03-14 is a Saturday, 2026-03-15 a Sunday
	readings := []models.Reading{
		{Date: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)}, // same day, counts once
		{Date: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)}, // Monday
	}

	assert.Equal(t, 2, countWeekendDays(readings))
}
