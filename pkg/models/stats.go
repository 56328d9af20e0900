package models

import (
	"time"
)

// Reporting periods for the stats endpoints
const (
	PeriodAll   = "all"
	PeriodWeek  = "week"  // rolling 7 days
	PeriodMonth = "month" // from the 1st of the current month
	PeriodYear  = "year"  // from Jan 1 of the current year
)

// Leaderboard ranking windows and scopes
const (
	LeaderboardDaily   = "daily"
	LeaderboardWeekly  = "weekly"
	LeaderboardMonthly = "monthly"

	ScopeFriends = "friends"
	ScopeGlobal  = "global"
)

// ValidLeaderboardPeriod reports whether p is a known ranking window.
func ValidLeaderboardPeriod(p string) bool {
	switch p {
	case LeaderboardDaily, LeaderboardWeekly, LeaderboardMonthly:
		return true
	}
	return false
}

// ValidLeaderboardScope reports whether s is a known scope.
func ValidLeaderboardScope(s string) bool {
	return s == ScopeFriends || s == ScopeGlobal
}

// ValidPeriod reports whether p is a known reporting period.
func ValidPeriod(p string) bool {
	switch p {
	case PeriodAll, PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

// StreakResult holds the derived streak fields for one user.
// Invariant: Longest >= Current.
type StreakResult struct {
	Current      int        `json:"current"`
	Longest      int        `json:"longest"`
	LastReadDate *time.Time `json:"last_read_date"`
}

// DailyPages is one point of the reading chart series
type DailyPages struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Pages int    `json:"pages"`
}

// HeatmapDay classifies one day's volume for the calendar heatmap.
// Level buckets are fixed: 0, 1-20, 21-50, 51-100, >100.
type HeatmapDay struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
	Level int    `json:"level"` // 0-4
}

// PeriodSummary is the pure aggregation output for one reporting period
type PeriodSummary struct {
	TotalPagesRead int          `json:"total_pages_read"`
	ActiveDays     int          `json:"active_days"`
	AveragePerDay  int          `json:"average_per_day"`
	DailyData      []DailyPages `json:"daily_data"`
	HeatmapData    []HeatmapDay `json:"heatmap_data"`
}

// StatsResponse is the stats-page payload
type StatsResponse struct {
	TotalBooks     int          `json:"total_books"`
	CompletedBooks int          `json:"completed_books"`
	ActiveBooks    int          `json:"active_books"`
	TotalPagesRead int          `json:"total_pages_read"`
	AveragePerDay  int          `json:"average_per_day"`
	Streak         StreakResult `json:"streak"`
	DailyData      []DailyPages `json:"daily_data"`
	HeatmapData    []HeatmapDay `json:"heatmap_data"`
	ReadingCount   int          `json:"reading_count"`
}

// LeaderboardEntry is one ranked row of the friends/global leaderboard
type LeaderboardEntry struct {
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	Avatar         string `json:"avatar"`
	CurrentStreak  int    `json:"current_streak"`
	TotalPagesRead int    `json:"total_pages_read"`
	PeriodPages    int    `json:"period_pages"`
	Rank           int    `json:"rank"`
	IsCurrentUser  bool   `json:"is_current_user"`
}

// LeaderboardResponse wraps the ranked rows plus the caller's own entry
type LeaderboardResponse struct {
	Entries     []LeaderboardEntry `json:"entries"`
	CurrentUser *LeaderboardEntry  `json:"current_user,omitempty"`
	Period      string             `json:"period"`
	Scope       string             `json:"scope"`
}
