package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bookstreak/pkg/models"
)

func TestLeaderboardStart(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	daily := leaderboardStart(models.LeaderboardDaily, now)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), daily)

	weekly := leaderboardStart(models.LeaderboardWeekly, now)
	assert.Equal(t, now.Add(-7*24*time.Hour), weekly)

	monthly := leaderboardStart(models.LeaderboardMonthly, now)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), monthly)
}

func TestValidLeaderboardInputs(t *testing.T) {
	assert.True(t, models.ValidLeaderboardPeriod(models.LeaderboardDaily))
	assert.True(t, models.ValidLeaderboardPeriod(models.LeaderboardMonthly))
	assert.False(t, models.ValidLeaderboardPeriod("yearly"))

	assert.True(t, models.ValidLeaderboardScope(models.ScopeFriends))
	assert.True(t, models.ValidLeaderboardScope(models.ScopeGlobal))
	assert.False(t, models.ValidLeaderboardScope("everyone"))
}
