package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"bookstreak/pkg/models"
)

// getStats returns the caller's stats page for one period
func (s *Server) getStats(c *gin.Context) {
	userID, _ := GetUserID(c)

	period := c.DefaultQuery("period", models.PeriodAll)

	stats, err := s.statsSvc.GetUserStats(c.Request.Context(), userID, period, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "", gin.H{"stats": stats, "period": period})
}

// listBadges returns the catalog decorated with the caller's unlock state
func (s *Server) listBadges(c *gin.Context) {
	userID, _ := GetUserID(c)

	badges, err := s.badgeSvc.ListForUser(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}

	unlocked := 0
	for _, b := range badges {
		if b.Unlocked {
			unlocked++
		}
	}

	respondOK(c, 200, "", gin.H{
		"badges":   badges,
		"unlocked": unlocked,
		"total":    len(badges),
	})
}

// getLeaderboard returns the ranked pages-read standings
func (s *Server) getLeaderboard(c *gin.Context) {
	userID, _ := GetUserID(c)

	period := c.DefaultQuery("period", models.LeaderboardWeekly)
	scope := c.DefaultQuery("scope", models.ScopeFriends)

	board, err := s.leaderboardSvc.GetLeaderboard(c.Request.Context(), userID, period, scope, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "", board)
}
