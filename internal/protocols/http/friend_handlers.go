package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"bookstreak/pkg/models"
)

// sendFriendRequest creates a pending friendship
func (s *Server) sendFriendRequest(c *gin.Context) {
	userID, _ := GetUserID(c)

	var req models.FriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	friend, err := s.friendSvc.SendRequest(c.Request.Context(), userID, req.FriendID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 201, "Friend request sent", gin.H{"request": friend})
}

// listFriendRequests returns pending requests addressed to the caller
func (s *Server) listFriendRequests(c *gin.Context) {
	userID, _ := GetUserID(c)

	requests, err := s.friendSvc.ListIncoming(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "", gin.H{"requests": requests})
}

// acceptFriendRequest accepts a pending request
func (s *Server) acceptFriendRequest(c *gin.Context) {
	userID, _ := GetUserID(c)

	if err := s.friendSvc.AcceptRequest(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "Friend request accepted", nil)
}

// rejectFriendRequest rejects a pending request
func (s *Server) rejectFriendRequest(c *gin.Context) {
	userID, _ := GetUserID(c)

	if err := s.friendSvc.RejectRequest(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "Friend request rejected", nil)
}

// listFriends returns the caller's accepted friends
func (s *Server) listFriends(c *gin.Context) {
	userID, _ := GetUserID(c)

	friends, err := s.friendSvc.ListFriends(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "", gin.H{"friends": friends, "count": len(friends)})
}

// removeFriend deletes a friendship the caller participates in
func (s *Server) removeFriend(c *gin.Context) {
	userID, _ := GetUserID(c)

	if err := s.friendSvc.RemoveFriend(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "Friend removed", nil)
}

// friendActivity returns recent readings of the caller's friends
func (s *Server) friendActivity(c *gin.Context) {
	userID, _ := GetUserID(c)
	limit := intQuery(c, "limit", 20)

	feed, err := s.friendSvc.ActivityFeed(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "", gin.H{"activity": feed})
}
