package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"bookstreak/pkg/models"
)

// register handles user registration
func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	resp, err := s.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 201, "User registered successfully", resp)
}

// login handles user authentication
func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	if req.Username == "" || req.Password == "" {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "username and password are required",
			Timestamp: time.Now(),
		})
		return
	}

	resp, err := s.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "Login successful", resp)
}

// getProfile returns the caller's own profile
func (s *Server) getProfile(c *gin.Context) {
	user, ok := GetUser(c)
	if !ok {
		c.JSON(401, gin.H{"error": "unauthorized"})
		return
	}
	respondOK(c, 200, "", gin.H{"user": user.Profile(), "email": user.Email,
		"profile_public": user.ProfilePublic, "show_stats_to_friends": user.ShowStatsToFriends})
}

// updateProfile applies partial profile changes
func (s *Server) updateProfile(c *gin.Context) {
	userID, _ := GetUserID(c)

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	user, err := s.authSvc.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "Profile updated successfully", gin.H{"user": user.Profile()})
}

// searchUsers finds public profiles by username prefix
func (s *Server) searchUsers(c *gin.Context) {
	query := c.Query("q")
	limit := intQuery(c, "limit", 20)

	profiles, err := s.authSvc.SearchUsers(c.Request.Context(), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "", gin.H{"users": profiles})
}

// getUserProfile returns another user's public profile
func (s *Server) getUserProfile(c *gin.Context) {
	user, err := s.authSvc.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	callerID, _ := GetUserID(c)
	if !user.ProfilePublic && user.ID != callerID {
		c.JSON(404, models.APIResponse{
			Success:   false,
			Error:     "user not found",
			Timestamp: time.Now(),
		})
		return
	}

	respondOK(c, 200, "", gin.H{"user": user.Profile()})
}
