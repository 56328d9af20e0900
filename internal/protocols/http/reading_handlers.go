package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"bookstreak/pkg/models"
)

// logReading appends a reading and returns any freshly unlocked badges
func (s *Server) logReading(c *gin.Context) {
	userID, _ := GetUserID(c)

	var req models.LogReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	if req.BookID == "" {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "book_id is required",
			Timestamp: time.Now(),
		})
		return
	}

	resp, err := s.readingSvc.LogReading(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 201, "Reading logged successfully", resp)
}

// listReadings returns the caller's reading history
func (s *Server) listReadings(c *gin.Context) {
	userID, _ := GetUserID(c)

	filter := models.ReadingFilter{BookID: c.Query("book_id")}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(400, models.APIResponse{
				Success:   false,
				Error:     "start_date must be YYYY-MM-DD",
				Timestamp: time.Now(),
			})
			return
		}
		filter.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(400, models.APIResponse{
				Success:   false,
				Error:     "end_date must be YYYY-MM-DD",
				Timestamp: time.Now(),
			})
			return
		}
		filter.EndDate = &t
	}

	readings, err := s.readingSvc.ListReadings(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "", gin.H{"readings": readings, "count": len(readings)})
}
