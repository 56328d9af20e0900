package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bookstreak/pkg/models"
)

// intQuery parses an integer query parameter with a fallback
func intQuery(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}

// createBook starts tracking a new book
func (s *Server) createBook(c *gin.Context) {
	userID, _ := GetUserID(c)

	var req models.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	book, err := s.bookSvc.CreateBook(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 201, "Book created successfully", gin.H{"book": book})
}

// listBooks lists the caller's books
func (s *Server) listBooks(c *gin.Context) {
	userID, _ := GetUserID(c)
	status := c.Query("status")
	limit := intQuery(c, "limit", 20)
	offset := intQuery(c, "offset", 0)

	books, total, err := s.bookSvc.ListBooks(c.Request.Context(), userID, status, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "", gin.H{
		"books": books,
		"meta":  models.NewPaginationMeta(total, limit, offset),
	})
}

// getBook returns one of the caller's books
func (s *Server) getBook(c *gin.Context) {
	userID, _ := GetUserID(c)

	book, err := s.bookSvc.GetBook(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "", gin.H{"book": book})
}

// updateBook applies partial changes to a book
func (s *Server) updateBook(c *gin.Context) {
	userID, _ := GetUserID(c)

	var req models.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	book, err := s.bookSvc.UpdateBook(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "Book updated successfully", gin.H{"book": book})
}

// deleteBook removes a book
func (s *Server) deleteBook(c *gin.Context) {
	userID, _ := GetUserID(c)

	if err := s.bookSvc.DeleteBook(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "Book deleted successfully", nil)
}
