package models

import (
	"time"
)

// Book statuses
const (
	BookStatusActive    = "active"
	BookStatusCompleted = "completed"
	BookStatusPaused    = "paused"
)

// Book represents one book a user is tracking
type Book struct {
	ID            string     `json:"id" db:"id"`
	UserID        string     `json:"user_id" db:"user_id"`
	Title         string     `json:"title" db:"title"`
	Author        string     `json:"author" db:"author"`
	TotalPages    int        `json:"total_pages" db:"total_pages"`
	CurrentPage   int        `json:"current_page" db:"current_page"`
	Status        string     `json:"status" db:"status"` // active, completed, paused
	StartDate     time.Time  `json:"start_date" db:"start_date"`
	CompletedDate *time.Time `json:"completed_date,omitempty" db:"completed_date"`
	Notes         string     `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// CreateBookRequest
type CreateBookRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=255"`
	Author     string `json:"author" validate:"required,min=1,max=255"`
	TotalPages int    `json:"total_pages" validate:"required,min=1"`
	Notes      string `json:"notes,omitempty"`
}

// UpdateBookRequest - nil pointers mean "leave unchanged"
type UpdateBookRequest struct {
	Title      *string `json:"title,omitempty"`
	Author     *string `json:"author,omitempty"`
	TotalPages *int    `json:"total_pages,omitempty"`
	Status     *string `json:"status,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// ValidBookStatus reports whether s is a known book status.
func ValidBookStatus(s string) bool {
	switch s {
	case BookStatusActive, BookStatusCompleted, BookStatusPaused:
		return true
	}
	return false
}
