package models

import (
	"time"
)

// Reading is one immutable ledger entry: a user logged pages for a book on
// a calendar date. Date carries the reading day; CreatedAt keeps the exact
// logging instant for time-of-day badge rules.
type Reading struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	BookID    string    `json:"book_id" db:"book_id"`
	Date      time.Time `json:"date" db:"date"`
	PagesRead int       `json:"pages_read" db:"pages_read"`
	FromPage  int       `json:"from_page" db:"from_page"`
	ToPage    int       `json:"to_page" db:"to_page"`
	Notes     string    `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LogReadingRequest
type LogReadingRequest struct {
	BookID    string     `json:"book_id" validate:"required"`
	PagesRead int        `json:"pages_read" validate:"required,min=1"`
	Date      *time.Time `json:"date,omitempty"` // defaults to now
	Notes     string     `json:"notes,omitempty"`
}

// ReadingFilter narrows a reading-list query
type ReadingFilter struct {
	BookID    string
	StartDate *time.Time
	EndDate   *time.Time
}

// LogReadingResponse is returned after a reading is logged. NewBadges holds
// achievements unlocked by this event, possibly empty.
type LogReadingResponse struct {
	Reading   *Reading        `json:"reading"`
	Book      *Book           `json:"book"`
	NewBadges []UnlockedBadge `json:"new_badges"`
}
