package models

import (
	"time"
)

// Friend request states
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
)

// Friend is a friendship edge. UserID is the requester, FriendID the
// recipient; the pair is unique regardless of direction.
type Friend struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	FriendID  string    `json:"friend_id" db:"friend_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FriendRequest asks to befriend another user
type FriendRequest struct {
	FriendID string `json:"friend_id" validate:"required"`
}

// FriendEntry is a friend row joined with profile basics
type FriendEntry struct {
	RequestID     string    `json:"request_id"`
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	Avatar        string    `json:"avatar"`
	CurrentStreak int       `json:"current_streak"`
	Since         time.Time `json:"since"`
}

// FriendActivityItem is one row of the friends activity feed
type FriendActivityItem struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	BookTitle string    `json:"book_title"`
	PagesRead int       `json:"pages_read"`
	Date      time.Time `json:"date"`
}
