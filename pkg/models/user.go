package models

import (
	"time"
)

// User represents a reader account. The four stat fields are a cached,
// denormalized snapshot derived from the reading ledger; they are replaced
// as a unit by the stats synchronizer after every logged reading.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Avatar       string    `json:"avatar" db:"avatar"`
	Bio          string    `json:"bio,omitempty" db:"bio"`

	TotalPagesRead      int `json:"total_pages_read" db:"total_pages_read"`
	TotalBooksCompleted int `json:"total_books_completed" db:"total_books_completed"`
	CurrentStreak       int `json:"current_streak" db:"current_streak"`
	LongestStreak       int `json:"longest_streak" db:"longest_streak"`

	ProfilePublic      bool `json:"profile_public" db:"profile_public"`
	ShowStatsToFriends bool `json:"show_stats_to_friends" db:"show_stats_to_friends"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// StatsSnapshot is the derived stat block cached on the user row.
// Invariant: LongestStreak >= CurrentStreak, all fields non-negative.
// It is always written as one atomic replace, never field by field.
type StatsSnapshot struct {
	TotalPagesRead      int `json:"total_pages_read"`
	TotalBooksCompleted int `json:"total_books_completed"`
	CurrentStreak       int `json:"current_streak"`
	LongestStreak       int `json:"longest_streak"`
}

// RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Avatar   string `json:"avatar,omitempty"`
}

// LoginRequest
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserProfile - public-facing profile, NO sensitive data
type UserProfile struct {
	ID                  string    `json:"id"`
	Username            string    `json:"username"`
	Avatar              string    `json:"avatar"`
	Bio                 string    `json:"bio,omitempty"`
	TotalPagesRead      int       `json:"total_pages_read"`
	TotalBooksCompleted int       `json:"total_books_completed"`
	CurrentStreak       int       `json:"current_streak"`
	LongestStreak       int       `json:"longest_streak"`
	CreatedAt           time.Time `json:"created_at"`
}

// LoginResponse
type LoginResponse struct {
	Token     string      `json:"token"`
	User      UserProfile `json:"user"`
	ExpiresIn int         `json:"expires_in"` // seconds
}

// UpdateProfileRequest carries the editable profile fields. Nil pointers
// mean "leave unchanged".
type UpdateProfileRequest struct {
	Avatar             *string `json:"avatar,omitempty"`
	Bio                *string `json:"bio,omitempty"`
	ProfilePublic      *bool   `json:"profile_public,omitempty"`
	ShowStatsToFriends *bool   `json:"show_stats_to_friends,omitempty"`
}

// Profile converts a user to its public view.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:                  u.ID,
		Username:            u.Username,
		Avatar:              u.Avatar,
		Bio:                 u.Bio,
		TotalPagesRead:      u.TotalPagesRead,
		TotalBooksCompleted: u.TotalBooksCompleted,
		CurrentStreak:       u.CurrentStreak,
		LongestStreak:       u.LongestStreak,
		CreatedAt:           u.CreatedAt,
	}
}
