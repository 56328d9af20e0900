package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bookstreak/internal/repository"
	"bookstreak/pkg/models"
	"bookstreak/pkg/utils"
)

// globalPoolSize caps how many public users a global ranking considers
const globalPoolSize = 100

// maxLeaderboardEntries caps the ranked rows returned to the client
const maxLeaderboardEntries = 50

// LeaderboardService ranks users by pages read inside a time window.
// Rankings are computed on demand from the ledger; nothing is stored.
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, userID, period, scope string, now time.Time) (*models.LeaderboardResponse, error)
}

type leaderboardService struct {
	userRepo    repository.UserRepository
	friendRepo  repository.FriendRepository
	readingRepo repository.ReadingRepository
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(
	userRepo repository.UserRepository,
	friendRepo repository.FriendRepository,
	readingRepo repository.ReadingRepository,
) LeaderboardService {
	return &leaderboardService{
		userRepo:    userRepo,
		friendRepo:  friendRepo,
		readingRepo: readingRepo,
	}
}

// leaderboardStart resolves a ranking window to its inclusive start
func leaderboardStart(period string, now time.Time) time.Time {
	u := now.UTC()
	switch period {
	case models.LeaderboardDaily:
		return utils.DayStartUTC(u)
	case models.LeaderboardWeekly:
		return u.Add(-7 * 24 * time.Hour)
	default: // monthly
		return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

// GetLeaderboard computes the ranking for one window and scope
func (s *leaderboardService) GetLeaderboard(ctx context.Context, userID, period, scope string, now time.Time) (*models.LeaderboardResponse, error) {
	if !models.ValidLeaderboardPeriod(period) {
		return nil, models.NewHTTPError(models.ErrCodeValidation, "invalid leaderboard period", 400, models.ErrInvalidInput)
	}
	if !models.ValidLeaderboardScope(scope) {
		return nil, models.NewHTTPError(models.ErrCodeValidation, "invalid leaderboard scope", 400, models.ErrInvalidInput)
	}

	var ids []string
	var err error
	if scope == models.ScopeFriends {
		ids, err = s.friendRepo.FriendIDs(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list friends: %w", err)
		}
	} else {
		ids, err = s.userRepo.ListPublicIDs(ctx, globalPoolSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list public users: %w", err)
		}
	}

	// The caller is always ranked, even with a private profile
	if !contains(ids, userID) {
		ids = append(ids, userID)
	}

	since := leaderboardStart(period, now)
	pages, err := s.readingRepo.PagesByUserSince(ctx, ids, since)
	if err != nil {
		return nil, fmt.Errorf("failed to sum period pages: %w", err)
	}

	users, err := s.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, models.LeaderboardEntry{
			UserID:         u.ID,
			Username:       u.Username,
			Avatar:         u.Avatar,
			CurrentStreak:  u.CurrentStreak,
			TotalPagesRead: u.TotalPagesRead,
			PeriodPages:    pages[u.ID],
			IsCurrentUser:  u.ID == userID,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].PeriodPages != entries[j].PeriodPages {
			return entries[i].PeriodPages > entries[j].PeriodPages
		}
		return entries[i].Username < entries[j].Username
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	var current *models.LeaderboardEntry
	for i := range entries {
		if entries[i].IsCurrentUser {
			c := entries[i]
			current = &c
			break
		}
	}

	if len(entries) > maxLeaderboardEntries {
		entries = entries[:maxLeaderboardEntries]
	}

	return &models.LeaderboardResponse{
		Entries:     entries,
		CurrentUser: current,
		Period:      period,
		Scope:       scope,
	}, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
