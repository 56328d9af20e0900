package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bookstreak/internal/repository"
	"bookstreak/pkg/cache"
	"bookstreak/pkg/logger"
	"bookstreak/pkg/models"
)

const statsCacheTTL = 5 * time.Minute

// StatsService recomputes the derived stat snapshot from the reading
// ledger and serves the stats page. OnReadingLogged is serialized per
// user so two concurrent logs can't interleave their read-compute-write
// cycles and persist a stale snapshot.
type StatsService interface {
	// OnReadingLogged recomputes the snapshot from scratch, replaces the
	// cached user fields atomically, and runs the achievement check.
	// Returns any badges unlocked by this event.
	OnReadingLogged(ctx context.Context, userID string, now time.Time) ([]models.UnlockedBadge, error)

	// GetUserStats returns the stats-page payload for one period.
	GetUserStats(ctx context.Context, userID, period string, now time.Time) (*models.StatsResponse, error)
}

type statsService struct {
	userRepo    repository.UserRepository
	bookRepo    repository.BookRepository
	readingRepo repository.ReadingRepository
	friendRepo  repository.FriendRepository
	badgeSvc    BadgeService
	cache       *cache.Cache // nil disables caching

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStatsService creates the stats synchronizer
func NewStatsService(
	userRepo repository.UserRepository,
	bookRepo repository.BookRepository,
	readingRepo repository.ReadingRepository,
	friendRepo repository.FriendRepository,
	badgeSvc BadgeService,
	c *cache.Cache,
) StatsService {
	return &statsService{
		userRepo:    userRepo,
		bookRepo:    bookRepo,
		readingRepo: readingRepo,
		friendRepo:  friendRepo,
		badgeSvc:    badgeSvc,
		cache:       c,
		locks:       make(map[string]*sync.Mutex),
	}
}

// userLock returns the per-user mutex, creating it on first use. Lock
// entries are never removed; the map is bounded by the active user set.
func (s *statsService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// OnReadingLogged runs the full recompute-replace-check cycle
func (s *statsService) OnReadingLogged(ctx context.Context, userID string, now time.Time) ([]models.UnlockedBadge, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	readings, err := s.readingRepo.ListByUser(ctx, userID, models.ReadingFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load readings: %w", err)
	}

	completedBooks, err := s.bookRepo.CountByStatus(ctx, userID, models.BookStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed books: %w", err)
	}

	totalPages := 0
	for _, r := range readings {
		totalPages += r.PagesRead
	}
	streak := ComputeStreaks(readings, now)

	snapshot := models.StatsSnapshot{
		TotalPagesRead:      totalPages,
		TotalBooksCompleted: completedBooks,
		CurrentStreak:       streak.Current,
		LongestStreak:       streak.Longest,
	}
	if err := s.userRepo.ReplaceStats(ctx, userID, snapshot); err != nil {
		return nil, fmt.Errorf("failed to replace stats snapshot: %w", err)
	}

	friendCount, err := s.friendRepo.CountFriends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count friends: %w", err)
	}

	facts := BadgeFacts{
		Readings:            readings,
		CurrentStreak:       streak.Current,
		TotalPagesRead:      totalPages,
		TotalBooksCompleted: completedBooks,
		PagesToday:          SumPagesOnDay(readings, now),
		FriendCount:         friendCount,
		AccountCreatedAt:    user.CreatedAt,
		Now:                 now,
	}

	newBadges, err := s.badgeSvc.CheckAndUnlock(ctx, userID, facts)
	if err != nil {
		// Keep whatever unlocks were persisted before the failure
		return newBadges, fmt.Errorf("failed to check badges: %w", err)
	}

	s.invalidateStats(ctx, userID)
	return newBadges, nil
}

// GetUserStats serves the stats page, cached per (user, period)
func (s *statsService) GetUserStats(ctx context.Context, userID, period string, now time.Time) (*models.StatsResponse, error) {
	if !models.ValidPeriod(period) {
		return nil, models.NewHTTPError(models.ErrCodeValidation, "invalid period", 400, models.ErrInvalidInput)
	}

	if s.cache != nil {
		var cached models.StatsResponse
		if err := s.cache.Get(ctx, cache.StatsKey(userID, period), &cached); err == nil {
			return &cached, nil
		} else if err != cache.ErrCacheMiss {
			logger.Warnf("stats cache read failed for user %s: %v", userID, err)
		}
	}

	readings, err := s.readingRepo.ListByUser(ctx, userID, models.ReadingFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load readings: %w", err)
	}

	totalBooks, err := s.bookRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}
	completedBooks, err := s.bookRepo.CountByStatus(ctx, userID, models.BookStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed books: %w", err)
	}
	activeBooks, err := s.bookRepo.CountByStatus(ctx, userID, models.BookStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count active books: %w", err)
	}

	summary := SummarizePeriod(readings, period, now)
	streak := ComputeStreaks(readings, now)

	resp := &models.StatsResponse{
		TotalBooks:     totalBooks,
		CompletedBooks: completedBooks,
		ActiveBooks:    activeBooks,
		TotalPagesRead: summary.TotalPagesRead,
		AveragePerDay:  summary.AveragePerDay,
		Streak:         streak,
		DailyData:      summary.DailyData,
		HeatmapData:    summary.HeatmapData,
		ReadingCount:   len(readings),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.StatsKey(userID, period), resp, statsCacheTTL); err != nil {
			logger.Warnf("stats cache write failed for user %s: %v", userID, err)
		}
	}
	return resp, nil
}

// invalidateStats drops every cached period variant after a write. Cache
// failures are logged, never surfaced: the snapshot in Postgres is the
// source of truth.
func (s *statsService) invalidateStats(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	keys := cache.StatsKeys(userID,
		models.PeriodAll, models.PeriodWeek, models.PeriodMonth, models.PeriodYear)
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Warnf("stats cache invalidation failed for user %s: %v", userID, err)
	}
}
