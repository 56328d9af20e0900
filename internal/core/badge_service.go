package core

import (
	"context"
	"fmt"
	"time"

	"bookstreak/internal/repository"
	"bookstreak/pkg/badges"
	"bookstreak/pkg/logger"
	"bookstreak/pkg/models"
)

// BadgeService is the achievement engine. Evaluation is a full pass over
// the catalog: every check re-derives the facts, so badges earned during
// an outage are still picked up on the next logged reading.
type BadgeService interface {
	// CheckAndUnlock evaluates all locked badges against the facts and
	// persists any new unlocks. Idempotent: a second call with the same
	// facts unlocks nothing.
	CheckAndUnlock(ctx context.Context, userID string, facts BadgeFacts) ([]models.UnlockedBadge, error)

	// ListForUser returns the whole catalog decorated with the user's
	// unlock state and progress.
	ListForUser(ctx context.Context, userID string, now time.Time) ([]models.BadgeWithStatus, error)

	// BuildFacts assembles one consistent fact view for a user.
	BuildFacts(ctx context.Context, userID string, now time.Time) (BadgeFacts, error)
}

type badgeService struct {
	catalog     *badges.Catalog
	badgeRepo   repository.BadgeRepository
	readingRepo repository.ReadingRepository
	userRepo    repository.UserRepository
	friendRepo  repository.FriendRepository
}

// NewBadgeService creates the achievement engine
func NewBadgeService(
	catalog *badges.Catalog,
	badgeRepo repository.BadgeRepository,
	readingRepo repository.ReadingRepository,
	userRepo repository.UserRepository,
	friendRepo repository.FriendRepository,
) BadgeService {
	return &badgeService{
		catalog:     catalog,
		badgeRepo:   badgeRepo,
		readingRepo: readingRepo,
		userRepo:    userRepo,
		friendRepo:  friendRepo,
	}
}

// CheckAndUnlock runs the full catalog against the facts
func (s *badgeService) CheckAndUnlock(ctx context.Context, userID string, facts BadgeFacts) ([]models.UnlockedBadge, error) {
	unlocked, err := s.badgeRepo.UnlockedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unlocked badges: %w", err)
	}

	var fresh []models.UnlockedBadge
	for _, def := range s.catalog.All() {
		if _, has := unlocked[def.ID]; has {
			continue
		}
		if !MeetsRequirement(def, facts) {
			continue
		}

		inserted, err := s.badgeRepo.RecordUnlock(ctx, userID, def.ID, facts.Now)
		if err != nil {
			// Unlocks persisted earlier in this pass still go out; the next
			// check would skip them as already unlocked.
			return fresh, fmt.Errorf("failed to record badge unlock %s: %w", def.ID, err)
		}
		if !inserted {
			// Lost a race with a concurrent check; the other writer owns
			// the notification.
			continue
		}

		logger.WithFields(map[string]interface{}{
			"user_id":  userID,
			"badge_id": def.ID,
			"rarity":   def.Rarity,
		}).Info("badge unlocked")

		fresh = append(fresh, models.UnlockedBadge{
			BadgeID:       def.ID,
			Name:          def.Name,
			Icon:          def.Icon,
			UnlockMessage: def.UnlockMessage,
			Rarity:        def.Rarity,
		})
	}
	return fresh, nil
}

// ListForUser decorates the catalog with unlock state and progress
func (s *badgeService) ListForUser(ctx context.Context, userID string, now time.Time) ([]models.BadgeWithStatus, error) {
	unlocks, err := s.badgeRepo.ListUnlocks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list badge unlocks: %w", err)
	}
	unlockedAt := make(map[string]time.Time, len(unlocks))
	for _, ub := range unlocks {
		unlockedAt[ub.BadgeID] = ub.UnlockedAt
	}

	facts, err := s.BuildFacts(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	out := make([]models.BadgeWithStatus, 0, s.catalog.Len())
	for _, def := range s.catalog.All() {
		entry := models.BadgeWithStatus{BadgeDefinition: def}
		if at, ok := unlockedAt[def.ID]; ok {
			atCopy := at
			entry.Unlocked = true
			entry.UnlockedAt = &atCopy
			entry.Progress = 100
		} else {
			entry.Progress = Progress(def, facts)
		}
		out = append(out, entry)
	}
	return out, nil
}

// BuildFacts loads the user, ledger, and friend count into one fact view
func (s *badgeService) BuildFacts(ctx context.Context, userID string, now time.Time) (BadgeFacts, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return BadgeFacts{}, fmt.Errorf("failed to load user: %w", err)
	}

	readings, err := s.readingRepo.ListByUser(ctx, userID, models.ReadingFilter{})
	if err != nil {
		return BadgeFacts{}, fmt.Errorf("failed to load readings: %w", err)
	}

	friendCount, err := s.friendRepo.CountFriends(ctx, userID)
	if err != nil {
		return BadgeFacts{}, fmt.Errorf("failed to count friends: %w", err)
	}

	streak := ComputeStreaks(readings, now)

	return BadgeFacts{
		Readings:            readings,
		CurrentStreak:       streak.Current,
		TotalPagesRead:      user.TotalPagesRead,
		TotalBooksCompleted: user.TotalBooksCompleted,
		PagesToday:          SumPagesOnDay(readings, now),
		FriendCount:         friendCount,
		AccountCreatedAt:    user.CreatedAt,
		Now:                 now,
	}, nil
}
