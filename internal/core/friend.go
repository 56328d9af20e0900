package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookstreak/internal/repository"
	"bookstreak/pkg/logger"
	"bookstreak/pkg/models"
)

// FriendService manages friendship requests and the friends activity
// feed. Accepting a request re-runs the achievement check for both sides
// so social badges unlock at the moment the friendship forms instead of
// waiting for the next logged reading.
type FriendService interface {
	SendRequest(ctx context.Context, userID, friendID string) (*models.Friend, error)
	AcceptRequest(ctx context.Context, userID, requestID string) error
	RejectRequest(ctx context.Context, userID, requestID string) error
	RemoveFriend(ctx context.Context, userID, requestID string) error
	ListFriends(ctx context.Context, userID string) ([]models.FriendEntry, error)
	ListIncoming(ctx context.Context, userID string) ([]models.FriendEntry, error)
	ActivityFeed(ctx context.Context, userID string, limit int) ([]models.FriendActivityItem, error)
}

type friendService struct {
	friendRepo  repository.FriendRepository
	userRepo    repository.UserRepository
	readingRepo repository.ReadingRepository
	badgeSvc    BadgeService
}

// NewFriendService creates a new friend service
func NewFriendService(
	friendRepo repository.FriendRepository,
	userRepo repository.UserRepository,
	readingRepo repository.ReadingRepository,
	badgeSvc BadgeService,
) FriendService {
	return &friendService{
		friendRepo:  friendRepo,
		userRepo:    userRepo,
		readingRepo: readingRepo,
		badgeSvc:    badgeSvc,
	}
}

// SendRequest creates a pending friendship edge
func (s *friendService) SendRequest(ctx context.Context, userID, friendID string) (*models.Friend, error) {
	if friendID == "" {
		return nil, models.NewHTTPError(models.ErrCodeValidation, "friend_id is required", 400, models.ErrInvalidInput)
	}
	if userID == friendID {
		return nil, models.NewHTTPError(models.ErrCodeBadRequest, models.ErrSelfFriend.Error(), 400, models.ErrSelfFriend)
	}

	if _, err := s.userRepo.GetByID(ctx, friendID); err != nil {
		return nil, err
	}

	exists, err := s.friendRepo.Exists(ctx, userID, friendID)
	if err != nil {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}
	if exists {
		return nil, models.NewHTTPError(models.ErrCodeConflict, models.ErrFriendExists.Error(), 409, models.ErrFriendExists)
	}

	friend := &models.Friend{
		ID:       uuid.New().String(),
		UserID:   userID,
		FriendID: friendID,
		Status:   models.FriendStatusPending,
	}
	if err := s.friendRepo.CreateRequest(ctx, friend); err != nil {
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}
	return friend, nil
}

// AcceptRequest accepts a pending request addressed to the caller
func (s *friendService) AcceptRequest(ctx context.Context, userID, requestID string) error {
	friend, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if friend.FriendID != userID {
		return models.NewHTTPError(models.ErrCodeForbidden, "only the recipient can accept a request", 403, models.ErrForbidden)
	}

	if err := s.friendRepo.Accept(ctx, requestID); err != nil {
		return err
	}

	s.checkSocialBadges(ctx, friend.UserID, friend.FriendID)
	return nil
}

// RejectRequest deletes a pending request addressed to the caller
func (s *friendService) RejectRequest(ctx context.Context, userID, requestID string) error {
	friend, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if friend.FriendID != userID {
		return models.NewHTTPError(models.ErrCodeForbidden, "only the recipient can reject a request", 403, models.ErrForbidden)
	}
	return s.friendRepo.Delete(ctx, requestID)
}

// RemoveFriend deletes an edge the caller participates in
func (s *friendService) RemoveFriend(ctx context.Context, userID, requestID string) error {
	friend, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if friend.UserID != userID && friend.FriendID != userID {
		return models.NewHTTPError(models.ErrCodeForbidden, "not a participant of this friendship", 403, models.ErrForbidden)
	}
	return s.friendRepo.Delete(ctx, requestID)
}

// ListFriends returns the caller's accepted friends
func (s *friendService) ListFriends(ctx context.Context, userID string) ([]models.FriendEntry, error) {
	return s.friendRepo.ListFriends(ctx, userID)
}

// ListIncoming returns pending requests addressed to the caller
func (s *friendService) ListIncoming(ctx context.Context, userID string) ([]models.FriendEntry, error) {
	return s.friendRepo.ListIncoming(ctx, userID)
}

// ActivityFeed returns recent readings of the caller's friends
func (s *friendService) ActivityFeed(ctx context.Context, userID string, limit int) ([]models.FriendActivityItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	ids, err := s.friendRepo.FriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.readingRepo.RecentByUsers(ctx, ids, limit)
}

// checkSocialBadges runs the achievement check for both sides of a fresh
// friendship. Failures are logged, not surfaced: the accept already
// happened and the next reading re-checks anyway.
func (s *friendService) checkSocialBadges(ctx context.Context, userIDs ...string) {
	now := time.Now().UTC()
	for _, id := range userIDs {
		facts, err := s.badgeSvc.BuildFacts(ctx, id, now)
		if err != nil {
			logger.Warnf("badge fact build failed for user %s: %v", id, err)
			continue
		}
		if _, err := s.badgeSvc.CheckAndUnlock(ctx, id, facts); err != nil {
			logger.Warnf("badge check failed for user %s: %v", id, err)
		}
	}
}
