package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstreak/pkg/badges"
	"bookstreak/pkg/models"
)

// memBadgeRepo is an in-memory unlock store for engine tests
type memBadgeRepo struct {
	unlocks map[string]time.Time
}

func newMemBadgeRepo() *memBadgeRepo {
	return &memBadgeRepo{unlocks: make(map[string]time.Time)}
}

func (m *memBadgeRepo) UnlockedIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	ids := make(map[string]struct{}, len(m.unlocks))
	for id := range m.unlocks {
		ids[id] = struct{}{}
	}
	return ids, nil
}

func (m *memBadgeRepo) ListUnlocks(ctx context.Context, userID string) ([]models.UserBadge, error) {
	var out []models.UserBadge
	for id, at := range m.unlocks {
		out = append(out, models.UserBadge{UserID: userID, BadgeID: id, UnlockedAt: at})
	}
	return out, nil
}

func (m *memBadgeRepo) RecordUnlock(ctx context.Context, userID, badgeID string, at time.Time) (bool, error) {
	if _, exists := m.unlocks[badgeID]; exists {
		return false, nil
	}
	m.unlocks[badgeID] = at
	return true, nil
}

// failingBadgeRepo errors on one badge id, persisting everything else
type failingBadgeRepo struct {
	*memBadgeRepo
	failOn string
}

func (f *failingBadgeRepo) RecordUnlock(ctx context.Context, userID, badgeID string, at time.Time) (bool, error) {
	if badgeID == f.failOn {
		return false, errors.New("connection reset")
	}
	return f.memBadgeRepo.RecordUnlock(ctx, userID, badgeID, at)
}

func TestCheckAndUnlockIsIdempotent(t *testing.T) {
	repo := newMemBadgeRepo()
	svc := NewBadgeService(badges.Default(), repo, nil, nil, nil)

	facts := BadgeFacts{
		CurrentStreak:    3,
		TotalPagesRead:   100,
		AccountCreatedAt: testNow.AddDate(0, 0, -30),
		Now:              testNow,
	}

	first, err := svc.CheckAndUnlock(context.Background(), "u1", facts)
	require.NoError(t, err)

	// streak_3 and pages_100, both at their exact thresholds
	ids := make([]string, 0, len(first))
	for _, b := range first {
		ids = append(ids, b.BadgeID)
	}
	assert.ElementsMatch(t, []string{"streak_3", "pages_100"}, ids)

	// Re-checking the same facts unlocks nothing new
	second, err := svc.CheckAndUnlock(context.Background(), "u1", facts)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestCheckAndUnlockIsMonotonic(t *testing.T) {
	repo := newMemBadgeRepo()
	svc := NewBadgeService(badges.Default(), repo, nil, nil, nil)

	grown := BadgeFacts{CurrentStreak: 7, TotalPagesRead: 500, AccountCreatedAt: testNow.AddDate(0, 0, -30), Now: testNow}
	_, err := svc.CheckAndUnlock(context.Background(), "u1", grown)
	require.NoError(t, err)
	require.Contains(t, repo.unlocks, "streak_7")

	// The streak dying later does not take the badge away
	dead := BadgeFacts{CurrentStreak: 0, TotalPagesRead: 500, AccountCreatedAt: testNow.AddDate(0, 0, -30), Now: testNow.AddDate(0, 0, 10)}
	fresh, err := svc.CheckAndUnlock(context.Background(), "u1", dead)
	require.NoError(t, err)
	assert.Empty(t, fresh)
	assert.Contains(t, repo.unlocks, "streak_7")
	assert.Contains(t, repo.unlocks, "streak_3")
}

func TestCheckAndUnlockBackfillsMissedTiers(t *testing.T) {
	repo := newMemBadgeRepo()
	svc := NewBadgeService(badges.Default(), repo, nil, nil, nil)

	// A user arriving with a long history unlocks every earned tier in
	// one pass, not just the newest one
	facts := BadgeFacts{CurrentStreak: 30, TotalPagesRead: 1200, AccountCreatedAt: testNow.AddDate(0, 0, -30), Now: testNow}
	fresh, err := svc.CheckAndUnlock(context.Background(), "u1", facts)
	require.NoError(t, err)

	ids := make([]string, 0, len(fresh))
	for _, b := range fresh {
		ids = append(ids, b.BadgeID)
	}
	assert.ElementsMatch(t, []string{"streak_3", "streak_7", "streak_30", "pages_100", "pages_500", "pages_1000"}, ids)
}

func TestCheckAndUnlockReturnsPersistedOnFailure(t *testing.T) {
	repo := &failingBadgeRepo{memBadgeRepo: newMemBadgeRepo(), failOn: "pages_100"}
	svc := NewBadgeService(badges.Default(), repo, nil, nil, nil)

	facts := BadgeFacts{
		CurrentStreak:    3,
		TotalPagesRead:   100,
		AccountCreatedAt: testNow.AddDate(0, 0, -30),
		Now:              testNow,
	}

	// streak_3 is already persisted when pages_100 fails; it must still be
	// reported, or its notification is lost for good.
	fresh, err := svc.CheckAndUnlock(context.Background(), "u1", facts)
	require.Error(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, "streak_3", fresh[0].BadgeID)
}
