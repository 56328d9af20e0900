package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstreak/pkg/models"
)

// BadgeRepository stores per-user unlock rows. Unlocks are monotonic:
// rows are inserted once and never updated or deleted.
type BadgeRepository interface {
	// UnlockedIDs returns the set of badge ids the user has unlocked.
	UnlockedIDs(ctx context.Context, userID string) (map[string]struct{}, error)

	// ListUnlocks returns the user's unlock rows, newest first.
	ListUnlocks(ctx context.Context, userID string) ([]models.UserBadge, error)

	// RecordUnlock inserts if absent. Returns false when the (user, badge)
	// pair already exists; a concurrent duplicate is not an error.
	RecordUnlock(ctx context.Context, userID, badgeID string, unlockedAt time.Time) (bool, error)
}

type badgeRepository struct {
	pool *pgxpool.Pool
}

// NewBadgeRepository creates a new PostgreSQL badge repository
func NewBadgeRepository(pool *pgxpool.Pool) BadgeRepository {
	return &badgeRepository{pool: pool}
}

// UnlockedIDs returns the unlocked badge id set
func (r *badgeRepository) UnlockedIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	rows, err := r.pool.Query(ctx, `SELECT badge_id FROM user_badges WHERE user_id = $1`, userID)
	if err != nil {
		return nil, r.mapDBError(err, "list_unlocked_badge_ids")
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, r.mapDBError(err, "scan_badge_id")
		}
		ids[id] = struct{}{}
	}
	return ids, nil
}

// ListUnlocks returns all unlock rows for a user
func (r *badgeRepository) ListUnlocks(ctx context.Context, userID string) ([]models.UserBadge, error) {
	query := `
		SELECT id, user_id, badge_id, unlocked_at
		FROM user_badges
		WHERE user_id = $1
		ORDER BY unlocked_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, r.mapDBError(err, "list_badge_unlocks")
	}
	defer rows.Close()

	var unlocks []models.UserBadge
	for rows.Next() {
		var ub models.UserBadge
		if err := rows.Scan(&ub.ID, &ub.UserID, &ub.BadgeID, &ub.UnlockedAt); err != nil {
			return nil, r.mapDBError(err, "scan_badge_unlock")
		}
		unlocks = append(unlocks, ub)
	}
	return unlocks, nil
}

// RecordUnlock inserts the unlock row if it does not exist yet. The unique
// (user_id, badge_id) constraint makes concurrent double-unlocks collapse
// into a single row; the loser sees inserted=false.
func (r *badgeRepository) RecordUnlock(ctx context.Context, userID, badgeID string, unlockedAt time.Time) (bool, error) {
	query := `
		INSERT INTO user_badges (id, user_id, badge_id, unlocked_at)
		VALUES (gen_random_uuid()::text, $1, $2, $3)
		ON CONFLICT (user_id, badge_id) DO NOTHING
	`

	result, err := r.pool.Exec(ctx, query, userID, badgeID, unlockedAt)
	if err != nil {
		return false, r.mapDBError(err, "record_badge_unlock")
	}
	return result.RowsAffected() > 0, nil
}

// mapDBError maps database errors to application errors
func (r *badgeRepository) mapDBError(err error, operation string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "resource not found", 404, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23503" { // foreign_key_violation
			return models.NewHTTPError(models.ErrCodeBadRequest, "invalid user reference", 400, err)
		}
	}

	return models.NewHTTPError(models.ErrCodeInternal, "database error during "+operation, 500, err)
}
