package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstreak/pkg/models"
)

// FriendRepository handles friendship edges. A pair is unique regardless
// of who sent the request.
type FriendRepository interface {
	CreateRequest(ctx context.Context, friend *models.Friend) error
	GetByID(ctx context.Context, id string) (*models.Friend, error)
	Accept(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	// Exists reports whether any edge (either direction, any status)
	// connects the two users.
	Exists(ctx context.Context, userID, friendID string) (bool, error)

	// FriendIDs returns ids of users with an accepted edge to userID.
	FriendIDs(ctx context.Context, userID string) ([]string, error)

	CountFriends(ctx context.Context, userID string) (int, error)

	// ListFriends returns accepted friendships joined with profile basics.
	ListFriends(ctx context.Context, userID string) ([]models.FriendEntry, error)

	// ListIncoming returns pending requests sent to userID.
	ListIncoming(ctx context.Context, userID string) ([]models.FriendEntry, error)
}

type friendRepository struct {
	pool *pgxpool.Pool
}

// NewFriendRepository creates a new PostgreSQL friend repository
func NewFriendRepository(pool *pgxpool.Pool) FriendRepository {
	return &friendRepository{pool: pool}
}

// CreateRequest inserts a pending friendship edge
func (r *friendRepository) CreateRequest(ctx context.Context, friend *models.Friend) error {
	query := `
		INSERT INTO friends (id, user_id, friend_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		friend.ID,
		friend.UserID,
		friend.FriendID,
		friend.Status,
	).Scan(&friend.CreatedAt, &friend.UpdatedAt)

	if err != nil {
		return r.mapDBError(err, "create_friend_request")
	}
	return nil
}

// GetByID retrieves a friendship edge
func (r *friendRepository) GetByID(ctx context.Context, id string) (*models.Friend, error) {
	query := `
		SELECT id, user_id, friend_id, status, created_at, updated_at
		FROM friends
		WHERE id = $1
	`

	friend := &models.Friend{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&friend.ID,
		&friend.UserID,
		&friend.FriendID,
		&friend.Status,
		&friend.CreatedAt,
		&friend.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "friend request not found", 404, err)
	}
	if err != nil {
		return nil, r.mapDBError(err, "get_friend_by_id")
	}
	return friend, nil
}

// Accept flips a pending request to accepted
func (r *friendRepository) Accept(ctx context.Context, id string) error {
	query := `
		UPDATE friends
		SET status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND status = $3
	`

	result, err := r.pool.Exec(ctx, query, id, models.FriendStatusAccepted, models.FriendStatusPending)
	if err != nil {
		return r.mapDBError(err, "accept_friend_request")
	}
	if result.RowsAffected() == 0 {
		return models.NewHTTPError(models.ErrCodeNotFound, "pending friend request not found", 404, pgx.ErrNoRows)
	}
	return nil
}

// Delete removes a friendship edge (reject or unfriend)
func (r *friendRepository) Delete(ctx context.Context, id string) error {
	var deletedID string
	err := r.pool.QueryRow(ctx, `DELETE FROM friends WHERE id = $1 RETURNING id`, id).Scan(&deletedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "friend request not found", 404, err)
	}
	if err != nil {
		return r.mapDBError(err, "delete_friend")
	}
	return nil
}

// Exists checks for an edge in either direction
func (r *friendRepository) Exists(ctx context.Context, userID, friendID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM friends
			WHERE (user_id = $1 AND friend_id = $2)
			   OR (user_id = $2 AND friend_id = $1)
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, friendID).Scan(&exists); err != nil {
		return false, r.mapDBError(err, "check_friend_exists")
	}
	return exists, nil
}

// FriendIDs lists ids of accepted friends
func (r *friendRepository) FriendIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT CASE WHEN user_id = $1 THEN friend_id ELSE user_id END
		FROM friends
		WHERE (user_id = $1 OR friend_id = $1) AND status = $2
	`

	rows, err := r.pool.Query(ctx, query, userID, models.FriendStatusAccepted)
	if err != nil {
		return nil, r.mapDBError(err, "list_friend_ids")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, r.mapDBError(err, "scan_friend_id")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// CountFriends counts accepted friendships
func (r *friendRepository) CountFriends(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM friends
		WHERE (user_id = $1 OR friend_id = $1) AND status = $2
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID, models.FriendStatusAccepted).Scan(&count); err != nil {
		return 0, r.mapDBError(err, "count_friends")
	}
	return count, nil
}

// ListFriends returns accepted friendships with profile basics
func (r *friendRepository) ListFriends(ctx context.Context, userID string) ([]models.FriendEntry, error) {
	query := `
		SELECT f.id,
		       u.id, u.username, u.avatar, u.current_streak, f.updated_at
		FROM friends f
		JOIN users u ON u.id = CASE WHEN f.user_id = $1 THEN f.friend_id ELSE f.user_id END
		WHERE (f.user_id = $1 OR f.friend_id = $1) AND f.status = $2
		ORDER BY u.username
	`

	rows, err := r.pool.Query(ctx, query, userID, models.FriendStatusAccepted)
	if err != nil {
		return nil, r.mapDBError(err, "list_friends")
	}
	defer rows.Close()

	return scanFriendEntries(rows, r)
}

// ListIncoming returns pending requests addressed to userID
func (r *friendRepository) ListIncoming(ctx context.Context, userID string) ([]models.FriendEntry, error) {
	query := `
		SELECT f.id,
		       u.id, u.username, u.avatar, u.current_streak, f.created_at
		FROM friends f
		JOIN users u ON u.id = f.user_id
		WHERE f.friend_id = $1 AND f.status = $2
		ORDER BY f.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID, models.FriendStatusPending)
	if err != nil {
		return nil, r.mapDBError(err, "list_incoming_requests")
	}
	defer rows.Close()

	return scanFriendEntries(rows, r)
}

func scanFriendEntries(rows pgx.Rows, r *friendRepository) ([]models.FriendEntry, error) {
	var entries []models.FriendEntry
	for rows.Next() {
		var e models.FriendEntry
		if err := rows.Scan(
			&e.RequestID,
			&e.UserID,
			&e.Username,
			&e.Avatar,
			&e.CurrentStreak,
			&e.Since,
		); err != nil {
			return nil, r.mapDBError(err, "scan_friend_entry")
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// mapDBError maps database errors to application errors
func (r *friendRepository) mapDBError(err error, operation string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "resource not found", 404, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return models.NewHTTPError(models.ErrCodeConflict, "friend request already exists", 409, err)
		case "23503": // foreign_key_violation
			return models.NewHTTPError(models.ErrCodeBadRequest, "invalid user reference", 400, err)
		}
	}

	return models.NewHTTPError(models.ErrCodeInternal, "database error during "+operation, 500, err)
}
