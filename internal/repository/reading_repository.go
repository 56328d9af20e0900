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

// ReadingRepository is the append-only reading ledger. Entries are never
// updated or deleted; all derived stats recompute from this table.
type ReadingRepository interface {
	Create(ctx context.Context, reading *models.Reading) error

	// ListByUser returns the user's ledger, optionally narrowed by the
	// filter. Order is not guaranteed; callers sort as needed.
	ListByUser(ctx context.Context, userID string, filter models.ReadingFilter) ([]models.Reading, error)

	// PagesByUserSince sums pages per user over readings on/after since.
	// Used by the leaderboard to rank a set of users in one query.
	PagesByUserSince(ctx context.Context, userIDs []string, since time.Time) (map[string]int, error)

	// RecentByUsers returns the newest readings of a set of users joined
	// with book titles, newest first (friends activity feed).
	RecentByUsers(ctx context.Context, userIDs []string, limit int) ([]models.FriendActivityItem, error)
}

type readingRepository struct {
	pool *pgxpool.Pool
}

// NewReadingRepository creates a new PostgreSQL reading repository
func NewReadingRepository(pool *pgxpool.Pool) ReadingRepository {
	return &readingRepository{pool: pool}
}

// Create appends one entry to the ledger
func (r *readingRepository) Create(ctx context.Context, reading *models.Reading) error {
	query := `
		INSERT INTO readings (
			id, user_id, book_id, date, pages_read, from_page, to_page, notes, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		reading.ID,
		reading.UserID,
		reading.BookID,
		reading.Date,
		reading.PagesRead,
		reading.FromPage,
		reading.ToPage,
		reading.Notes,
	).Scan(&reading.CreatedAt)

	if err != nil {
		return r.mapDBError(err, "create_reading")
	}
	return nil
}

// ListByUser returns the user's readings matching the filter
func (r *readingRepository) ListByUser(ctx context.Context, userID string, filter models.ReadingFilter) ([]models.Reading, error) {
	query := `
		SELECT id, user_id, book_id, date, pages_read, from_page, to_page, notes, created_at
		FROM readings
		WHERE user_id = $1
		  AND ($2 = '' OR book_id = $2)
		  AND ($3::timestamptz IS NULL OR date >= $3)
		  AND ($4::timestamptz IS NULL OR date <= $4)
		ORDER BY date DESC
	`

	rows, err := r.pool.Query(ctx, query, userID, filter.BookID, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, r.mapDBError(err, "list_readings")
	}
	defer rows.Close()

	var readings []models.Reading
	for rows.Next() {
		var reading models.Reading
		if err := rows.Scan(
			&reading.ID,
			&reading.UserID,
			&reading.BookID,
			&reading.Date,
			&reading.PagesRead,
			&reading.FromPage,
			&reading.ToPage,
			&reading.Notes,
			&reading.CreatedAt,
		); err != nil {
			return nil, r.mapDBError(err, "scan_reading")
		}
		readings = append(readings, reading)
	}
	return readings, nil
}

// PagesByUserSince sums period pages per user with one GROUP BY
func (r *readingRepository) PagesByUserSince(ctx context.Context, userIDs []string, since time.Time) (map[string]int, error) {
	if len(userIDs) == 0 {
		return map[string]int{}, nil
	}

	query := `
		SELECT user_id, COALESCE(SUM(pages_read), 0)
		FROM readings
		WHERE user_id = ANY($1) AND date >= $2
		GROUP BY user_id
	`

	rows, err := r.pool.Query(ctx, query, userIDs, since)
	if err != nil {
		return nil, r.mapDBError(err, "sum_pages_by_user")
	}
	defer rows.Close()

	totals := make(map[string]int, len(userIDs))
	for rows.Next() {
		var userID string
		var pages int
		if err := rows.Scan(&userID, &pages); err != nil {
			return nil, r.mapDBError(err, "scan_pages_by_user")
		}
		totals[userID] = pages
	}
	return totals, nil
}

// RecentByUsers returns recent readings joined with book titles
func (r *readingRepository) RecentByUsers(ctx context.Context, userIDs []string, limit int) ([]models.FriendActivityItem, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT r.user_id, u.username, u.avatar, b.title, r.pages_read, r.date
		FROM readings r
		JOIN users u ON u.id = r.user_id
		JOIN books b ON b.id = r.book_id
		WHERE r.user_id = ANY($1)
		ORDER BY r.date DESC, r.created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userIDs, limit)
	if err != nil {
		return nil, r.mapDBError(err, "recent_readings_by_users")
	}
	defer rows.Close()

	var items []models.FriendActivityItem
	for rows.Next() {
		var item models.FriendActivityItem
		if err := rows.Scan(
			&item.UserID,
			&item.Username,
			&item.Avatar,
			&item.BookTitle,
			&item.PagesRead,
			&item.Date,
		); err != nil {
			return nil, r.mapDBError(err, "scan_recent_reading")
		}
		items = append(items, item)
	}
	return items, nil
}

// mapDBError maps database errors to application errors
func (r *readingRepository) mapDBError(err error, operation string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "resource not found", 404, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return models.NewHTTPError(models.ErrCodeBadRequest, "invalid book or user reference", 400, err)
		case "23514": // check_violation
			return models.NewHTTPError(models.ErrCodeBadRequest, "pages read must be positive", 400, err)
		}
	}

	return models.NewHTTPError(models.ErrCodeInternal, "database error during "+operation, 500, err)
}
