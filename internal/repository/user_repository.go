package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstreak/pkg/models"
)

// UserRepository handles user persistence, including the cached stats
// snapshot the synchronizer writes after every reading.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, user *models.User) error

	// ReplaceStats overwrites all four cached stat fields in one statement.
	// Partial updates are not offered on purpose.
	ReplaceStats(ctx context.Context, userID string, snapshot models.StatsSnapshot) error

	SearchPublic(ctx context.Context, query string, limit int) ([]*models.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]*models.User, error)
	ListPublicIDs(ctx context.Context, limit int) ([]string, error)

	WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `
	id, username, email, password_hash, avatar, bio,
	total_pages_read, total_books_completed, current_streak, longest_streak,
	profile_public, show_stats_to_friends, created_at, updated_at
`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Avatar,
		&user.Bio,
		&user.TotalPagesRead,
		&user.TotalBooksCompleted,
		&user.CurrentStreak,
		&user.LongestStreak,
		&user.ProfilePublic,
		&user.ShowStatsToFriends,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (
			id, username, email, password_hash, avatar, bio,
			profile_public, show_stats_to_friends, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Avatar,
		user.Bio,
		user.ProfilePublic,
		user.ShowStatsToFriends,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return r.mapDBError(err, "create_user")
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "user not found", 404, err)
	}
	if err != nil {
		return nil, r.mapDBError(err, "get_user_by_id")
	}
	return user, nil
}

// GetByUsername retrieves a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "user not found", 404, err)
	}
	if err != nil {
		return nil, r.mapDBError(err, "get_user_by_username")
	}
	return user, nil
}

// UsernameExists checks if a username is already taken
func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, r.mapDBError(err, "check_username_exists")
	}
	return exists, nil
}

// EmailExists checks if an email is already registered
func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, r.mapDBError(err, "check_email_exists")
	}
	return exists, nil
}

// UpdateProfile updates the editable profile fields
func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET avatar = $2,
		    bio = $3,
		    profile_public = $4,
		    show_stats_to_friends = $5,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Avatar,
		user.Bio,
		user.ProfilePublic,
		user.ShowStatsToFriends,
	).Scan(&user.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "user not found", 404, err)
	}
	if err != nil {
		return r.mapDBError(err, "update_profile")
	}
	return nil
}

// ReplaceStats overwrites the cached snapshot as one atomic unit
func (r *userRepository) ReplaceStats(ctx context.Context, userID string, snapshot models.StatsSnapshot) error {
	query := `
		UPDATE users
		SET total_pages_read = $2,
		    total_books_completed = $3,
		    current_streak = $4,
		    longest_streak = $5,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		userID,
		snapshot.TotalPagesRead,
		snapshot.TotalBooksCompleted,
		snapshot.CurrentStreak,
		snapshot.LongestStreak,
	)
	if err != nil {
		return r.mapDBError(err, "replace_user_stats")
	}
	if result.RowsAffected() == 0 {
		return models.NewHTTPError(models.ErrCodeNotFound, "user not found", 404, pgx.ErrNoRows)
	}
	return nil
}

// SearchPublic finds public profiles by username prefix
func (r *userRepository) SearchPublic(ctx context.Context, query string, limit int) ([]*models.User, error) {
	sql := `
		SELECT ` + userColumns + `
		FROM users
		WHERE profile_public = TRUE AND username ILIKE $1 || '%'
		ORDER BY username
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, r.mapDBError(err, "search_users")
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, r.mapDBError(err, "scan_user_search")
		}
		users = append(users, user)
	}
	return users, nil
}

// ListByIDs fetches multiple users at once (leaderboard hydration)
func (r *userRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sql := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, sql, ids)
	if err != nil {
		return nil, r.mapDBError(err, "list_users_by_ids")
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, r.mapDBError(err, "scan_user_list")
		}
		users = append(users, user)
	}
	return users, nil
}

// ListPublicIDs returns up to limit public user ids (global leaderboard pool)
func (r *userRepository) ListPublicIDs(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM users WHERE profile_public = TRUE ORDER BY created_at LIMIT $1`, limit)
	if err != nil {
		return nil, r.mapDBError(err, "list_public_user_ids")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, r.mapDBError(err, "scan_public_user_id")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// WithTransaction executes a function within a database transaction
func (r *userRepository) WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return r.mapDBError(err, "begin_transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

// mapDBError maps database errors to application errors
func (r *userRepository) mapDBError(err error, operation string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "resource not found", 404, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if pgErr.ConstraintName == "users_email_key" {
				return models.NewHTTPError(models.ErrCodeConflict, "email already registered", 409, err)
			}
			return models.NewHTTPError(models.ErrCodeConflict, "username already exists", 409, err)
		case "23503": // foreign_key_violation
			return models.NewHTTPError(models.ErrCodeBadRequest, "invalid relationship", 400, err)
		case "22P02": // invalid_text_representation
			return models.NewHTTPError(models.ErrCodeBadRequest, "invalid input format", 400, err)
		}
	}

	return models.NewHTTPError(models.ErrCodeInternal, "database error during "+operation, 500, err)
}
