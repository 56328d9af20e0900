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

// BookRepository handles book persistence
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id string) (*models.Book, error)
	ListByUser(ctx context.Context, userID, status string, limit, offset int) ([]*models.Book, int, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id string) error

	// UpdateProgress advances the reading position and, when the last page
	// is reached, flips the status to completed with a completion date.
	UpdateProgress(ctx context.Context, id string, currentPage int, status string, completedDate *time.Time) error

	CountByUser(ctx context.Context, userID string) (int, error)
	CountByStatus(ctx context.Context, userID, status string) (int, error)
}

type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository creates a new PostgreSQL book repository
func NewBookRepository(pool *pgxpool.Pool) BookRepository {
	return &bookRepository{pool: pool}
}

const bookColumns = `
	id, user_id, title, author, total_pages, current_page, status,
	start_date, completed_date, notes, created_at, updated_at
`

func scanBook(row pgx.Row) (*models.Book, error) {
	book := &models.Book{}
	err := row.Scan(
		&book.ID,
		&book.UserID,
		&book.Title,
		&book.Author,
		&book.TotalPages,
		&book.CurrentPage,
		&book.Status,
		&book.StartDate,
		&book.CompletedDate,
		&book.Notes,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// Create inserts a new book
func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	query := `
		INSERT INTO books (
			id, user_id, title, author, total_pages, current_page, status,
			start_date, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		book.ID,
		book.UserID,
		book.Title,
		book.Author,
		book.TotalPages,
		book.CurrentPage,
		book.Status,
		book.StartDate,
		book.Notes,
	).Scan(&book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		return r.mapDBError(err, "create_book")
	}
	return nil
}

// GetByID retrieves a book by ID
func (r *bookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "book not found", 404, err)
	}
	if err != nil {
		return nil, r.mapDBError(err, "get_book_by_id")
	}
	return book, nil
}

// ListByUser lists a user's books, optionally filtered by status
func (r *bookRepository) ListByUser(ctx context.Context, userID, status string, limit, offset int) ([]*models.Book, int, error) {
	countQuery := `SELECT COUNT(*) FROM books WHERE user_id = $1 AND ($2 = '' OR status = $2)`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, userID, status).Scan(&total); err != nil {
		return nil, 0, r.mapDBError(err, "count_books")
	}

	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY updated_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.pool.Query(ctx, query, userID, status, limit, offset)
	if err != nil {
		return nil, 0, r.mapDBError(err, "list_books")
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, 0, r.mapDBError(err, "scan_book")
		}
		books = append(books, book)
	}
	return books, total, nil
}

// Update saves the editable book fields
func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	query := `
		UPDATE books
		SET title = $2,
		    author = $3,
		    total_pages = $4,
		    status = $5,
		    completed_date = $6,
		    notes = $7,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.TotalPages,
		book.Status,
		book.CompletedDate,
		book.Notes,
	).Scan(&book.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "book not found", 404, err)
	}
	if err != nil {
		return r.mapDBError(err, "update_book")
	}
	return nil
}

// Delete removes a book
func (r *bookRepository) Delete(ctx context.Context, id string) error {
	var deletedID string
	err := r.pool.QueryRow(ctx, `DELETE FROM books WHERE id = $1 RETURNING id`, id).Scan(&deletedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "book not found", 404, err)
	}
	if err != nil {
		return r.mapDBError(err, "delete_book")
	}
	return nil
}

// UpdateProgress moves the current page and possibly completes the book
func (r *bookRepository) UpdateProgress(ctx context.Context, id string, currentPage int, status string, completedDate *time.Time) error {
	query := `
		UPDATE books
		SET current_page = $2,
		    status = $3,
		    completed_date = COALESCE($4, completed_date),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, currentPage, status, completedDate)
	if err != nil {
		return r.mapDBError(err, "update_book_progress")
	}
	if result.RowsAffected() == 0 {
		return models.NewHTTPError(models.ErrCodeNotFound, "book not found", 404, pgx.ErrNoRows)
	}
	return nil
}

// CountByUser counts all books a user tracks
func (r *bookRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, r.mapDBError(err, "count_books_by_user")
	}
	return count, nil
}

// CountByStatus counts a user's books in one status
func (r *bookRepository) CountByStatus(ctx context.Context, userID, status string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM books WHERE user_id = $1 AND status = $2`, userID, status).Scan(&count)
	if err != nil {
		return 0, r.mapDBError(err, "count_books_by_status")
	}
	return count, nil
}

// mapDBError maps database errors to application errors
func (r *bookRepository) mapDBError(err error, operation string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "resource not found", 404, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return models.NewHTTPError(models.ErrCodeBadRequest, "invalid user reference", 400, err)
		case "23514": // check_violation
			return models.NewHTTPError(models.ErrCodeBadRequest, "invalid book data", 400, err)
		}
	}

	return models.NewHTTPError(models.ErrCodeInternal, "database error during "+operation, 500, err)
}
