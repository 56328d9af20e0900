package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookstreak/internal/repository"
	"bookstreak/pkg/models"
)

// BookService manages the books a user tracks. Every operation checks
// ownership; a book is never visible to anyone but its owner.
type BookService interface {
	CreateBook(ctx context.Context, userID string, req models.CreateBookRequest) (*models.Book, error)
	GetBook(ctx context.Context, userID, bookID string) (*models.Book, error)
	ListBooks(ctx context.Context, userID, status string, limit, offset int) ([]*models.Book, int, error)
	UpdateBook(ctx context.Context, userID, bookID string, req models.UpdateBookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, userID, bookID string) error
}

type bookService struct {
	bookRepo repository.BookRepository
}

// NewBookService creates a new book service
func NewBookService(bookRepo repository.BookRepository) BookService {
	return &bookService{bookRepo: bookRepo}
}

// CreateBook starts tracking a new book
func (s *bookService) CreateBook(ctx context.Context, userID string, req models.CreateBookRequest) (*models.Book, error) {
	if req.Title == "" {
		return nil, models.NewHTTPError(models.ErrCodeValidation, "title is required", 400, models.ErrInvalidInput)
	}
	if req.TotalPages < 1 {
		return nil, models.NewHTTPError(models.ErrCodeValidation, "total pages must be at least 1", 400, models.ErrInvalidInput)
	}

	book := &models.Book{
		ID:         uuid.New().String(),
		UserID:     userID,
		Title:      req.Title,
		Author:     req.Author,
		TotalPages: req.TotalPages,
		Status:     models.BookStatusActive,
		StartDate:  time.Now().UTC(),
		Notes:      req.Notes,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return book, nil
}

// GetBook returns a book owned by the caller
func (s *bookService) GetBook(ctx context.Context, userID, bookID string) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.UserID != userID {
		// Ownership mismatch reads as not-found, not forbidden
		return nil, models.NewHTTPError(models.ErrCodeNotFound, models.ErrBookNotFound.Error(), 404, models.ErrBookNotFound)
	}
	return book, nil
}

// ListBooks lists the caller's books, optionally filtered by status
func (s *bookService) ListBooks(ctx context.Context, userID, status string, limit, offset int) ([]*models.Book, int, error) {
	if status != "" && !models.ValidBookStatus(status) {
		return nil, 0, models.NewHTTPError(models.ErrCodeValidation, "invalid book status", 400, models.ErrInvalidInput)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookRepo.ListByUser(ctx, userID, status, limit, offset)
}

// UpdateBook applies the non-nil fields of the request
func (s *bookService) UpdateBook(ctx context.Context, userID, bookID string, req models.UpdateBookRequest) (*models.Book, error) {
	book, err := s.GetBook(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.TotalPages != nil {
		if *req.TotalPages < book.CurrentPage {
			return nil, models.NewHTTPError(models.ErrCodeValidation,
				"total pages cannot be below the current page", 400, models.ErrInvalidInput)
		}
		book.TotalPages = *req.TotalPages
	}
	if req.Status != nil {
		if !models.ValidBookStatus(*req.Status) {
			return nil, models.NewHTTPError(models.ErrCodeValidation, "invalid book status", 400, models.ErrInvalidInput)
		}
		if *req.Status == models.BookStatusCompleted && book.CompletedDate == nil {
			now := time.Now().UTC()
			book.CompletedDate = &now
		}
		book.Status = *req.Status
	}
	if req.Notes != nil {
		book.Notes = *req.Notes
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return book, nil
}

// DeleteBook removes a book owned by the caller
func (s *bookService) DeleteBook(ctx context.Context, userID, bookID string) error {
	if _, err := s.GetBook(ctx, userID, bookID); err != nil {
		return err
	}
	return s.bookRepo.Delete(ctx, bookID)
}
