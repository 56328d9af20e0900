package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookstreak/internal/repository"
	"bookstreak/pkg/logger"
	"bookstreak/pkg/models"
	"bookstreak/pkg/utils"
)

// ReadingService logs reading activity. Logging is the write path that
// drives everything downstream: book progress, the stats snapshot, and
// the achievement check all key off one logged reading.
type ReadingService interface {
	// LogReading appends a ledger entry, advances the book, and triggers
	// the stats/achievement pipeline. Pages are clamped so the book never
	// advances past its last page.
	LogReading(ctx context.Context, userID string, req models.LogReadingRequest) (*models.LogReadingResponse, error)

	ListReadings(ctx context.Context, userID string, filter models.ReadingFilter) ([]models.Reading, error)
}

type readingService struct {
	readingRepo repository.ReadingRepository
	bookRepo    repository.BookRepository
	statsSvc    StatsService
}

// NewReadingService creates a new reading service
func NewReadingService(
	readingRepo repository.ReadingRepository,
	bookRepo repository.BookRepository,
	statsSvc StatsService,
) ReadingService {
	return &readingService{
		readingRepo: readingRepo,
		bookRepo:    bookRepo,
		statsSvc:    statsSvc,
	}
}

// LogReading runs the log -> advance -> recompute pipeline
func (s *readingService) LogReading(ctx context.Context, userID string, req models.LogReadingRequest) (*models.LogReadingResponse, error) {
	if req.PagesRead < 1 {
		return nil, models.NewHTTPError(models.ErrCodeValidation, "pages read must be at least 1", 400, models.ErrInvalidInput)
	}

	book, err := s.bookRepo.GetByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if book.UserID != userID {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, models.ErrBookNotFound.Error(), 404, models.ErrBookNotFound)
	}
	if book.Status == models.BookStatusCompleted {
		return nil, models.NewHTTPError(models.ErrCodeConflict, models.ErrBookCompleted.Error(), 409, models.ErrBookCompleted)
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = req.Date.UTC()
		if date.After(now) {
			return nil, models.NewHTTPError(models.ErrCodeValidation, "reading date cannot be in the future", 400, models.ErrInvalidInput)
		}
	}

	// Clamp so the book never advances past its last page; the entry
	// records the pages that actually moved the position.
	fromPage := book.CurrentPage
	toPage := fromPage + req.PagesRead
	if toPage > book.TotalPages {
		toPage = book.TotalPages
	}
	pagesRead := toPage - fromPage
	if pagesRead <= 0 {
		return nil, models.NewHTTPError(models.ErrCodeConflict, models.ErrBookCompleted.Error(), 409, models.ErrBookCompleted)
	}

	reading := &models.Reading{
		ID:        uuid.New().String(),
		UserID:    userID,
		BookID:    book.ID,
		Date:      utils.DayStartUTC(date),
		PagesRead: pagesRead,
		FromPage:  fromPage,
		ToPage:    toPage,
		Notes:     req.Notes,
	}
	if err := s.readingRepo.Create(ctx, reading); err != nil {
		return nil, fmt.Errorf("failed to log reading: %w", err)
	}

	status := book.Status
	var completedDate *time.Time
	if toPage >= book.TotalPages {
		status = models.BookStatusCompleted
		completedDate = &now
	}
	if err := s.bookRepo.UpdateProgress(ctx, book.ID, toPage, status, completedDate); err != nil {
		return nil, fmt.Errorf("failed to update book progress: %w", err)
	}
	book.CurrentPage = toPage
	book.Status = status
	if completedDate != nil {
		book.CompletedDate = completedDate
	}

	// Stats recompute failing must not lose the logged reading; the next
	// log repairs the snapshot because it always recomputes from scratch.
	// Badges persisted before the failure are still delivered.
	newBadges, err := s.statsSvc.OnReadingLogged(ctx, userID, now)
	if err != nil {
		logger.Warnf("stats sync failed after reading %s for user %s: %v", reading.ID, userID, err)
	}

	return &models.LogReadingResponse{
		Reading:   reading,
		Book:      book,
		NewBadges: newBadges,
	}, nil
}

// ListReadings returns the caller's ledger entries matching the filter
func (s *readingService) ListReadings(ctx context.Context, userID string, filter models.ReadingFilter) ([]models.Reading, error) {
	return s.readingRepo.ListByUser(ctx, userID, filter)
}
