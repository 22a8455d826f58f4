// Package service contains the engine's orchestration layer. Stores hold
// state; services validate input, generate ids, and join data across stores
// into the read models screens render.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookishapp/bookish-core/internal/domain"
	domainerrors "github.com/bookishapp/bookish-core/internal/errors"
	"github.com/bookishapp/bookish-core/internal/id"
	"github.com/bookishapp/bookish-core/internal/search"
	"github.com/bookishapp/bookish-core/internal/store"
	"github.com/bookishapp/bookish-core/internal/validation"
)

// LibraryService orchestrates catalogue and reading-tracker operations.
type LibraryService struct {
	library   *store.Library
	index     *search.Index
	validator *validation.Validator
	logger    *slog.Logger
}

// NewLibraryService creates a library service.
func NewLibraryService(library *store.Library, validator *validation.Validator, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		library:   library,
		validator: validator,
		logger:    logger,
	}
}

// SetSearchIndex wires the catalogue search index. Set after construction so
// engines without search still work; Search returns ErrInternal when unset.
func (s *LibraryService) SetSearchIndex(index *search.Index) {
	s.index = index
}

// AddBookInput is the validated payload for adding a catalogue book.
type AddBookInput struct {
	Title         string    `json:"title" validate:"required,max=512"`
	Author        string    `json:"author" validate:"required,max=256"`
	CoverImage    string    `json:"cover_image" validate:"omitempty,url"`
	Description   string    `json:"description"`
	PublishedDate time.Time `json:"published_date"`
	Genres        []string  `json:"genres"`
	PageCount     int       `json:"page_count" validate:"gte=0"`
	AverageRating float64   `json:"average_rating" validate:"gte=0,lte=5"`
	RatingsCount  int       `json:"ratings_count" validate:"gte=0"`
}

// AddBook validates the input, assigns an id, and adds the book to the
// catalogue.
func (s *LibraryService) AddBook(ctx context.Context, input AddBookInput) (*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	bookID, err := id.Generate(id.PrefixBook)
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	book := domain.Book{
		ID:            bookID,
		Title:         input.Title,
		Author:        input.Author,
		CoverImage:    input.CoverImage,
		Description:   input.Description,
		PublishedDate: input.PublishedDate,
		Genres:        input.Genres,
		PageCount:     input.PageCount,
		AverageRating: input.AverageRating,
		RatingsCount:  input.RatingsCount,
	}

	if err := s.library.AddBook(book); err != nil {
		return nil, err
	}

	s.logger.Info("book added to catalogue",
		"book_id", bookID,
		"title", input.Title,
	)

	return &book, nil
}

// TrackBookInput is the validated payload for starting to track a book.
type TrackBookInput struct {
	UserID string               `json:"user_id" validate:"required"`
	BookID string               `json:"book_id" validate:"required"`
	Status domain.ReadingStatus `json:"status" validate:"omitempty,oneof=reading completed toRead dnf"`
}

// TrackBook creates a tracking record for a catalogue book. The status
// defaults to toRead.
func (s *LibraryService) TrackBook(ctx context.Context, input TrackBookInput) (*domain.UserBook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	userBookID, err := id.Generate(id.PrefixUserBook)
	if err != nil {
		return nil, fmt.Errorf("generate user book ID: %w", err)
	}

	status := input.Status
	if status == "" {
		status = domain.StatusToRead
	}

	userBook := domain.UserBook{
		ID:     userBookID,
		UserID: input.UserID,
		BookID: input.BookID,
	}
	userBook.SetStatus(status)

	if err := s.library.AddUserBook(userBook); err != nil {
		return nil, err
	}

	s.logger.Info("book tracked",
		"user_book_id", userBookID,
		"book_id", input.BookID,
		"status", status,
	)

	return &userBook, nil
}

// ReviewInput is the validated payload for reviewing a tracked book.
type ReviewInput struct {
	Text             string  `json:"text" validate:"max=10000"`
	Rating           float64 `json:"rating" validate:"gte=0,lte=5"`
	ContainsSpoilers bool    `json:"contains_spoilers"`
}

// Review validates and records a review on a tracking record.
func (s *LibraryService) Review(ctx context.Context, userBookID string, input ReviewInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.validator.Validate(input); err != nil {
		return err
	}

	return s.library.AddReview(userBookID, input.Text, input.Rating, input.ContainsSpoilers)
}

// LibraryEntry joins a tracking record with its catalogue book for display.
type LibraryEntry struct {
	UserBook        domain.UserBook `json:"user_book"`
	Book            domain.Book     `json:"book"`
	ProgressPercent int             `json:"progress_percent"`
}

// progressPercent computes the display progress, clamped to 0-100. The
// underlying page number is stored as given; only this derived display value
// is clamped.
func progressPercent(ub *domain.UserBook, book *domain.Book) int {
	if book.PageCount <= 0 {
		return 0
	}
	pct := ub.CurrentPage * 100 / book.PageCount
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// entries joins tracking records with catalogue books. Records whose book no
// longer exists in the catalogue are skipped, not errored; a stale reference
// must never break a shelf view.
func (s *LibraryService) entries(userBooks []domain.UserBook) []LibraryEntry {
	out := make([]LibraryEntry, 0, len(userBooks))
	for i := range userBooks {
		ub := userBooks[i]
		book, err := s.library.Book(ub.BookID)
		if err != nil {
			s.logger.Warn("skipping tracking record with missing book",
				"user_book_id", ub.ID,
				"book_id", ub.BookID,
			)
			continue
		}
		out = append(out, LibraryEntry{
			UserBook:        ub,
			Book:            *book,
			ProgressPercent: progressPercent(&ub, book),
		})
	}
	return out
}

// Entries returns all tracking records joined with their books.
func (s *LibraryService) Entries(ctx context.Context) ([]LibraryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.entries(s.library.UserBooks()), nil
}

// EntriesByStatus returns one shelf joined with its books.
func (s *LibraryService) EntriesByStatus(ctx context.Context, status domain.ReadingStatus) ([]LibraryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domainerrors.Validationf("unknown reading status %q", status)
	}
	return s.entries(s.library.UserBooksByStatus(status)), nil
}

// Wishlist returns the wishlisted records joined with their books.
func (s *LibraryService) Wishlist(ctx context.Context) ([]LibraryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.entries(s.library.Wishlisted()), nil
}

// Entry returns one tracking record joined with its book.
func (s *LibraryService) Entry(ctx context.Context, userBookID string) (*LibraryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ub, err := s.library.UserBook(userBookID)
	if err != nil {
		return nil, err
	}
	book, err := s.library.Book(ub.BookID)
	if err != nil {
		return nil, err
	}

	return &LibraryEntry{
		UserBook:        *ub,
		Book:            *book,
		ProgressPercent: progressPercent(ub, book),
	}, nil
}

// Search runs a catalogue search through the bleve index.
func (s *LibraryService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.index == nil {
		return nil, domainerrors.Internal("catalogue search is not configured")
	}
	return s.index.Search(ctx, params)
}
