package store

import (
	"log/slog"
	"sync"

	"github.com/bookishapp/bookish-core/internal/domain"
	"github.com/bookishapp/bookish-core/internal/errors"
	"github.com/bookishapp/bookish-core/internal/kv"
	"github.com/bookishapp/bookish-core/internal/notify"
)

// Indexer keeps the catalogue search index in sync with the library store.
// Index updates run asynchronously so they never block a mutation.
type Indexer interface {
	IndexBook(book *domain.Book) error
	RemoveBook(bookID string) error
}

// NoopIndexer is a no-op implementation for testing and for engines built
// without search.
type NoopIndexer struct{}

// IndexBook is a no-op.
func (NoopIndexer) IndexBook(*domain.Book) error { return nil }

// RemoveBook is a no-op.
func (NoopIndexer) RemoveBook(string) error { return nil }

// librarySnapshot is the persisted shape of the library store.
type librarySnapshot struct {
	Books     []domain.Book     `json:"books"`
	UserBooks []domain.UserBook `json:"user_books"`
}

// Library owns the book catalogue and each user's per-book tracking records.
type Library struct {
	mu        sync.RWMutex
	books     []domain.Book
	userBooks []domain.UserBook

	writer   *snapshotWriter
	notifier notify.Notifier
	indexer  Indexer
	logger   *slog.Logger
}

// NewLibrary creates the library store, rehydrating any previous snapshot
// from the adapter.
func NewLibrary(adapter kv.Adapter, notifier notify.Notifier, logger *slog.Logger) *Library {
	var snap librarySnapshot
	rehydrate(adapter, kv.KeyLibrary, &snap, logger)

	return &Library{
		books:     snap.Books,
		userBooks: snap.UserBooks,
		writer:    newSnapshotWriter(adapter, kv.KeyLibrary, logger),
		notifier:  notifier,
		indexer:   NoopIndexer{},
		logger:    logger,
	}
}

// SetIndexer sets the search indexer. Set after construction to avoid a
// circular dependency between the store and the search service.
func (l *Library) SetIndexer(indexer Indexer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.indexer = indexer
}

// persistLocked mirrors the current snapshot and publishes the change.
// Must be called with l.mu held.
func (l *Library) persistLocked(op, entityID string) {
	l.writer.write(marshalSnapshot(librarySnapshot{Books: l.books, UserBooks: l.userBooks}))
	l.notifier.Publish(notify.Change{Store: kv.KeyLibrary, Op: op, EntityID: entityID})
}

// indexAsync pushes a book into the search index without blocking.
func (l *Library) indexAsync(book *domain.Book) {
	indexer := l.indexer
	clone := book.Clone()
	go func() {
		if err := indexer.IndexBook(clone); err != nil && l.logger != nil {
			l.logger.Warn("failed to index book", "book_id", clone.ID, "error", err)
		}
	}()
}

func (l *Library) findBookLocked(bookID string) *domain.Book {
	for i := range l.books {
		if l.books[i].ID == bookID {
			return &l.books[i]
		}
	}
	return nil
}

func (l *Library) findUserBookLocked(userBookID string) *domain.UserBook {
	for i := range l.userBooks {
		if l.userBooks[i].ID == userBookID {
			return &l.userBooks[i]
		}
	}
	return nil
}

// AddBook appends a book to the catalogue.
// Returns ErrAlreadyExists if the id is already present.
func (l *Library) AddBook(book domain.Book) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.findBookLocked(book.ID) != nil {
		return errors.AlreadyExistsf("book %s already in catalogue", book.ID)
	}

	l.books = append(l.books, *book.Clone())
	l.persistLocked("add_book", book.ID)
	l.indexAsync(&book)
	return nil
}

// UpdateBook merges the non-nil patch fields into the matching book.
// Returns ErrNotFound on an unknown id.
func (l *Library) UpdateBook(bookID string, patch domain.BookPatch) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	book := l.findBookLocked(bookID)
	if book == nil {
		return errors.NotFoundf("book %s not in catalogue", bookID)
	}

	patch.Apply(book)
	l.persistLocked("update_book", bookID)
	l.indexAsync(book)
	return nil
}

// AddUserBook appends a tracking record. The referenced book must exist, and
// at most one record may exist per (user, book) pair.
func (l *Library) AddUserBook(userBook domain.UserBook) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.findUserBookLocked(userBook.ID) != nil {
		return errors.AlreadyExistsf("user book %s already exists", userBook.ID)
	}
	if l.findBookLocked(userBook.BookID) == nil {
		return errors.NotFoundf("book %s not in catalogue", userBook.BookID)
	}
	for i := range l.userBooks {
		if l.userBooks[i].UserID == userBook.UserID && l.userBooks[i].BookID == userBook.BookID {
			return errors.AlreadyExistsf("user %s already tracks book %s", userBook.UserID, userBook.BookID)
		}
	}

	l.userBooks = append(l.userBooks, *userBook.Clone())
	l.persistLocked("add_user_book", userBook.ID)
	return nil
}

// UpdateReadingStatus transitions a tracking record's status (see
// domain.UserBook.SetStatus for the date-stamping rules).
func (l *Library) UpdateReadingStatus(userBookID string, status domain.ReadingStatus) error {
	if !status.Valid() {
		return errors.Validationf("unknown reading status %q", status)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ub := l.findUserBookLocked(userBookID)
	if ub == nil {
		return errors.NotFoundf("user book %s not found", userBookID)
	}

	ub.SetStatus(status)
	l.persistLocked("update_reading_status", userBookID)
	return nil
}

// UpdateReadingProgress records the current page. The page may exceed the
// book's page count - display layers clamp, the data does not.
func (l *Library) UpdateReadingProgress(userBookID string, currentPage int) error {
	if currentPage < 0 {
		return errors.Validationf("current page must be >= 0, got %d", currentPage)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ub := l.findUserBookLocked(userBookID)
	if ub == nil {
		return errors.NotFoundf("user book %s not found", userBookID)
	}

	ub.SetProgress(currentPage)
	l.persistLocked("update_reading_progress", userBookID)
	return nil
}

// AddReview sets the rating and replaces any prior review unconditionally.
func (l *Library) AddReview(userBookID, text string, rating float64, containsSpoilers bool) error {
	if rating < 0 || rating > 5 {
		return errors.Validationf("rating must be between 0 and 5, got %g", rating)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ub := l.findUserBookLocked(userBookID)
	if ub == nil {
		return errors.NotFoundf("user book %s not found", userBookID)
	}

	ub.SetReview(text, rating, containsSpoilers)
	l.persistLocked("add_review", userBookID)
	return nil
}

// ToggleWishlist flips the wishlist flag.
func (l *Library) ToggleWishlist(userBookID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ub := l.findUserBookLocked(userBookID)
	if ub == nil {
		return errors.NotFoundf("user book %s not found", userBookID)
	}

	ub.ToggleWishlist()
	l.persistLocked("toggle_wishlist", userBookID)
	return nil
}

// AddNote appends a free-text note to a tracking record.
func (l *Library) AddNote(userBookID, note string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ub := l.findUserBookLocked(userBookID)
	if ub == nil {
		return errors.NotFoundf("user book %s not found", userBookID)
	}

	ub.AddNote(note)
	l.persistLocked("add_note", userBookID)
	return nil
}

// RemoveNote removes a note by positional index.
func (l *Library) RemoveNote(userBookID string, index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ub := l.findUserBookLocked(userBookID)
	if ub == nil {
		return errors.NotFoundf("user book %s not found", userBookID)
	}

	if !ub.RemoveNote(index) {
		return errors.Validationf("note index %d out of range", index)
	}
	l.persistLocked("remove_note", userBookID)
	return nil
}

// Bootstrap populates the store from seed fixtures if it is empty.
// Returns false without changes if any data is already present.
func (l *Library) Bootstrap(books []domain.Book, userBooks []domain.UserBook) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.books) > 0 || len(l.userBooks) > 0 {
		return false
	}

	l.books = make([]domain.Book, 0, len(books))
	for i := range books {
		l.books = append(l.books, *books[i].Clone())
	}
	l.userBooks = make([]domain.UserBook, 0, len(userBooks))
	for i := range userBooks {
		l.userBooks = append(l.userBooks, *userBooks[i].Clone())
	}

	l.persistLocked("bootstrap", "")
	for i := range l.books {
		l.indexAsync(&l.books[i])
	}
	return true
}

// Reads. All accessors return deep copies - callers never hold live references.

// Books returns the full catalogue in insertion order.
func (l *Library) Books() []domain.Book {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Book, 0, len(l.books))
	for i := range l.books {
		out = append(out, *l.books[i].Clone())
	}
	return out
}

// Book returns one catalogue book by id.
func (l *Library) Book(bookID string) (*domain.Book, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	book := l.findBookLocked(bookID)
	if book == nil {
		return nil, errors.NotFoundf("book %s not in catalogue", bookID)
	}
	return book.Clone(), nil
}

// UserBooks returns all tracking records.
func (l *Library) UserBooks() []domain.UserBook {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.UserBook, 0, len(l.userBooks))
	for i := range l.userBooks {
		out = append(out, *l.userBooks[i].Clone())
	}
	return out
}

// UserBook returns one tracking record by id.
func (l *Library) UserBook(userBookID string) (*domain.UserBook, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ub := l.findUserBookLocked(userBookID)
	if ub == nil {
		return nil, errors.NotFoundf("user book %s not found", userBookID)
	}
	return ub.Clone(), nil
}

// UserBooksByStatus returns the tracking records in the given status, in
// insertion order. These are the shelf views (reading, completed, toRead, dnf).
func (l *Library) UserBooksByStatus(status domain.ReadingStatus) []domain.UserBook {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []domain.UserBook
	for i := range l.userBooks {
		if l.userBooks[i].Status == status {
			out = append(out, *l.userBooks[i].Clone())
		}
	}
	return out
}

// Wishlisted returns the tracking records flagged for the wishlist,
// independent of status.
func (l *Library) Wishlisted() []domain.UserBook {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []domain.UserBook
	for i := range l.userBooks {
		if l.userBooks[i].IsWishlisted {
			out = append(out, *l.userBooks[i].Clone())
		}
	}
	return out
}

// Flush blocks until pending snapshot writes have landed. Call on shutdown.
func (l *Library) Flush() {
	l.writer.flush()
}
