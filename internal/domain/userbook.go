package domain

import "time"

// ReadingStatus is the tracking state of a book in a user's library.
type ReadingStatus string

const (
	StatusReading   ReadingStatus = "reading"
	StatusCompleted ReadingStatus = "completed"
	StatusToRead    ReadingStatus = "toRead"
	StatusDNF       ReadingStatus = "dnf" // Did Not Finish
)

// Valid checks if the status is one of the four known states.
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusReading, StatusCompleted, StatusToRead, StatusDNF:
		return true
	default:
		return false
	}
}

// Review is a user's written review of a book.
// Replaced wholesale on every AddReview - there is no merging.
type Review struct {
	Text             string     `json:"text"`
	ContainsSpoilers bool       `json:"contains_spoilers"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// UserBook is a user's personal tracking record for one catalogue book.
// At most one exists per (user, book) pair.
type UserBook struct {
	ID           string        `json:"id"`
	BookID       string        `json:"book_id"`
	UserID       string        `json:"user_id"`
	Status       ReadingStatus `json:"status"`
	CurrentPage  int           `json:"current_page"`
	StartDate    *time.Time    `json:"start_date,omitempty"`
	FinishDate   *time.Time    `json:"finish_date,omitempty"`
	Rating       *float64      `json:"rating,omitempty"`
	Review       *Review       `json:"review,omitempty"`
	Notes        []string      `json:"notes,omitempty"`
	IsWishlisted bool          `json:"is_wishlisted"`
}

// SetStatus transitions the reading status.
// Entering completed stamps FinishDate only if unset, so repeating the
// transition keeps the original date. Entering reading stamps StartDate if
// unset. Leaving completed does NOT clear FinishDate - the record keeps the
// date of the first completion.
func (ub *UserBook) SetStatus(status ReadingStatus) {
	ub.Status = status

	now := time.Now()
	if status == StatusCompleted && ub.FinishDate == nil {
		ub.FinishDate = &now
	}
	if status == StatusReading && ub.StartDate == nil {
		ub.StartDate = &now
	}
}

// SetProgress records the current page. A record that was not in the reading
// state is forced into it, stamping StartDate if unset. The page is not
// clamped against the book's page count - display layers clamp, the data
// does not.
func (ub *UserBook) SetProgress(currentPage int) {
	ub.CurrentPage = currentPage

	if ub.Status != StatusReading {
		ub.Status = StatusReading
		if ub.StartDate == nil {
			now := time.Now()
			ub.StartDate = &now
		}
	}
}

// SetReview sets the rating and replaces any prior review with a fresh one.
func (ub *UserBook) SetReview(text string, rating float64, containsSpoilers bool) {
	ub.Rating = &rating
	ub.Review = &Review{
		Text:             text,
		ContainsSpoilers: containsSpoilers,
		CreatedAt:        time.Now(),
	}
}

// ToggleWishlist flips the wishlist flag.
func (ub *UserBook) ToggleWishlist() {
	ub.IsWishlisted = !ub.IsWishlisted
}

// AddNote appends a free-text note.
func (ub *UserBook) AddNote(note string) {
	ub.Notes = append(ub.Notes, note)
}

// RemoveNote removes the note at the given positional index.
// Returns false if the index is out of range.
func (ub *UserBook) RemoveNote(index int) bool {
	if index < 0 || index >= len(ub.Notes) {
		return false
	}
	ub.Notes = append(ub.Notes[:index], ub.Notes[index+1:]...)
	return true
}

// Clone returns a deep copy of the record.
func (ub *UserBook) Clone() *UserBook {
	c := *ub
	if ub.StartDate != nil {
		d := *ub.StartDate
		c.StartDate = &d
	}
	if ub.FinishDate != nil {
		d := *ub.FinishDate
		c.FinishDate = &d
	}
	if ub.Rating != nil {
		r := *ub.Rating
		c.Rating = &r
	}
	if ub.Review != nil {
		rv := *ub.Review
		if ub.Review.UpdatedAt != nil {
			u := *ub.Review.UpdatedAt
			rv.UpdatedAt = &u
		}
		c.Review = &rv
	}
	c.Notes = append([]string(nil), ub.Notes...)
	return &c
}
