package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserBook_SetStatus_CompletedStampsFinishDate(t *testing.T) {
	ub := &UserBook{ID: "ub-1", BookID: "book-1", Status: StatusReading}

	ub.SetStatus(StatusCompleted)

	assert.Equal(t, StatusCompleted, ub.Status)
	require.NotNil(t, ub.FinishDate)
}

func TestUserBook_SetStatus_CompletedTwiceKeepsFirstFinishDate(t *testing.T) {
	first := time.Now().Add(-24 * time.Hour)
	ub := &UserBook{ID: "ub-1", Status: StatusCompleted, FinishDate: &first}

	ub.SetStatus(StatusCompleted)

	require.NotNil(t, ub.FinishDate)
	assert.Equal(t, first, *ub.FinishDate)
}

func TestUserBook_SetStatus_ReadingStampsStartDateIfUnset(t *testing.T) {
	ub := &UserBook{ID: "ub-1", Status: StatusToRead}

	ub.SetStatus(StatusReading)

	assert.Equal(t, StatusReading, ub.Status)
	require.NotNil(t, ub.StartDate)
}

func TestUserBook_SetStatus_ReadingKeepsExistingStartDate(t *testing.T) {
	started := time.Now().Add(-48 * time.Hour)
	ub := &UserBook{ID: "ub-1", Status: StatusDNF, StartDate: &started}

	ub.SetStatus(StatusReading)

	require.NotNil(t, ub.StartDate)
	assert.Equal(t, started, *ub.StartDate)
}

func TestUserBook_SetStatus_LeavingCompletedKeepsFinishDate(t *testing.T) {
	finished := time.Now().Add(-time.Hour)
	ub := &UserBook{ID: "ub-1", Status: StatusCompleted, FinishDate: &finished}

	ub.SetStatus(StatusReading)

	// Quirk preserved from the app: the finish date of the first completion
	// survives a re-read.
	require.NotNil(t, ub.FinishDate)
	assert.Equal(t, finished, *ub.FinishDate)
}

func TestUserBook_SetProgress_ForcesReadingStatus(t *testing.T) {
	ub := &UserBook{ID: "ub-1", Status: StatusToRead}

	ub.SetProgress(42)

	assert.Equal(t, 42, ub.CurrentPage)
	assert.Equal(t, StatusReading, ub.Status)
	require.NotNil(t, ub.StartDate)
}

func TestUserBook_SetProgress_AlreadyReadingLeavesStartDateAlone(t *testing.T) {
	ub := &UserBook{ID: "ub-1", Status: StatusReading}

	ub.SetProgress(10)

	assert.Equal(t, 10, ub.CurrentPage)
	assert.Nil(t, ub.StartDate) // only stamped on the transition into reading
}

func TestUserBook_SetProgress_NoUpperClamp(t *testing.T) {
	ub := &UserBook{ID: "ub-1", Status: StatusReading}

	ub.SetProgress(9999)

	assert.Equal(t, 9999, ub.CurrentPage)
}

func TestUserBook_SetReview_ReplacesWholesale(t *testing.T) {
	ub := &UserBook{ID: "ub-1"}

	ub.SetReview("Great book", 5, false)

	require.NotNil(t, ub.Review)
	require.NotNil(t, ub.Rating)
	assert.Equal(t, "Great book", ub.Review.Text)
	assert.Equal(t, 5.0, *ub.Rating)
	assert.False(t, ub.Review.ContainsSpoilers)
	firstCreated := ub.Review.CreatedAt
	assert.WithinDuration(t, time.Now(), firstCreated, time.Second)

	ub.SetReview("Changed my mind", 2, true)

	assert.Equal(t, "Changed my mind", ub.Review.Text)
	assert.Equal(t, 2.0, *ub.Rating)
	assert.True(t, ub.Review.ContainsSpoilers)
	assert.False(t, ub.Review.CreatedAt.Before(firstCreated))
}

func TestUserBook_ToggleWishlist_Involution(t *testing.T) {
	ub := &UserBook{ID: "ub-1"}

	ub.ToggleWishlist()
	assert.True(t, ub.IsWishlisted)

	ub.ToggleWishlist()
	assert.False(t, ub.IsWishlisted)
}

func TestUserBook_Notes(t *testing.T) {
	ub := &UserBook{ID: "ub-1"}

	ub.AddNote("loved chapter 3")
	ub.AddNote("reminded me of Dune")

	assert.Equal(t, []string{"loved chapter 3", "reminded me of Dune"}, ub.Notes)

	assert.True(t, ub.RemoveNote(0))
	assert.Equal(t, []string{"reminded me of Dune"}, ub.Notes)

	assert.False(t, ub.RemoveNote(5))
	assert.False(t, ub.RemoveNote(-1))
}

func TestUserBook_Clone_IsDeep(t *testing.T) {
	rating := 4.0
	ub := &UserBook{
		ID:     "ub-1",
		Rating: &rating,
		Notes:  []string{"a"},
		Review: &Review{Text: "fine"},
	}

	c := ub.Clone()
	*c.Rating = 1.0
	c.Notes[0] = "b"
	c.Review.Text = "changed"

	assert.Equal(t, 4.0, *ub.Rating)
	assert.Equal(t, "a", ub.Notes[0])
	assert.Equal(t, "fine", ub.Review.Text)
}

func TestReadingStatus_Valid(t *testing.T) {
	assert.True(t, StatusReading.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.True(t, StatusToRead.Valid())
	assert.True(t, StatusDNF.Valid())
	assert.False(t, ReadingStatus("paused").Valid())
}
