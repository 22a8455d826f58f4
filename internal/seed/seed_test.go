package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookishapp/bookish-core/internal/domain"
	"github.com/bookishapp/bookish-core/internal/kv"
	"github.com/bookishapp/bookish-core/internal/logger"
	"github.com/bookishapp/bookish-core/internal/notify"
	"github.com/bookishapp/bookish-core/internal/store"
)

func newTestStores(t *testing.T) Stores {
	t.Helper()
	mem := kv.NewMemory()
	log := logger.Discard().Logger
	noop := notify.NewNoop()

	s := Stores{
		Library:    store.NewLibrary(mem, noop, log),
		Social:     store.NewSocial(mem, noop, log),
		Challenges: store.NewChallenges(mem, noop, log),
		Profile:    store.NewProfile(mem, noop, log),
	}
	t.Cleanup(func() {
		s.Library.Flush()
		s.Social.Flush()
		s.Challenges.Flush()
		s.Profile.Flush()
	})
	return s
}

func TestLoadSeedsEmptyStores(t *testing.T) {
	stores := newTestStores(t)

	seeded := Load(stores, logger.Discard().Logger)

	assert.Equal(t, 4, seeded)
	assert.Len(t, stores.Library.Books(), 5)
	assert.Len(t, stores.Library.UserBooks(), 4)
	assert.Len(t, stores.Social.Feed(), 4)
	assert.Len(t, stores.Social.BookClubs(), 3)
	assert.Len(t, stores.Challenges.Challenges(), 3)
	assert.Len(t, stores.Challenges.Badges(), 5)
	assert.Len(t, stores.Challenges.Events(), 3)
	assert.True(t, stores.Profile.HasUser())
}

func TestLoadIsIdempotent(t *testing.T) {
	stores := newTestStores(t)
	require.Equal(t, 4, Load(stores, logger.Discard().Logger))

	// Mutate, then seed again. The mutation must survive.
	require.NoError(t, stores.Library.UpdateReadingProgress("userbook1", 300))
	assert.Equal(t, 0, Load(stores, logger.Discard().Logger))

	ub, err := stores.Library.UserBook("userbook1")
	require.NoError(t, err)
	assert.Equal(t, 300, ub.CurrentPage)
}

func TestFixturesAreInternallyConsistent(t *testing.T) {
	books := Books()
	bookIDs := make(map[string]bool, len(books))
	for _, b := range books {
		bookIDs[b.ID] = true
	}

	for _, ub := range UserBooks() {
		assert.True(t, bookIDs[ub.BookID], "user book %s references catalogue book %s", ub.ID, ub.BookID)
	}

	clubIDs := make(map[string]bool)
	for _, c := range BookClubs() {
		clubIDs[c.ID] = true
	}
	for _, id := range JoinedClubs() {
		assert.True(t, clubIDs[id], "joined club %s exists in the directory", id)
	}
	for _, d := range Discussions() {
		assert.True(t, clubIDs[d.BookClubID], "discussion %s belongs to a known club", d.ID)
	}
}

func TestFixtureChallengeProgress(t *testing.T) {
	challenges := ReadingChallenges()
	require.NotEmpty(t, challenges)

	first := challenges[0]
	assert.Equal(t, "challenge1", first.ID)
	assert.Equal(t, 50, first.Target)
	assert.Equal(t, 12, first.Progress)
	assert.False(t, first.Completed())
}

func TestFixtureEventParticipation(t *testing.T) {
	events := Events()
	require.Len(t, events, 3)

	assert.True(t, events[0].IsParticipating)
	assert.Equal(t, 156, events[0].ParticipantsCount)

	empty := events[2]
	assert.False(t, empty.IsParticipating)
	assert.Equal(t, 0, empty.ParticipantsCount)
}

func TestFixtureJoinedClubsMatchMockMembership(t *testing.T) {
	assert.Equal(t, domain.JoinedClubs{"club1", "club2"}, JoinedClubs())
}
