package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookishapp/bookish-core/internal/domain"
	"github.com/bookishapp/bookish-core/internal/errors"
	"github.com/bookishapp/bookish-core/internal/kv"
	"github.com/bookishapp/bookish-core/internal/logger"
	"github.com/bookishapp/bookish-core/internal/notify"
	"github.com/bookishapp/bookish-core/internal/seed"
	"github.com/bookishapp/bookish-core/internal/store"
	"github.com/bookishapp/bookish-core/internal/validation"
)

type socialFixture struct {
	svc        *SocialService
	social     *store.Social
	library    *store.Library
	challenges *store.Challenges
	profile    *store.Profile
}

func newSocialFixture(t *testing.T) socialFixture {
	t.Helper()
	mem := kv.NewMemory()
	log := logger.Discard().Logger
	noop := notify.NewNoop()

	f := socialFixture{
		social:     store.NewSocial(mem, noop, log),
		library:    store.NewLibrary(mem, noop, log),
		challenges: store.NewChallenges(mem, noop, log),
		profile:    store.NewProfile(mem, noop, log),
	}
	t.Cleanup(func() {
		f.social.Flush()
		f.library.Flush()
		f.challenges.Flush()
		f.profile.Flush()
	})
	f.svc = NewSocialService(f.social, f.library, f.challenges, f.profile, validation.New(), log)
	return f
}

func seedSocialFixture(t *testing.T, f socialFixture) {
	t.Helper()
	seed.Load(seed.Stores{
		Library:    f.library,
		Social:     f.social,
		Challenges: f.challenges,
		Profile:    f.profile,
	}, logger.Discard().Logger)
}

func TestSocialServiceFeedResolvesReferences(t *testing.T) {
	f := newSocialFixture(t)
	seedSocialFixture(t, f)

	feed, err := f.svc.Feed(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, feed)

	byID := make(map[string]ResolvedFeedItem, len(feed))
	for _, item := range feed {
		byID[item.ID] = item
	}

	review := byID["feed1"]
	require.NotNil(t, review.Book)
	assert.Equal(t, "Gone Girl", review.Book.Title)

	challenge := byID["feed3"]
	require.NotNil(t, challenge.Challenge)
	assert.Equal(t, "2023 Reading Challenge", challenge.Challenge.Title)

	club := byID["feed4"]
	require.NotNil(t, club.Club)
	assert.Equal(t, "Literary Fiction Lovers", club.Club.Name)
	require.NotNil(t, club.Book)
	assert.Equal(t, "Piranesi", club.Book.Title)
}

func TestSocialServiceFeedToleratesMissingReferences(t *testing.T) {
	f := newSocialFixture(t)
	require.NoError(t, f.social.AddFeedItem(domain.FeedItem{
		ID:      "feed-stale",
		Kind:    domain.FeedKindReview,
		Content: domain.FeedContent{BookID: "book-gone"},
	}))

	feed, err := f.svc.Feed(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Nil(t, feed[0].Book, "missing reference resolves to nil, not an error")
}

func TestSocialServiceFeedToleratesMissingBadge(t *testing.T) {
	f := newSocialFixture(t)
	require.NoError(t, f.social.AddFeedItem(domain.FeedItem{
		ID:      "feed-stale",
		Kind:    domain.FeedKindBadge,
		Content: domain.FeedContent{BadgeID: "badge-gone"},
	}))

	feed, err := f.svc.Feed(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Nil(t, feed[0].Badge)
}

func TestSocialServicePostStampsAuthor(t *testing.T) {
	f := newSocialFixture(t)
	require.NoError(t, f.profile.SetUser(domain.User{ID: "user-1", Username: "booklover"}))

	item, err := f.svc.Post(context.Background(), PostInput{Kind: domain.FeedKindReview, Text: "Loved it", BookID: "book-1"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", item.UserID)
	assert.Equal(t, "booklover", item.Username)

	feed := f.social.Feed()
	require.Len(t, feed, 1)
	assert.Equal(t, item.ID, feed[0].ID)
}

func TestSocialServicePostValidatesKind(t *testing.T) {
	f := newSocialFixture(t)

	_, err := f.svc.Post(context.Background(), PostInput{Kind: domain.FeedKind("poll")})

	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestSocialServiceClubDetail(t *testing.T) {
	f := newSocialFixture(t)
	seedSocialFixture(t, f)

	detail, err := f.svc.Club(context.Background(), "club1")
	require.NoError(t, err)
	assert.Equal(t, "Literary Fiction Lovers", detail.Club.Name)
	assert.True(t, detail.IsMember)
	require.NotNil(t, detail.CurrentBook)
	assert.Equal(t, "Piranesi", detail.CurrentBook.Title)
	require.NotEmpty(t, detail.Discussions)
	assert.Equal(t, "discussion1", detail.Discussions[0].ID)
}

func TestSocialServiceClubNotFound(t *testing.T) {
	f := newSocialFixture(t)

	_, err := f.svc.Club(context.Background(), "club-missing")

	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestSocialServiceOpenDiscussionAndComment(t *testing.T) {
	f := newSocialFixture(t)
	seedSocialFixture(t, f)

	discussion, err := f.svc.OpenDiscussion(context.Background(), DiscussionInput{
		BookClubID: "club2",
		Title:      "March pick voting",
		Content:    "Drop your nominations below.",
	})
	require.NoError(t, err)
	assert.Equal(t, "user1", discussion.CreatedBy, "author comes from the seeded profile")

	comment, err := f.svc.Comment(context.Background(), CommentInput{
		DiscussionID: discussion.ID,
		Content:      "Seconding Circe!",
	})
	require.NoError(t, err)

	comments := f.social.Comments(discussion.ID)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)

	updated := f.social.DiscussionsForClub("club2")
	assert.Equal(t, discussion.ID, updated[0].ID, "new discussion is prepended")
	assert.Equal(t, 1, updated[0].CommentsCount)
}

func TestSocialServiceCommentValidates(t *testing.T) {
	f := newSocialFixture(t)

	_, err := f.svc.Comment(context.Background(), CommentInput{DiscussionID: "disc-1"})

	assert.ErrorIs(t, err, errors.ErrValidation)
}
