package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookishapp/bookish-core/internal/domain"
	"github.com/bookishapp/bookish-core/internal/errors"
	"github.com/bookishapp/bookish-core/internal/kv"
	"github.com/bookishapp/bookish-core/internal/logger"
	"github.com/bookishapp/bookish-core/internal/notify"
)

func newTestSocial(t *testing.T) (*Social, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	s := NewSocial(mem, notify.NewNoop(), logger.Discard().Logger)
	t.Cleanup(s.Flush)
	return s, mem
}

func seedClub(t *testing.T, s *Social, id string) {
	t.Helper()
	require.NoError(t, s.AddBookClub(domain.BookClub{ID: id, Name: "Fantasy Book Club", MemberCount: 10, CreatedBy: "user-2", CreatedAt: time.Now()}))
}

func TestSocialFeedIsMostRecentFirst(t *testing.T) {
	s, _ := newTestSocial(t)

	require.NoError(t, s.AddFeedItem(domain.FeedItem{ID: "feed-1", Kind: domain.FeedKindReview, UserID: "user-2"}))
	require.NoError(t, s.AddFeedItem(domain.FeedItem{ID: "feed-2", Kind: domain.FeedKindProgress, UserID: "user-3"}))

	feed := s.Feed()
	require.Len(t, feed, 2)
	assert.Equal(t, "feed-2", feed[0].ID)
	assert.Equal(t, "feed-1", feed[1].ID)
}

func TestSocialAddFeedItemValidatesKind(t *testing.T) {
	s, _ := newTestSocial(t)

	err := s.AddFeedItem(domain.FeedItem{ID: "feed-1", Kind: domain.FeedKind("poll")})

	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestSocialToggleLikeInvolution(t *testing.T) {
	s, _ := newTestSocial(t)
	require.NoError(t, s.AddFeedItem(domain.FeedItem{ID: "feed-1", Kind: domain.FeedKindReview, LikesCount: 12}))

	require.NoError(t, s.ToggleLike("feed-1"))
	feed := s.Feed()
	assert.True(t, feed[0].IsLiked)
	assert.Equal(t, 13, feed[0].LikesCount)

	require.NoError(t, s.ToggleLike("feed-1"))
	feed = s.Feed()
	assert.False(t, feed[0].IsLiked)
	assert.Equal(t, 12, feed[0].LikesCount)
}

func TestSocialToggleLikeNotFound(t *testing.T) {
	s, _ := newTestSocial(t)

	assert.ErrorIs(t, s.ToggleLike("feed-missing"), errors.ErrNotFound)
}

func TestSocialJoinAndLeaveBookClub(t *testing.T) {
	s, _ := newTestSocial(t)
	seedClub(t, s, "club-1")

	require.NoError(t, s.JoinBookClub("club-1"))
	club, err := s.BookClub("club-1")
	require.NoError(t, err)
	assert.Equal(t, 11, club.MemberCount)
	assert.True(t, s.IsMember("club-1"))

	require.NoError(t, s.LeaveBookClub("club-1"))
	club, err = s.BookClub("club-1")
	require.NoError(t, err)
	assert.Equal(t, 10, club.MemberCount)
	assert.False(t, s.IsMember("club-1"))
}

func TestSocialDoubleJoinIsConflict(t *testing.T) {
	s, _ := newTestSocial(t)
	seedClub(t, s, "club-1")
	require.NoError(t, s.JoinBookClub("club-1"))

	err := s.JoinBookClub("club-1")

	assert.ErrorIs(t, err, errors.ErrConflict)
	club, cerr := s.BookClub("club-1")
	require.NoError(t, cerr)
	assert.Equal(t, 11, club.MemberCount, "conflicting join leaves the count untouched")
}

func TestSocialLeaveWithoutJoinIsConflict(t *testing.T) {
	s, _ := newTestSocial(t)
	seedClub(t, s, "club-1")

	err := s.LeaveBookClub("club-1")

	assert.ErrorIs(t, err, errors.ErrConflict)
	club, cerr := s.BookClub("club-1")
	require.NoError(t, cerr)
	assert.Equal(t, 10, club.MemberCount, "the base member count never drops below its seed value")
}

func TestSocialJoinedBookClubs(t *testing.T) {
	s, _ := newTestSocial(t)
	seedClub(t, s, "club-1")
	require.NoError(t, s.AddBookClub(domain.BookClub{ID: "club-2", Name: "Sci-Fi Circle"}))
	require.NoError(t, s.JoinBookClub("club-2"))

	joined := s.JoinedBookClubs()
	require.Len(t, joined, 1)
	assert.Equal(t, "club-2", joined[0].ID)
}

func TestSocialDiscussionsPrependAndFilter(t *testing.T) {
	s, _ := newTestSocial(t)
	seedClub(t, s, "club-1")
	seedClub(t, s, "club-2")

	require.NoError(t, s.AddDiscussion(domain.Discussion{ID: "disc-1", BookClubID: "club-1", Title: "Week 1 thread"}))
	require.NoError(t, s.AddDiscussion(domain.Discussion{ID: "disc-2", BookClubID: "club-1", Title: "Week 2 thread"}))
	require.NoError(t, s.AddDiscussion(domain.Discussion{ID: "disc-3", BookClubID: "club-2", Title: "Kickoff"}))

	all := s.Discussions()
	require.Len(t, all, 3)
	assert.Equal(t, "disc-3", all[0].ID)

	clubOne := s.DiscussionsForClub("club-1")
	require.Len(t, clubOne, 2)
	assert.Equal(t, "disc-2", clubOne[0].ID)
	assert.Equal(t, "disc-1", clubOne[1].ID)
}

func TestSocialAddDiscussionRequiresClub(t *testing.T) {
	s, _ := newTestSocial(t)

	err := s.AddDiscussion(domain.Discussion{ID: "disc-1", BookClubID: "club-missing"})

	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestSocialAddCommentIncrementsDiscussionCount(t *testing.T) {
	s, _ := newTestSocial(t)
	seedClub(t, s, "club-1")
	require.NoError(t, s.AddDiscussion(domain.Discussion{ID: "disc-1", BookClubID: "club-1"}))

	require.NoError(t, s.AddComment(domain.Comment{ID: "cmt-1", DiscussionID: "disc-1", Content: "First!"}))
	require.NoError(t, s.AddComment(domain.Comment{ID: "cmt-2", DiscussionID: "disc-1", Content: "Agreed."}))

	discussions := s.DiscussionsForClub("club-1")
	require.Len(t, discussions, 1)
	assert.Equal(t, 2, discussions[0].CommentsCount)

	comments := s.Comments("disc-1")
	require.Len(t, comments, 2)
	assert.Equal(t, "cmt-1", comments[0].ID, "comments stay in insertion order")
}

func TestSocialOrphanedCommentIsKept(t *testing.T) {
	s, _ := newTestSocial(t)

	require.NoError(t, s.AddComment(domain.Comment{ID: "cmt-1", DiscussionID: "disc-missing", Content: "lost thread"}))

	comments := s.Comments("disc-missing")
	require.Len(t, comments, 1)
	assert.Equal(t, "cmt-1", comments[0].ID)
}

func TestSocialReadsReturnCopies(t *testing.T) {
	s, _ := newTestSocial(t)
	progress := 45
	require.NoError(t, s.AddFeedItem(domain.FeedItem{ID: "feed-1", Kind: domain.FeedKindProgress, Content: domain.FeedContent{BookID: "book-1", Progress: &progress}}))

	feed := s.Feed()
	*feed[0].Content.Progress = 99
	feed[0].LikesCount = 1000

	again := s.Feed()
	assert.Equal(t, 45, *again[0].Content.Progress)
	assert.Equal(t, 0, again[0].LikesCount)
}

func TestSocialPersistsAndRehydrates(t *testing.T) {
	mem := kv.NewMemory()
	s := NewSocial(mem, notify.NewNoop(), logger.Discard().Logger)
	seedClub(t, s, "club-1")
	require.NoError(t, s.JoinBookClub("club-1"))
	s.Flush()

	reopened := NewSocial(mem, notify.NewNoop(), logger.Discard().Logger)
	t.Cleanup(reopened.Flush)

	assert.True(t, reopened.IsMember("club-1"))
	club, err := reopened.BookClub("club-1")
	require.NoError(t, err)
	assert.Equal(t, 11, club.MemberCount)
}

func TestSocialBootstrapOnlyWhenEmpty(t *testing.T) {
	s, _ := newTestSocial(t)

	clubs := []domain.BookClub{{ID: "club-1", Name: "Fantasy Book Club"}}
	assert.True(t, s.Bootstrap(nil, clubs, domain.JoinedClubs{"club-1"}, nil, nil))
	assert.False(t, s.Bootstrap(nil, clubs, nil, nil, nil))
	assert.True(t, s.IsMember("club-1"))
}
