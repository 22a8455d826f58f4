package store

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/bookishapp/bookish-core/internal/domain"
	"github.com/bookishapp/bookish-core/internal/errors"
	"github.com/bookishapp/bookish-core/internal/kv"
	"github.com/bookishapp/bookish-core/internal/notify"
)

// socialSnapshot is the persisted shape of the social store.
type socialSnapshot struct {
	Feed        []domain.FeedItem   `json:"feed"`
	BookClubs   []domain.BookClub   `json:"book_clubs"`
	JoinedClubs domain.JoinedClubs  `json:"joined_clubs"`
	Discussions []domain.Discussion `json:"discussions"`
	Comments    []domain.Comment    `json:"comments"`
}

// Social owns the activity feed, book clubs, discussions and comments, plus
// the viewer's joined-club set.
type Social struct {
	mu          sync.RWMutex
	feed        []domain.FeedItem
	bookClubs   []domain.BookClub
	joinedClubs domain.JoinedClubs
	discussions []domain.Discussion
	comments    []domain.Comment

	writer   *snapshotWriter
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewSocial creates the social store, rehydrating any previous snapshot.
func NewSocial(adapter kv.Adapter, notifier notify.Notifier, logger *slog.Logger) *Social {
	var snap socialSnapshot
	rehydrate(adapter, kv.KeySocial, &snap, logger)

	return &Social{
		feed:        snap.Feed,
		bookClubs:   snap.BookClubs,
		joinedClubs: snap.JoinedClubs,
		discussions: snap.Discussions,
		comments:    snap.Comments,
		writer:      newSnapshotWriter(adapter, kv.KeySocial, logger),
		notifier:    notifier,
		logger:      logger,
	}
}

func (s *Social) persistLocked(op, entityID string) {
	s.writer.write(marshalSnapshot(socialSnapshot{
		Feed:        s.feed,
		BookClubs:   s.bookClubs,
		JoinedClubs: s.joinedClubs,
		Discussions: s.discussions,
		Comments:    s.comments,
	}))
	s.notifier.Publish(notify.Change{Store: kv.KeySocial, Op: op, EntityID: entityID})
}

func (s *Social) findFeedItemLocked(feedItemID string) *domain.FeedItem {
	for i := range s.feed {
		if s.feed[i].ID == feedItemID {
			return &s.feed[i]
		}
	}
	return nil
}

func (s *Social) findClubLocked(clubID string) *domain.BookClub {
	for i := range s.bookClubs {
		if s.bookClubs[i].ID == clubID {
			return &s.bookClubs[i]
		}
	}
	return nil
}

// AddFeedItem prepends an item so the feed stays most-recent-first.
func (s *Social) AddFeedItem(item domain.FeedItem) error {
	if !item.Kind.Valid() {
		return errors.Validationf("unknown feed kind %q", item.Kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findFeedItemLocked(item.ID) != nil {
		return errors.AlreadyExistsf("feed item %s already exists", item.ID)
	}

	s.feed = append([]domain.FeedItem{*item.Clone()}, s.feed...)
	s.persistLocked("add_feed_item", item.ID)
	return nil
}

// ToggleLike flips the viewer's liked flag on a feed item, moving the likes
// count with it.
func (s *Social) ToggleLike(feedItemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findFeedItemLocked(feedItemID)
	if item == nil {
		return errors.NotFoundf("feed item %s not found", feedItemID)
	}

	item.ToggleLike()
	s.persistLocked("toggle_like", feedItemID)
	return nil
}

// JoinBookClub adds the club to the viewer's joined set and bumps the member
// count. Joining a club already joined returns ErrConflict and changes nothing.
func (s *Social) JoinBookClub(clubID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	club := s.findClubLocked(clubID)
	if club == nil {
		return errors.NotFoundf("book club %s not found", clubID)
	}
	if !s.joinedClubs.Add(clubID) {
		return errors.Conflictf("already a member of book club %s", clubID)
	}

	club.MemberCount++
	s.persistLocked("join_book_club", clubID)
	return nil
}

// LeaveBookClub removes the club from the joined set and drops the member
// count. Leaving a club not joined returns ErrConflict and changes nothing,
// so the count can never go below the base membership.
func (s *Social) LeaveBookClub(clubID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	club := s.findClubLocked(clubID)
	if club == nil {
		return errors.NotFoundf("book club %s not found", clubID)
	}
	if !s.joinedClubs.Remove(clubID) {
		return errors.Conflictf("not a member of book club %s", clubID)
	}

	club.MemberCount--
	s.persistLocked("leave_book_club", clubID)
	return nil
}

// AddBookClub appends a club to the directory.
func (s *Social) AddBookClub(club domain.BookClub) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findClubLocked(club.ID) != nil {
		return errors.AlreadyExistsf("book club %s already exists", club.ID)
	}

	s.bookClubs = append(s.bookClubs, *club.Clone())
	s.persistLocked("add_book_club", club.ID)
	return nil
}

// AddDiscussion prepends a discussion so club pages show newest first.
// The referenced club must exist.
func (s *Social) AddDiscussion(discussion domain.Discussion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findClubLocked(discussion.BookClubID) == nil {
		return errors.NotFoundf("book club %s not found", discussion.BookClubID)
	}
	for i := range s.discussions {
		if s.discussions[i].ID == discussion.ID {
			return errors.AlreadyExistsf("discussion %s already exists", discussion.ID)
		}
	}

	s.discussions = append([]domain.Discussion{discussion}, s.discussions...)
	s.persistLocked("add_discussion", discussion.ID)
	return nil
}

// AddComment appends a comment. When the referenced discussion exists its
// comment count is incremented; when it does not, the comment is still stored
// and no counter moves.
func (s *Social) AddComment(comment domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.comments {
		if s.comments[i].ID == comment.ID {
			return errors.AlreadyExistsf("comment %s already exists", comment.ID)
		}
	}

	s.comments = append(s.comments, comment)
	for i := range s.discussions {
		if s.discussions[i].ID == comment.DiscussionID {
			s.discussions[i].CommentsCount++
			break
		}
	}
	s.persistLocked("add_comment", comment.ID)
	return nil
}

// Bootstrap populates the store from seed fixtures if it is empty.
func (s *Social) Bootstrap(feed []domain.FeedItem, clubs []domain.BookClub, joined domain.JoinedClubs, discussions []domain.Discussion, comments []domain.Comment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.feed) > 0 || len(s.bookClubs) > 0 || len(s.discussions) > 0 || len(s.comments) > 0 || len(s.joinedClubs) > 0 {
		return false
	}

	s.feed = make([]domain.FeedItem, 0, len(feed))
	for i := range feed {
		s.feed = append(s.feed, *feed[i].Clone())
	}
	s.bookClubs = make([]domain.BookClub, 0, len(clubs))
	for i := range clubs {
		s.bookClubs = append(s.bookClubs, *clubs[i].Clone())
	}
	s.joinedClubs = slices.Clone(joined)
	s.discussions = slices.Clone(discussions)
	s.comments = slices.Clone(comments)

	s.persistLocked("bootstrap", "")
	return true
}

// Feed returns the activity feed, most recent first.
func (s *Social) Feed() []domain.FeedItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.FeedItem, 0, len(s.feed))
	for i := range s.feed {
		out = append(out, *s.feed[i].Clone())
	}
	return out
}

// BookClubs returns the club directory in insertion order.
func (s *Social) BookClubs() []domain.BookClub {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.BookClub, 0, len(s.bookClubs))
	for i := range s.bookClubs {
		out = append(out, *s.bookClubs[i].Clone())
	}
	return out
}

// BookClub returns one club by id.
func (s *Social) BookClub(clubID string) (*domain.BookClub, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	club := s.findClubLocked(clubID)
	if club == nil {
		return nil, errors.NotFoundf("book club %s not found", clubID)
	}
	return club.Clone(), nil
}

// JoinedBookClubs returns the clubs the viewer has joined, in directory order.
func (s *Social) JoinedBookClubs() []domain.BookClub {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.BookClub
	for i := range s.bookClubs {
		if s.joinedClubs.Contains(s.bookClubs[i].ID) {
			out = append(out, *s.bookClubs[i].Clone())
		}
	}
	return out
}

// IsMember reports whether the viewer has joined the club.
func (s *Social) IsMember(clubID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.joinedClubs.Contains(clubID)
}

// Discussions returns all discussions, most recent first.
func (s *Social) Discussions() []domain.Discussion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.discussions)
}

// DiscussionsForClub returns the discussions of one club, most recent first.
func (s *Social) DiscussionsForClub(clubID string) []domain.Discussion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Discussion
	for i := range s.discussions {
		if s.discussions[i].BookClubID == clubID {
			out = append(out, s.discussions[i])
		}
	}
	return out
}

// Comments returns the comments of one discussion in insertion order.
func (s *Social) Comments(discussionID string) []domain.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Comment
	for i := range s.comments {
		if s.comments[i].DiscussionID == discussionID {
			out = append(out, s.comments[i])
		}
	}
	return out
}

// Flush blocks until pending snapshot writes have landed.
func (s *Social) Flush() {
	s.writer.flush()
}
