package domain

import (
	"slices"
	"time"
)

// FeedKind discriminates the five feed item variants.
type FeedKind string

const (
	FeedKindReview    FeedKind = "review"
	FeedKindProgress  FeedKind = "progress"
	FeedKindChallenge FeedKind = "challenge"
	FeedKindBadge     FeedKind = "badge"
	FeedKindClub      FeedKind = "club"
)

// Valid checks if the kind is one of the five known variants.
func (k FeedKind) Valid() bool {
	switch k {
	case FeedKindReview, FeedKindProgress, FeedKindChallenge, FeedKindBadge, FeedKindClub:
		return true
	default:
		return false
	}
}

// FeedContent is the per-kind payload of a feed item. Referenced entities are
// carried by id and resolved at read time - never embedded live copies.
type FeedContent struct {
	Text        string   `json:"text,omitempty"`
	BookID      string   `json:"book_id,omitempty"`
	Progress    *int     `json:"progress,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ChallengeID string   `json:"challenge_id,omitempty"`
	BadgeID     string   `json:"badge_id,omitempty"`
	ClubID      string   `json:"club_id,omitempty"`
}

// FeedItem is one entry in the reverse-chronological social feed.
// Author info is denormalized for fast feed rendering without joins.
type FeedItem struct {
	ID            string      `json:"id"`
	Kind          FeedKind    `json:"kind"`
	UserID        string      `json:"user_id"`
	Username      string      `json:"username"`
	UserImage     string      `json:"user_image,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
	Content       FeedContent `json:"content"`
	LikesCount    int         `json:"likes_count"`
	CommentsCount int         `json:"comments_count"`
	IsLiked       bool        `json:"is_liked"`
}

// ToggleLike flips the viewer's liked flag and adjusts the likes count in the
// same step. The two fields are never settable independently, so flag and
// counter cannot drift apart.
func (f *FeedItem) ToggleLike() {
	if f.IsLiked {
		f.IsLiked = false
		f.LikesCount--
	} else {
		f.IsLiked = true
		f.LikesCount++
	}
}

// Clone returns a deep copy of the feed item.
func (f *FeedItem) Clone() *FeedItem {
	cp := *f
	if f.Content.Progress != nil {
		p := *f.Content.Progress
		cp.Content.Progress = &p
	}
	if f.Content.Rating != nil {
		r := *f.Content.Rating
		cp.Content.Rating = &r
	}
	return &cp
}

// BookClub is a reading group. Viewer membership is tracked separately as a
// joined-club id set owned by the viewing user, not per-club.
type BookClub struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	CoverImage      string    `json:"cover_image,omitempty"`
	MemberCount     int       `json:"member_count"`
	CurrentBookID   string    `json:"current_book_id,omitempty"`
	UpcomingBookIDs []string  `json:"upcoming_book_ids,omitempty"`
	IsPrivate       bool      `json:"is_private"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// Clone returns a deep copy of the club.
func (c *BookClub) Clone() *BookClub {
	cp := *c
	cp.UpcomingBookIDs = append([]string(nil), c.UpcomingBookIDs...)
	return &cp
}

// Discussion belongs to exactly one book club and optionally references a book.
type Discussion struct {
	ID            string    `json:"id"`
	BookClubID    string    `json:"book_club_id"`
	BookID        string    `json:"book_id,omitempty"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	CommentsCount int       `json:"comments_count"`
	LikesCount    int       `json:"likes_count"`
}

// Comment belongs to exactly one discussion. The comment list is append-only.
type Comment struct {
	ID           string    `json:"id"`
	DiscussionID string    `json:"discussion_id"`
	Content      string    `json:"content"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	LikesCount   int       `json:"likes_count"`
}

// JoinedClubs is the viewer's set of joined club ids. The set is the single
// source of truth for viewer membership; member counters follow it.
type JoinedClubs []string

// Contains checks membership.
func (j JoinedClubs) Contains(clubID string) bool {
	return slices.Contains(j, clubID)
}

// Add appends the club id. Returns false if already present.
func (j *JoinedClubs) Add(clubID string) bool {
	if j.Contains(clubID) {
		return false
	}
	*j = append(*j, clubID)
	return true
}

// Remove deletes the club id. Returns false if not present.
func (j *JoinedClubs) Remove(clubID string) bool {
	for i, jid := range *j {
		if jid == clubID {
			*j = append((*j)[:i], (*j)[i+1:]...)
			return true
		}
	}
	return false
}
