package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookishapp/bookish-core/internal/domain"
	domainerrors "github.com/bookishapp/bookish-core/internal/errors"
	"github.com/bookishapp/bookish-core/internal/id"
	"github.com/bookishapp/bookish-core/internal/store"
	"github.com/bookishapp/bookish-core/internal/validation"
)

// SocialService orchestrates the activity feed and book clubs. Feed items
// reference books, challenges, badges and clubs by id; this service resolves
// those references across stores at read time.
type SocialService struct {
	social     *store.Social
	library    *store.Library
	challenges *store.Challenges
	profile    *store.Profile
	validator  *validation.Validator
	logger     *slog.Logger
}

// NewSocialService creates a social service.
func NewSocialService(
	social *store.Social,
	library *store.Library,
	challenges *store.Challenges,
	profile *store.Profile,
	validator *validation.Validator,
	logger *slog.Logger,
) *SocialService {
	return &SocialService{
		social:     social,
		library:    library,
		challenges: challenges,
		profile:    profile,
		validator:  validator,
		logger:     logger,
	}
}

// ResolvedFeedItem is a feed item with its by-id references resolved.
// References to entities that no longer exist resolve to nil - the item
// still renders, just without the embedded card.
type ResolvedFeedItem struct {
	domain.FeedItem
	Book      *domain.Book             `json:"book,omitempty"`
	Challenge *domain.ReadingChallenge `json:"challenge,omitempty"`
	Badge     *domain.Badge            `json:"badge,omitempty"`
	Club      *domain.BookClub         `json:"club,omitempty"`
}

// Feed returns the activity feed with references resolved, most recent first.
func (s *SocialService) Feed(ctx context.Context) ([]ResolvedFeedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := s.social.Feed()
	out := make([]ResolvedFeedItem, 0, len(items))
	for i := range items {
		resolved := ResolvedFeedItem{FeedItem: items[i]}

		if bookID := items[i].Content.BookID; bookID != "" {
			if book, err := s.library.Book(bookID); err == nil {
				resolved.Book = book
			}
		}
		if challengeID := items[i].Content.ChallengeID; challengeID != "" {
			if challenge, err := s.challenges.Challenge(challengeID); err == nil {
				resolved.Challenge = challenge
			}
		}
		if badgeID := items[i].Content.BadgeID; badgeID != "" {
			if badge, err := s.badge(badgeID); err == nil {
				resolved.Badge = badge
			}
		}
		if clubID := items[i].Content.ClubID; clubID != "" {
			if club, err := s.social.BookClub(clubID); err == nil {
				resolved.Club = club
			}
		}

		out = append(out, resolved)
	}
	return out, nil
}

func (s *SocialService) badge(badgeID string) (*domain.Badge, error) {
	for _, b := range s.challenges.Badges() {
		if b.ID == badgeID {
			return &b, nil
		}
	}
	return nil, domainerrors.NotFoundf("badge %s not found", badgeID)
}

// PostInput is the validated payload for publishing a feed item. Exactly the
// fields matching the kind are used; author identity comes from the profile
// store when present.
type PostInput struct {
	Kind        domain.FeedKind `json:"kind" validate:"required,oneof=review progress challenge badge club"`
	Text        string          `json:"text" validate:"max=10000"`
	BookID      string          `json:"book_id"`
	Progress    *int            `json:"progress" validate:"omitempty,gte=0"`
	Rating      *float64        `json:"rating" validate:"omitempty,gte=0,lte=5"`
	ChallengeID string          `json:"challenge_id"`
	BadgeID     string          `json:"badge_id"`
	ClubID      string          `json:"club_id"`
}

// Post validates and publishes a feed item authored by the local user.
func (s *SocialService) Post(ctx context.Context, input PostInput) (*domain.FeedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	feedID, err := id.Generate(id.PrefixFeedItem)
	if err != nil {
		return nil, fmt.Errorf("generate feed item ID: %w", err)
	}

	item := domain.FeedItem{
		ID:        feedID,
		Kind:      input.Kind,
		Timestamp: time.Now(),
		Content: domain.FeedContent{
			Text:        input.Text,
			BookID:      input.BookID,
			Progress:    input.Progress,
			Rating:      input.Rating,
			ChallengeID: input.ChallengeID,
			BadgeID:     input.BadgeID,
			ClubID:      input.ClubID,
		},
	}

	if user, err := s.profile.User(); err == nil {
		item.UserID = user.ID
		item.Username = user.Username
		item.UserImage = user.ProfileImage
	}

	if err := s.social.AddFeedItem(item); err != nil {
		return nil, err
	}

	s.logger.Info("feed item posted", "feed_item_id", feedID, "kind", input.Kind)
	return &item, nil
}

// ClubDetail is the club page read model.
type ClubDetail struct {
	Club        domain.BookClub     `json:"club"`
	CurrentBook *domain.Book        `json:"current_book,omitempty"`
	Discussions []domain.Discussion `json:"discussions"`
	IsMember    bool                `json:"is_member"`
}

// Club returns the club page read model: the club, its current book when it
// still exists in the catalogue, its discussions, and viewer membership.
func (s *SocialService) Club(ctx context.Context, clubID string) (*ClubDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	club, err := s.social.BookClub(clubID)
	if err != nil {
		return nil, err
	}

	detail := &ClubDetail{
		Club:        *club,
		Discussions: s.social.DiscussionsForClub(clubID),
		IsMember:    s.social.IsMember(clubID),
	}

	if club.CurrentBookID != "" {
		if book, err := s.library.Book(club.CurrentBookID); err == nil {
			detail.CurrentBook = book
		}
	}

	return detail, nil
}

// DiscussionInput is the validated payload for opening a discussion.
type DiscussionInput struct {
	BookClubID string `json:"book_club_id" validate:"required"`
	BookID     string `json:"book_id"`
	Title      string `json:"title" validate:"required,max=256"`
	Content    string `json:"content" validate:"max=10000"`
}

// OpenDiscussion validates and creates a discussion in a club.
func (s *SocialService) OpenDiscussion(ctx context.Context, input DiscussionInput) (*domain.Discussion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	discussionID, err := id.Generate(id.PrefixDiscussion)
	if err != nil {
		return nil, fmt.Errorf("generate discussion ID: %w", err)
	}

	discussion := domain.Discussion{
		ID:         discussionID,
		BookClubID: input.BookClubID,
		BookID:     input.BookID,
		Title:      input.Title,
		Content:    input.Content,
		CreatedAt:  time.Now(),
	}
	if user, err := s.profile.User(); err == nil {
		discussion.CreatedBy = user.ID
	}

	if err := s.social.AddDiscussion(discussion); err != nil {
		return nil, err
	}

	s.logger.Info("discussion opened", "discussion_id", discussionID, "club_id", input.BookClubID)
	return &discussion, nil
}

// CommentInput is the validated payload for commenting on a discussion.
type CommentInput struct {
	DiscussionID string `json:"discussion_id" validate:"required"`
	Content      string `json:"content" validate:"required,max=10000"`
}

// Comment validates and adds a comment to a discussion.
func (s *SocialService) Comment(ctx context.Context, input CommentInput) (*domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	commentID, err := id.Generate(id.PrefixComment)
	if err != nil {
		return nil, fmt.Errorf("generate comment ID: %w", err)
	}

	comment := domain.Comment{
		ID:           commentID,
		DiscussionID: input.DiscussionID,
		Content:      input.Content,
		CreatedAt:    time.Now(),
	}
	if user, err := s.profile.User(); err == nil {
		comment.CreatedBy = user.ID
	}

	if err := s.social.AddComment(comment); err != nil {
		return nil, err
	}

	return &comment, nil
}
