// Package seed provides demo fixtures and first-run population of the
// engine's stores. Seeding only touches stores that are empty, so user data
// is never overwritten by fixtures.
package seed

import (
	"log/slog"
	"time"

	"github.com/bookishapp/bookish-core/internal/domain"
	"github.com/bookishapp/bookish-core/internal/store"
)

// Stores holds the containers Load populates.
type Stores struct {
	Library    *store.Library
	Social     *store.Social
	Challenges *store.Challenges
	Profile    *store.Profile
}

// Load bootstraps all empty stores with demo fixtures. Stores that already
// hold data are left alone. Returns the number of stores seeded.
func Load(stores Stores, logger *slog.Logger) int {
	seeded := 0

	if stores.Library != nil && stores.Library.Bootstrap(Books(), UserBooks()) {
		seeded++
	}
	if stores.Social != nil && stores.Social.Bootstrap(FeedItems(), BookClubs(), JoinedClubs(), Discussions(), nil) {
		seeded++
	}
	if stores.Challenges != nil && stores.Challenges.Bootstrap(ReadingChallenges(), Badges(), Events()) {
		seeded++
	}
	if stores.Profile != nil && !stores.Profile.HasUser() {
		if err := stores.Profile.SetUser(CurrentUser()); err == nil {
			seeded++
		}
	}

	if logger != nil && seeded > 0 {
		logger.Info("seeded demo fixtures", "stores", seeded)
	}
	return seeded
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func timestamp(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// Books returns the demo catalogue.
func Books() []domain.Book {
	return []domain.Book{
		{
			ID:            "book1",
			Title:         "The Name of the Wind",
			Author:        "Patrick Rothfuss",
			CoverImage:    "https://images.unsplash.com/photo-1629992101753-56d196c8aabb?auto=format&fit=crop&w=256&q=80",
			Description:   "The tale of Kvothe, from his childhood in a troupe of traveling players to years spent as a near-feral orphan in a crime-riddled city.",
			PublishedDate: date(2007, time.March, 27),
			Genres:        []string{"Fantasy"},
			PageCount:     662,
			AverageRating: 4.5,
			RatingsCount:  892341,
		},
		{
			ID:            "book2",
			Title:         "Project Hail Mary",
			Author:        "Andy Weir",
			CoverImage:    "https://images.unsplash.com/photo-1589998059171-988d887df646?auto=format&fit=crop&w=256&q=80",
			Description:   "A lone astronaut must save the earth from disaster in this cinematic thriller full of suspense, humor, and fascinating science.",
			PublishedDate: date(2021, time.May, 4),
			Genres:        []string{"Science Fiction"},
			PageCount:     476,
			AverageRating: 4.8,
			RatingsCount:  423118,
		},
		{
			ID:            "book3",
			Title:         "Piranesi",
			Author:        "Susanna Clarke",
			CoverImage:    "https://images.unsplash.com/photo-1544947950-fa07a98d237f?auto=format&fit=crop&w=256&q=80",
			Description:   "Piranesi lives in the House. Perhaps he always has. In his notebooks, day after day, he makes a clear and careful record of its wonders.",
			PublishedDate: date(2020, time.September, 15),
			Genres:        []string{"Fantasy", "Literary Fiction"},
			PageCount:     245,
			AverageRating: 4.2,
			RatingsCount:  310774,
		},
		{
			ID:            "book4",
			Title:         "Gone Girl",
			Author:        "Gillian Flynn",
			CoverImage:    "https://images.unsplash.com/photo-1512820790803-83ca734da794?auto=format&fit=crop&w=256&q=80",
			Description:   "On a warm summer morning in North Carthage, Missouri, it is Nick and Amy Dunne's fifth wedding anniversary. Then Amy disappears.",
			PublishedDate: date(2012, time.June, 5),
			Genres:        []string{"Mystery", "Thriller"},
			PageCount:     419,
			AverageRating: 4.0,
			RatingsCount:  2541120,
		},
		{
			ID:            "book5",
			Title:         "Circe",
			Author:        "Madeline Miller",
			CoverImage:    "https://images.unsplash.com/photo-1528459801416-a9e53bbf4e17?auto=format&fit=crop&w=256&q=80",
			Description:   "In the house of Helios, god of the sun and mightiest of the Titans, a daughter is born. But Circe is a strange child.",
			PublishedDate: date(2018, time.April, 10),
			Genres:        []string{"Fantasy", "Historical Fiction"},
			PageCount:     393,
			AverageRating: 4.3,
			RatingsCount:  1102445,
		},
	}
}

// UserBooks returns the demo tracking records for the current user.
func UserBooks() []domain.UserBook {
	started := date(2023, time.February, 10)
	finished := date(2023, time.January, 28)
	rating := 5.0

	return []domain.UserBook{
		{
			ID:          "userbook1",
			BookID:      "book1",
			UserID:      "user1",
			Status:      domain.StatusReading,
			CurrentPage: 213,
			StartDate:   &started,
		},
		{
			ID:          "userbook2",
			BookID:      "book2",
			UserID:      "user1",
			Status:      domain.StatusCompleted,
			CurrentPage: 476,
			FinishDate:  &finished,
			Rating:      &rating,
			Review: &domain.Review{
				Text:             "Grabbed me from the first page and never let go. Rocky is the best character I have read in years.",
				ContainsSpoilers: false,
				CreatedAt:        finished,
			},
		},
		{
			ID:     "userbook3",
			BookID: "book3",
			UserID: "user1",
			Status: domain.StatusToRead,
		},
		{
			ID:           "userbook4",
			BookID:       "book5",
			UserID:       "user1",
			Status:       domain.StatusToRead,
			IsWishlisted: true,
		},
	}
}

// FeedItems returns the demo activity feed, most recent first.
func FeedItems() []domain.FeedItem {
	progress := 45
	rating := 4.5

	return []domain.FeedItem{
		{
			ID:        "feed1",
			Kind:      domain.FeedKindReview,
			UserID:    "user2",
			Username:  "literary_sophie",
			UserImage: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?auto=format&fit=crop&w=256&q=80",
			Timestamp: timestamp("2023-03-12T18:24:00Z"),
			Content: domain.FeedContent{
				Text:   "A masterclass in unreliable narration. I could not put it down.",
				BookID: "book4",
				Rating: &rating,
			},
			LikesCount:    24,
			CommentsCount: 6,
		},
		{
			ID:        "feed2",
			Kind:      domain.FeedKindProgress,
			UserID:    "user3",
			Username:  "bookish_maya",
			UserImage: "https://images.unsplash.com/photo-1534528741775-53994a69daeb?auto=format&fit=crop&w=256&q=80",
			Timestamp: timestamp("2023-03-12T14:02:00Z"),
			Content: domain.FeedContent{
				BookID:   "book1",
				Progress: &progress,
			},
			LikesCount: 8,
		},
		{
			ID:        "feed3",
			Kind:      domain.FeedKindChallenge,
			UserID:    "user4",
			Username:  "readwithlaura",
			UserImage: "https://images.unsplash.com/photo-1531123897727-8f129e1688ce?auto=format&fit=crop&w=256&q=80",
			Timestamp: timestamp("2023-03-11T09:47:00Z"),
			Content: domain.FeedContent{
				Text:        "Halfway through my yearly challenge already!",
				ChallengeID: "challenge1",
			},
			LikesCount:    31,
			CommentsCount: 4,
		},
		{
			ID:        "feed4",
			Kind:      domain.FeedKindClub,
			UserID:    "user2",
			Username:  "literary_sophie",
			UserImage: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?auto=format&fit=crop&w=256&q=80",
			Timestamp: timestamp("2023-03-10T20:15:00Z"),
			Content: domain.FeedContent{
				Text:   "Our next pick is Piranesi. Join us!",
				ClubID: "club1",
				BookID: "book3",
			},
			LikesCount: 17,
		},
	}
}

// BookClubs returns the demo club directory.
func BookClubs() []domain.BookClub {
	return []domain.BookClub{
		{
			ID:            "club1",
			Name:          "Literary Fiction Lovers",
			Description:   "Monthly deep dives into contemporary and classic literary fiction.",
			CoverImage:    "https://images.unsplash.com/photo-1507842217343-583bb7270b66?auto=format&fit=crop&w=512&q=80",
			MemberCount:   127,
			CurrentBookID: "book3",
			CreatedBy:     "user2",
			CreatedAt:     date(2022, time.May, 3),
		},
		{
			ID:              "club2",
			Name:            "Fantasy Readers United",
			Description:     "From epic doorstoppers to cozy fantasy, we read it all.",
			CoverImage:      "https://images.unsplash.com/photo-1518709268805-4e9042af9f23?auto=format&fit=crop&w=512&q=80",
			MemberCount:     243,
			CurrentBookID:   "book1",
			UpcomingBookIDs: []string{"book5"},
			CreatedBy:       "user3",
			CreatedAt:       date(2022, time.August, 19),
		},
		{
			ID:          "club3",
			Name:        "Thriller Thursdays",
			Description: "A new thriller every month, discussed chapter by chapter.",
			CoverImage:  "https://images.unsplash.com/photo-1512820790803-83ca734da794?auto=format&fit=crop&w=512&q=80",
			MemberCount: 89,
			IsPrivate:   true,
			CreatedBy:   "user4",
			CreatedAt:   date(2023, time.January, 12),
		},
	}
}

// JoinedClubs returns the clubs the demo user has joined.
func JoinedClubs() domain.JoinedClubs {
	return domain.JoinedClubs{"club1", "club2"}
}

// Discussions returns the demo discussions, most recent first.
func Discussions() []domain.Discussion {
	return []domain.Discussion{
		{
			ID:            "discussion1",
			BookClubID:    "club1",
			BookID:        "book3",
			Title:         "Piranesi week 1: the House",
			Content:       "What did everyone make of the statues? No spoilers past part two please.",
			CreatedBy:     "user2",
			CreatedAt:     timestamp("2023-03-10T21:00:00Z"),
			CommentsCount: 12,
			LikesCount:    9,
		},
		{
			ID:            "discussion2",
			BookClubID:    "club2",
			BookID:        "book1",
			Title:         "Kvothe: genius or unreliable braggart?",
			Content:       "He narrates his own legend. How much do we believe?",
			CreatedBy:     "user3",
			CreatedAt:     timestamp("2023-03-08T16:30:00Z"),
			CommentsCount: 27,
			LikesCount:    15,
		},
	}
}

// ReadingChallenges returns the demo challenges.
func ReadingChallenges() []domain.ReadingChallenge {
	return []domain.ReadingChallenge{
		{
			ID:          "challenge1",
			Title:       "2023 Reading Challenge",
			Description: "Read 50 books in 2023",
			Target:      50,
			Progress:    12,
			StartDate:   date(2023, time.January, 1),
			EndDate:     date(2023, time.December, 31),
		},
		{
			ID:          "challenge2",
			Title:       "Genre Explorer",
			Description: "Read books from 10 different genres",
			Target:      10,
			Progress:    4,
			StartDate:   date(2023, time.January, 15),
			EndDate:     date(2023, time.December, 31),
		},
		{
			ID:          "challenge3",
			Title:       "Classics Club",
			Description: "Read 5 classic novels",
			Target:      5,
			Progress:    1,
			StartDate:   date(2023, time.February, 1),
			EndDate:     date(2023, time.December, 31),
		},
	}
}

// Badges returns the demo badges.
func Badges() []domain.Badge {
	bookworm := date(2022, time.December, 15)
	nightOwl := date(2023, time.January, 20)
	explorer := date(2023, time.February, 5)

	return []domain.Badge{
		{
			ID:          "badge1",
			Title:       "Bookworm",
			Description: "Read 10 books",
			Icon:        "📚",
			IsUnlocked:  true,
			UnlockedAt:  &bookworm,
		},
		{
			ID:          "badge2",
			Title:       "Night Owl",
			Description: "Log reading sessions after midnight 5 times",
			Icon:        "🦉",
			IsUnlocked:  true,
			UnlockedAt:  &nightOwl,
		},
		{
			ID:          "badge3",
			Title:       "Genre Explorer",
			Description: "Read books from 5 different genres",
			Icon:        "🧭",
			IsUnlocked:  true,
			UnlockedAt:  &explorer,
		},
		{
			ID:          "badge4",
			Title:       "Reviewer",
			Description: "Write 10 book reviews",
			Icon:        "✍️",
		},
		{
			ID:          "badge5",
			Title:       "Book Club Enthusiast",
			Description: "Join 3 book clubs",
			Icon:        "👥",
		},
	}
}

// Events returns the demo community events.
func Events() []domain.Event {
	return []domain.Event{
		{
			ID:                "event1",
			Title:             "Spring 24-Hour Readathon",
			Description:       "Join us for a full day of reading! Share your progress, participate in mini-challenges, and connect with other readers.",
			StartDate:         timestamp("2023-04-15T08:00:00Z"),
			EndDate:           timestamp("2023-04-16T08:00:00Z"),
			CoverImage:        "https://images.unsplash.com/photo-1506880018603-83d5b814b5a6?auto=format&fit=crop&w=512&q=80",
			ParticipantsCount: 156,
			IsParticipating:   true,
		},
		{
			ID:                "event2",
			Title:             "Fantasy February",
			Description:       "A month-long celebration of fantasy books. Read as many fantasy books as you can and participate in themed discussions.",
			StartDate:         timestamp("2023-02-01T00:00:00Z"),
			EndDate:           timestamp("2023-02-28T23:59:59Z"),
			CoverImage:        "https://images.unsplash.com/photo-1518709268805-4e9042af9f23?auto=format&fit=crop&w=512&q=80",
			ParticipantsCount: 243,
			IsParticipating:   true,
		},
		{
			ID:          "event3",
			Title:       "Summer Reading Bingo",
			Description: "Complete reading challenges to fill your bingo card and win prizes!",
			StartDate:   timestamp("2023-06-01T00:00:00Z"),
			EndDate:     timestamp("2023-08-31T23:59:59Z"),
			CoverImage:  "https://images.unsplash.com/photo-1473186578172-c141e6798cf4?auto=format&fit=crop&w=512&q=80",
		},
	}
}

// CurrentUser returns the demo local profile.
func CurrentUser() domain.User {
	return domain.User{
		ID:            "user1",
		Username:      "bookworm_emma",
		Name:          "Emma Wilson",
		Bio:           "Book lover, tea drinker, and aspiring writer. I read mostly fantasy and literary fiction.",
		ProfileImage:  "https://images.unsplash.com/photo-1494790108377-be9c29b29330?auto=format&fit=crop&w=256&q=80",
		FavoriteQuote: `"A reader lives a thousand lives before he dies." - George R.R. Martin`,
		BooksRead:     87,
		Following:     142,
		Followers:     98,
		JoinDate:      date(2022, time.March, 15),
		FavoriteGenres: []string{
			"Fantasy", "Literary Fiction", "Historical Fiction",
		},
	}
}
