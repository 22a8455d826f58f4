package backup

import "time"

// FormatVersion is the backup format version. Increment major on breaking changes.
const FormatVersion = "1.0"

// Manifest describes backup contents and metadata.
type Manifest struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`

	// App build that wrote the backup
	AppVersion string `json:"app_version"`

	// Snapshot keys included in the archive
	Snapshots []string `json:"snapshots"`

	// Content summary
	Counts EntityCounts `json:"counts"`
}

// EntityCounts tracks entity counts for validation and progress reporting.
type EntityCounts struct {
	Books       int `json:"books"`
	UserBooks   int `json:"user_books"`
	FeedItems   int `json:"feed_items"`
	BookClubs   int `json:"book_clubs"`
	Discussions int `json:"discussions"`
	Comments    int `json:"comments"`
	Challenges  int `json:"challenges"`
	Badges      int `json:"badges"`
	Events      int `json:"events"`
	Users       int `json:"users"`
}

// Total sums every tracked collection.
func (c EntityCounts) Total() int {
	return c.Books + c.UserBooks + c.FeedItems + c.BookClubs + c.Discussions +
		c.Comments + c.Challenges + c.Badges + c.Events + c.Users
}
