package domain

import "time"

// User is the local profile of the device owner. All data is single-user and
// local-only; there is no account system behind this.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	Bio            string    `json:"bio,omitempty"`
	ProfileImage   string    `json:"profile_image,omitempty"`
	FavoriteQuote  string    `json:"favorite_quote,omitempty"`
	BooksRead      int       `json:"books_read"`
	Following      int       `json:"following"`
	Followers      int       `json:"followers"`
	JoinDate       time.Time `json:"join_date"`
	FavoriteGenres []string  `json:"favorite_genres,omitempty"`
}

// UserPatch is a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	Username       *string   `json:"username,omitempty"`
	Name           *string   `json:"name,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	ProfileImage   *string   `json:"profile_image,omitempty"`
	FavoriteQuote  *string   `json:"favorite_quote,omitempty"`
	BooksRead      *int      `json:"books_read,omitempty"`
	FavoriteGenres *[]string `json:"favorite_genres,omitempty"`
}

// Apply merges the non-nil patch fields into the user.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.ProfileImage != nil {
		u.ProfileImage = *p.ProfileImage
	}
	if p.FavoriteQuote != nil {
		u.FavoriteQuote = *p.FavoriteQuote
	}
	if p.BooksRead != nil {
		u.BooksRead = *p.BooksRead
	}
	if p.FavoriteGenres != nil {
		u.FavoriteGenres = append([]string(nil), (*p.FavoriteGenres)...)
	}
}

// Clone returns a deep copy of the profile.
func (u *User) Clone() *User {
	c := *u
	c.FavoriteGenres = append([]string(nil), u.FavoriteGenres...)
	return &c
}
