// Package domain contains the core business entities and domain logic for the Bookish reading tracker.
package domain

import "time"

// Book represents a catalogue record. Books are created by catalogue seeding
// or an explicit add and rarely change afterwards.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	CoverImage    string    `json:"cover_image,omitempty"`
	Description   string    `json:"description,omitempty"`
	PublishedDate time.Time `json:"published_date"`
	Genres        []string  `json:"genres,omitempty"`
	PageCount     int       `json:"page_count"`
	AverageRating float64   `json:"average_rating"`
	RatingsCount  int       `json:"ratings_count"`
}

// BookPatch is a partial update to a catalogue book.
// Nil fields are left untouched.
type BookPatch struct {
	Title         *string    `json:"title,omitempty"`
	Author        *string    `json:"author,omitempty"`
	CoverImage    *string    `json:"cover_image,omitempty"`
	Description   *string    `json:"description,omitempty"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	Genres        *[]string  `json:"genres,omitempty"`
	PageCount     *int       `json:"page_count,omitempty"`
	AverageRating *float64   `json:"average_rating,omitempty"`
	RatingsCount  *int       `json:"ratings_count,omitempty"`
}

// Apply merges the non-nil patch fields into the book.
func (p BookPatch) Apply(b *Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.CoverImage != nil {
		b.CoverImage = *p.CoverImage
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.PublishedDate != nil {
		b.PublishedDate = *p.PublishedDate
	}
	if p.Genres != nil {
		b.Genres = append([]string(nil), (*p.Genres)...)
	}
	if p.PageCount != nil {
		b.PageCount = *p.PageCount
	}
	if p.AverageRating != nil {
		b.AverageRating = *p.AverageRating
	}
	if p.RatingsCount != nil {
		b.RatingsCount = *p.RatingsCount
	}
}

// Clone returns a deep copy of the book.
func (b *Book) Clone() *Book {
	c := *b
	c.Genres = append([]string(nil), b.Genres...)
	return &c
}
