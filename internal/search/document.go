// Package search provides full-text catalogue search using Bleve.
// It backs the discover screen with fuzzy matching, prefix matching for
// as-you-type queries, and genre filtering.
package search

import (
	"github.com/bookishapp/bookish-core/internal/domain"
)

// BookDocument is the indexed shape of a catalogue book.
type BookDocument struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Description   string   `json:"description,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	PageCount     int      `json:"page_count,omitempty"`
	AverageRating float64  `json:"average_rating,omitempty"`
}

// ToMap converts the document to a map with lowercase field names so they
// match the index mapping. Bleve would otherwise index Go's capitalized
// struct field names.
func (d *BookDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":     d.ID,
		"title":  d.Title,
		"author": d.Author,
	}

	if d.Description != "" {
		m["description"] = d.Description
	}
	if len(d.Genres) > 0 {
		m["genres"] = d.Genres
	}
	if d.PageCount > 0 {
		m["page_count"] = d.PageCount
	}
	if d.AverageRating > 0 {
		m["average_rating"] = d.AverageRating
	}

	return m
}

// BookToDocument converts a catalogue book to its indexed shape.
func BookToDocument(book *domain.Book) *BookDocument {
	return &BookDocument{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		Description:   book.Description,
		Genres:        book.Genres,
		PageCount:     book.PageCount,
		AverageRating: book.AverageRating,
	}
}
