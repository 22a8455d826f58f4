package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestBookPatch_Apply_MergesNonNilFields(t *testing.T) {
	book := &Book{
		ID:            "book-1",
		Title:         "The Midnight Library",
		Author:        "Matt Haig",
		PublishedDate: time.Date(2020, time.August, 13, 0, 0, 0, 0, time.UTC),
		PageCount:     304,
		Genres:        []string{"Fiction"},
	}

	reissued := time.Date(2021, time.February, 2, 0, 0, 0, 0, time.UTC)
	patch := BookPatch{
		Title:         strPtr("The Midnight Library (Deluxe)"),
		PublishedDate: &reissued,
		PageCount:     intPtr(320),
	}
	patch.Apply(book)

	assert.Equal(t, "The Midnight Library (Deluxe)", book.Title)
	assert.Equal(t, reissued, book.PublishedDate)
	assert.Equal(t, 320, book.PageCount)
	assert.Equal(t, "Matt Haig", book.Author, "untouched fields survive")
	assert.Equal(t, []string{"Fiction"}, book.Genres)
}

func TestBookPatch_Apply_EmptyPatchIsNoop(t *testing.T) {
	book := &Book{ID: "book-1", Title: "Dune", Author: "Frank Herbert"}
	original := *book

	BookPatch{}.Apply(book)

	assert.Equal(t, original, *book)
}

func TestBookPatch_Apply_GenresCopied(t *testing.T) {
	genres := []string{"Sci-Fi", "Classic"}
	book := &Book{ID: "book-1"}

	BookPatch{Genres: &genres}.Apply(book)
	genres[0] = "mutated"

	assert.Equal(t, "Sci-Fi", book.Genres[0])
}

func TestBook_Clone_IsDeep(t *testing.T) {
	book := &Book{ID: "book-1", Genres: []string{"Fantasy"}}

	c := book.Clone()
	c.Genres[0] = "Horror"

	assert.Equal(t, "Fantasy", book.Genres[0])
}
