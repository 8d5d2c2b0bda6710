// Package domain contains the core entities of the LitNotes reading tracker.
package domain

import "github.com/litnotes/litnotes/internal/id"

// Book is a catalogued book and the reader's progress through it.
type Book struct {
	ID            string  `json:"id" validate:"required"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Description   string  `json:"description"`
	CoverImage    string  `json:"cover_image"`
	Genre         string  `json:"genre"` // Matched case-sensitively against Genres
	Rating        float64 `json:"rating"`
	TotalPages    int     `json:"total_pages" validate:"gte=0"`
	CurrentPage   int     `json:"current_page"` // Not capped at TotalPages
	IsTrending    bool    `json:"is_trending"`
	PublishedYear int     `json:"published_year"`
}

// BookParams holds the client-supplied fields for NewBook.
type BookParams struct {
	ID            string // Generated when empty
	Title         string
	Author        string
	Description   string
	CoverImage    string
	Genre         string
	Rating        float64
	TotalPages    int
	CurrentPage   int
	IsTrending    bool
	PublishedYear int
}

// NewBook creates a book, generating its ID unless one is given.
func NewBook(p BookParams) Book {
	bookID := p.ID
	if bookID == "" {
		bookID = id.NewBookID()
	}
	return Book{
		ID:            bookID,
		Title:         p.Title,
		Author:        p.Author,
		Description:   p.Description,
		CoverImage:    p.CoverImage,
		Genre:         p.Genre,
		Rating:        p.Rating,
		TotalPages:    p.TotalPages,
		CurrentPage:   p.CurrentPage,
		IsTrending:    p.IsTrending,
		PublishedYear: p.PublishedYear,
	}
}

// Progress returns the fraction of the book read.
// Returns 0 when TotalPages is 0.
func (b Book) Progress() float64 {
	if b.TotalPages <= 0 {
		return 0
	}
	return float64(b.CurrentPage) / float64(b.TotalPages)
}

// ProgressPercent returns Progress as a truncated whole percentage.
func (b Book) ProgressPercent() int {
	return int(b.Progress() * 100)
}

// IsFinished reports whether the reader has reached the last page.
func (b Book) IsFinished() bool {
	return b.TotalPages > 0 && b.CurrentPage >= b.TotalPages
}

// IsValidProgress reports whether page is a sensible new current page for b.
// The repository accepts any value; presentation layers use this check
// before submitting a progress update.
func (b Book) IsValidProgress(page int) bool {
	return page > 0 && page <= b.TotalPages
}
