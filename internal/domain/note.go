package domain

import (
	"time"

	"github.com/litnotes/litnotes/internal/id"
)

// Note is a free-text note attached to a book.
type Note struct {
	ID         string    `json:"id" validate:"required"`
	BookID     string    `json:"book_id" validate:"required"`
	BookTitle  string    `json:"book_title"` // Copied from the book at creation, never re-synced
	Content    string    `json:"content"`
	PageNumber *int      `json:"page_number,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NoteParams holds the client-supplied fields for NewNote.
type NoteParams struct {
	ID         string // Generated when empty
	BookID     string
	BookTitle  string
	Content    string
	PageNumber *int
	CreatedAt  time.Time // Defaults to now
	UpdatedAt  time.Time // Defaults to CreatedAt
}

// NewNote creates a note, generating its ID and timestamps unless given.
func NewNote(p NoteParams) Note {
	noteID := p.ID
	if noteID == "" {
		noteID = id.NewNoteID()
	}
	created := p.CreatedAt
	if created.IsZero() {
		created = Now()
	}
	updated := p.UpdatedAt
	if updated.IsZero() {
		updated = created
	}
	return Note{
		ID:         noteID,
		BookID:     p.BookID,
		BookTitle:  p.BookTitle,
		Content:    p.Content,
		PageNumber: clonePage(p.PageNumber),
		CreatedAt:  created,
		UpdatedAt:  updated,
	}
}

// HasPage reports whether the note is pinned to a page.
func (n Note) HasPage() bool {
	return n.PageNumber != nil
}

// Clone returns a copy that shares no memory with n.
func (n Note) Clone() Note {
	n.PageNumber = clonePage(n.PageNumber)
	return n
}

// Page returns a pointer to page, for building notes with a page number.
func Page(page int) *int {
	return &page
}

// Now returns the current time in UTC without a monotonic reading,
// so timestamps compare equal after a JSON round-trip.
func Now() time.Time {
	return time.Now().UTC()
}

func clonePage(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
