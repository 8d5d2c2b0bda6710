// Package search maintains a full-text index over reading notes.
package search

import "github.com/litnotes/litnotes/internal/domain"

// NoteDocument is the indexed form of a note.
type NoteDocument struct {
	ID         string
	BookID     string
	BookTitle  string
	Content    string
	PageNumber *int
	CreatedAt  int64 // Unix milliseconds
}

// NoteToDocument converts a note to its indexed form.
func NoteToDocument(n domain.Note) NoteDocument {
	return NoteDocument{
		ID:         n.ID,
		BookID:     n.BookID,
		BookTitle:  n.BookTitle,
		Content:    n.Content,
		PageNumber: n.PageNumber,
		CreatedAt:  n.CreatedAt.UnixMilli(),
	}
}

// ToMap returns the field map handed to Bleve. Keys match the mapping.
func (d NoteDocument) ToMap() map[string]any {
	m := map[string]any{
		"book_id":    d.BookID,
		"book_title": d.BookTitle,
		"content":    d.Content,
		"created_at": float64(d.CreatedAt),
	}
	if d.PageNumber != nil {
		m["page_number"] = float64(*d.PageNumber)
	}
	return m
}
