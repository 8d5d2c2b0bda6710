package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNote_Defaults(t *testing.T) {
	before := Now()
	n := NewNote(NoteParams{BookID: "book-1", BookTitle: "Dune", Content: "Fear is the mind-killer."})

	assert.True(t, strings.HasPrefix(n.ID, "note-"))
	assert.Equal(t, "book-1", n.BookID)
	assert.Nil(t, n.PageNumber)
	assert.False(t, n.CreatedAt.Before(before))
	assert.Equal(t, n.CreatedAt, n.UpdatedAt)
}

func TestNewNote_KeepsGivenTimestamps(t *testing.T) {
	created := time.Date(2025, 12, 9, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	n := NewNote(NoteParams{ID: "note-1", BookID: "book-1", CreatedAt: created, UpdatedAt: updated})

	assert.Equal(t, "note-1", n.ID)
	assert.Equal(t, created, n.CreatedAt)
	assert.Equal(t, updated, n.UpdatedAt)
}

func TestNewNote_CopiesPageNumber(t *testing.T) {
	page := 42
	n := NewNote(NoteParams{BookID: "book-1", PageNumber: &page})
	page = 7

	require.True(t, n.HasPage())
	assert.Equal(t, 42, *n.PageNumber)
}

func TestNote_Clone(t *testing.T) {
	n := Note{ID: "note-1", PageNumber: Page(3)}
	c := n.Clone()
	*c.PageNumber = 9

	assert.Equal(t, 3, *n.PageNumber)
	assert.Nil(t, Note{}.Clone().PageNumber)
}

func TestNow_IsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Now().Location())
}
