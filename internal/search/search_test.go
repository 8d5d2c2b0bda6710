package search

import (
	"context"
	"testing"
	"time"

	"github.com/litnotes/litnotes/internal/domain"
	"github.com/litnotes/litnotes/internal/library"
	"github.com/litnotes/litnotes/internal/notify"
	"github.com/litnotes/litnotes/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestIndex(t *testing.T) *NoteIndex {
	t.Helper()
	index, err := NewNoteIndex(Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	return index
}

func sampleNotes() []domain.Note {
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	return []domain.Note{
		{ID: "note-1", BookID: "book-dune", BookTitle: "Dune", Content: "The spice must flow", CreatedAt: base},
		{ID: "note-2", BookID: "book-dune", BookTitle: "Dune", Content: "Fear is the mind-killer", PageNumber: domain.Page(8), CreatedAt: base.Add(time.Hour)},
		{ID: "note-3", BookID: "book-hobbit", BookTitle: "The Hobbit", Content: "Dragons hoard treasure", CreatedAt: base.Add(2 * time.Hour)},
	}
}

func hitIDs(r *Result) []string {
	out := make([]string, len(r.Hits))
	for i, h := range r.Hits {
		out[i] = h.ID
	}
	return out
}

func TestNewNoteIndex(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestNoteIndex_Rebuild(t *testing.T) {
	index := setupTestIndex(t)

	require.NoError(t, index.Rebuild(sampleNotes()))
	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	require.NoError(t, index.Rebuild(sampleNotes()[:1]))
	count, err = index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestNoteIndex_SearchContent(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.Rebuild(sampleNotes()))

	res, err := index.Search(context.Background(), Params{Query: "dragon"})
	require.NoError(t, err)

	// English stemming matches "Dragons".
	assert.Equal(t, []string{"note-3"}, hitIDs(res))
	assert.Equal(t, "book-hobbit", res.Hits[0].BookID)
	assert.Equal(t, "The Hobbit", res.Hits[0].BookTitle)
	assert.NotEmpty(t, res.Hits[0].Highlights)
}

func TestNoteIndex_SearchBookTitle(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.Rebuild(sampleNotes()))

	res, err := index.Search(context.Background(), Params{Query: "dune"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"note-1", "note-2"}, hitIDs(res))
	assert.Equal(t, uint64(2), res.Total)
}

func TestNoteIndex_EmptyQueryNewestFirst(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.Rebuild(sampleNotes()))

	res, err := index.Search(context.Background(), Params{})
	require.NoError(t, err)

	assert.Equal(t, []string{"note-3", "note-2", "note-1"}, hitIDs(res))
}

func TestNoteIndex_FilterByBook(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.Rebuild(sampleNotes()))

	res, err := index.Search(context.Background(), Params{BookID: "book-dune"})
	require.NoError(t, err)
	assert.Equal(t, []string{"note-2", "note-1"}, hitIDs(res))

	res, err = index.Search(context.Background(), Params{Query: "spice", BookID: "book-hobbit"})
	require.NoError(t, err)
	assert.Empty(t, res.Hits)
}

func TestNoteIndex_Pagination(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.Rebuild(sampleNotes()))

	res, err := index.Search(context.Background(), Params{Limit: 2, Offset: 1})
	require.NoError(t, err)

	assert.Equal(t, uint64(3), res.Total)
	assert.Equal(t, []string{"note-2", "note-1"}, hitIDs(res))
}

func TestNoteIndex_ListenerIgnoresOtherKinds(t *testing.T) {
	index := setupTestIndex(t)
	listener := index.Listener()

	listener(notify.Change{Kinds: notify.KindBooks, Snapshot: domain.Snapshot{Notes: sampleNotes()}})
	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Zero(t, count)

	listener(notify.Change{Kinds: notify.KindNotes, Snapshot: domain.Snapshot{Notes: sampleNotes()}})
	count, err = index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestNoteIndex_FollowsRepository(t *testing.T) {
	ctx := context.Background()
	repo, err := library.Open(ctx, library.Options{Store: store.NewMemory()})
	require.NoError(t, err)

	index := setupTestIndex(t)
	repo.Subscribe(index.Listener())

	book := repo.Books()[6]
	note, ok := repo.AddNote(ctx, domain.Note{BookID: book.ID, Content: "Sandworms of Arrakis"})
	require.True(t, ok)

	res, err := index.Search(ctx, Params{Query: "sandworm"})
	require.NoError(t, err)
	assert.Equal(t, []string{note.ID}, hitIDs(res))

	require.True(t, repo.DeleteBook(ctx, book.ID))

	res, err = index.Search(ctx, Params{Query: "sandworm"})
	require.NoError(t, err)
	assert.Empty(t, res.Hits)
}
