package views

import (
	"testing"
	"time"

	"github.com/litnotes/litnotes/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(books []domain.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func noteIDs(notes []domain.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func ratedBooks() []domain.Book {
	return []domain.Book{
		{ID: "1", Title: "A", Genre: "Fantasy", Rating: 4.0},
		{ID: "2", Title: "B", Genre: "Classic", Rating: 4.9},
		{ID: "3", Title: "C", Genre: "Fantasy", Rating: 4.5},
		{ID: "4", Title: "D", Genre: "Romance", Rating: 3.1},
		{ID: "5", Title: "E", Genre: "Fantasy", Rating: 4.5},
		{ID: "6", Title: "F", Genre: "Classic", Rating: 2.0},
		{ID: "7", Title: "G", Genre: "Fantasy", Rating: 3.9},
		{ID: "8", Title: "H", Genre: "Fantasy", Rating: 4.8},
		{ID: "9", Title: "I", Genre: "Fantasy", Rating: 1.0},
		{ID: "10", Title: "J", Genre: "Fantasy", Rating: 3.0},
	}
}

func TestTrending(t *testing.T) {
	books := []domain.Book{
		{Title: "A", IsTrending: true},
		{Title: "B"},
		{Title: "C", IsTrending: true},
	}

	assert.Equal(t, []string{"A", "C"}, titles(Trending(books)))
	assert.NotNil(t, Trending(nil))
	assert.Empty(t, Trending(nil))
}

func TestTrending_SampleCatalog(t *testing.T) {
	assert.Len(t, Trending(domain.SampleBooks()), 5)
}

func TestRecommended_FallbackIsCappedAtSix(t *testing.T) {
	got := Recommended(ratedBooks(), domain.DefaultPreferences())

	// Ties (C and E at 4.5) keep source order.
	assert.Equal(t, []string{"B", "H", "C", "E", "A", "G"}, titles(got))
}

func TestRecommended_FavoritesAreNotCapped(t *testing.T) {
	prefs := domain.UserPreferences{FavoriteGenres: []string{"Fantasy"}}

	got := Recommended(ratedBooks(), prefs)

	require.Len(t, got, 7)
	assert.Equal(t, []string{"H", "C", "E", "A", "G", "J", "I"}, titles(got))
}

func TestRecommended_MultipleFavoritesAndDuplicates(t *testing.T) {
	prefs := domain.UserPreferences{FavoriteGenres: []string{"Classic", "Romance", "Classic"}}

	got := Recommended(ratedBooks(), prefs)

	assert.Equal(t, []string{"B", "D", "F"}, titles(got))
}

func TestRecommended_NoMatchingGenre(t *testing.T) {
	prefs := domain.UserPreferences{FavoriteGenres: []string{"Mystery"}}

	got := Recommended(ratedBooks(), prefs)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecommended_DoesNotMutateInput(t *testing.T) {
	books := ratedBooks()
	_ = Recommended(books, domain.DefaultPreferences())

	assert.Equal(t, ratedBooks(), books)
}

func TestFiltered(t *testing.T) {
	books := []domain.Book{
		{Title: "1984", Author: "George Orwell", Genre: "Science Fiction"},
		{Title: "Animal Farm", Author: "George Orwell", Genre: "Classic"},
		{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction"},
	}

	tests := []struct {
		name  string
		genre string
		text  string
		want  []string
	}{
		{"all no text", domain.GenreAll, "", []string{"1984", "Animal Farm", "Dune"}},
		{"empty genre means all", "", "", []string{"1984", "Animal Farm", "Dune"}},
		{"genre then text", "Science Fiction", "orwell", []string{"1984"}},
		{"text only", domain.GenreAll, "ORWELL", []string{"1984", "Animal Farm"}},
		{"text matches genre", domain.GenreAll, "classic", []string{"Animal Farm"}},
		{"genre is case-sensitive", "science fiction", "", []string{}},
		{"no match", domain.GenreAll, "tolkien", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(Filtered(books, tt.genre, tt.text)))
		})
	}
}

func TestFiltered_UnicodeFolding(t *testing.T) {
	books := []domain.Book{
		{Title: "Straße der Ölbäume", Author: "Ünal"},
		{Title: "Café Society", Author: "Someone"},
	}

	assert.Equal(t, []string{"Straße der Ölbäume"}, titles(Filtered(books, domain.GenreAll, "STRASSE")))
	assert.Equal(t, []string{"Straße der Ölbäume"}, titles(Filtered(books, domain.GenreAll, "ünal")))
	// Decomposed "é" matches the precomposed form.
	assert.Equal(t, []string{"Café Society"}, titles(Filtered(books, domain.GenreAll, "CAFE\u0301")))
}

func TestSearchedNotes(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	notes := []domain.Note{
		{ID: "old", BookTitle: "Dune", Content: "Arrakis", CreatedAt: base},
		{ID: "new", BookTitle: "1984", Content: "Big Brother", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "mid", BookTitle: "The Hobbit", Content: "Second breakfast", CreatedAt: base.Add(time.Hour)},
	}

	assert.Equal(t, []string{"new", "mid", "old"}, noteIDs(SearchedNotes(notes, "")))
	assert.Equal(t, []string{"new", "mid"}, noteIDs(SearchedNotes(notes, "b")))
	assert.Equal(t, []string{"old"}, noteIDs(SearchedNotes(notes, "DUNE")))
	assert.Equal(t, []string{"mid"}, noteIDs(SearchedNotes(notes, "hobbit")))
	assert.Empty(t, SearchedNotes(notes, "zzz"))
}

func TestSearchedNotes_ReturnsCopies(t *testing.T) {
	notes := []domain.Note{{ID: "n", PageNumber: domain.Page(1)}}

	got := SearchedNotes(notes, "")
	*got[0].PageNumber = 99

	assert.Equal(t, 1, *notes[0].PageNumber)
}

func TestNotesForBook(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	notes := []domain.Note{
		{ID: "a1", BookID: "a", CreatedAt: base},
		{ID: "b1", BookID: "b", CreatedAt: base},
		{ID: "a2", BookID: "a", CreatedAt: base.Add(time.Minute)},
	}

	assert.Equal(t, []string{"a2", "a1"}, noteIDs(NotesForBook(notes, "a")))
	got := NotesForBook(notes, "missing")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCurrentlyReading(t *testing.T) {
	got := CurrentlyReading(domain.SampleBooks())

	assert.Equal(t, []string{
		"The Great Gatsby",
		"To Kill a Mockingbird",
		"Pride and Prejudice",
		"The Catcher in the Rye",
		"Harry Potter and the Sorcerer's Stone",
	}, titles(got))
}

func TestGoalProgress(t *testing.T) {
	books := []domain.Book{
		{TotalPages: 100, CurrentPage: 100},
		{TotalPages: 100, CurrentPage: 150},
		{TotalPages: 100, CurrentPage: 50},
		{TotalPages: 0, CurrentPage: 10},
	}

	g := GoalProgress(books, domain.UserPreferences{ReadingGoal: 4})
	assert.Equal(t, Goal{Target: 4, Finished: 2, Remaining: 2, Fraction: 0.5}, g)

	g = GoalProgress(books, domain.UserPreferences{ReadingGoal: 1})
	assert.Equal(t, 0, g.Remaining)
	assert.InDelta(t, 1.0, g.Fraction, 1e-9)

	g = GoalProgress(books, domain.UserPreferences{ReadingGoal: 0})
	assert.Zero(t, g.Fraction)
}
