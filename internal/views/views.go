// Package views computes the derived read models shown by the reading tracker.
//
// Every function is pure: it reads its inputs, never mutates them, and
// returns a fresh non-nil slice.
package views

import (
	"cmp"
	"slices"
	"strings"

	"github.com/litnotes/litnotes/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// RecommendedFallbackLimit caps recommendations when no favorite genre is set.
const RecommendedFallbackLimit = 6

// Trending returns the trending books in source order.
func Trending(books []domain.Book) []domain.Book {
	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if b.IsTrending {
			out = append(out, b)
		}
	}
	return out
}

// Recommended returns books for the reader's favorite genres, best rated first.
// With no favorites it returns the top RecommendedFallbackLimit books by rating.
// The favorites branch is not capped. Ties keep source order.
func Recommended(books []domain.Book, prefs domain.UserPreferences) []domain.Book {
	var out []domain.Book
	if len(prefs.FavoriteGenres) == 0 {
		out = domain.CloneBooks(books)
	} else {
		out = make([]domain.Book, 0, len(books))
		for _, b := range books {
			if prefs.HasFavoriteGenre(b.Genre) {
				out = append(out, b)
			}
		}
	}

	slices.SortStableFunc(out, byRatingDesc)

	if len(prefs.FavoriteGenres) == 0 && len(out) > RecommendedFallbackLimit {
		out = out[:RecommendedFallbackLimit]
	}
	return out
}

// Filtered narrows books by genre and then by free text.
// GenreAll (or an empty genre) disables the genre filter; empty text disables
// the text filter. Text matches title, author or genre case-insensitively.
func Filtered(books []domain.Book, genre, text string) []domain.Book {
	out := make([]domain.Book, 0, len(books))
	needle := fold(text)
	for _, b := range books {
		if genre != "" && genre != domain.GenreAll && b.Genre != genre {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold(b.Title), needle) &&
			!strings.Contains(fold(b.Author), needle) &&
			!strings.Contains(fold(b.Genre), needle) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// SearchedNotes returns the notes whose content or book title contains text,
// newest first. Empty text returns every note.
func SearchedNotes(notes []domain.Note, text string) []domain.Note {
	out := make([]domain.Note, 0, len(notes))
	needle := fold(text)
	for _, n := range notes {
		if needle != "" &&
			!strings.Contains(fold(n.Content), needle) &&
			!strings.Contains(fold(n.BookTitle), needle) {
			continue
		}
		out = append(out, n.Clone())
	}
	sortNewestFirst(out)
	return out
}

// NotesForBook returns the notes attached to bookID, newest first.
func NotesForBook(notes []domain.Note, bookID string) []domain.Note {
	out := make([]domain.Note, 0)
	for _, n := range notes {
		if n.BookID == bookID {
			out = append(out, n.Clone())
		}
	}
	sortNewestFirst(out)
	return out
}

// CurrentlyReading returns books with at least one page read, in source order.
func CurrentlyReading(books []domain.Book) []domain.Book {
	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if b.CurrentPage > 0 {
			out = append(out, b)
		}
	}
	return out
}

// Goal summarizes progress toward the annual reading goal.
type Goal struct {
	Target    int     `json:"target"`
	Finished  int     `json:"finished"`
	Remaining int     `json:"remaining"`
	Fraction  float64 `json:"fraction"`
}

// GoalProgress counts finished books against prefs.ReadingGoal.
// Fraction is capped at 1 and is 0 when the goal is not positive.
func GoalProgress(books []domain.Book, prefs domain.UserPreferences) Goal {
	g := Goal{Target: prefs.ReadingGoal}
	for _, b := range books {
		if b.IsFinished() {
			g.Finished++
		}
	}
	g.Remaining = max(g.Target-g.Finished, 0)
	if g.Target > 0 {
		g.Fraction = min(float64(g.Finished)/float64(g.Target), 1)
	}
	return g
}

func byRatingDesc(a, b domain.Book) int {
	return cmp.Compare(b.Rating, a.Rating)
}

func sortNewestFirst(notes []domain.Note) {
	slices.SortStableFunc(notes, func(a, b domain.Note) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// fold normalizes s for case-insensitive comparison.
// A cases.Caser carries state, so a fresh one is used per call.
func fold(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(norm.NFC.String(s))
}
