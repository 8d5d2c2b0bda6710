package domain

import "slices"

// GenreAll is the filter sentinel meaning "do not filter by genre".
const GenreAll = "All"

// Genre names offered by the catalogue.
const (
	GenreClassic        = "Classic"
	GenreScienceFiction = "Science Fiction"
	GenreFantasy        = "Fantasy"
	GenreRomance        = "Romance"
	GenreMystery        = "Mystery"
	GenreThriller       = "Thriller"
)

// Genres is the fixed list shown as filter chips, sentinel first.
var Genres = []string{
	GenreAll,
	GenreClassic,
	GenreScienceFiction,
	GenreFantasy,
	GenreRomance,
	GenreMystery,
	GenreThriller,
}

// IsKnownGenre reports whether g is one of Genres (case-sensitive).
func IsKnownGenre(g string) bool {
	return slices.Contains(Genres, g)
}
