package domain

// Snapshot is an immutable copy of the reading tracker's state.
type Snapshot struct {
	Books       []Book          `json:"books"`
	Notes       []Note          `json:"notes"`
	Preferences UserPreferences `json:"preferences"`
}

// CloneBooks copies a book slice. Book holds no references so a shallow copy suffices.
func CloneBooks(books []Book) []Book {
	out := make([]Book, len(books))
	copy(out, books)
	return out
}

// CloneNotes deep-copies a note slice.
func CloneNotes(notes []Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}
