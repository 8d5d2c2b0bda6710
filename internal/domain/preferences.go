package domain

import "slices"

// DefaultReadingGoal is the annual goal a new reader starts with.
const DefaultReadingGoal = 12

// UserPreferences holds the reader's settings. Exactly one exists per user
// and it is always replaced wholesale.
type UserPreferences struct {
	FavoriteGenres       []string `json:"favorite_genres"` // A set; duplicates are tolerated
	ReadingGoal          int      `json:"reading_goal"`
	IsDarkMode           bool     `json:"is_dark_mode"`
	NotificationsEnabled bool     `json:"notifications_enabled"`
}

// DefaultPreferences returns the preferences of a fresh install.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		FavoriteGenres:       []string{},
		ReadingGoal:          DefaultReadingGoal,
		IsDarkMode:           true,
		NotificationsEnabled: false,
	}
}

// HasFavoriteGenre reports whether genre is among the favorites.
func (p UserPreferences) HasFavoriteGenre(genre string) bool {
	return slices.Contains(p.FavoriteGenres, genre)
}

// Clone returns a copy that shares no memory with p.
func (p UserPreferences) Clone() UserPreferences {
	if p.FavoriteGenres != nil {
		p.FavoriteGenres = slices.Clone(p.FavoriteGenres)
	}
	return p
}
