package store

// Keys owned by the core. Each holds one whole collection.
const (
	KeyBooks       = "saved_books"
	KeyNotes       = "saved_notes"
	KeyPreferences = "user_preferences"

	// KeyOnboarding holds the first-run flag, outside the core collections.
	KeyOnboarding = "has_completed_onboarding"
)

// CoreKeys lists the keys cleared by a reset, in write order.
var CoreKeys = []string{KeyBooks, KeyNotes, KeyPreferences}

// AllKeys lists every key the application writes.
var AllKeys = []string{KeyBooks, KeyNotes, KeyPreferences, KeyOnboarding}
