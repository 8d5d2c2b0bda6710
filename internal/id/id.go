// Package id generates the opaque identifiers used for books, notes and subscriptions.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for each kind of record.
const (
	PrefixBook         = "book"
	PrefixNote         = "note"
	PrefixSubscription = "sub"
)

// Generate creates a prefixed NanoID, e.g. "book-V1StGXR8_Z5jdHi6B-myT".
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// NewBookID returns a fresh book identifier.
func NewBookID() string { return MustGenerate(PrefixBook) }

// NewNoteID returns a fresh note identifier.
func NewNoteID() string { return MustGenerate(PrefixNote) }
