package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	count := 1000

	for range count {
		id, err := Generate("test")
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}

	assert.Len(t, ids, count)
}

func TestGenerate_Format(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"book", PrefixBook},
		{"note", PrefixNote},
		{"subscription", PrefixSubscription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Generate(tt.prefix)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(id, tt.prefix+"-"))

			// NanoID default is 21 characters.
			nanoidPart := strings.TrimPrefix(id, tt.prefix+"-")
			assert.Len(t, nanoidPart, 21)

			for _, ch := range nanoidPart {
				valid := (ch >= 'A' && ch <= 'Z') ||
					(ch >= 'a' && ch <= 'z') ||
					(ch >= '0' && ch <= '9') ||
					ch == '_' || ch == '-'
				assert.True(t, valid, "invalid character %q in %s", ch, id)
			}
		})
	}
}

func TestNewBookIDAndNoteID(t *testing.T) {
	assert.True(t, strings.HasPrefix(NewBookID(), "book-"))
	assert.True(t, strings.HasPrefix(NewNoteID(), "note-"))
	assert.NotEqual(t, NewBookID(), NewBookID())
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		id := MustGenerate("x")
		assert.True(t, strings.HasPrefix(id, "x-"))
	})
}
