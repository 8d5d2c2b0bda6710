// Package codec converts the core collections to and from their persisted JSON form.
//
// Decoding is all-or-nothing: a malformed document or any record failing
// validation fails the whole collection, and the caller falls back to an
// empty one.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/litnotes/litnotes/internal/domain"
	"github.com/litnotes/litnotes/internal/validation"
)

// ErrDecode wraps every decode failure.
var ErrDecode = errors.New("codec: decode failed")

// Codec encodes and validates the persisted collections. Safe for concurrent use.
type Codec struct {
	validator *validation.Validator
}

// New creates a Codec.
func New() *Codec {
	return &Codec{validator: validation.New()}
}

// EncodeBooks encodes books as a JSON array. A nil slice encodes as [].
func (c *Codec) EncodeBooks(books []domain.Book) ([]byte, error) {
	return encodeList(books)
}

// DecodeBooks decodes a JSON array of books.
func (c *Codec) DecodeBooks(data []byte) ([]domain.Book, error) {
	return decodeList[domain.Book](c, data)
}

// EncodeNotes encodes notes as a JSON array. Absent page numbers are omitted.
func (c *Codec) EncodeNotes(notes []domain.Note) ([]byte, error) {
	return encodeList(notes)
}

// DecodeNotes decodes a JSON array of notes.
func (c *Codec) DecodeNotes(data []byte) ([]domain.Note, error) {
	return decodeList[domain.Note](c, data)
}

// EncodePreferences encodes prefs as a JSON object.
func (c *Codec) EncodePreferences(prefs domain.UserPreferences) ([]byte, error) {
	if prefs.FavoriteGenres == nil {
		prefs.FavoriteGenres = []string{}
	}
	data, err := json.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("encode preferences: %w", err)
	}
	return data, nil
}

// DecodePreferences decodes a JSON preferences object.
// Fields missing from the document keep their zero value.
func (c *Codec) DecodePreferences(data []byte) (domain.UserPreferences, error) {
	var prefs domain.UserPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return domain.UserPreferences{}, fmt.Errorf("%w: preferences: %w", ErrDecode, err)
	}
	if err := c.validator.Validate(prefs); err != nil {
		return domain.UserPreferences{}, fmt.Errorf("%w: preferences: %w", ErrDecode, err)
	}
	if prefs.FavoriteGenres == nil {
		prefs.FavoriteGenres = []string{}
	}
	return prefs, nil
}

func encodeList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", items, err)
	}
	return data, nil
}

func decodeList[T any](c *Codec, data []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %T: %w", ErrDecode, items, err)
	}
	if err := validation.ValidateEach(c.validator, items); err != nil {
		return nil, fmt.Errorf("%w: %T: %w", ErrDecode, items, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
