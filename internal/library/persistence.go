package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/litnotes/litnotes/internal/domain"
	"github.com/litnotes/litnotes/internal/store"
)

// errUnreadable blocks writes to a key whose stored value could not be read
// at load, so a transient read failure never overwrites durable data.
var errUnreadable = errors.New("key was unreadable at load, not overwriting")

// load fills the in-memory state from the store. Called with mu held.
//
// load never writes a key it failed to read, and never writes notes.
func (r *Repository) load(ctx context.Context) {
	r.unreadable = make(map[string]error)

	var booksRead bool
	r.books, booksRead = loadKey(ctx, r, store.KeyBooks, r.codec.DecodeBooks, []domain.Book{})
	r.notes, _ = loadKey(ctx, r, store.KeyNotes, r.codec.DecodeNotes, []domain.Note{})
	r.prefs, _ = loadKey(ctx, r, store.KeyPreferences, r.codec.DecodePreferences, domain.DefaultPreferences())

	var errs []error
	for key, err := range r.unreadable {
		errs = append(errs, fmt.Errorf("read %s: %w", key, err))
	}
	if len(r.books) == 0 && booksRead {
		r.books = r.seed()
		errs = append(errs, r.saveBooks(ctx))
		r.logger.Info("seeded sample catalogue", slog.Int("books", len(r.books)))
	}

	// Notes whose book is missing are hidden from reads but written back
	// with every save of the notes collection.
	known := make(map[string]struct{}, len(r.books))
	for _, b := range r.books {
		known[b.ID] = struct{}{}
	}
	var visible []domain.Note
	r.detached = nil
	for _, n := range r.notes {
		if _, ok := known[n.BookID]; ok {
			visible = append(visible, n)
		} else {
			r.detached = append(r.detached, n)
		}
	}
	if len(r.detached) > 0 {
		r.notes = visible
		if r.notes == nil {
			r.notes = []domain.Note{}
		}
		r.logger.Warn("hiding notes without a book", slog.Int("count", len(r.detached)))
	}

	r.recordPersist(errors.Join(errs...))
}

// loadKey reads and decodes one key, returning fallback when the key is
// missing, unreadable or undecodable. The bool is false only when the read
// itself failed; the key is then recorded as unreadable.
func loadKey[T any](ctx context.Context, r *Repository, key string, decode func([]byte) (T, error), fallback T) (T, bool) {
	data, err := r.store.Get(ctx, key)
	if store.IsNotFound(err) {
		return fallback, true
	}
	if err != nil {
		r.logger.Warn("failed to read key, starting empty",
			slog.String("key", key),
			slog.String("error", err.Error()))
		r.unreadable[key] = err
		return fallback, false
	}

	value, err := decode(data)
	if err != nil {
		r.logger.Warn("failed to decode key, starting empty",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fallback, true
	}
	return value, true
}

func (r *Repository) saveBooks(ctx context.Context) error {
	data, err := r.codec.EncodeBooks(r.books)
	if err != nil {
		return err
	}
	return r.write(ctx, store.KeyBooks, data)
}

func (r *Repository) saveNotes(ctx context.Context) error {
	data, err := r.codec.EncodeNotes(append(slices.Clip(r.notes), r.detached...))
	if err != nil {
		return err
	}
	return r.write(ctx, store.KeyNotes, data)
}

func (r *Repository) savePreferences(ctx context.Context) error {
	data, err := r.codec.EncodePreferences(r.prefs)
	if err != nil {
		return err
	}
	return r.write(ctx, store.KeyPreferences, data)
}

func (r *Repository) write(ctx context.Context, key string, data []byte) error {
	if err, ok := r.unreadable[key]; ok {
		return fmt.Errorf("persist %s: %w: %w", key, errUnreadable, err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
