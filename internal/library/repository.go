// Package library holds the Repository, the single source of truth for books,
// notes and preferences.
//
// Every mutation follows the same sequence: change the in-memory state,
// persist the touched collections, then notify subscribers. Persistence
// failures are logged and swallowed; memory stays authoritative until the
// next successful save. No operation returns an error, and operations on
// unknown IDs are silent no-ops reported only through their bool result.
package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/litnotes/litnotes/internal/codec"
	"github.com/litnotes/litnotes/internal/domain"
	"github.com/litnotes/litnotes/internal/id"
	"github.com/litnotes/litnotes/internal/notify"
	"github.com/litnotes/litnotes/internal/store"
	"github.com/litnotes/litnotes/internal/views"
)

// Options configures Open.
type Options struct {
	Store    store.Store
	Notifier *notify.Notifier     // Created when nil
	Codec    *codec.Codec         // Created when nil
	Logger   *slog.Logger         // Discards when nil
	Clock    func() time.Time     // Defaults to domain.Now
	Seed     func() []domain.Book // Defaults to domain.SampleBooks
}

// Repository owns the reading tracker's state.
//
// It is safe for concurrent use. Mutations are serialized end to end, so
// change notifications arrive in mutation order. Listeners run after the
// state lock is released and may read from the Repository, but must not
// call mutating methods synchronously.
type Repository struct {
	store    store.Store
	codec    *codec.Codec
	notifier *notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
	seed     func() []domain.Book

	// writeMu serializes mutations including their notification.
	// It is always taken before mu.
	writeMu sync.Mutex

	mu             sync.RWMutex
	books          []domain.Book
	notes          []domain.Note
	prefs          domain.UserPreferences
	lastPersistErr error

	// detached holds stored notes whose book is not loaded. They are hidden
	// from reads and written back unchanged with the notes collection.
	detached []domain.Note
	// unreadable holds keys whose read failed at load; writes to them are
	// refused until ResetAll.
	unreadable map[string]error
}

// Open loads the persisted state and returns a ready Repository.
//
// A missing or undecodable key yields an empty collection (default
// preferences) for that entity alone. If no books remain, the sample
// catalogue is seeded and persisted. A key whose read fails also loads empty,
// but it is neither seeded nor overwritten later in the process lifetime.
// The only error is a missing Store.
func Open(ctx context.Context, opts Options) (*Repository, error) {
	if opts.Store == nil {
		return nil, errors.New("library: store is required")
	}

	r := &Repository{
		store:    opts.Store,
		codec:    opts.Codec,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		now:      opts.Clock,
		seed:     opts.Seed,
	}
	if r.codec == nil {
		r.codec = codec.New()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	if r.notifier == nil {
		r.notifier = notify.New(r.logger)
	}
	if r.now == nil {
		r.now = domain.Now
	}
	if r.seed == nil {
		r.seed = domain.SampleBooks
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.load(ctx)

	r.logger.Info("library loaded",
		slog.Int("books", len(r.books)),
		slog.Int("notes", len(r.notes)))
	return r, nil
}

// Notifier returns the notifier changes are published on.
func (r *Repository) Notifier() *notify.Notifier {
	return r.notifier
}

// Subscribe registers fn for every future change.
func (r *Repository) Subscribe(fn notify.Listener) notify.Subscription {
	return r.notifier.Subscribe(fn)
}

// SubscribeContext registers fn until ctx is done.
func (r *Repository) SubscribeContext(ctx context.Context, fn notify.Listener) notify.Subscription {
	return r.notifier.SubscribeContext(ctx, fn)
}

// Unsubscribe removes a listener registered with Subscribe.
func (r *Repository) Unsubscribe(sub notify.Subscription) bool {
	return r.notifier.Unsubscribe(sub)
}

// LastPersistError returns the most recent swallowed persistence failure,
// or nil if the latest save succeeded.
func (r *Repository) LastPersistError() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastPersistErr
}

// Reads.

// Books returns a copy of all books in catalogue order.
func (r *Repository) Books() []domain.Book {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return domain.CloneBooks(r.books)
}

// Notes returns a copy of all notes in insertion order.
func (r *Repository) Notes() []domain.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return domain.CloneNotes(r.notes)
}

// Preferences returns a copy of the current preferences.
func (r *Repository) Preferences() domain.UserPreferences {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.prefs.Clone()
}

// Snapshot returns a consistent copy of the whole state.
func (r *Repository) Snapshot() domain.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// Book returns the book with the given ID.
func (r *Repository) Book(bookID string) (domain.Book, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.bookIndex(bookID)
	if i < 0 {
		return domain.Book{}, false
	}
	return r.books[i], true
}

// Note returns the note with the given ID.
func (r *Repository) Note(noteID string) (domain.Note, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.noteIndex(noteID)
	if i < 0 {
		return domain.Note{}, false
	}
	return r.notes[i].Clone(), true
}

// NotesForBook returns the notes attached to bookID, newest first.
func (r *Repository) NotesForBook(bookID string) []domain.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return views.NotesForBook(r.notes, bookID)
}

// Book mutations.

// AddBook appends book to the catalogue and returns it as stored.
// An empty or already used ID is replaced with a fresh one, and a negative
// page count is stored as 0.
func (r *Repository) AddBook(ctx context.Context, book domain.Book) domain.Book {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()
	if book.ID == "" || r.bookIndex(book.ID) >= 0 {
		book.ID = id.NewBookID()
	}
	book.TotalPages = max(book.TotalPages, 0)
	r.books = append(r.books, book)
	r.notifier.Publish(r.commit(ctx, notify.KindBooks))

	r.logger.Debug("book added", slog.String("book_id", book.ID))
	return book
}

// UpdateBook replaces the book with the same ID wholesale. A negative page
// count is stored as 0.
// Reports false, without persisting or notifying, if no such book exists.
func (r *Repository) UpdateBook(ctx context.Context, book domain.Book) bool {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()
	i := r.bookIndex(book.ID)
	if i < 0 {
		r.mu.Unlock()
		return false
	}
	book.TotalPages = max(book.TotalPages, 0)
	r.books[i] = book
	r.notifier.Publish(r.commit(ctx, notify.KindBooks))
	return true
}

// DeleteBook removes a book and every note attached to it.
func (r *Repository) DeleteBook(ctx context.Context, bookID string) bool {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()
	i := r.bookIndex(bookID)
	if i < 0 {
		r.mu.Unlock()
		return false
	}
	r.books = slices.Delete(r.books, i, i+1)

	before := len(r.notes)
	r.notes = slices.DeleteFunc(r.notes, func(n domain.Note) bool {
		return n.BookID == bookID
	})
	cascaded := before - len(r.notes)

	r.notifier.Publish(r.commit(ctx, notify.KindBooks|notify.KindNotes))

	r.logger.Debug("book deleted",
		slog.String("book_id", bookID),
		slog.Int("notes_removed", cascaded))
	return true
}

// UpdateReadingProgress sets the book's current page. The value is not
// clamped to the page count; callers validate with Book.IsValidProgress.
func (r *Repository) UpdateReadingProgress(ctx context.Context, bookID string, page int) bool {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()
	i := r.bookIndex(bookID)
	if i < 0 {
		r.mu.Unlock()
		return false
	}
	r.books[i].CurrentPage = page
	r.notifier.Publish(r.commit(ctx, notify.KindBooks))
	return true
}

// Note mutations.

// AddNote appends note and returns it as stored.
//
// The note must reference an existing book; otherwise it is dropped and
// AddNote reports false. Missing ID, book title and timestamps are filled in.
func (r *Repository) AddNote(ctx context.Context, note domain.Note) (domain.Note, bool) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()
	bi := r.bookIndex(note.BookID)
	if bi < 0 {
		r.mu.Unlock()
		r.logger.Warn("note rejected: unknown book", slog.String("book_id", note.BookID))
		return domain.Note{}, false
	}

	note = note.Clone()
	if note.ID == "" || r.noteIndex(note.ID) >= 0 {
		note.ID = id.NewNoteID()
	}
	if note.BookTitle == "" {
		note.BookTitle = r.books[bi].Title
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = r.now()
	}
	if note.UpdatedAt.IsZero() || note.UpdatedAt.Before(note.CreatedAt) {
		note.UpdatedAt = note.CreatedAt
	}

	r.notes = append(r.notes, note)
	r.notifier.Publish(r.commit(ctx, notify.KindNotes))
	return note.Clone(), true
}

// UpdateNote replaces the content and page number of the note with the
// same ID and stamps UpdatedAt, even when nothing changed. UpdatedAt never
// moves backwards. The book reference and CreatedAt are kept.
func (r *Repository) UpdateNote(ctx context.Context, note domain.Note) bool {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()
	i := r.noteIndex(note.ID)
	if i < 0 {
		r.mu.Unlock()
		return false
	}

	existing := &r.notes[i]
	existing.Content = note.Content
	existing.PageNumber = note.Clone().PageNumber

	now := r.now()
	if now.Before(existing.UpdatedAt) {
		now = existing.UpdatedAt
	}
	existing.UpdatedAt = now

	r.notifier.Publish(r.commit(ctx, notify.KindNotes))
	return true
}

// DeleteNote removes the note with the given ID.
func (r *Repository) DeleteNote(ctx context.Context, noteID string) bool {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()
	i := r.noteIndex(noteID)
	if i < 0 {
		r.mu.Unlock()
		return false
	}
	r.notes = slices.Delete(r.notes, i, i+1)
	r.notifier.Publish(r.commit(ctx, notify.KindNotes))
	return true
}

// Preferences and reset.

// UpdatePreferences replaces the preferences wholesale.
func (r *Repository) UpdatePreferences(ctx context.Context, prefs domain.UserPreferences) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()
	r.prefs = prefs.Clone()
	if r.prefs.FavoriteGenres == nil {
		r.prefs.FavoriteGenres = []string{}
	}
	r.notifier.Publish(r.commit(ctx, notify.KindPreferences))
}

// ResetAll clears every collection, deletes their persisted keys, restores
// default preferences and reseeds the sample catalogue with fresh IDs.
func (r *Repository) ResetAll(ctx context.Context) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()

	var errs []error
	for _, key := range store.CoreKeys {
		if err := r.store.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}

	r.books = r.seed()
	r.notes = []domain.Note{}
	r.detached = nil
	r.prefs = domain.DefaultPreferences()
	clear(r.unreadable)

	errs = append(errs, r.saveBooks(ctx))
	r.recordPersist(errors.Join(errs...))

	change := notify.Change{Kinds: notify.KindAll, Snapshot: r.snapshotLocked(), At: r.now()}
	r.mu.Unlock()
	r.notifier.Publish(change)

	r.logger.Info("library reset", slog.Int("books", len(change.Snapshot.Books)))
}

// commit persists the collections named by kinds and builds the change to
// publish. Called with mu held; commit releases it.
func (r *Repository) commit(ctx context.Context, kinds notify.Kind) notify.Change {
	defer r.mu.Unlock()

	var errs []error
	if kinds.Has(notify.KindBooks) {
		errs = append(errs, r.saveBooks(ctx))
	}
	if kinds.Has(notify.KindNotes) {
		errs = append(errs, r.saveNotes(ctx))
	}
	if kinds.Has(notify.KindPreferences) {
		errs = append(errs, r.savePreferences(ctx))
	}
	r.recordPersist(errors.Join(errs...))

	return notify.Change{Kinds: kinds, Snapshot: r.snapshotLocked(), At: r.now()}
}

func (r *Repository) recordPersist(err error) {
	r.lastPersistErr = err
	if err != nil {
		r.logger.Warn("persistence failed, keeping in-memory state", slog.String("error", err.Error()))
	}
}

func (r *Repository) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{
		Books:       domain.CloneBooks(r.books),
		Notes:       domain.CloneNotes(r.notes),
		Preferences: r.prefs.Clone(),
	}
}

func (r *Repository) bookIndex(bookID string) int {
	return slices.IndexFunc(r.books, func(b domain.Book) bool { return b.ID == bookID })
}

func (r *Repository) noteIndex(noteID string) int {
	return slices.IndexFunc(r.notes, func(n domain.Note) bool { return n.ID == noteID })
}
