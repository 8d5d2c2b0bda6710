package search

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/litnotes/litnotes/internal/domain"
	"github.com/litnotes/litnotes/internal/notify"
)

const batchSize = 500

// NoteIndex is an in-memory Bleve index over notes.
//
// The index is derived state: it is rebuilt from a snapshot whenever notes
// change and is never persisted. All methods are safe for concurrent use.
type NoteIndex struct {
	index  bleve.Index
	logger *slog.Logger
	mu     sync.RWMutex // Guards index swaps during Rebuild
}

// Options configures the note index.
type Options struct {
	Logger *slog.Logger // Discards when nil
}

// NewNoteIndex creates an empty index.
func NewNoteIndex(opts Options) (*NoteIndex, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &NoteIndex{index: index, logger: logger}, nil
}

// Close releases the index.
func (s *NoteIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// DocumentCount returns the number of indexed notes.
func (s *NoteIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Rebuild replaces the index contents with notes.
// The new index is built off to the side and swapped in, so searches
// running concurrently see either the old or the new contents.
func (s *NoteIndex) Rebuild(notes []domain.Note) error {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	for i := 0; i < len(notes); i += batchSize {
		end := min(i+batchSize, len(notes))

		batch := index.NewBatch()
		for _, n := range notes[i:end] {
			doc := NoteToDocument(n)
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				index.Close()
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}
		if err := index.Batch(batch); err != nil {
			index.Close()
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}

	s.mu.Lock()
	old := s.index
	s.index = index
	s.mu.Unlock()

	if err := old.Close(); err != nil {
		s.logger.Warn("failed to close replaced index", "error", err)
	}
	s.logger.Debug("rebuilt note index", "notes", len(notes))
	return nil
}

// Listener returns a change listener that keeps the index in sync with
// the note collection. Changes that do not touch notes are ignored.
func (s *NoteIndex) Listener() notify.Listener {
	return func(c notify.Change) {
		if !c.Kinds.Has(notify.KindNotes) {
			return
		}
		if err := s.Rebuild(c.Snapshot.Notes); err != nil {
			s.logger.Error("failed to rebuild note index", "error", err)
		}
	}
}
