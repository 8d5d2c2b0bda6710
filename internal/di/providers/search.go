package providers

import (
	"github.com/samber/do/v2"

	"github.com/litnotes/litnotes/internal/library"
	"github.com/litnotes/litnotes/internal/notify"
	"github.com/litnotes/litnotes/internal/search"
)

// SearchIndexHandle wraps the note index and its change subscription.
type SearchIndexHandle struct {
	*search.NoteIndex
	notifier     *notify.Notifier
	subscription notify.Subscription
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	h.notifier.Unsubscribe(h.subscription)
	return h.Close()
}

// ProvideSearchIndex builds the note index from the loaded library and keeps it in sync.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	repo := do.MustInvoke[*library.Repository](i)
	log := do.MustInvoke[*LoggerHandle](i)

	index, err := search.NewNoteIndex(search.Options{Logger: log.With("component", "search")})
	if err != nil {
		return nil, err
	}

	// Subscribe before the initial build so no change slips between them.
	sub := repo.Subscribe(index.Listener())
	if err := index.Rebuild(repo.Notes()); err != nil {
		repo.Unsubscribe(sub)
		_ = index.Close()
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{
		NoteIndex:    index,
		notifier:     repo.Notifier(),
		subscription: sub,
	}, nil
}
