// Package notify fans out state changes to in-process subscribers.
//
// Delivery is synchronous: Publish returns only after every listener that
// was subscribed when it was called has run. Listeners must not block.
package notify

import (
	"context"
	"iter"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/litnotes/litnotes/internal/domain"
	"github.com/litnotes/litnotes/internal/id"
)

// Kind is a bit set naming which collections a change touched.
type Kind uint8

const (
	// KindBooks marks a change to the book collection.
	KindBooks Kind = 1 << iota
	// KindNotes marks a change to the note collection.
	KindNotes
	// KindPreferences marks a change to the preferences.
	KindPreferences

	// KindAll marks a change to every collection, as after a reset.
	KindAll = KindBooks | KindNotes | KindPreferences
)

// Has reports whether k includes every bit of other.
func (k Kind) Has(other Kind) bool {
	return other != 0 && k&other == other
}

// String returns the kinds joined by "+", e.g. "books+notes".
func (k Kind) String() string {
	var parts []string
	if k.Has(KindBooks) {
		parts = append(parts, "books")
	}
	if k.Has(KindNotes) {
		parts = append(parts, "notes")
	}
	if k.Has(KindPreferences) {
		parts = append(parts, "preferences")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Change describes one committed mutation.
//
// Seq is assigned by Publish and grows by one per published change, so it
// follows commit order when publishers are serialized.
type Change struct {
	At       time.Time       `json:"at"`
	Snapshot domain.Snapshot `json:"snapshot"`
	Seq      uint64          `json:"seq"`
	Kinds    Kind            `json:"kinds"`
}

// Listener receives changes. It runs on the publishing goroutine.
type Listener func(Change)

// Subscription identifies a registered listener.
type Subscription string

// Notifier keeps the set of listeners.
type Notifier struct {
	listeners map[Subscription]Listener
	logger    *slog.Logger
	mu        sync.RWMutex
	seq       atomic.Uint64
}

// New creates a Notifier. A nil logger discards output.
func New(logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Notifier{
		listeners: make(map[Subscription]Listener),
		logger:    logger,
	}
}

// Subscribe registers fn and returns its handle.
func (n *Notifier) Subscribe(fn Listener) Subscription {
	sub := Subscription(id.MustGenerate(id.PrefixSubscription))

	n.mu.Lock()
	n.listeners[sub] = fn
	total := len(n.listeners)
	n.mu.Unlock()

	n.logger.Debug("listener subscribed",
		slog.String("subscription", string(sub)),
		slog.Int("total_listeners", total))
	return sub
}

// SubscribeContext registers fn until ctx is done.
func (n *Notifier) SubscribeContext(ctx context.Context, fn Listener) Subscription {
	sub := n.Subscribe(fn)
	context.AfterFunc(ctx, func() {
		n.Unsubscribe(sub)
	})
	return sub
}

// Unsubscribe removes a listener. It reports whether sub was registered.
// After Unsubscribe returns, the listener receives no further Publish calls
// that start later.
func (n *Notifier) Unsubscribe(sub Subscription) bool {
	n.mu.Lock()
	_, ok := n.listeners[sub]
	delete(n.listeners, sub)
	total := len(n.listeners)
	n.mu.Unlock()

	if ok {
		n.logger.Debug("listener unsubscribed",
			slog.String("subscription", string(sub)),
			slog.Int("total_listeners", total))
	}
	return ok
}

// Publish delivers change to every current listener.
// A panicking listener is logged and skipped.
func (n *Notifier) Publish(change Change) {
	if change.At.IsZero() {
		change.At = domain.Now()
	}
	change.Seq = n.seq.Add(1)

	n.mu.RLock()
	targets := make([]subscriber, 0, len(n.listeners))
	for sub, fn := range n.listeners {
		targets = append(targets, subscriber{sub: sub, fn: fn})
	}
	n.mu.RUnlock()

	for _, t := range targets {
		n.deliver(t, change)
	}

	n.logger.Debug("change published",
		slog.Uint64("seq", change.Seq),
		slog.String("kinds", change.Kinds.String()),
		slog.Int("delivered", len(targets)))
}

// LastSeq returns the sequence number of the latest published change, or 0.
func (n *Notifier) LastSeq() uint64 {
	return n.seq.Load()
}

// Count returns the number of registered listeners.
func (n *Notifier) Count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

// Subscriptions returns an iterator over the registered handles.
func (n *Notifier) Subscriptions() iter.Seq[Subscription] {
	return func(yield func(Subscription) bool) {
		n.mu.RLock()
		subs := make([]Subscription, 0, len(n.listeners))
		for sub := range n.listeners {
			subs = append(subs, sub)
		}
		n.mu.RUnlock()

		for _, sub := range subs {
			if !yield(sub) {
				return
			}
		}
	}
}

type subscriber struct {
	fn  Listener
	sub Subscription
}

func (n *Notifier) deliver(t subscriber, change Change) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("listener panicked",
				slog.String("subscription", string(t.sub)),
				slog.String("kinds", change.Kinds.String()),
				slog.Any("panic", r))
		}
	}()
	t.fn(change)
}
