// Package sse streams library changes to HTTP clients as Server-Sent Events.
package sse

import (
	"time"

	"github.com/litnotes/litnotes/internal/domain"
	"github.com/litnotes/litnotes/internal/notify"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventConnected is sent once when a stream opens.
	EventConnected EventType = "connected"
	// EventSnapshot carries the whole library when a stream opens, unless the
	// client resumed from the latest change.
	EventSnapshot EventType = "library.snapshot"
	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"

	// EventBooksChanged carries the full book collection after a change.
	EventBooksChanged EventType = "books.changed"
	// EventNotesChanged carries the full note collection after a change.
	EventNotesChanged EventType = "notes.changed"
	// EventPreferencesChanged carries the preferences after a change.
	EventPreferencesChanged EventType = "preferences.changed"
	// EventLibraryReset carries the whole snapshot after a reset.
	EventLibraryReset EventType = "library.reset"
)

// Event represents an SSE event to be sent to clients.
// Seq is the notifier sequence the event reflects; 0 for connection events.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
	Seq       uint64    `json:"seq,omitempty"`
}

// ConnectedEventData is the data payload for the connected event.
type ConnectedEventData struct {
	ClientID string `json:"client_id"`
	Stream   string `json:"stream"`
	Resumed  bool   `json:"resumed"`
}

// BooksEventData is the data payload for books.changed.
type BooksEventData struct {
	Books []domain.Book `json:"books"`
}

// NotesEventData is the data payload for notes.changed.
type NotesEventData struct {
	Notes []domain.Note `json:"notes"`
}

// PreferencesEventData is the data payload for preferences.changed.
type PreferencesEventData struct {
	Preferences domain.UserPreferences `json:"preferences"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	now := domain.Now()
	return Event{
		Type:      EventHeartbeat,
		Timestamp: now,
		Data:      HeartbeatEventData{ServerTime: now},
	}
}

// EventsFromChange converts a published change into the events to stream.
// A change touching every collection becomes a single reset event.
func EventsFromChange(c notify.Change) []Event {
	if c.Kinds == notify.KindAll {
		return []Event{{Type: EventLibraryReset, Timestamp: c.At, Seq: c.Seq, Data: c.Snapshot}}
	}

	events := make([]Event, 0, 3)
	if c.Kinds.Has(notify.KindBooks) {
		events = append(events, Event{
			Type:      EventBooksChanged,
			Timestamp: c.At,
			Seq:       c.Seq,
			Data:      BooksEventData{Books: c.Snapshot.Books},
		})
	}
	if c.Kinds.Has(notify.KindNotes) {
		events = append(events, Event{
			Type:      EventNotesChanged,
			Timestamp: c.At,
			Seq:       c.Seq,
			Data:      NotesEventData{Notes: c.Snapshot.Notes},
		})
	}
	if c.Kinds.Has(notify.KindPreferences) {
		events = append(events, Event{
			Type:      EventPreferencesChanged,
			Timestamp: c.At,
			Seq:       c.Seq,
			Data:      PreferencesEventData{Preferences: c.Snapshot.Preferences},
		})
	}
	return events
}
