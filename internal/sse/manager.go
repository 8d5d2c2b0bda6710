package sse

import (
	"iter"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/litnotes/litnotes/internal/id"
	"github.com/litnotes/litnotes/internal/notify"
)

// clientBuffer is the number of events queued per client before drops.
const clientBuffer = 100

// Client represents a connected SSE client.
//
// EventChan is never closed; Done is closed on disconnect.
type Client struct {
	ConnectedAt  time.Time
	EventChan    chan Event
	Done         chan struct{}
	ID           string
	subscription notify.Subscription
}

// Manager tracks SSE clients. Each client holds its own notifier subscription.
//
// Event IDs have the form "<stream>.<seq>". The stream is fixed per Manager,
// so IDs from an earlier process never match the current one.
type Manager struct {
	notifier *notify.Notifier
	clients  map[string]*Client
	logger   *slog.Logger
	stream   string
	mu       sync.RWMutex
}

// NewManager creates a new SSE Manager fed by notifier.
func NewManager(notifier *notify.Notifier, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		notifier: notifier,
		clients:  make(map[string]*Client),
		logger:   logger,
		stream:   id.MustGenerate("stream"),
	}
}

// Stream returns the identifier shared by every event ID of this Manager.
func (m *Manager) Stream() string {
	return m.stream
}

// EventID formats the SSE id for a change sequence number.
func (m *Manager) EventID(seq uint64) string {
	return m.stream + "." + strconv.FormatUint(seq, 10)
}

// LastSeq returns the sequence number of the latest published change.
func (m *Manager) LastSeq() uint64 {
	return m.notifier.LastSeq()
}

// UpToDate reports whether a client whose last received event ID is
// lastEventID has already seen every published change.
func (m *Manager) UpToDate(lastEventID string) bool {
	stream, seq, ok := strings.Cut(lastEventID, ".")
	if !ok || stream != m.stream {
		return false
	}
	n, err := strconv.ParseUint(seq, 10, 64)
	return err == nil && n == m.LastSeq()
}

// Connect registers a new SSE client and subscribes it to changes.
func (m *Manager) Connect() (*Client, error) {
	clientID, err := id.Generate("sse")
	if err != nil {
		return nil, err
	}

	client := &Client{
		ID:          clientID,
		EventChan:   make(chan Event, clientBuffer),
		Done:        make(chan struct{}),
		ConnectedAt: time.Now(),
	}
	client.subscription = m.notifier.Subscribe(func(c notify.Change) {
		for _, event := range EventsFromChange(c) {
			m.send(client, event)
		}
	})

	m.mu.Lock()
	m.clients[client.ID] = client
	totalClients := len(m.clients)
	m.mu.Unlock()

	m.logger.Info("SSE client connected",
		slog.String("client_id", clientID),
		slog.Int("total_clients", totalClients))
	return client, nil
}

// Disconnect unsubscribes a client and closes its Done channel.
func (m *Manager) Disconnect(clientID string) {
	m.mu.Lock()
	client, ok := m.clients[clientID]
	if !ok {
		m.mu.Unlock()
		return
	}
	delete(m.clients, clientID)
	totalClients := len(m.clients)
	m.mu.Unlock()

	m.notifier.Unsubscribe(client.subscription)
	close(client.Done)

	m.logger.Info("SSE client disconnected",
		slog.String("client_id", clientID),
		slog.Duration("duration", time.Since(client.ConnectedAt)),
		slog.Int("total_clients", totalClients))
}

// Shutdown disconnects every client.
func (m *Manager) Shutdown() error {
	m.mu.RLock()
	ids := make([]string, 0, len(m.clients))
	for clientID := range m.clients {
		ids = append(ids, clientID)
	}
	m.mu.RUnlock()

	for _, clientID := range ids {
		m.Disconnect(clientID)
	}
	m.logger.Info("all SSE clients disconnected")
	return nil
}

// send queues event for client without blocking (drop if client is slow/stuck).
func (m *Manager) send(client *Client, event Event) {
	select {
	case <-client.Done:
	case client.EventChan <- event:
	default:
		m.logger.Warn("dropped event for slow client",
			slog.String("client_id", client.ID),
			slog.String("event_type", string(event.Type)))
	}
}

// Clients returns an iterator over all connected clients.
func (m *Manager) Clients() iter.Seq[*Client] {
	return func(yield func(*Client) bool) {
		m.mu.RLock()
		defer m.mu.RUnlock()

		for _, client := range m.clients {
			if !yield(client) {
				return
			}
		}
	}
}

// ClientCount returns the number of connected clients.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}
