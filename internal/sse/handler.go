package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/litnotes/litnotes/internal/domain"
)

// DefaultHeartbeatInterval keeps idle connections alive through proxies.
const DefaultHeartbeatInterval = 30 * time.Second

// writeTimeout bounds each frame write so a hung client is dropped.
const writeTimeout = time.Minute

// SnapshotSource provides the current library state for new streams.
// *library.Repository implements it.
type SnapshotSource interface {
	Snapshot() domain.Snapshot
}

// Handler serves the change stream at GET /api/v1/events.
//
// A stream opens with a connected event followed by a library.snapshot
// event, so a client can render without a separate fetch. A client that
// reconnects with a Last-Event-ID naming the latest change skips the
// snapshot. Change events carry full collections, so an event that repeats
// state already in the snapshot is harmless.
type Handler struct {
	manager           *Manager
	source            SnapshotSource
	logger            *slog.Logger
	heartbeatInterval time.Duration
}

// NewHandler creates a Handler. A nil source disables the opening snapshot.
func NewHandler(manager *Manager, source SnapshotSource, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		manager:           manager,
		source:            source,
		logger:            logger,
		heartbeatInterval: DefaultHeartbeatInterval,
	}
}

// ServeHTTP streams events until the client goes away or the manager
// disconnects it.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	s := &stream{w: w, rc: http.NewResponseController(w), logger: h.logger}
	if err := s.rc.Flush(); err != nil {
		h.logger.Error("streaming not supported", slog.String("error", err.Error()))
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Subscribe before reading the snapshot so no change falls between them.
	client, err := h.manager.Connect()
	if err != nil {
		h.logger.Error("failed to register SSE client", slog.String("error", err.Error()))
		return
	}
	defer h.manager.Disconnect(client.ID)
	s.logger = h.logger.With(slog.String("client_id", client.ID))

	if err := h.open(s, client, r.Header.Get("Last-Event-ID")); err != nil {
		s.logger.Info("client gone before stream opened", slog.String("error", err.Error()))
		return
	}

	heartbeat := time.NewTicker(h.heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case event := <-client.EventChan:
			if err := s.send(h.manager, event); err != nil {
				s.logger.Info("client disconnected during send")
				return
			}
		case <-heartbeat.C:
			if err := s.send(h.manager, NewHeartbeatEvent()); err != nil {
				s.logger.Info("client disconnected during heartbeat")
				return
			}
		case <-client.Done:
			return
		case <-r.Context().Done():
			return
		}
	}
}

// open writes the connected event and, unless the client is resuming from
// the latest change, the current snapshot.
func (h *Handler) open(s *stream, client *Client, lastEventID string) error {
	resumed := lastEventID != "" && h.manager.UpToDate(lastEventID)

	seq := h.manager.LastSeq()
	var snapshot domain.Snapshot
	if h.source != nil && !resumed {
		snapshot = h.source.Snapshot()
	}

	now := domain.Now()
	err := s.send(h.manager, Event{
		Type:      EventConnected,
		Timestamp: now,
		Data: ConnectedEventData{
			ClientID: client.ID,
			Stream:   h.manager.Stream(),
			Resumed:  resumed,
		},
	})
	if err != nil || h.source == nil || resumed {
		return err
	}

	return s.send(h.manager, Event{
		Type:      EventSnapshot,
		Timestamp: now,
		Seq:       seq,
		Data:      snapshot,
	})
}

// stream writes frames to one client.
type stream struct {
	w      io.Writer
	rc     *http.ResponseController
	logger *slog.Logger
}

// send writes one frame. Events tied to a change carry an id line; the
// snapshot uses the sequence it was read at, and seq 0 still gets an id so
// a reconnect before any change can resume.
func (s *stream) send(m *Manager, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	if event.Seq > 0 || event.Type == EventSnapshot {
		if _, err := fmt.Fprintf(s.w, "id: %s\n", m.EventID(event.Seq)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event.Type, data); err != nil {
		return err
	}
	if err := s.rc.Flush(); err != nil {
		return err
	}

	if err := s.rc.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		s.logger.Debug("failed to set write deadline", slog.String("error", err.Error()))
	}
	return nil
}
