package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/litnotes/litnotes/internal/api"
	"github.com/litnotes/litnotes/internal/config"
	"github.com/litnotes/litnotes/internal/library"
	"github.com/litnotes/litnotes/internal/notify"
	"github.com/litnotes/litnotes/internal/onboarding"
	"github.com/litnotes/litnotes/internal/sse"
)

// SSEManagerHandle wraps the SSE manager for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	return h.Manager.Shutdown()
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	notifier := do.MustInvoke[*notify.Notifier](i)
	log := do.MustInvoke[*LoggerHandle](i)

	manager := sse.NewManager(notifier, log.With("component", "sse"))

	log.Info("SSE manager started")

	return &SSEManagerHandle{Manager: manager}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts it in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*LoggerHandle](i)
	repo := do.MustInvoke[*library.Repository](i)
	flag := do.MustInvoke[*onboarding.Flag](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	handler := api.NewServer(api.Deps{
		Library:    repo,
		Onboarding: flag,
		Index:      indexHandle.NoteIndex,
		SSEManager: sseHandle.Manager,
		SSEHandler: sse.NewHandler(sseHandle.Manager, repo, log.With("component", "sse")),
	}, log.With("component", "http"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
