// Package api provides the HTTP API server and handlers for LitNotes.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/litnotes/litnotes/internal/library"
	"github.com/litnotes/litnotes/internal/onboarding"
	"github.com/litnotes/litnotes/internal/search"
	"github.com/litnotes/litnotes/internal/sse"
	"github.com/litnotes/litnotes/internal/validation"
)

// Deps holds the components the handlers read and mutate.
type Deps struct {
	Library    *library.Repository
	Onboarding *onboarding.Flag
	Index      *search.NoteIndex // Optional; full-text search returns 503 when nil
	SSEManager *sse.Manager      // Optional
	SSEHandler *sse.Handler      // Optional; /api/v1/events is not mounted when nil
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	library    *library.Repository
	onboarding *onboarding.Flag
	index      *search.NoteIndex
	sseManager *sse.Manager
	sseHandler *sse.Handler
	validator  *validation.Validator
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	router := chi.NewRouter()

	s := &Server{
		library:    deps.Library,
		onboarding: deps.Onboarding,
		index:      deps.Index,
		sseManager: deps.SSEManager,
		sseHandler: deps.SSEHandler,
		validator:  validation.New(),
		router:     router,
		logger:     logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("LitNotes API", "1.0.0")
	humaConfig.Info.Description = "Reading tracker: books, notes, preferences and derived views."
	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for OpenAPI generation.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Last-Event-ID"},
		MaxAge:         300,
	}))
}

func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerBookRoutes()
	s.registerNoteRoutes()
	s.registerPreferenceRoutes()

	// SSE streams are long-lived and bypass huma's request/response model.
	if s.sseHandler != nil {
		s.router.Get("/api/v1/events", s.sseHandler.ServeHTTP)
	}
}
