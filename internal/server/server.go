// Package server exposes the project store and the consistency validator
// over a JSON HTTP API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/loomstack-labs/specloom/internal/state"
	"github.com/loomstack-labs/specloom/pkg/check"
	_ "github.com/loomstack-labs/specloom/pkg/check/rules"
)

// Server wires the store and analyzer into HTTP handlers.
type Server struct {
	store    state.Store
	analyzer *check.Analyzer
	logger   *slog.Logger
}

// New creates a server. A nil logger disables request logging.
func New(store state.Store, analyzer *check.Analyzer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if analyzer == nil {
		analyzer = check.NewAnalyzer(nil)
	}
	return &Server{store: store, analyzer: analyzer, logger: logger}
}

// Handler builds the chi router with all API routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/projects", func(r chi.Router) {
		r.Get("/", s.handleListProjects)
		r.Post("/", s.handleCreateProject)

		r.Route("/{projectID}", func(r chi.Router) {
			r.Get("/", s.handleGetProject)
			r.Delete("/", s.handleDeleteProject)
			r.Get("/graph", s.handleGetGraph)
			r.Put("/graph", s.handlePutGraph)
			r.Post("/validate", s.handleValidate)
			r.Post("/import", s.handleImport)
			r.Get("/export", s.handleExport)
		})
	})

	return r
}
