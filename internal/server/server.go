// Package server exposes stored run history over HTTP so finished runs can
// be browsed and re-interpreted without re-contacting the engine.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/GKamundia/KrinoSeq/internal/storage/sqlite"
)

type Server struct {
	Router *chi.Mux
	Port   int
	logger *slog.Logger
}

func New(port int, logger *slog.Logger, store *sqlite.Store) *Server {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "krinoseq-viewer")
	})

	h := &handlers{store: store, logger: logger}
	r.Get("/runs", h.listRuns)
	r.Get("/runs/{runID}", h.getRun)
	r.Get("/runs/{runID}/interpretation", h.interpretRun)

	return &Server{
		Router: r,
		Port:   port,
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting viewer", slog.Int("port", s.Port))
	return http.ListenAndServe(fmt.Sprintf(":%d", s.Port), s.Router)
}
