package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/papyrus-dev/papyrus/internal/model"
	"github.com/papyrus-dev/papyrus/internal/service/summary"
)

// Server is the papyrus HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	handlers   *Handlers
	logger     *slog.Logger
}

// Config holds all dependencies and settings for creating a Server.
type Config struct {
	Store    ArticleStore
	Provider summary.Provider // nil = search endpoint reports a configuration error
	Logger   *slog.Logger

	Port                int
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	Version             string
	MaxRequestBodyBytes int64
}

// fieldRoutes maps each single-field path segment to its column. A map keyed
// by path segment makes double registration of a route impossible.
var fieldRoutes = map[string]model.Field{
	"title":    model.FieldTitle,
	"author":   model.FieldAuthor,
	"year":     model.FieldPubYear,
	"abstract": model.FieldAbstract,
	"keywords": model.FieldKeyWords,
	"related":  model.FieldRelatedArticles,
	"summary":  model.FieldSummarySentence,
}

// New creates a new HTTP server with all routes configured.
func New(cfg Config) *Server {
	h := NewHandlers(HandlersDeps{
		Store:               cfg.Store,
		Provider:            cfg.Provider,
		Logger:              cfg.Logger,
		Version:             cfg.Version,
		MaxRequestBodyBytes: cfg.MaxRequestBodyBytes,
	})

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.HandleStatus)
	mux.HandleFunc("GET /health", h.HandleHealth)

	mux.HandleFunc("GET /api/articles/{id}", h.HandleGetArticle)
	for segment, field := range fieldRoutes {
		mux.HandleFunc("GET /api/articles/{id}/"+segment, h.fieldHandler(field))
	}

	mux.HandleFunc("POST /api/search", h.HandleSearch)

	// Middleware chain (outermost executes first):
	// request ID → CORS → tracing → logging → recovery → handler.
	var handler http.Handler = mux
	handler = recoveryMiddleware(cfg.Logger, handler)
	handler = loggingMiddleware(cfg.Logger, handler)
	handler = tracingMiddleware(handler)
	handler = corsMiddleware(handler)
	handler = requestIDMiddleware(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		handler:  handler,
		handlers: h,
		logger:   cfg.Logger,
	}
}

// Handler returns the root HTTP handler for use in tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
