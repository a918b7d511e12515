package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/papyrus-dev/papyrus/internal/model"
	"github.com/papyrus-dev/papyrus/internal/service/summary"
	"github.com/papyrus-dev/papyrus/internal/storage"
)

// ArticleStore is the storage surface the handlers need.
// *storage.DB satisfies it; tests substitute a fake.
type ArticleStore interface {
	GetArticle(ctx context.Context, id int64) (model.Article, error)
	ArticleField(ctx context.Context, id int64, field model.Field) (any, error)
	Ping(ctx context.Context) error
}

// Handlers holds HTTP handler dependencies. All state is passed in
// explicitly at construction; nothing is read from globals per request.
type Handlers struct {
	store               ArticleStore
	provider            summary.Provider // nil when no API key was configured at startup
	logger              *slog.Logger
	startedAt           time.Time
	version             string
	maxRequestBodyBytes int64
}

// HandlersDeps holds all dependencies for constructing Handlers.
// Provider may be nil; the search endpoint then reports a configuration error.
type HandlersDeps struct {
	Store               ArticleStore
	Provider            summary.Provider
	Logger              *slog.Logger
	Version             string
	MaxRequestBodyBytes int64
}

// NewHandlers creates a new Handlers with all dependencies.
func NewHandlers(d HandlersDeps) *Handlers {
	return &Handlers{
		store:               d.Store,
		provider:            d.Provider,
		logger:              d.Logger,
		startedAt:           time.Now(),
		version:             d.Version,
		maxRequestBodyBytes: d.MaxRequestBodyBytes,
	}
}

// HandleStatus handles GET /.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.StatusResponse{Status: "ok"})
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	pgStatus := "connected"
	status := "healthy"
	httpStatus := http.StatusOK

	if err := h.store.Ping(r.Context()); err != nil {
		pgStatus = "disconnected"
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, model.HealthResponse{
		Status:   status,
		Version:  h.version,
		Postgres: pgStatus,
		Uptime:   int64(time.Since(h.startedAt).Seconds()),
	})
}

// HandleGetArticle handles GET /api/articles/{id}: the full eight-column record.
func (h *Handlers) HandleGetArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := h.articleID(w, r)
	if !ok {
		return
	}

	article, err := h.store.GetArticle(r.Context(), id)
	if err != nil {
		h.writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// HandleArticleField answers a single-field request for the given field.
// The field check runs unconditionally even though the fixed routes can only
// supply allowed fields; the handler stays safe for any future caller.
func (h *Handlers) HandleArticleField(w http.ResponseWriter, r *http.Request, field model.Field) {
	if !field.Valid() {
		writeError(w, http.StatusBadRequest, model.MsgInvalidField)
		return
	}

	id, ok := h.articleID(w, r)
	if !ok {
		return
	}

	value, err := h.store.ArticleField(r.Context(), id, field)
	if err != nil {
		h.writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{string(field): value})
}

// fieldHandler binds HandleArticleField to a fixed field for route registration.
func (h *Handlers) fieldHandler(field model.Field) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.HandleArticleField(w, r, field)
	}
}

// HandleSearch handles POST /api/search: relays the query to the completion model.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		writeError(w, http.StatusInternalServerError, model.MsgSummaryUnset)
		return
	}

	var req model.SearchRequest
	if err := decodeJSON(w, r, &req, h.maxRequestBodyBytes); err != nil || req.Query == nil {
		writeError(w, http.StatusBadRequest, model.MsgQueryRequired)
		return
	}

	text, err := h.provider.Complete(r.Context(), summary.BuildPrompt(*req.Query))
	if err != nil {
		h.logger.Error("completion request failed",
			"error", err,
			"request_id", RequestIDFromContext(r.Context()),
		)
		writeError(w, http.StatusServiceUnavailable, model.MsgSummaryUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, model.SearchResponse{
		UserQuery:     *req.Query,
		GeminiSummary: text,
	})
}

// articleID parses the {id} path segment. Non-integer or negative values get
// a 400 before any storage call.
func (h *Handlers) articleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		writeError(w, http.StatusBadRequest, model.MsgInvalidArticleID)
		return 0, false
	}
	return id, true
}

// writeStorageError maps storage failures onto the fixed client payloads.
// Driver error text never reaches the client; it goes to the log.
func (h *Handlers) writeStorageError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, model.MsgArticleNotFound)
	case errors.Is(err, storage.ErrInvalidField):
		writeError(w, http.StatusBadRequest, model.MsgInvalidField)
	case errors.Is(err, storage.ErrUnavailable):
		h.logger.Error("datastore unavailable",
			"error", err,
			"request_id", RequestIDFromContext(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, model.MsgDatastoreDown)
	default:
		h.logger.Error("storage query failed",
			"error", err,
			"request_id", RequestIDFromContext(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, model.MsgInternalError)
	}
}
