// Package stream serves the note change feed over SSE and WebSocket.
package stream

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/syntrixbase/notes/internal/feed"
	"github.com/syntrixbase/notes/internal/notes"
	"github.com/syntrixbase/notes/internal/server"
)

// BasePath is shared with the REST routes; the stream routes are more specific than /{id}.
const BasePath = "/api/v1/notes"

type Handler struct {
	notes  notes.Service
	cfg    Config
	logger *slog.Logger
}

func NewHandler(svc notes.Service, cfg Config, logger *slog.Logger) *Handler {
	if svc == nil {
		panic("notes service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg.ApplyDefaults()
	return &Handler{
		notes:  svc,
		cfg:    cfg,
		logger: logger.With("component", "stream"),
	}
}

// RegisterRoutes registers the SSE and WebSocket feed routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+BasePath+"/stream", h.ServeSSE)
	mux.HandleFunc("GET "+BasePath+"/ws", h.ServeWS)
}

// filterFromRequest compiles the optional ?filter= expression, writing a 400 on failure.
func (h *Handler) filterFromRequest(w http.ResponseWriter, r *http.Request) (*Filter, bool) {
	f, err := CompileFilter(r.URL.Query().Get("filter"))
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, "Invalid filter expression: "+err.Error())
		return nil, false
	}
	return f, true
}

// openStream starts the feed for this request, writing a 500 on failure.
func (h *Handler) openStream(w http.ResponseWriter, r *http.Request) (feed.Iterator, bool) {
	it, err := h.notes.StreamAllWithUpdates(r.Context())
	if err != nil {
		h.logger.Error("Failed to open change feed", "request_id", server.GetRequestID(r.Context()), "error", err)
		server.WriteError(w, r, http.StatusInternalServerError, "Failed to open change feed")
		return nil, false
	}
	return it, true
}

// match applies the filter, logging and skipping events it cannot evaluate.
func (h *Handler) match(f *Filter, ev feed.Event) bool {
	ok, err := f.Match(ev)
	if err != nil {
		h.logger.Debug("Filter evaluation failed, skipping event", "entity_id", ev.EntityID, "error", err)
		return false
	}
	return ok
}

// clearWriteDeadline lifts the server's WriteTimeout for long-lived responses.
func clearWriteDeadline(w http.ResponseWriter) {
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})
}
