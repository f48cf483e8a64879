// Package rest serves the note REST API.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/syntrixbase/notes/internal/notes"
	"github.com/syntrixbase/notes/internal/server"
	"github.com/syntrixbase/notes/pkg/model"
)

const (
	// BasePath prefixes every note route.
	BasePath = "/api/v1/notes"

	DefaultMaxBodySize    = 1 << 20 // 1MB
	DefaultRequestTimeout = 30 * time.Second
)

// StatusClientClosedRequest is logged when the client goes away mid-request.
const StatusClientClosedRequest = 499

type Handler struct {
	notes  notes.Service
	logger *slog.Logger
}

func NewHandler(svc notes.Service, logger *slog.Logger) *Handler {
	if svc == nil {
		panic("notes service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		notes:  svc,
		logger: logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the note CRUD, query and health routes.
// The stream routes under BasePath are registered by the stream package.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST "+BasePath, withTimeout(maxBodySize(h.handleCreateNote, DefaultMaxBodySize), DefaultRequestTimeout))
	mux.HandleFunc("GET "+BasePath, withTimeout(h.handleGetAllNotes, DefaultRequestTimeout))
	mux.HandleFunc("GET "+BasePath+"/{id}", withTimeout(h.handleGetNote, DefaultRequestTimeout))
	mux.HandleFunc("PUT "+BasePath+"/{id}", withTimeout(maxBodySize(h.handleUpdateNote, DefaultMaxBodySize), DefaultRequestTimeout))
	mux.HandleFunc("DELETE "+BasePath+"/{id}", withTimeout(h.handleDeleteNote, DefaultRequestTimeout))

	mux.HandleFunc("GET "+BasePath+"/category/{category}", withTimeout(h.handleGetByCategory, DefaultRequestTimeout))
	mux.HandleFunc("GET "+BasePath+"/important", withTimeout(h.handleGetImportant, DefaultRequestTimeout))
	mux.HandleFunc("GET "+BasePath+"/search/title", withTimeout(h.handleSearchByTitle, DefaultRequestTimeout))
	mux.HandleFunc("GET "+BasePath+"/search/content", withTimeout(h.handleSearchByContent, DefaultRequestTimeout))
	mux.HandleFunc("GET "+BasePath+"/tag/{tag}", withTimeout(h.handleGetByTag, DefaultRequestTimeout))
	mux.HandleFunc("GET "+BasePath+"/count/category/{category}", withTimeout(h.handleCountByCategory, DefaultRequestTimeout))

	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /{$}", h.handleRoot)
}

// writeServiceError maps a service error to its HTTP response.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *notes.ValidationError
	switch {
	case errors.As(err, &ve):
		body := server.NewErrorResponse(r, http.StatusBadRequest, "Validation Failed", "Input validation failed")
		body.ValidationErrors = ve.Fields
		server.WriteErrorResponse(w, body)
	case errors.Is(err, model.ErrNotFound):
		server.WriteError(w, r, http.StatusNotFound, err.Error())
	case model.IsCanceled(err):
		w.WriteHeader(StatusClientClosedRequest)
	default:
		h.logger.Error("Unexpected error", "path", r.URL.Path, "request_id", server.GetRequestID(r.Context()), "error", err)
		server.WriteError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	server.WriteError(w, r, http.StatusBadRequest, message)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("Failed to encode JSON response", "error", err)
	}
}

func maxBodySize(next http.HandlerFunc, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next(w, r)
	}
}

func withTimeout(next http.HandlerFunc, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		next(w, r.WithContext(ctx))
	}
}
