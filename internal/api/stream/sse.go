package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/syntrixbase/notes/internal/feed"
	"github.com/syntrixbase/notes/internal/notes"
	"github.com/syntrixbase/notes/internal/server"
	"github.com/syntrixbase/notes/pkg/model"
)

// ServeSSE streams the snapshot followed by live changes as server-sent events.
func (h *Handler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		server.WriteError(w, r, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	filter, ok := h.filterFromRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	it, ok := h.openStream(w, r.WithContext(ctx))
	if !ok {
		return
	}

	clearWriteDeadline(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
		_ = it.Close(context.WithoutCancel(ctx))
		return
	}
	flusher.Flush()

	events, wait := feed.Pipe(ctx, it)
	defer func() {
		cancel()
		_ = wait()
	}()

	reqID := server.GetRequestID(r.Context())
	h.logger.Info("SSE client connected", "request_id", reqID, "filtered", filter != nil)

	heartbeat := time.NewTicker(h.cfg.HeartbeatInterval)
	defer heartbeat.Stop()

	sent := 0
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("SSE client disconnected", "request_id", reqID, "sent", sent)
			return

		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case ev, open := <-events:
			if !open {
				err := wait()
				if err != nil && !model.IsCanceled(err) {
					h.logger.Error("Change feed failed", "request_id", reqID, "sent", sent, "error", err)
					writeSSEError(w, err)
					flusher.Flush()
					return
				}
				h.logger.Info("Change feed completed", "request_id", reqID, "sent", sent)
				return
			}
			if !h.match(filter, ev) {
				continue
			}

			data, err := json.Marshal(notes.ToNoteResponseEvent(ev))
			if err != nil {
				h.logger.Warn("Failed to marshal event", "entity_id", ev.EntityID, "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
			sent++
		}
	}
}

func writeSSEError(w http.ResponseWriter, err error) {
	data, _ := json.Marshal(map[string]string{"message": err.Error()})
	_, _ = fmt.Fprintf(w, "event: error\ndata: %s\n\n", data)
}
