package stream

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/syntrixbase/notes/internal/feed"
	"github.com/syntrixbase/notes/internal/notes"
	"github.com/syntrixbase/notes/internal/server"
	"github.com/syntrixbase/notes/pkg/model"
)

// maxCloseReason is the control frame payload limit minus the 2-byte close code.
const maxCloseReason = 123

// checkOrigin allows non-browser clients, the request's own host and the configured origins.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}

	for _, allowed := range h.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

func (h *Handler) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
}

// ServeWS streams the snapshot followed by live changes, one JSON text message per event.
// Inbound messages are read only to service control frames.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
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

	conn, err := h.upgrader().Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		h.logger.Warn("WebSocket upgrade failed", "error", err)
		_ = it.Close(ctx)
		return
	}
	defer conn.Close()

	reqID := server.GetRequestID(r.Context())
	h.logger.Info("WebSocket client connected", "request_id", reqID, "filtered", filter != nil)

	go h.readPump(conn, cancel)

	events, wait := feed.Pipe(ctx, it)
	defer func() {
		cancel()
		_ = wait()
	}()

	ping := time.NewTicker(h.cfg.pingPeriod())
	defer ping.Stop()

	sent := 0
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket client disconnected", "request_id", reqID, "sent", sent)
			return

		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case ev, open := <-events:
			if !open {
				err := wait()
				if err != nil && !model.IsCanceled(err) {
					h.logger.Error("Change feed failed", "request_id", reqID, "sent", sent, "error", err)
					h.writeClose(conn, websocket.CloseInternalServerErr, err.Error())
					return
				}
				if err == nil {
					h.logger.Info("Change feed completed", "request_id", reqID, "sent", sent)
					h.writeClose(conn, websocket.CloseNormalClosure, "")
				}
				return
			}
			if !h.match(filter, ev) {
				continue
			}

			_ = conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteWait))
			if err := conn.WriteJSON(notes.ToNoteResponseEvent(ev)); err != nil {
				h.logger.Debug("WebSocket write failed", "request_id", reqID, "error", err)
				return
			}
			sent++
		}
	}
}

// readPump keeps the read deadline moving on pongs and cancels the stream once the peer goes away.
func (h *Handler) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(h.cfg.MaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				h.logger.Warn("WebSocket connection closed", "error", err)
			}
			return
		}
	}
}

func (h *Handler) writeClose(conn *websocket.Conn, code int, reason string) {
	if len(reason) > maxCloseReason {
		reason = strings.ToValidUTF8(reason[:maxCloseReason], "")
	}
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(h.cfg.WriteWait))
}
