package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"apod_fetcher/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamMessage is the frame pushed to websocket clients.
type streamMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// StreamCurrent pushes the current photo slot on every change.
// GET /ws/current
func (h *Handler) StreamCurrent(w http.ResponseWriter, r *http.Request) {
	stream(h, w, r, "current", h.svc.Current().Watch, func(p *domain.PhotoRecord) any {
		if p == nil {
			return nil
		}
		return toResponse(*p)
	})
}

// StreamList pushes the list slot on every change.
// GET /ws/list
func (h *Handler) StreamList(w http.ResponseWriter, r *http.Request) {
	stream(h, w, r, "list", h.svc.List().Watch, func(photos []domain.PhotoRecord) any {
		return toResponses(photos)
	})
}

func stream[T any](
	h *Handler,
	w http.ResponseWriter,
	r *http.Request,
	kind string,
	watch func(ctx context.Context) <-chan T,
	payload func(T) any,
) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(h.base)
	defer cancel()

	// The read pump only handles control frames and notices the peer leaving.
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	updates := watch(ctx)
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	h.logger.Debug("websocket stream opened", "stream", kind)
	defer h.logger.Debug("websocket stream closed", "stream", kind)

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case v, ok := <-updates:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(streamMessage{Type: kind, Payload: payload(v)}); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
