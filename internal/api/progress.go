package api

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/floorsight/backend/internal/ingest"
	"github.com/floorsight/backend/pkg/logger"
)

// ProgressHub fans ingest progress events out to websocket subscribers.
// Publish never blocks the pipeline; a subscriber that cannot keep up is
// dropped.
type ProgressHub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]chan ingest.ProgressEvent
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewProgressHub creates a hub with no subscribers.
func NewProgressHub(log *logger.Logger) *ProgressHub {
	return &ProgressHub{
		clients: make(map[*websocket.Conn]chan ingest.ProgressEvent),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: log,
	}
}

// Publish delivers an event to every subscriber.
func (h *ProgressHub) Publish(event ingest.ProgressEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, ch := range h.clients {
		select {
		case ch <- event:
		default:
			delete(h.clients, conn)
			close(ch)
			conn.Close()
		}
	}
}

// ServeHTTP upgrades the connection and streams progress events until the
// client disconnects.
func (h *ProgressHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	ch := make(chan ingest.ProgressEvent, 16)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()

	go h.writeLoop(conn, ch)
	h.readLoop(conn)
}

func (h *ProgressHub) writeLoop(conn *websocket.Conn, ch chan ingest.ProgressEvent) {
	for event := range ch {
		if err := conn.WriteJSON(event); err != nil {
			h.remove(conn)
			return
		}
	}
}

// readLoop discards inbound frames; it exists to detect disconnects.
func (h *ProgressHub) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(conn)
			return
		}
	}
}

func (h *ProgressHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(ch)
	}
	conn.Close()
}
