// Package diagnostics implements the master's read-only introspection
// feed: a websocket broadcaster that mirrors registry and parameter
// changes for monitoring tools, entirely outside the ROS wire protocol
// and unable to mutate any master state.
package diagnostics

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is one notification pushed to connected clients.
type Event struct {
	Kind   string    `json:"kind"`
	Detail string    `json:"detail"`
	Time   time.Time `json:"time"`
}

// Hub accepts websocket connections on ServeHTTP and broadcasts Events
// to all of them. Broadcasting writes to each client in turn on the
// caller's goroutine, and a client whose write fails is dropped. Writes
// carry no deadline, so a client that stops reading can delay the
// handler that produced the event.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the connection and registers it for broadcasts.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("diagnostics: websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	go h.drain(conn)
}

// drain reads (and discards) from conn until it errors or closes, so
// the hub notices disconnects; clients are not expected to send
// anything meaningful on this feed.
func (h *Hub) drain(conn *websocket.Conn) {
	defer h.remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// Broadcast sends ev to every connected client, best-effort.
func (h *Hub) Broadcast(ev Event) {
	if h == nil {
		return
	}
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteJSON(ev); err != nil {
			h.remove(c)
		}
	}
}

// ClientCount reports how many clients are currently connected, used
// by tests.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
