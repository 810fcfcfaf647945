package revalidate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Event is sent to every connected client when pages are revalidated.
type Event struct {
	Type  string    `json:"type"`
	Paths []string  `json:"paths"`
	At    time.Time `json:"at"`
}

// Hub fans revalidation events out to websocket clients, typically open
// admin screens that refresh when content changes.
type Hub struct {
	upgrader  websocket.Upgrader
	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	broadcast chan []byte
	logger    *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, 100),
		logger:    logger,
	}
}

// Run delivers published events until ctx is cancelled, then closes every
// client connection.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				client.Close()
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		case message := <-h.broadcast:
			h.send(message)
		}
	}
}

func (h *Hub) send(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
			h.logger.Warn("websocket write failed", "remote", client.RemoteAddr().String(), "error", err)
			client.Close()
			delete(h.clients, client)
		}
	}
}

// Publish queues a revalidation event. It never blocks; events are dropped
// when the queue is full.
func (h *Hub) Publish(paths []string) {
	message, err := json.Marshal(Event{Type: "revalidate", Paths: paths, At: time.Now().UTC()})
	if err != nil {
		h.logger.Error("encode revalidation event", "error", err)
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("revalidation event dropped", "paths", paths)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects. Messages from clients are read and discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	h.logger.Info("websocket client connected", "remote", conn.RemoteAddr().String())

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("websocket read failed", "error", err)
			}
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	h.logger.Info("websocket client disconnected", "remote", conn.RemoteAddr().String())
}

// Handler mounts the hub on a Fiber app.
func (h *Hub) Handler() fiber.Handler {
	return adaptor.HTTPHandlerFunc(h.ServeHTTP)
}
