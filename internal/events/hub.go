package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/vendra/vendra-backend/pkg/logger"
)

// CatalogEvent is the wire format pushed to connected dashboards.
type CatalogEvent struct {
	Event     string    `json:"event"`
	ProductID uint      `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub fans catalog change events out to every connected WebSocket client.
// Publishing never blocks: slow clients get disconnected instead of
// stalling writers.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 1024),
	}
}

// Run processes registrations and broadcasts. Call it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			logger.Info("Catalog events client connected", map[string]interface{}{
				"user_id": client.UserID,
				"clients": h.ClientCount(),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			logger.Info("Catalog events client disconnected", map[string]interface{}{
				"user_id": client.UserID,
				"clients": h.ClientCount(),
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Client cannot keep up, drop it
					go func(c *Client) { h.unregister <- c }(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// PublishProductEvent implements service.CatalogEventPublisher.
func (h *Hub) PublishProductEvent(event string, productID uint) {
	payload, err := json.Marshal(CatalogEvent{
		Event:     event,
		ProductID: productID,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		logger.Error("Failed to serialize catalog event", err, map[string]interface{}{
			"event":      event,
			"product_id": productID,
		})
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		logger.Warn("Catalog event dropped, broadcast buffer full", map[string]interface{}{
			"event":      event,
			"product_id": productID,
		})
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
