package live

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/betting-league/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type resultMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub fans match results out to every connected websocket client.
// All clients share a single stream; there are no per-match rooms.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte

	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.logger.Info("websocket client registered", slog.Int("clients", len(h.clients)))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				client.mu.Lock()
				if !client.closed {
					close(client.send)
					client.closed = true
				}
				client.mu.Unlock()
				delete(h.clients, client)
				h.logger.Info("websocket client unregistered", slog.Int("clients", len(h.clients)))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				client.mu.Lock()
				if client.closed {
					client.mu.Unlock()
					continue
				}
				select {
				case client.send <- message:
				default:
					// Slow client; drop the message rather than block the hub.
				}
				client.mu.Unlock()
			}
			h.mu.RUnlock()
		}
	}
}

// PublishResult pushes a resolved match to every connected client.
// It satisfies the simulation service's publisher dependency.
func (h *Hub) PublishResult(match *models.Match) {
	msg := resultMessage{
		Type:    "MATCH_RESOLVED",
		Payload: match,
	}
	messageBytes, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal result message", slog.Any("error", err))
		return
	}
	select {
	case h.broadcast <- messageBytes:
	default:
		h.logger.Warn("result broadcast channel full, dropping message", slog.Int("match_id", match.ID))
	}
}
