package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"scoreboard/internal/logger"
)

type Hub struct {
	clients map[*websocket.Conn]bool
	mu      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) Broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			logger.Log.Debug("ws write failed, dropping client", zap.Error(err))
			delete(h.clients, c)
			c.Close()
		}
	}
}

func (h *Hub) BroadcastJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Log.Error("ws marshal failed", zap.Error(err))
		return
	}
	h.Broadcast(data)
}

// Handler returns a websocket handler that sends the snapshot to each new
// client before it joins the broadcast set. Joining under the hub lock keeps
// the snapshot ordered before any broadcast the client receives.
func (h *Hub) Handler(snapshot func() any) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		h.mu.Lock()
		if snapshot != nil {
			if err := c.WriteJSON(snapshot()); err != nil {
				h.mu.Unlock()
				c.Close()
				return
			}
		}
		h.clients[c] = true
		h.mu.Unlock()

		defer func() {
			h.mu.Lock()
			delete(h.clients, c)
			h.mu.Unlock()
			c.Close()
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}
}
