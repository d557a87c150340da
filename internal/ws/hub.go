package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is the envelope pushed to connected clients.
type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Hub keeps the live websocket connections keyed by user. A user may hold
// several connections (multiple tabs); every one of them gets each event.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			conns, ok := h.clients[client.userID]
			if !ok {
				conns = make(map[*Client]bool)
				h.clients[client.userID] = conns
			}
			conns[client] = true
			total := h.countLocked()
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Debug("ws connected",
					zap.String("user_id", client.userID.String()),
					zap.Int("total_clients", total))
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if conns, ok := h.clients[client.userID]; ok {
				if _, live := conns[client]; live {
					delete(conns, client)
					close(client.send)
				}
				if len(conns) == 0 {
					delete(h.clients, client.userID)
				}
			}
			total := h.countLocked()
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Debug("ws disconnected",
					zap.String("user_id", client.userID.String()),
					zap.Int("total_clients", total))
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Notify delivers an event to every live connection of one user. Users
// without a connection simply miss the event; the REST API remains the
// source of truth.
func (h *Hub) Notify(userID uuid.UUID, event string, payload any) {
	if h == nil || userID == uuid.Nil {
		return
	}

	evt := Event{
		Type:      event,
		Data:      payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	msg, err := json.Marshal(evt)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("ws event marshal failed", zap.String("event", event), zap.Error(err))
		}
		return
	}

	h.mutex.RLock()
	snapshot := make([]*Client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		snapshot = append(snapshot, c)
	}
	h.mutex.RUnlock()

	for _, client := range snapshot {
		select {
		case client.send <- msg:
		default:
			// Slow consumer; drop the connection rather than block.
			h.Unregister(client)
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.countLocked()
}

func (h *Hub) countLocked() int {
	total := 0
	for _, conns := range h.clients {
		total += len(conns)
	}
	return total
}
