package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrClientClosed reports a send to a client that has gone away or whose
// outbound buffer is full.
var ErrClientClosed = errors.New("client is closed")

// ClientInterface is what the hub needs from a connection.
type ClientInterface interface {
	ID() string
	UserID() string
	Send(data []byte) error
	Close() error
}

// Hub fans events out to every open connection of a user. Safe for
// concurrent use.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]map[string]ClientInterface // user id → client id → client
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]map[string]ClientInterface)}
}

// Register adds a client under its user.
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	byID := h.conns[client.UserID()]
	if byID == nil {
		byID = make(map[string]ClientInterface)
		h.conns[client.UserID()] = byID
	}
	byID[client.ID()] = client

	log.Debug().Str("user_id", client.UserID()).Str("client_id", client.ID()).Msg("WebSocket client registered")
}

// Unregister removes a client; the last client of a user drops the user
// entry entirely.
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	byID, ok := h.conns[client.UserID()]
	if !ok {
		return
	}
	if _, ok := byID[client.ID()]; !ok {
		return
	}
	delete(byID, client.ID())
	if len(byID) == 0 {
		delete(h.conns, client.UserID())
	}

	log.Debug().Str("user_id", client.UserID()).Str("client_id", client.ID()).Msg("WebSocket client unregistered")
}

// Broadcast serializes the event once and sends it to every client of the
// user. Client sends never block (the per-client buffer drops when full),
// so the fan-out runs synchronously over a snapshot taken under the read
// lock.
func (h *Hub) Broadcast(userID string, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("event_type", event.Type).Msg("Failed to serialize event")
		return
	}

	h.mu.RLock()
	targets := make([]ClientInterface, 0, len(h.conns[userID]))
	for _, c := range h.conns[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.Send(data); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Str("client_id", c.ID()).Msg("Failed to send to client")
		}
	}
}

// ClientCount returns how many clients a user has connected.
func (h *Hub) ClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}

// TotalClientCount returns the number of connected clients across users.
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	total := 0
	for _, byID := range h.conns {
		total += len(byID)
	}
	return total
}
