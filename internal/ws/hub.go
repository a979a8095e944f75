package ws

import (
	"encoding/json"
	"sync"

	"listen/internal/domain"
	"listen/internal/models"

	"github.com/rs/zerolog/log"
)

// Client is one live notification connection. The role is bound once at
// registration, from the token presented on connect, and never changes for
// the life of the connection; reconnecting is the only way to change it.
// An empty role means the connection presented no credential.
type Client struct {
	Role domain.Role
	Send chan []byte

	hub    *Hub
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// Close unregisters the client and stops its write pump. Safe to call twice.
// Send is never closed; trySend checks the closed flag under the same lock,
// so a broadcast racing a disconnect skips the client instead of panicking.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()
	if c.hub != nil {
		c.hub.unregister(c)
	}
}

// trySend queues one message without blocking. A closed client or a full
// buffer drops the message.
func (c *Client) trySend(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
		log.Warn().Str("role", string(c.Role)).Msg("notification client buffer full, dropping push")
	}
}

// Hub is the registry of live notification connections. Producers never see
// the client set; they go through NotificationService, which calls Broadcast.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Register admits a connection with the given bound role ("" for none).
func (h *Hub) Register(role domain.Role) *Client {
	c := &Client{
		Role: role,
		Send: make(chan []byte, 256),
		hub:  h,
		done: make(chan struct{}),
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	log.Debug().Str("role", string(role)).Msg("notification client connected")
	return c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	log.Debug().Str("role", string(c.Role)).Msg("notification client disconnected")
}

// Broadcast pushes one notification to matching live connections. With no
// target role every connection gets it, credentialed or not; with a target
// role only connections bound to exactly that role do. Delivery is
// best-effort: a client whose buffer is full is skipped, never waited on.
func (h *Hub) Broadcast(n *models.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		log.Error().Err(err).Uint("id", n.ID).Msg("marshal notification")
		return
	}
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		if n.TargetRole != "" && c.Role != n.TargetRole {
			continue
		}
		targets = append(targets, c)
	}
	h.mu.RUnlock()
	for _, c := range targets {
		c.trySend(data)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
