// Package stream pushes journal entries to websocket subscribers as they
// are committed.
package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"trapzone/internal/app/ports"
)

type message struct {
	sessionID string
	payload   []byte
}

// Hub fans committed entries out to clients. A client whose send buffer is
// full is dropped rather than stalling the game.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
	logger     *slog.Logger

	// Accept reports whether a session id may be subscribed to. Nil accepts
	// everything.
	Accept func(sessionID string) bool
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("stream hub stopped")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("stream client connected", "session_id", client.sessionID)
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debug("stream client disconnected", "session_id", client.sessionID)
			}
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if client.sessionID != "" && client.sessionID != msg.sessionID {
					continue
				}
				select {
				case client.send <- msg.payload:
				default:
					close(client.send)
					delete(h.clients, client)
					h.logger.Warn("stream client too slow, dropped", "session_id", client.sessionID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues entries for delivery. It never blocks the caller.
func (h *Hub) Publish(sessionID string, entries []ports.JournalEntry) {
	for _, entry := range entries {
		payload, err := json.Marshal(entry)
		if err != nil {
			h.logger.Error("encode stream entry", "session_id", sessionID, "err", err)
			continue
		}
		select {
		case h.broadcast <- message{sessionID: sessionID, payload: payload}:
		default:
			h.logger.Warn("stream backlog full, entry dropped", "session_id", sessionID, "seq", entry.Seq)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

var _ ports.EventPublisher = (*Hub)(nil)
