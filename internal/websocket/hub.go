// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package websocket

import (
	"context"
	"sync"

	"github.com/amuhanad881-gif/echoroom1/internal/config"
	"github.com/amuhanad881-gif/echoroom1/internal/logging"
	"github.com/amuhanad881-gif/echoroom1/internal/metrics"
	"github.com/amuhanad881-gif/echoroom1/internal/models"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path.
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline may indicate a hung shutdown.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Hub is the event relay. It owns the connection registry, the room
// directory, and the set of attached clients, and fans events out to the
// right subset of connections.
type Hub struct {
	registry  *Registry
	directory *Directory
	cfg       *config.WebsocketConfig

	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a hub with empty state.
func NewHub(cfg *config.WebsocketConfig) *Hub {
	return &Hub{
		registry:  NewRegistry(),
		directory: NewDirectory(),
		cfg:       cfg,
		clients:   make(map[string]*Client),
	}
}

// Registry exposes the connection registry.
func (h *Hub) Registry() *Registry {
	return h.registry
}

// Directory exposes the room directory.
func (h *Hub) Directory() *Directory {
	return h.directory
}

// Attach admits the client's connection, records its identity, and sends
// the admission event carrying the assigned connection ID so the client
// can hand it to signaling peers. Returns the connection ID.
func (h *Hub) Attach(client *Client, identity Identity) string {
	id := h.registry.Admit()
	// Identity is known at admission; the token was resolved before the
	// upgrade completed.
	_ = h.registry.Identify(id, identity)

	client.id = id
	h.mu.Lock()
	h.clients[id] = client
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(total))
	logging.Info().
		Str("connection_id", id).
		Str("username", identity.Username).
		Int("total_clients", total).
		Msg("websocket client connected")

	client.trySend(mustEvent(EventConnected, connectedPayload{ConnectionID: id}))
	return id
}

// HandleDisconnect tears a connection down: deregisters it, purges its
// room memberships, and closes its send queue. Safe to call for an
// already-removed connection. Never blocks on a broadcast in flight.
func (h *Hub) HandleDisconnect(id string) {
	if err := h.registry.Remove(id); err != nil {
		// Disconnect races are expected, nothing left to do.
		return
	}
	h.directory.Purge(id)

	h.mu.Lock()
	client, ok := h.clients[id]
	delete(h.clients, id)
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		client.closeSend()
	}
	metrics.WSConnections.Set(float64(total))
	logging.Info().
		Str("connection_id", id).
		Int("total_clients", total).
		Msg("websocket client disconnected")
}

// Broadcast delivers the event to every current member of the room except
// exclude (empty string excludes nobody). Exclusion is the caller's
// choice per event kind. Zero recipients is a silent no-op. The
// membership lock is released before any send happens.
func (h *Hub) Broadcast(roomKey string, event Event, exclude string) {
	members := h.directory.Members(roomKey)
	if len(members) == 0 {
		return
	}

	h.mu.RLock()
	recipients := make([]*Client, 0, len(members))
	for _, connID := range members {
		if connID == exclude {
			continue
		}
		if client, ok := h.clients[connID]; ok {
			recipients = append(recipients, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range recipients {
		if client.trySend(event) {
			metrics.RecordEventRelayed(event.Type)
		}
	}
}

// RelayTo delivers the event to exactly one connection. A vanished target
// is a silent no-op.
func (h *Hub) RelayTo(target string, event Event) {
	h.mu.RLock()
	client, ok := h.clients[target]
	h.mu.RUnlock()
	if !ok {
		return
	}
	if client.trySend(event) {
		metrics.RecordEventRelayed(event.Type)
	}
}

// ClientCount returns the number of attached clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RoomStatuses returns a live membership snapshot of every room, with
// connection IDs resolved to display names where identified.
func (h *Hub) RoomStatuses() []models.RoomStatus {
	rooms := h.directory.snapshot()
	statuses := make([]models.RoomStatus, 0, len(rooms))
	for _, room := range rooms {
		users := make([]string, 0, len(room.Members))
		for _, connID := range room.Members {
			identity, err := h.registry.Lookup(connID)
			if err != nil || identity.Username == "" {
				continue
			}
			users = append(users, identity.Username)
		}
		statuses = append(statuses, models.RoomStatus{
			RoomKey:   room.Key,
			UserCount: len(room.Members),
			Users:     users,
		})
	}
	return statuses
}

// Serve blocks until the context is canceled, then closes every attached
// client. Implements suture.Service so the hub restarts cleanly under
// supervision without leaving orphaned connections.
func (h *Hub) Serve(ctx context.Context) error {
	<-ctx.Done()

	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	count := len(clients)
	h.clients = make(map[string]*Client)
	h.mu.Unlock()

	for _, client := range clients {
		client.closeSend()
	}
	metrics.WSConnections.Set(0)

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(shutdownReason(ctx))).
		Int("clients_closed", count).
		Msg("websocket hub stopped")
	return ctx.Err()
}

// String names the service in supervisor logs.
func (h *Hub) String() string {
	return "websocket-hub"
}

func shutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}
