// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package api

import (
	"net/http"
	"time"

	"github.com/amuhanad881-gif/echoroom1/internal/auth"
	"github.com/amuhanad881-gif/echoroom1/internal/config"
	"github.com/amuhanad881-gif/echoroom1/internal/database"
	"github.com/amuhanad881-gif/echoroom1/internal/websocket"
)

// Handlers carries the dependencies the HTTP endpoints need.
type Handlers struct {
	db       *database.DB
	resolver *auth.Resolver
	hub      *websocket.Hub
	cfg      *config.Config
	started  time.Time
}

// NewHandlers wires the endpoint dependencies together.
func NewHandlers(db *database.DB, resolver *auth.Resolver, hub *websocket.Hub, cfg *config.Config) *Handlers {
	return &Handlers{
		db:       db,
		resolver: resolver,
		hub:      hub,
		cfg:      cfg,
		started:  time.Now(),
	}
}

// Health reports liveness plus a database ping.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	dbStatus := "up"
	code := http.StatusOK

	if err := h.db.Ping(r.Context()); err != nil {
		status = "degraded"
		dbStatus = "down"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, map[string]interface{}{
		"status":         status,
		"database":       dbStatus,
		"connections":    h.hub.ClientCount(),
		"rooms":          h.hub.Directory().RoomCount(),
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}

// Rooms returns a snapshot of live room membership.
func (h *Handlers) Rooms(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"rooms": h.hub.RoomStatuses(),
	})
}
