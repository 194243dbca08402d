// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package api

import (
	"net/http"

	gorilla "github.com/gorilla/websocket"

	"github.com/amuhanad881-gif/echoroom1/internal/logging"
	"github.com/amuhanad881-gif/echoroom1/internal/metrics"
	"github.com/amuhanad881-gif/echoroom1/internal/websocket"
)

const (
	wsReadBufferSize  = 4096
	wsWriteBufferSize = 4096
)

// WebSocket authenticates and upgrades the connection, then hands it to
// the hub. The session token travels in the token query parameter because
// browser WebSocket clients cannot set headers. An invalid token is the
// only admission-time rejection the client sees.
func (h *Handlers) WebSocket(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.Resolve(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		respondError(w, http.StatusUnauthorized, codeUnauthorized, "invalid session token")
		return
	}

	upgrader := gorilla.Upgrader{
		ReadBufferSize:  wsReadBufferSize,
		WriteBufferSize: wsWriteBufferSize,
		CheckOrigin:     h.checkOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		metrics.RecordWSError("read")
		logging.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := websocket.NewClient(h.hub, conn, &h.cfg.Websocket)
	h.hub.Attach(client, websocket.Identity{
		Email:    identity.Email,
		Username: identity.Username,
	})
	client.Start()
}

// checkOrigin mirrors the CORS allowlist. A wildcard entry or an empty
// list admits any origin.
func (h *Handlers) checkOrigin(r *http.Request) bool {
	origins := h.cfg.Security.CORSOrigins
	if len(origins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range origins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
