// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amuhanad881-gif/echoroom1/internal/logging"
	"github.com/amuhanad881-gif/echoroom1/internal/models"
)

type sendMessageRequest struct {
	ServerID  string `json:"server_id" validate:"required"`
	ChannelID string `json:"channel_id" validate:"required"`
	UserEmail string `json:"user_email" validate:"required,email"`
	Username  string `json:"username" validate:"required"`
	Content   string `json:"content" validate:"required,max=4000"`
}

// ListMessages returns the most recent messages of a channel in ascending
// timestamp order.
func (h *Handlers) ListMessages(w http.ResponseWriter, r *http.Request) {
	serverID := chi.URLParam(r, "serverID")
	channelID := chi.URLParam(r, "channelID")

	messages, err := h.db.ListMessages(r.Context(), serverID, channelID)
	if err != nil {
		logging.Error().Err(err).
			Str("server_id", serverID).
			Str("channel_id", channelID).
			Msg("failed to list messages")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to list messages")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// SendMessage persists a message. The client relays it to the room over
// the socket afterwards, so persistence always precedes delivery.
func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	msg := &models.Message{
		ServerID:  req.ServerID,
		ChannelID: req.ChannelID,
		UserEmail: req.UserEmail,
		Username:  req.Username,
		Content:   req.Content,
		Timestamp: time.Now().UTC(),
	}
	if err := h.db.CreateMessage(r.Context(), msg); err != nil {
		logging.Error().Err(err).Msg("failed to persist message")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to send message")
		return
	}

	respondJSON(w, http.StatusCreated, msg)
}
