// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amuhanad881-gif/echoroom1/internal/database"
	"github.com/amuhanad881-gif/echoroom1/internal/logging"
	"github.com/amuhanad881-gif/echoroom1/internal/models"
)

type createServerRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=64"`
	Owner string `json:"owner" validate:"required,email"`
}

type createChannelRequest struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
	Type string `json:"type" validate:"required,oneof=text voice"`
}

// ListServersForUser returns every server the user is a member of.
func (h *Handlers) ListServersForUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	servers, err := h.db.ListServersForUser(r.Context(), email)
	if err != nil {
		logging.Error().Err(err).Str("email", email).Msg("failed to list servers")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to list servers")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"servers": servers})
}

// CreateServer creates a server with its default general channel and the
// owner's membership.
func (h *Handlers) CreateServer(w http.ResponseWriter, r *http.Request) {
	var req createServerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	server := &models.Server{
		Name:      req.Name,
		Owner:     req.Owner,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.db.CreateServer(r.Context(), server); err != nil {
		logging.Error().Err(err).Msg("failed to create server")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to create server")
		return
	}

	respondJSON(w, http.StatusCreated, server)
}

type joinServerRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// JoinServer adds a user to a server's membership. Joining a server you
// already belong to is not an error.
func (h *Handlers) JoinServer(w http.ResponseWriter, r *http.Request) {
	serverID := chi.URLParam(r, "serverID")

	var req joinServerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if _, err := h.db.GetServer(r.Context(), serverID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "server not found")
			return
		}
		logging.Error().Err(err).Str("server_id", serverID).Msg("failed to load server")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to join server")
		return
	}

	member, err := h.db.IsServerMember(r.Context(), serverID, req.Email)
	if err != nil {
		logging.Error().Err(err).Str("server_id", serverID).Msg("failed to check membership")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to join server")
		return
	}
	if member {
		respondJSON(w, http.StatusOK, map[string]string{"message": "already a member"})
		return
	}

	if err := h.db.AddServerMember(r.Context(), serverID, req.Email); err != nil {
		logging.Error().Err(err).Str("server_id", serverID).Msg("failed to add member")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to join server")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "joined"})
}

// ListChannels returns the channels of a server.
func (h *Handlers) ListChannels(w http.ResponseWriter, r *http.Request) {
	serverID := chi.URLParam(r, "serverID")

	if _, err := h.db.GetServer(r.Context(), serverID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "server not found")
			return
		}
		logging.Error().Err(err).Str("server_id", serverID).Msg("failed to load server")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to list channels")
		return
	}

	channels, err := h.db.ListChannels(r.Context(), serverID)
	if err != nil {
		logging.Error().Err(err).Str("server_id", serverID).Msg("failed to list channels")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to list channels")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"channels": channels})
}

// CreateChannel adds a text or voice channel to a server.
func (h *Handlers) CreateChannel(w http.ResponseWriter, r *http.Request) {
	serverID := chi.URLParam(r, "serverID")

	var req createChannelRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if _, err := h.db.GetServer(r.Context(), serverID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "server not found")
			return
		}
		logging.Error().Err(err).Str("server_id", serverID).Msg("failed to load server")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to create channel")
		return
	}

	channel := &models.Channel{
		ServerID:  serverID,
		Name:      req.Name,
		Type:      req.Type,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.db.CreateChannel(r.Context(), channel); err != nil {
		logging.Error().Err(err).Str("server_id", serverID).Msg("failed to create channel")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to create channel")
		return
	}

	respondJSON(w, http.StatusCreated, channel)
}

// GetChannelInfo returns a channel plus its message count.
func (h *Handlers) GetChannelInfo(w http.ResponseWriter, r *http.Request) {
	channelID := chi.URLParam(r, "channelID")

	channel, err := h.db.GetChannel(r.Context(), channelID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "channel not found")
			return
		}
		logging.Error().Err(err).Str("channel_id", channelID).Msg("failed to load channel")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to load channel")
		return
	}

	count, err := h.db.CountMessages(r.Context(), channel.ServerID, channel.ID)
	if err != nil {
		logging.Error().Err(err).Str("channel_id", channelID).Msg("failed to count messages")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to load channel")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"channel":       channel,
		"message_count": count,
	})
}
