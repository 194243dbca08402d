// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amuhanad881-gif/echoroom1/internal/database"
	"github.com/amuhanad881-gif/echoroom1/internal/logging"
)

type friendPairRequest struct {
	UserEmail   string `json:"user_email" validate:"required,email"`
	FriendEmail string `json:"friend_email" validate:"required,email"`
}

// ListFriends returns both pending and accepted relationships involving
// the user, newest first.
func (h *Handlers) ListFriends(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	friends, err := h.db.ListFriends(r.Context(), email)
	if err != nil {
		logging.Error().Err(err).Str("email", email).Msg("failed to list friends")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to list friends")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"friends": friends})
}

// AddFriend creates a pending friend request. A relationship already
// existing in either direction answers 400.
func (h *Handlers) AddFriend(w http.ResponseWriter, r *http.Request) {
	var req friendPairRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserEmail == req.FriendEmail {
		respondError(w, http.StatusBadRequest, codeBadRequest, "cannot befriend yourself")
		return
	}

	if err := h.db.CreateFriendRequest(r.Context(), req.UserEmail, req.FriendEmail); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			respondError(w, http.StatusBadRequest, codeDuplicate, "friend relationship already exists")
			return
		}
		logging.Error().Err(err).Msg("failed to create friend request")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to add friend")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"status_detail": "pending"})
}

// AcceptFriend moves a pending request to accepted. Only the requestee
// can accept; a missing pending request answers 404.
func (h *Handlers) AcceptFriend(w http.ResponseWriter, r *http.Request) {
	var req friendPairRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// FriendEmail sent the original request; UserEmail accepts it.
	if err := h.db.AcceptFriendRequest(r.Context(), req.FriendEmail, req.UserEmail); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "no pending friend request")
			return
		}
		logging.Error().Err(err).Msg("failed to accept friend request")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to accept friend")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status_detail": "accepted"})
}

// RemoveFriend deletes the relationship in whichever direction it exists.
func (h *Handlers) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	var req friendPairRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.db.RemoveFriend(r.Context(), req.UserEmail, req.FriendEmail); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "friend relationship not found")
			return
		}
		logging.Error().Err(err).Msg("failed to remove friend")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to remove friend")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "removed"})
}
