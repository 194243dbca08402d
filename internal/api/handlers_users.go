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

type updateProfileRequest struct {
	Avatar string `json:"avatar" validate:"max=256"`
	Bio    string `json:"bio" validate:"max=1024"`
}

// GetUser returns a user's public profile.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	user, err := h.db.GetUser(r.Context(), email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "user not found")
			return
		}
		logging.Error().Err(err).Str("email", email).Msg("failed to load user")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to load user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// UpdateProfile replaces the mutable profile fields.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.db.UpdateUserProfile(r.Context(), email, req.Avatar, req.Bio); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "user not found")
			return
		}
		logging.Error().Err(err).Str("email", email).Msg("failed to update profile")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to update profile")
		return
	}

	user, err := h.db.GetUser(r.Context(), email)
	if err != nil {
		logging.Error().Err(err).Str("email", email).Msg("failed to reload user")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to update profile")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
