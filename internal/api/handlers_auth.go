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

	"github.com/amuhanad881-gif/echoroom1/internal/auth"
	"github.com/amuhanad881-gif/echoroom1/internal/database"
	"github.com/amuhanad881-gif/echoroom1/internal/logging"
	"github.com/amuhanad881-gif/echoroom1/internal/models"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=2,max=32"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type logoutRequest struct {
	SessionToken string `json:"session_token" validate:"required"`
}

// Signup creates an account, joins it to the welcome server, and opens a
// session.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logging.Error().Err(err).Msg("failed to hash password")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to create account")
		return
	}

	user := &models.User{
		Email:     req.Email,
		Username:  req.Username,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.db.CreateUser(r.Context(), user, hash); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			respondError(w, http.StatusBadRequest, codeDuplicate, "email or username already registered")
			return
		}
		logging.Error().Err(err).Msg("failed to create user")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to create account")
		return
	}

	// Every new account lands in the welcome server.
	if err := h.db.AddServerMember(r.Context(), database.WelcomeServerID, user.Email); err != nil {
		logging.Warn().Err(err).Str("email", user.Email).Msg("failed to add welcome membership")
	}

	token, err := h.resolver.Issue(r.Context(), user.Email, user.Username)
	if err != nil {
		logging.Error().Err(err).Msg("failed to issue session")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to create session")
		return
	}

	respondJSON(w, http.StatusCreated, models.SessionInfo{SessionToken: token, User: *user})
}

// Login verifies credentials and opens a session. Unknown accounts and
// wrong passwords both answer 401 without distinguishing the two.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, hash, err := h.db.GetUserCredentials(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			logging.Error().Err(err).Msg("failed to load credentials")
		}
		respondError(w, http.StatusUnauthorized, codeUnauthorized, "invalid email or password")
		return
	}
	if !auth.VerifyPassword(hash, req.Password) {
		respondError(w, http.StatusUnauthorized, codeUnauthorized, "invalid email or password")
		return
	}

	token, err := h.resolver.Issue(r.Context(), user.Email, user.Username)
	if err != nil {
		logging.Error().Err(err).Msg("failed to issue session")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to create session")
		return
	}

	respondJSON(w, http.StatusOK, models.SessionInfo{SessionToken: token, User: *user})
}

// SessionLookup resolves a session token to its user profile. Unknown and
// expired tokens answer 404.
func (h *Handlers) SessionLookup(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	identity, err := h.resolver.Resolve(r.Context(), token)
	if err != nil {
		respondError(w, http.StatusNotFound, codeNotFound, "session not found")
		return
	}

	user, err := h.db.GetUser(r.Context(), identity.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "session not found")
			return
		}
		logging.Error().Err(err).Msg("failed to load user")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to resolve session")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Logout revokes the presented session token. Revoking an unknown token
// still answers success.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.resolver.Revoke(r.Context(), req.SessionToken); err != nil && !errors.Is(err, auth.ErrSessionNotFound) {
		logging.Error().Err(err).Msg("failed to revoke session")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to log out")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// LogoutAll revokes every session of the account behind the presented
// token. The token must itself be valid so a stranger cannot log an
// account out of all its devices.
func (h *Handlers) LogoutAll(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	identity, err := h.resolver.Resolve(r.Context(), req.SessionToken)
	if err != nil {
		respondError(w, http.StatusUnauthorized, codeUnauthorized, "invalid session token")
		return
	}

	count, err := h.resolver.RevokeAll(r.Context(), identity.Email)
	if err != nil {
		logging.Error().Err(err).Str("email", identity.Email).Msg("failed to revoke sessions")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to log out")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"sessions_revoked": count})
}
