// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amuhanad881-gif/echoroom1/internal/config"
	"github.com/amuhanad881-gif/echoroom1/internal/metrics"
)

// ErrInvalidToken is returned for tokens that do not resolve to an
// account, whatever the configured auth mode.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the resolved account behind a token.
type Identity struct {
	Email    string
	Username string
}

// Resolver turns presented tokens into account identities. In "opaque"
// mode tokens are session store lookups; in "jwt" mode they are verified
// signatures. Both the HTTP handlers and the WebSocket admission path use
// the same resolver.
type Resolver struct {
	mode    string
	store   SessionStore
	jwt     *JWTManager
	timeout time.Duration
}

// NewResolver builds a resolver for the configured auth mode.
func NewResolver(cfg *config.SecurityConfig, store SessionStore) (*Resolver, error) {
	r := &Resolver{
		mode:    cfg.AuthMode,
		store:   store,
		timeout: cfg.SessionTimeout,
	}
	switch cfg.AuthMode {
	case "opaque":
		if store == nil {
			return nil, fmt.Errorf("opaque auth mode requires a session store")
		}
	case "jwt":
		manager, err := NewJWTManager(cfg)
		if err != nil {
			return nil, err
		}
		r.jwt = manager
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}
	return r, nil
}

// Issue creates a token for an authenticated account.
func (r *Resolver) Issue(ctx context.Context, email, username string) (string, error) {
	if r.mode == "jwt" {
		return r.jwt.GenerateToken(email, username)
	}
	session := NewSession(email, username, r.timeout)
	if err := r.store.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return session.Token, nil
}

// Resolve maps a token to the account it represents. Returns
// ErrInvalidToken for unknown, expired, or tampered tokens.
func (r *Resolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		metrics.AuthFailures.WithLabelValues("invalid_token").Inc()
		return nil, ErrInvalidToken
	}

	if r.mode == "jwt" {
		claims, err := r.jwt.ValidateToken(token)
		if err != nil {
			metrics.AuthFailures.WithLabelValues("invalid_token").Inc()
			return nil, ErrInvalidToken
		}
		return &Identity{Email: claims.Email, Username: claims.Username}, nil
	}

	session, err := r.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			metrics.AuthFailures.WithLabelValues("expired").Inc()
		} else {
			metrics.AuthFailures.WithLabelValues("invalid_token").Inc()
		}
		return nil, ErrInvalidToken
	}

	// Sliding expiry, best-effort
	_ = r.store.Touch(ctx, token, time.Now().Add(r.timeout))

	return &Identity{Email: session.Email, Username: session.Username}, nil
}

// Revoke invalidates a token. JWT tokens are stateless and cannot be
// revoked before expiry; revocation is a no-op in that mode.
func (r *Resolver) Revoke(ctx context.Context, token string) error {
	if r.mode == "jwt" {
		return nil
	}
	return r.store.Delete(ctx, token)
}

// RevokeAll invalidates every session of an account and reports how many
// were removed. A no-op in jwt mode for the same reason as Revoke.
func (r *Resolver) RevokeAll(ctx context.Context, email string) (int, error) {
	if r.mode == "jwt" {
		return 0, nil
	}
	return r.store.DeleteByEmail(ctx, email)
}
