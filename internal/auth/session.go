// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/amuhanad881-gif/echoroom1/internal/metrics"
)

var (
	// ErrSessionNotFound is returned when a session is not found in the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when trying to access an expired session.
	ErrSessionExpired = errors.New("session expired")
)

// Session associates an opaque token with an authenticated account.
type Session struct {
	// Token is the unique opaque session identifier.
	Token string `json:"token"`

	// Email is the account the session belongs to.
	Email string `json:"email"`

	// Username is the account's display name.
	Username string `json:"username"`

	// CreatedAt is when the session was created.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is when the session expires.
	ExpiresAt time.Time `json:"expires_at"`

	// LastAccessedAt is when the session was last resolved.
	LastAccessedAt time.Time `json:"last_accessed_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// NewSession creates a session for the account with a fresh token.
func NewSession(email, username string, duration time.Duration) *Session {
	now := time.Now()
	return &Session{
		Token:          generateSessionToken(),
		Email:          email,
		Username:       username,
		CreatedAt:      now,
		ExpiresAt:      now.Add(duration),
		LastAccessedAt: now,
	}
}

// generateSessionToken generates a cryptographically secure token.
func generateSessionToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to a still random but weaker token
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(bytes)
}

// SessionStore defines the interface for session storage backends.
type SessionStore interface {
	// Create stores a new session.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by token.
	// Returns ErrSessionNotFound if not found.
	// Returns ErrSessionExpired if the session exists but is expired.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by token.
	// Does not return an error if the session doesn't exist.
	Delete(ctx context.Context, token string) error

	// DeleteByEmail removes all sessions for an account.
	// Returns the count of deleted sessions.
	DeleteByEmail(ctx context.Context, email string) (int, error)

	// Touch updates the session's last accessed time and extends expiry.
	Touch(ctx context.Context, token string, newExpiry time.Time) error

	// CleanupExpired removes all expired sessions.
	// Returns the count of deleted sessions.
	CleanupExpired(ctx context.Context) (int, error)

	// Close releases the backing store.
	Close() error
}

// MemorySessionStore is an in-memory implementation of SessionStore.
// Suitable for development and testing. For production, use
// BadgerSessionStore.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*Session),
	}
}

// Create stores a new session.
func (s *MemorySessionStore) Create(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = copySession(session)
	metrics.SessionsCreated.Inc()
	metrics.SessionsActive.Set(float64(len(s.sessions)))
	return nil
}

// Get retrieves a session by token.
func (s *MemorySessionStore) Get(ctx context.Context, token string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}
	return copySession(session), nil
}

// Delete removes a session by token.
func (s *MemorySessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	metrics.SessionsActive.Set(float64(len(s.sessions)))
	return nil
}

// DeleteByEmail removes all sessions for an account.
func (s *MemorySessionStore) DeleteByEmail(ctx context.Context, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for token, session := range s.sessions {
		if session.Email == email {
			delete(s.sessions, token)
			count++
		}
	}
	metrics.SessionsActive.Set(float64(len(s.sessions)))
	return count, nil
}

// Touch updates the session's last accessed time and extends expiry.
func (s *MemorySessionStore) Touch(ctx context.Context, token string, newExpiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok {
		return ErrSessionNotFound
	}
	session.LastAccessedAt = time.Now()
	session.ExpiresAt = newExpiry
	return nil
}

// CleanupExpired removes all expired sessions.
func (s *MemorySessionStore) CleanupExpired(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for token, session := range s.sessions {
		if session.IsExpired() {
			delete(s.sessions, token)
			count++
		}
	}
	if count > 0 {
		metrics.SessionsExpired.Add(float64(count))
	}
	metrics.SessionsActive.Set(float64(len(s.sessions)))
	return count, nil
}

// Close is a no-op for the in-memory store.
func (s *MemorySessionStore) Close() error {
	return nil
}

func copySession(session *Session) *Session {
	c := *session
	return &c
}
