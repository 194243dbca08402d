// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package websocket

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrConnectionNotFound is returned when operating on an unregistered or
// already-removed connection. Callers treat it as a no-op; disconnect
// races are expected.
var ErrConnectionNotFound = errors.New("connection not found")

// Identity is the account metadata attached to a connection after
// authentication.
type Identity struct {
	Email    string
	Username string
}

// Registry tracks live connections and their identities. It owns the
// connection IDs; everything else refers to connections by ID only.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]Identity
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]Identity),
	}
}

// Admit registers a new connection and returns its process-unique ID.
func (r *Registry) Admit() string {
	id := uuid.New().String()
	r.mu.Lock()
	r.conns[id] = Identity{}
	r.mu.Unlock()
	return id
}

// Identify attaches identity metadata to a connection. Idempotent; later
// calls overwrite.
func (r *Registry) Identify(id string, identity Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[id]; !ok {
		return ErrConnectionNotFound
	}
	r.conns[id] = identity
	return nil
}

// Remove deregisters a connection. Returns ErrConnectionNotFound if it
// was never admitted or already removed.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[id]; !ok {
		return ErrConnectionNotFound
	}
	delete(r.conns, id)
	return nil
}

// Lookup returns the identity attached to a connection.
func (r *Registry) Lookup(id string) (Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	identity, ok := r.conns[id]
	if !ok {
		return Identity{}, ErrConnectionNotFound
	}
	return identity, nil
}

// Count returns the number of live connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
