// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package websocket

import (
	"errors"
	"io"
	"testing"

	"github.com/amuhanad881-gif/echoroom1/internal/logging"
)

func init() {
	logging.SetLogger(logging.NewTestLogger(io.Discard))
}

func TestRegistryAdmitLookup(t *testing.T) {
	registry := NewRegistry()

	id := registry.Admit()
	if id == "" {
		t.Fatal("expected non-empty connection id")
	}

	identity, err := registry.Lookup(id)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if identity.Email != "" || identity.Username != "" {
		t.Errorf("expected empty identity before Identify, got %+v", identity)
	}

	if registry.Count() != 1 {
		t.Errorf("expected count 1, got %d", registry.Count())
	}
}

func TestRegistryAdmitUnique(t *testing.T) {
	registry := NewRegistry()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := registry.Admit()
		if seen[id] {
			t.Fatalf("duplicate connection id %s", id)
		}
		seen[id] = true
	}
}

func TestRegistryIdentify(t *testing.T) {
	registry := NewRegistry()
	id := registry.Admit()

	if err := registry.Identify(id, Identity{Email: "alice@example.com", Username: "alice"}); err != nil {
		t.Fatalf("Identify: %v", err)
	}
	identity, err := registry.Lookup(id)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if identity.Username != "alice" {
		t.Errorf("unexpected identity: %+v", identity)
	}

	// Later calls overwrite.
	if err := registry.Identify(id, Identity{Email: "alice@example.com", Username: "wonderland"}); err != nil {
		t.Fatalf("Identify overwrite: %v", err)
	}
	identity, _ = registry.Lookup(id)
	if identity.Username != "wonderland" {
		t.Errorf("identity not overwritten: %+v", identity)
	}

	if err := registry.Identify("ghost", Identity{}); !errors.Is(err, ErrConnectionNotFound) {
		t.Errorf("expected ErrConnectionNotFound, got %v", err)
	}
}

func TestRegistryRemove(t *testing.T) {
	registry := NewRegistry()
	id := registry.Admit()

	if err := registry.Remove(id); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := registry.Lookup(id); !errors.Is(err, ErrConnectionNotFound) {
		t.Errorf("expected ErrConnectionNotFound after remove, got %v", err)
	}
	// Double remove reports not found; callers treat it as a no-op.
	if err := registry.Remove(id); !errors.Is(err, ErrConnectionNotFound) {
		t.Errorf("expected ErrConnectionNotFound on double remove, got %v", err)
	}
}
