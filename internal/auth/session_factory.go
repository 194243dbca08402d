// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package auth

import (
	"fmt"

	"github.com/amuhanad881-gif/echoroom1/internal/config"
	"github.com/amuhanad881-gif/echoroom1/internal/logging"
)

// NewSessionStore builds the configured session store backend.
func NewSessionStore(cfg *config.SecurityConfig) (SessionStore, error) {
	switch cfg.SessionStore {
	case "badger":
		store, err := OpenBadgerSessionStore(cfg.SessionStorePath)
		if err != nil {
			return nil, err
		}
		logging.Info().Str("path", cfg.SessionStorePath).Msg("Using BadgerDB session store")
		return store, nil
	case "memory":
		logging.Warn().Msg("Using in-memory session store, sessions will not survive restarts")
		return NewMemorySessionStore(), nil
	default:
		return nil, fmt.Errorf("unknown session store backend %q", cfg.SessionStore)
	}
}
