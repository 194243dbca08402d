// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package database

import (
	"fmt"
	"time"

	"github.com/amuhanad881-gif/echoroom1/internal/logging"
)

// WelcomeServerID is the seeded default server every new account joins.
const WelcomeServerID = "welcome"

// seedDefaults creates the default welcome server and its general text
// channel on first run. Idempotent.
func (db *DB) seedDefaults() error {
	ctx, cancel := schemaContext()
	defer cancel()

	var count int
	if err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM servers WHERE id = ?", WelcomeServerID).Scan(&count); err != nil {
		return fmt.Errorf("failed to check seed state: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	if _, err := db.conn.ExecContext(ctx,
		"INSERT INTO servers (id, name, owner, created_at) VALUES (?, ?, ?, ?)",
		WelcomeServerID, "Welcome Server", "system", now); err != nil {
		return fmt.Errorf("failed to seed welcome server: %w", err)
	}
	if _, err := db.conn.ExecContext(ctx,
		"INSERT INTO channels (id, server_id, name, type, created_at) VALUES (?, ?, ?, ?, ?)",
		"general", WelcomeServerID, "general", "text", now); err != nil {
		return fmt.Errorf("failed to seed general channel: %w", err)
	}

	logging.Info().Msg("Seeded default welcome server")
	return nil
}
