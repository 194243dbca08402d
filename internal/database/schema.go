// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// createTables creates the core database tables and indexes.
// All columns are defined in the initial CREATE TABLE statements; there
// are no migrations.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			email      VARCHAR PRIMARY KEY,
			username   VARCHAR NOT NULL UNIQUE,
			password   VARCHAR NOT NULL,
			avatar     VARCHAR DEFAULT '',
			bio        VARCHAR DEFAULT '',
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS servers (
			id         VARCHAR PRIMARY KEY,
			name       VARCHAR NOT NULL,
			owner      VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS server_members (
			server_id  VARCHAR NOT NULL,
			user_email VARCHAR NOT NULL,
			joined_at  TIMESTAMP NOT NULL,
			PRIMARY KEY (server_id, user_email)
		)`,
		`CREATE TABLE IF NOT EXISTS channels (
			id         VARCHAR PRIMARY KEY,
			server_id  VARCHAR NOT NULL,
			name       VARCHAR NOT NULL,
			type       VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id         VARCHAR PRIMARY KEY,
			server_id  VARCHAR NOT NULL,
			channel_id VARCHAR NOT NULL,
			user_email VARCHAR NOT NULL,
			username   VARCHAR NOT NULL,
			content    VARCHAR NOT NULL,
			timestamp  TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS friends (
			user1      VARCHAR NOT NULL,
			user2      VARCHAR NOT NULL,
			status     VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (user1, user2)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_channels_server ON channels (server_id)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_room ON messages (server_id, channel_id, timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_members_user ON server_members (user_email)`,
		`CREATE INDEX IF NOT EXISTS idx_friends_user2 ON friends (user2)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}
