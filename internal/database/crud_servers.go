// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amuhanad881-gif/echoroom1/internal/metrics"
	"github.com/amuhanad881-gif/echoroom1/internal/models"
)

// CreateServer creates a chat server, adds the owner as its first member,
// and creates a default general text channel.
func (db *DB) CreateServer(ctx context.Context, server *models.Server) error {
	if server.ID == "" {
		server.ID = uuid.New().String()
	}
	if server.CreatedAt.IsZero() {
		server.CreatedAt = time.Now().UTC()
	}

	start := time.Now()
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO servers (id, name, owner, created_at) VALUES (?, ?, ?, ?)`,
		server.ID, server.Name, server.Owner, server.CreatedAt); err != nil {
		metrics.RecordDBQuery("INSERT", "servers", time.Since(start), err)
		if isUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create server: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO server_members (server_id, user_email, joined_at) VALUES (?, ?, ?)`,
		server.ID, server.Owner, server.CreatedAt); err != nil {
		return fmt.Errorf("failed to add owner membership: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO channels (id, server_id, name, type, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), server.ID, "general", models.ChannelTypeText, server.CreatedAt); err != nil {
		return fmt.Errorf("failed to create default channel: %w", err)
	}

	err = tx.Commit()
	metrics.RecordDBQuery("INSERT", "servers", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to commit server creation: %w", err)
	}
	return nil
}

// GetServer retrieves a server by ID.
func (db *DB) GetServer(ctx context.Context, id string) (*models.Server, error) {
	start := time.Now()
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, name, owner, created_at FROM servers WHERE id = ?`, id)

	var server models.Server
	err := row.Scan(&server.ID, &server.Name, &server.Owner, &server.CreatedAt)
	metrics.RecordDBQuery("SELECT", "servers", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get server: %w", err)
	}
	return &server, nil
}

// ListServersForUser returns the servers the user is a member of.
func (db *DB) ListServersForUser(ctx context.Context, email string) ([]models.Server, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT s.id, s.name, s.owner, s.created_at
		 FROM servers s
		 JOIN server_members sm ON s.id = sm.server_id
		 WHERE sm.user_email = ?
		 ORDER BY s.created_at`, email)
	metrics.RecordDBQuery("SELECT", "servers", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	defer closeQuietly(rows)

	servers := []models.Server{}
	for rows.Next() {
		var server models.Server
		if err := rows.Scan(&server.ID, &server.Name, &server.Owner, &server.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan server: %w", err)
		}
		servers = append(servers, server)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate servers: %w", err)
	}
	return servers, nil
}

// AddServerMember joins a user to a server. Joining twice is a no-op.
func (db *DB) AddServerMember(ctx context.Context, serverID, email string) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO server_members (server_id, user_email, joined_at) VALUES (?, ?, ?)`,
		serverID, email, time.Now().UTC())
	metrics.RecordDBQuery("INSERT", "server_members", time.Since(start), err)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil
		}
		return fmt.Errorf("failed to add server member: %w", err)
	}
	return nil
}

// IsServerMember reports whether the user belongs to the server.
func (db *DB) IsServerMember(ctx context.Context, serverID, email string) (bool, error) {
	start := time.Now()
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM server_members WHERE server_id = ? AND user_email = ?`,
		serverID, email).Scan(&count)
	metrics.RecordDBQuery("SELECT", "server_members", time.Since(start), err)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}
