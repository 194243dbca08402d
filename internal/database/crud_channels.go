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

// CreateChannel adds a text or voice channel to a server.
func (db *DB) CreateChannel(ctx context.Context, channel *models.Channel) error {
	if channel.ID == "" {
		channel.ID = uuid.New().String()
	}
	if channel.CreatedAt.IsZero() {
		channel.CreatedAt = time.Now().UTC()
	}
	if channel.Type != models.ChannelTypeText && channel.Type != models.ChannelTypeVoice {
		return fmt.Errorf("invalid channel type %q", channel.Type)
	}

	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO channels (id, server_id, name, type, created_at) VALUES (?, ?, ?, ?, ?)`,
		channel.ID, channel.ServerID, channel.Name, channel.Type, channel.CreatedAt)
	metrics.RecordDBQuery("INSERT", "channels", time.Since(start), err)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create channel: %w", err)
	}
	return nil
}

// GetChannel retrieves a channel by ID.
func (db *DB) GetChannel(ctx context.Context, id string) (*models.Channel, error) {
	start := time.Now()
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, server_id, name, type, created_at FROM channels WHERE id = ?`, id)

	var channel models.Channel
	err := row.Scan(&channel.ID, &channel.ServerID, &channel.Name, &channel.Type, &channel.CreatedAt)
	metrics.RecordDBQuery("SELECT", "channels", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	return &channel, nil
}

// ListChannels returns all channels for a server in creation order.
func (db *DB) ListChannels(ctx context.Context, serverID string) ([]models.Channel, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, server_id, name, type, created_at
		 FROM channels WHERE server_id = ? ORDER BY created_at`, serverID)
	metrics.RecordDBQuery("SELECT", "channels", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer closeQuietly(rows)

	channels := []models.Channel{}
	for rows.Next() {
		var channel models.Channel
		if err := rows.Scan(&channel.ID, &channel.ServerID, &channel.Name, &channel.Type, &channel.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, channel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate channels: %w", err)
	}
	return channels, nil
}
