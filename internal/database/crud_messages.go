// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amuhanad881-gif/echoroom1/internal/metrics"
	"github.com/amuhanad881-gif/echoroom1/internal/models"
)

// messageHistoryLimit caps the channel history returned to clients.
const messageHistoryLimit = 100

// CreateMessage persists a chat message. Callers persist before relaying
// to the room so history never lags the live stream.
func (db *DB) CreateMessage(ctx context.Context, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO messages (id, server_id, channel_id, user_email, username, content, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.ServerID, msg.ChannelID, msg.UserEmail, msg.Username, msg.Content, msg.Timestamp)
	metrics.RecordDBQuery("INSERT", "messages", time.Since(start), err)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// ListMessages returns the most recent channel history in ascending
// timestamp order, capped at messageHistoryLimit.
func (db *DB) ListMessages(ctx context.Context, serverID, channelID string) ([]models.Message, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, username, content, timestamp
		 FROM (
			SELECT id, username, content, timestamp
			FROM messages
			WHERE server_id = ? AND channel_id = ?
			ORDER BY timestamp DESC
			LIMIT ?
		 ) ORDER BY timestamp ASC`,
		serverID, channelID, messageHistoryLimit)
	metrics.RecordDBQuery("SELECT", "messages", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer closeQuietly(rows)

	messages := []models.Message{}
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.Username, &msg.Content, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	return messages, nil
}

// CountMessages returns the number of persisted messages in a channel.
func (db *DB) CountMessages(ctx context.Context, serverID, channelID string) (int64, error) {
	start := time.Now()
	var count int64
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE server_id = ? AND channel_id = ?`,
		serverID, channelID).Scan(&count)
	metrics.RecordDBQuery("SELECT", "messages", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}
