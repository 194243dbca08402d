// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/amuhanad881-gif/echoroom1/internal/metrics"
	"github.com/amuhanad881-gif/echoroom1/internal/models"
)

// CreateFriendRequest records a pending friend edge from user1 to user2.
// Returns ErrDuplicate when a request or friendship already exists in
// either direction.
func (db *DB) CreateFriendRequest(ctx context.Context, user1, user2 string) error {
	start := time.Now()
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM friends
		 WHERE (user1 = ? AND user2 = ?) OR (user1 = ? AND user2 = ?)`,
		user1, user2, user2, user1).Scan(&count)
	if err != nil {
		metrics.RecordDBQuery("SELECT", "friends", time.Since(start), err)
		return fmt.Errorf("failed to check existing friendship: %w", err)
	}
	if count > 0 {
		return ErrDuplicate
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO friends (user1, user2, status, created_at) VALUES (?, ?, ?, ?)`,
		user1, user2, models.FriendStatusPending, time.Now().UTC())
	metrics.RecordDBQuery("INSERT", "friends", time.Since(start), err)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create friend request: %w", err)
	}
	return nil
}

// AcceptFriendRequest marks the pending request from requester to
// accepter as accepted.
func (db *DB) AcceptFriendRequest(ctx context.Context, requester, accepter string) error {
	start := time.Now()
	res, err := db.conn.ExecContext(ctx,
		`UPDATE friends SET status = ? WHERE user1 = ? AND user2 = ? AND status = ?`,
		models.FriendStatusAccepted, requester, accepter, models.FriendStatusPending)
	metrics.RecordDBQuery("UPDATE", "friends", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to accept friend request: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFriends returns all friend edges touching the user, pending and
// accepted, newest first.
func (db *DB) ListFriends(ctx context.Context, email string) ([]models.Friend, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT user1, user2, status, created_at
		 FROM friends
		 WHERE user1 = ? OR user2 = ?
		 ORDER BY created_at DESC`, email, email)
	metrics.RecordDBQuery("SELECT", "friends", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer closeQuietly(rows)

	friends := []models.Friend{}
	for rows.Next() {
		var friend models.Friend
		if err := rows.Scan(&friend.User1, &friend.User2, &friend.Status, &friend.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, friend)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friends: %w", err)
	}
	return friends, nil
}

// RemoveFriend deletes the edge between two users in either direction.
func (db *DB) RemoveFriend(ctx context.Context, user1, user2 string) error {
	start := time.Now()
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM friends
		 WHERE (user1 = ? AND user2 = ?) OR (user1 = ? AND user2 = ?)`,
		user1, user2, user2, user1)
	metrics.RecordDBQuery("DELETE", "friends", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
