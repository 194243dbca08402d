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

	"github.com/amuhanad881-gif/echoroom1/internal/metrics"
	"github.com/amuhanad881-gif/echoroom1/internal/models"
)

// CreateUser inserts a new account. The password must already be hashed.
// Returns ErrDuplicate when the email or username is taken.
func (db *DB) CreateUser(ctx context.Context, user *models.User, passwordHash string) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (email, username, password, avatar, bio, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.Email, user.Username, passwordHash, user.Avatar, user.Bio, user.CreatedAt,
	)
	metrics.RecordDBQuery("INSERT", "users", time.Since(start), err)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user profile by email.
func (db *DB) GetUser(ctx context.Context, email string) (*models.User, error) {
	start := time.Now()
	row := db.conn.QueryRowContext(ctx,
		`SELECT email, username, avatar, bio, created_at FROM users WHERE email = ?`, email)

	user, err := scanUser(row)
	metrics.RecordDBQuery("SELECT", "users", time.Since(start), err)
	return user, err
}

// GetUserCredentials retrieves a user's stored password hash for login
// verification.
func (db *DB) GetUserCredentials(ctx context.Context, email string) (*models.User, string, error) {
	start := time.Now()
	row := db.conn.QueryRowContext(ctx,
		`SELECT email, username, avatar, bio, created_at, password FROM users WHERE email = ?`, email)

	var user models.User
	var hash string
	err := row.Scan(&user.Email, &user.Username, &user.Avatar, &user.Bio, &user.CreatedAt, &hash)
	metrics.RecordDBQuery("SELECT", "users", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to get user credentials: %w", err)
	}
	return &user, hash, nil
}

// UpdateUserProfile updates the mutable profile fields.
func (db *DB) UpdateUserProfile(ctx context.Context, email, avatar, bio string) error {
	start := time.Now()
	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET avatar = ?, bio = ? WHERE email = ?`, avatar, bio, email)
	metrics.RecordDBQuery("UPDATE", "users", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.Email, &user.Username, &user.Avatar, &user.Bio, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}
