// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/amuhanad881-gif/echoroom1/internal/metrics"
)

// Key prefixes for BadgerDB storage
const (
	sessionKeyPrefix     = "session:"
	sessionUserKeyPrefix = "session_user:"
)

// BadgerSessionStore implements SessionStore using BadgerDB for durable
// storage. Sessions survive process restarts.
type BadgerSessionStore struct {
	db *badger.DB
}

// OpenBadgerSessionStore opens (or creates) a BadgerDB at path and wraps
// it in a session store.
func OpenBadgerSessionStore(path string) (*BadgerSessionStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store at %s: %w", path, err)
	}
	return NewBadgerSessionStore(db), nil
}

// NewBadgerSessionStore creates a session store over an open BadgerDB.
func NewBadgerSessionStore(db *badger.DB) *BadgerSessionStore {
	return &BadgerSessionStore{db: db}
}

// Create stores a new session.
func (s *BadgerSessionStore) Create(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		sessionKey := []byte(sessionKeyPrefix + session.Token)
		if err := txn.Set(sessionKey, data); err != nil {
			return fmt.Errorf("set session: %w", err)
		}

		// Email-to-token mapping for logout-everywhere
		userKey := []byte(sessionUserKeyPrefix + session.Email + ":" + session.Token)
		if err := txn.Set(userKey, []byte(session.Token)); err != nil {
			return fmt.Errorf("set user mapping: %w", err)
		}

		return nil
	})
	if err == nil {
		metrics.SessionsCreated.Inc()
	}
	return err
}

// Get retrieves a session by token.
func (s *BadgerSessionStore) Get(ctx context.Context, token string) (*Session, error) {
	var session Session

	err := s.db.View(func(txn *badger.Txn) error {
		key := []byte(sessionKeyPrefix + token)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &session)
		})
	})
	if err != nil {
		return nil, err
	}

	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// Delete removes a session by token.
func (s *BadgerSessionStore) Delete(ctx context.Context, token string) error {
	var session Session
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		key := []byte(sessionKeyPrefix + token)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &session)
		})
	})
	if err != nil || !found {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		sessionKey := []byte(sessionKeyPrefix + token)
		if err := txn.Delete(sessionKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}
		if session.Email != "" {
			userKey := []byte(sessionUserKeyPrefix + session.Email + ":" + token)
			if err := txn.Delete(userKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete user mapping: %w", err)
			}
		}
		return nil
	})
}

// DeleteByEmail removes all sessions for an account.
func (s *BadgerSessionStore) DeleteByEmail(ctx context.Context, email string) (int, error) {
	var tokens []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionUserKeyPrefix + email + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				tokens = append(tokens, string(val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("list user sessions: %w", err)
	}

	count := 0
	for _, token := range tokens {
		if err := s.Delete(ctx, token); err != nil {
			continue
		}
		count++
	}
	return count, nil
}

// Touch updates the session's last accessed time and extends expiry.
func (s *BadgerSessionStore) Touch(ctx context.Context, token string, newExpiry time.Time) error {
	session, err := s.Get(ctx, token)
	if err != nil {
		return err
	}
	session.LastAccessedAt = time.Now()
	session.ExpiresAt = newExpiry

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(sessionKeyPrefix+token), data)
	})
}

// CleanupExpired removes all expired sessions.
func (s *BadgerSessionStore) CleanupExpired(ctx context.Context) (int, error) {
	var expired []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var session Session
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &session)
			})
			if err != nil {
				continue
			}
			if session.IsExpired() {
				expired = append(expired, session.Token)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan sessions: %w", err)
	}

	count := 0
	for _, token := range expired {
		if err := s.Delete(ctx, token); err != nil {
			continue
		}
		count++
	}
	if count > 0 {
		metrics.SessionsExpired.Add(float64(count))
	}
	return count, nil
}

// Close closes the backing BadgerDB.
func (s *BadgerSessionStore) Close() error {
	return s.db.Close()
}
