// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package auth

import (
	"context"
	"time"

	"github.com/amuhanad881-gif/echoroom1/internal/logging"
)

// CleanupRunner periodically sweeps expired sessions from the store.
// It implements suture.Service.
type CleanupRunner struct {
	store    SessionStore
	interval time.Duration
}

// NewCleanupRunner creates a cleanup runner with the given sweep interval.
func NewCleanupRunner(store SessionStore, interval time.Duration) *CleanupRunner {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &CleanupRunner{store: store, interval: interval}
}

// Serve runs the sweep loop until the context is canceled.
func (r *CleanupRunner) Serve(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			count, err := r.store.CleanupExpired(ctx)
			if err != nil {
				logging.Warn().Err(err).Msg("Session cleanup sweep failed")
				continue
			}
			if count > 0 {
				logging.Debug().Int("count", count).Msg("Removed expired sessions")
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// String names the service in supervisor logs.
func (r *CleanupRunner) String() string {
	return "session-cleanup"
}
