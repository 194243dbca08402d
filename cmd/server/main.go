// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

// Package main is the entry point for the EchoRoom server.
//
// EchoRoom is a real-time chat backend: a REST API for accounts, servers,
// channels, messages, and friends, plus a WebSocket broker that relays
// chat presence, messages, and WebRTC signaling between connected clients.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered settings from defaults, config file, and
//     environment variables (Koanf v2)
//  2. Database: DuckDB chat store (users, servers, channels, messages,
//     friends)
//  3. Sessions: BadgerDB or in-memory session store behind the token
//     resolver (opaque or JWT mode)
//  4. WebSocket hub: the relay broker for rooms and signaling
//  5. HTTP server: Chi router with the REST API, WebSocket upgrade, and
//     Prometheus metrics
//
// All long-running components run under a Suture supervision tree and
// shut down gracefully on SIGINT and SIGTERM.
//
// # Configuration
//
// Settings load via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (HTTP_PORT, DATABASE_PATH, AUTH_MODE, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// For JWT session mode:
//   - AUTH_MODE=jwt
//   - JWT_SECRET: 32+ character signing secret
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amuhanad881-gif/echoroom1/internal/api"
	"github.com/amuhanad881-gif/echoroom1/internal/auth"
	"github.com/amuhanad881-gif/echoroom1/internal/config"
	"github.com/amuhanad881-gif/echoroom1/internal/database"
	"github.com/amuhanad881-gif/echoroom1/internal/logging"
	"github.com/amuhanad881-gif/echoroom1/internal/supervisor"
	ws "github.com/amuhanad881-gif/echoroom1/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config errors surface through the default logger.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("session_store", cfg.Security.SessionStore).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting EchoRoom")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	store, err := auth.NewSessionStore(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open session store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()

	resolver, err := auth.NewResolver(&cfg.Security, store)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure authentication")
	}

	hub := ws.NewHub(&cfg.Websocket)

	handlers := api.NewHandlers(db, resolver, hub, cfg)
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handlers, &cfg.Security),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	// Supervisor events flow through the zerolog-backed slog adapter.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMessagingService(hub)
	tree.AddMessagingService(auth.NewCleanupRunner(store, 10*time.Minute))
	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := tree.ServeBackground(ctx)
	logging.Info().Str("addr", cfg.Server.Addr()).Msg("EchoRoom ready")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")
		cancel()
		select {
		case err := <-errCh:
			if err != nil && err != context.Canceled {
				logging.Error().Err(err).Msg("Supervisor stopped with error")
			}
		case <-time.After(15 * time.Second):
			if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
				for _, svc := range report {
					logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
				}
			}
		}
	case err := <-errCh:
		logging.Fatal().Err(err).Msg("Supervisor exited unexpectedly")
	}

	logging.Info().Msg("Shutdown complete")
}
