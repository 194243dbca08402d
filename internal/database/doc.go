// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

/*
Package database provides the DuckDB-backed store for persisted chat
entities: users, servers, server memberships, channels, messages, and the
friend graph.

# Overview

The store wraps a database/sql connection to an embedded DuckDB database.
All data access methods take a context.Context, record query metrics, and
wrap errors with operation context. Callers distinguish outcomes with the
sentinel errors ErrNotFound and ErrDuplicate.

# Schema

Tables are created on startup; there are no migrations. On first run the
store seeds the default "welcome" server with its "general" text channel
so new accounts always have somewhere to land.

# Concurrency

DuckDB permits a single writer process. The *sql.DB pool is capped
accordingly and all methods are safe for concurrent use by the HTTP
handlers.
*/
package database
