// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

/*
Package auth provides account credentials and session management.

Passwords are hashed with bcrypt. Sessions are opaque tokens stored behind
the SessionStore interface, with a durable BadgerDB implementation for
production and an in-memory implementation for development and tests.
Expired sessions are swept by CleanupRunner, which runs under the
supervision tree.

When the server is configured with auth mode "jwt", JWTManager issues and
validates HMAC-SHA256 tokens instead of opaque session tokens. The two
modes share the same admission path: a token presented by the client
resolves to the account identity or is rejected.
*/
package auth
