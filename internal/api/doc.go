// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

// Package api provides the HTTP surface: REST endpoints for accounts,
// servers, channels, messages, and friends, plus the WebSocket upgrade
// into the relay hub and the Prometheus metrics endpoint.
//
// Routing uses Chi. Every JSON response is wrapped in the standard
// envelope from internal/models:
//
//	{"status": "success", "data": {...}, "metadata": {...}}
//	{"status": "error", "error": {"code": "...", "message": "..."}}
//
// Message persistence happens over REST before the client emits the
// corresponding send_message event on the socket; the broker itself never
// writes to the store.
package api
