// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

// Package supervisor provides Suture-based process supervision.
//
// The tree has two layers: messaging (the relay hub and session cleanup)
// and api (the HTTP server). A crash in one layer restarts only that
// layer's services. Supervisor events are logged through sutureslog via
// the slog adapter in internal/logging.
package supervisor
