// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package instruments the chat server using the Prometheus client library,
exposing metrics for monitoring performance, errors, and system health.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Database query performance
  - WebSocket connection, room, and event relay counts
  - Session store activity

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:5000/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Query errors (counter)
    Labels: operation, table, error_type

WebSocket Metrics:
  - websocket_connections: Active connections (gauge)
  - websocket_rooms: Active rooms (gauge)
  - websocket_events_received_total: Events read from clients (counter)
    Labels: event_type
  - websocket_events_relayed_total: Events fanned out to clients (counter)
    Labels: event_type
  - websocket_events_dropped_total: Events dropped on slow clients (counter)
  - websocket_errors_total: Transport and decode errors (counter)
    Labels: error_type

All metrics are registered with the default Prometheus registry via promauto,
so importing this package is sufficient for registration.
*/
package metrics
