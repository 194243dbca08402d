// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSRooms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_rooms",
			Help: "Current number of active rooms",
		},
	)

	WSEventsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_events_received_total",
			Help: "Total number of events received from clients",
		},
		[]string{"event_type"},
	)

	WSEventsRelayed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_events_relayed_total",
			Help: "Total number of events relayed to clients",
		},
		[]string{"event_type"},
	)

	WSEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_events_dropped_total",
			Help: "Total number of events dropped due to slow clients",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"}, // "read", "write", "decode", "rate_limit"
	)

	// Session Metrics
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "auth_sessions_active",
			Help: "Current number of active sessions",
		},
	)

	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_sessions_created_total",
			Help: "Total number of sessions created",
		},
	)

	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_sessions_expired_total",
			Help: "Total number of sessions removed by expiry cleanup",
		},
	)

	AuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "Total number of authentication failures",
		},
		[]string{"reason"}, // "bad_credentials", "invalid_token", "expired"
	)
)

// RecordDBQuery records a database query's duration and any error.
// Error types are truncated to keep label cardinality bounded.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request's duration and outcome.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordEventReceived counts an event read from a client connection.
func RecordEventReceived(eventType string) {
	WSEventsReceived.WithLabelValues(eventType).Inc()
}

// RecordEventRelayed counts an event delivered to a client connection.
func RecordEventRelayed(eventType string) {
	WSEventsRelayed.WithLabelValues(eventType).Inc()
}

// RecordEventDropped counts an event discarded because a client's send
// buffer was full.
func RecordEventDropped() {
	WSEventsDropped.Inc()
}

// RecordWSError counts a WebSocket transport or protocol error.
func RecordWSError(errorType string) {
	WSErrors.WithLabelValues(errorType).Inc()
}
