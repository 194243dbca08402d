// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		duration  time.Duration
		err       error
	}{
		{
			name:      "successful SELECT query",
			operation: "SELECT",
			table:     "messages",
			duration:  10 * time.Millisecond,
			err:       nil,
		},
		{
			name:      "successful INSERT query",
			operation: "INSERT",
			table:     "users",
			duration:  5 * time.Millisecond,
			err:       nil,
		},
		{
			name:      "failed query with short error",
			operation: "UPDATE",
			table:     "channels",
			duration:  100 * time.Millisecond,
			err:       errors.New("connection refused"),
		},
		{
			name:      "failed query with long error truncates to 50 chars",
			operation: "DELETE",
			table:     "friends",
			duration:  50 * time.Millisecond,
			err:       errors.New("this is a very long error message that exceeds fifty characters and should be truncated"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.CollectAndCount(DBQueryDuration)
			RecordDBQuery(tt.operation, tt.table, tt.duration, tt.err)
			after := testutil.CollectAndCount(DBQueryDuration)
			if after < before {
				t.Errorf("histogram series count decreased: %d -> %d", before, after)
			}
			if tt.err != nil {
				errorType := tt.err.Error()
				if len(errorType) > 50 {
					errorType = errorType[:50]
				}
				count := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, errorType))
				if count < 1 {
					t.Errorf("expected error counter >= 1, got %f", count)
				}
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	RecordAPIRequest("GET", "/api/v1/servers", "200", 15*time.Millisecond)
	count := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/servers", "200"))
	if count < 1 {
		t.Errorf("expected request counter >= 1, got %f", count)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("expected gauge %f after increment, got %f", base+1, got)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("expected gauge %f after decrement, got %f", base, got)
	}
}

func TestEventCounters(t *testing.T) {
	RecordEventReceived("send_message")
	RecordEventRelayed("new_message")
	RecordEventRelayed("new_message")
	RecordEventDropped()
	RecordWSError("decode")

	if got := testutil.ToFloat64(WSEventsReceived.WithLabelValues("send_message")); got < 1 {
		t.Errorf("expected received counter >= 1, got %f", got)
	}
	if got := testutil.ToFloat64(WSEventsRelayed.WithLabelValues("new_message")); got < 2 {
		t.Errorf("expected relayed counter >= 2, got %f", got)
	}
	if got := testutil.ToFloat64(WSEventsDropped); got < 1 {
		t.Errorf("expected dropped counter >= 1, got %f", got)
	}
	if got := testutil.ToFloat64(WSErrors.WithLabelValues("decode")); got < 1 {
		t.Errorf("expected error counter >= 1, got %f", got)
	}
}

func TestConnectionGauges(t *testing.T) {
	base := testutil.ToFloat64(WSConnections)
	WSConnections.Inc()
	WSConnections.Inc()
	WSConnections.Dec()
	if got := testutil.ToFloat64(WSConnections); got != base+1 {
		t.Errorf("expected gauge %f, got %f", base+1, got)
	}
	WSConnections.Dec()
}

func TestMetricNamesFollowConvention(t *testing.T) {
	// Counter metric names must end with _total per Prometheus naming rules.
	names := []string{
		"duckdb_query_errors_total",
		"api_requests_total",
		"websocket_events_received_total",
		"websocket_events_relayed_total",
		"websocket_events_dropped_total",
		"websocket_errors_total",
		"auth_sessions_created_total",
		"auth_sessions_expired_total",
		"auth_failures_total",
	}
	for _, name := range names {
		if !strings.HasSuffix(name, "_total") {
			t.Errorf("counter %q does not end with _total", name)
		}
	}
}
