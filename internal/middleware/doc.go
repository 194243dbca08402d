// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

/*
Package middleware provides HTTP middleware for the API server.

The middleware here complements the chi ecosystem middleware (cors, httprate,
chi's Recoverer and RealIP) used by the router:

  - RequestID: generates or propagates an X-Request-ID header and threads
    it through the request context for structured logging.
  - PrometheusMetrics: records request counts, latency histograms, and
    in-flight gauges for every API request.
  - Compression: gzip-compresses responses for clients that accept it,
    skipping WebSocket upgrades.

All middleware uses the standard func(http.Handler) http.Handler shape so it
composes with chi's Use chain.
*/
package middleware
