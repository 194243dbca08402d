// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

// Package config holds the layered application configuration.
//
// Configuration is loaded via Koanf v2 with clear precedence:
// environment variables > optional YAML config file > built-in defaults.
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Security  SecurityConfig  `koanf:"security"`
	Websocket WebsocketConfig `koanf:"websocket"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds DuckDB settings for the chat store.
type DatabaseConfig struct {
	// Path is the DuckDB database file. Empty means in-memory (tests).
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
	// SeedDefaults creates the welcome server and general channel on first run.
	SeedDefaults bool `koanf:"seed_defaults"`
}

// SecurityConfig holds authentication and rate limiting settings.
type SecurityConfig struct {
	// AuthMode selects the session token format: "opaque" (default) stores
	// random tokens in the session store; "jwt" issues signed HS256 tokens
	// alongside the stored session.
	AuthMode       string        `koanf:"auth_mode"`
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`

	// SessionStore selects the backing store: "badger" (durable) or "memory".
	SessionStore     string `koanf:"session_store"`
	SessionStorePath string `koanf:"session_store_path"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// WebsocketConfig holds broker settings.
type WebsocketConfig struct {
	// SendBuffer is the per-connection outbound queue size. Events for a
	// client that falls this far behind are dropped.
	SendBuffer int `koanf:"send_buffer"`

	// MaxMessageSize limits inbound frames in bytes.
	MaxMessageSize int64 `koanf:"max_message_size"`

	// EventsPerSecond and EventBurst bound the inbound event rate per
	// connection; events over the limit are dropped, not fatal.
	EventsPerSecond float64 `koanf:"events_per_second"`
	EventBurst      int     `koanf:"event_burst"`

	// VoiceLeaveExcludeSender controls whether user_left_voice echoes back
	// to the leaver. Default false: the leaver receives the echo too.
	VoiceLeaveExcludeSender bool `koanf:"voice_leave_exclude_sender"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Validate checks invariants that would otherwise surface as confusing
// runtime failures.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}

	switch c.Security.AuthMode {
	case "opaque":
	case "jwt":
		if len(c.Security.JWTSecret) < 32 {
			return fmt.Errorf("security.jwt_secret must be at least 32 characters in jwt mode")
		}
	default:
		return fmt.Errorf("security.auth_mode must be \"opaque\" or \"jwt\", got %q", c.Security.AuthMode)
	}

	switch c.Security.SessionStore {
	case "memory":
	case "badger":
		if c.Security.SessionStorePath == "" {
			return fmt.Errorf("security.session_store_path is required with the badger session store")
		}
	default:
		return fmt.Errorf("security.session_store must be \"badger\" or \"memory\", got %q", c.Security.SessionStore)
	}

	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("security.session_timeout must be positive, got %s", c.Security.SessionTimeout)
	}
	if c.Websocket.SendBuffer < 1 {
		return fmt.Errorf("websocket.send_buffer must be at least 1, got %d", c.Websocket.SendBuffer)
	}
	if c.Websocket.MaxMessageSize < 1 {
		return fmt.Errorf("websocket.max_message_size must be positive, got %d", c.Websocket.MaxMessageSize)
	}
	if c.Websocket.EventsPerSecond <= 0 {
		return fmt.Errorf("websocket.events_per_second must be positive, got %g", c.Websocket.EventsPerSecond)
	}

	return nil
}
