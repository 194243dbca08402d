// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("default port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Websocket.VoiceLeaveExcludeSender {
		t.Error("voice_leave should include the sender by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"port too small", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, "server.timeout"},
		{"bad auth mode", func(c *Config) { c.Security.AuthMode = "oauth" }, "auth_mode"},
		{"jwt without secret", func(c *Config) { c.Security.AuthMode = "jwt" }, "jwt_secret"},
		{
			"jwt with secret",
			func(c *Config) {
				c.Security.AuthMode = "jwt"
				c.Security.JWTSecret = strings.Repeat("s", 32)
			},
			"",
		},
		{"bad session store", func(c *Config) { c.Security.SessionStore = "redis" }, "session_store"},
		{
			"badger without path",
			func(c *Config) { c.Security.SessionStorePath = "" },
			"session_store_path",
		},
		{"zero session timeout", func(c *Config) { c.Security.SessionTimeout = 0 }, "session_timeout"},
		{"zero send buffer", func(c *Config) { c.Websocket.SendBuffer = 0 }, "send_buffer"},
		{"zero event rate", func(c *Config) { c.Websocket.EventsPerSecond = 0 }, "events_per_second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("AUTH_MODE", "opaque")
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SESSION_TIMEOUT", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("HTTP_PORT override failed: port = %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("LOG_LEVEL override failed: level = %q", cfg.Logging.Level)
	}
	if cfg.Security.SessionTimeout != time.Hour {
		t.Errorf("SESSION_TIMEOUT override failed: %s", cfg.Security.SessionTimeout)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORS_ORIGINS slice parsing failed: %v", cfg.Security.CORSOrigins)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "server:\n  port: 6001\nwebsocket:\n  send_buffer: 64\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("SESSION_STORE", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Server.Port != 6001 {
		t.Errorf("config file port not applied: %d", cfg.Server.Port)
	}
	if cfg.Websocket.SendBuffer != 64 {
		t.Errorf("config file send_buffer not applied: %d", cfg.Websocket.SendBuffer)
	}
}

func TestEnvTransformDropsUnknown(t *testing.T) {
	if got := envTransformFunc("PATH"); got != "" {
		t.Errorf("unknown env var should map to empty path, got %q", got)
	}
	if got := envTransformFunc("HTTP_PORT"); got != "server.port" {
		t.Errorf("envTransformFunc(HTTP_PORT) = %q", got)
	}
}
