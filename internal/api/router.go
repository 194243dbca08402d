// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amuhanad881-gif/echoroom1/internal/config"
	"github.com/amuhanad881-gif/echoroom1/internal/middleware"
)

// Login attempts are limited separately from the general API rate to slow
// credential stuffing.
const (
	loginRateLimit  = 5
	loginRateWindow = 5 * time.Minute
)

// NewRouter assembles the full HTTP surface.
func NewRouter(h *Handlers, cfg *config.SecurityConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins(cfg),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		if !cfg.RateLimitDisabled {
			r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		}
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)

		r.Get("/health", h.Health)
		r.Get("/rooms", h.Rooms)
		r.Get("/ws", h.WebSocket)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Signup)
			r.With(httprate.LimitByIP(loginRateLimit, loginRateWindow)).Post("/login", h.Login)
			r.Get("/session/{token}", h.SessionLookup)
			r.Post("/logout", h.Logout)
			r.Post("/logout-all", h.LogoutAll)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/{email}", h.GetUser)
			r.Put("/{email}", h.UpdateProfile)
		})

		r.Route("/servers", func(r chi.Router) {
			r.Post("/", h.CreateServer)
			r.Get("/user/{email}", h.ListServersForUser)
			r.Post("/{serverID}/join", h.JoinServer)
			r.Get("/{serverID}/channels", h.ListChannels)
			r.Post("/{serverID}/channels", h.CreateChannel)
		})

		r.Get("/channels/{channelID}", h.GetChannelInfo)

		r.Route("/messages", func(r chi.Router) {
			r.Get("/{serverID}/{channelID}", h.ListMessages)
			r.Post("/send", h.SendMessage)
		})

		r.Route("/friends", func(r chi.Router) {
			r.Get("/{email}", h.ListFriends)
			r.Post("/add", h.AddFriend)
			r.Post("/accept", h.AcceptFriend)
			r.Post("/remove", h.RemoveFriend)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func corsOrigins(cfg *config.SecurityConfig) []string {
	if len(cfg.CORSOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSOrigins
}
