// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

// Package models defines the persisted chat entities and the shared API
// response envelope.
package models

import "time"

// User is a registered account, keyed by email.
type User struct {
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

// Server is a chat server (a guild) owning a set of channels.
type Server struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

// Channel types.
const (
	ChannelTypeText  = "text"
	ChannelTypeVoice = "voice"
)

// Channel belongs to a server and is either a text or a voice channel.
type Channel struct {
	ID        string    `json:"id"`
	ServerID  string    `json:"server_id,omitempty"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is a persisted chat message. Persistence happens before the
// message is relayed to the room; relay itself is best-effort.
type Message struct {
	ID        string    `json:"id"`
	ServerID  string    `json:"server_id,omitempty"`
	ChannelID string    `json:"channel_id,omitempty"`
	UserEmail string    `json:"user_email,omitempty"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Friend statuses.
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
)

// Friend is one edge of the friend graph. User1 is the requester.
type Friend struct {
	User1     string    `json:"user1"`
	User2     string    `json:"user2"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomStatus is a live membership snapshot for one broadcast room,
// served by the rooms endpoint.
type RoomStatus struct {
	RoomKey   string   `json:"room_key"`
	UserCount int      `json:"user_count"`
	Users     []string `json:"users"`
}
