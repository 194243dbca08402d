// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/amuhanad881-gif/echoroom1/internal/models"
)

func createServer(t *testing.T, env *testEnv, name, owner string) models.Server {
	t.Helper()
	rec, resp := doRequest(t, env.router, http.MethodPost, "/api/v1/servers",
		`{"name":"`+name+`","owner":"`+owner+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create server failed with %d: %s", rec.Code, rec.Body.String())
	}
	var server models.Server
	decodeData(t, resp, &server)
	return server
}

func TestCreateServerWithDefaultChannel(t *testing.T) {
	env := setupTestEnv(t)
	signupUser(t, env, "alice@example.com", "alice")

	server := createServer(t, env, "Gaming", "alice@example.com")
	if server.ID == "" || server.Owner != "alice@example.com" {
		t.Fatalf("unexpected server: %+v", server)
	}

	rec, resp := doRequest(t, env.router, http.MethodGet, "/api/v1/servers/"+server.ID+"/channels", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("channel list failed with %d", rec.Code)
	}
	var data struct {
		Channels []models.Channel `json:"channels"`
	}
	decodeData(t, resp, &data)
	if len(data.Channels) != 1 || data.Channels[0].Name != "general" {
		t.Errorf("expected default general channel, got %v", data.Channels)
	}

	// The owner's server list now has the new server alongside welcome.
	rec, resp = doRequest(t, env.router, http.MethodGet, "/api/v1/servers/user/alice@example.com", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("server list failed with %d", rec.Code)
	}
	var servers struct {
		Servers []models.Server `json:"servers"`
	}
	decodeData(t, resp, &servers)
	if len(servers.Servers) != 2 {
		t.Errorf("expected 2 servers, got %v", servers.Servers)
	}
}

func TestCreateChannel(t *testing.T) {
	env := setupTestEnv(t)
	signupUser(t, env, "alice@example.com", "alice")
	server := createServer(t, env, "Gaming", "alice@example.com")

	rec, resp := doRequest(t, env.router, http.MethodPost, "/api/v1/servers/"+server.ID+"/channels",
		`{"name":"lounge","type":"voice"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create channel failed with %d: %s", rec.Code, rec.Body.String())
	}
	var channel models.Channel
	decodeData(t, resp, &channel)
	if channel.Type != models.ChannelTypeVoice || channel.Name != "lounge" {
		t.Errorf("unexpected channel: %+v", channel)
	}

	rec, _ = doRequest(t, env.router, http.MethodPost, "/api/v1/servers/"+server.ID+"/channels",
		`{"name":"bad","type":"video"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid channel type, got %d", rec.Code)
	}

	rec, _ = doRequest(t, env.router, http.MethodPost, "/api/v1/servers/no-such-server/channels",
		`{"name":"lounge","type":"text"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown server, got %d", rec.Code)
	}
}

func TestJoinServer(t *testing.T) {
	env := setupTestEnv(t)
	signupUser(t, env, "alice@example.com", "alice")
	signupUser(t, env, "bob@example.com", "bob")
	server := createServer(t, env, "Gaming", "alice@example.com")

	rec, _ := doRequest(t, env.router, http.MethodPost, "/api/v1/servers/"+server.ID+"/join",
		`{"email":"bob@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("join failed with %d: %s", rec.Code, rec.Body.String())
	}

	// Joining again is not an error.
	rec, _ = doRequest(t, env.router, http.MethodPost, "/api/v1/servers/"+server.ID+"/join",
		`{"email":"bob@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("rejoin should answer 200, got %d", rec.Code)
	}

	rec, resp := doRequest(t, env.router, http.MethodGet, "/api/v1/servers/user/bob@example.com", "")
	var data struct {
		Servers []models.Server `json:"servers"`
	}
	decodeData(t, resp, &data)
	if len(data.Servers) != 2 {
		t.Errorf("expected bob in 2 servers, got %v", data.Servers)
	}

	rec, _ = doRequest(t, env.router, http.MethodPost, "/api/v1/servers/no-such-server/join",
		`{"email":"bob@example.com"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown server, got %d", rec.Code)
	}
}

func TestChannelInfo(t *testing.T) {
	env := setupTestEnv(t)
	signupUser(t, env, "alice@example.com", "alice")
	server := createServer(t, env, "Gaming", "alice@example.com")

	_, resp := doRequest(t, env.router, http.MethodGet, "/api/v1/servers/"+server.ID+"/channels", "")
	var chans struct {
		Channels []models.Channel `json:"channels"`
	}
	decodeData(t, resp, &chans)
	channelID := chans.Channels[0].ID

	body := `{"server_id":"` + server.ID + `","channel_id":"` + channelID +
		`","user_email":"alice@example.com","username":"alice","content":"hi"}`
	rec, _ := doRequest(t, env.router, http.MethodPost, "/api/v1/messages/send", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("send failed with %d", rec.Code)
	}

	rec, resp = doRequest(t, env.router, http.MethodGet, "/api/v1/channels/"+channelID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("channel info failed with %d", rec.Code)
	}
	var info struct {
		Channel      models.Channel `json:"channel"`
		MessageCount int64          `json:"message_count"`
	}
	decodeData(t, resp, &info)
	if info.Channel.Name != "general" || info.MessageCount != 1 {
		t.Errorf("unexpected channel info: %+v", info)
	}

	rec, _ = doRequest(t, env.router, http.MethodGet, "/api/v1/channels/no-such-channel", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestListChannelsUnknownServer(t *testing.T) {
	env := setupTestEnv(t)

	rec, resp := doRequest(t, env.router, http.MethodGet, "/api/v1/servers/no-such-server/channels", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != codeNotFound {
		t.Errorf("unexpected error: %+v", resp.Error)
	}
}

func TestMessageRoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	signupUser(t, env, "alice@example.com", "alice")
	server := createServer(t, env, "Gaming", "alice@example.com")

	rec, resp := doRequest(t, env.router, http.MethodGet, "/api/v1/servers/"+server.ID+"/channels", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("channel list failed with %d", rec.Code)
	}
	var data struct {
		Channels []models.Channel `json:"channels"`
	}
	decodeData(t, resp, &data)
	channelID := data.Channels[0].ID

	for i := 0; i < 3; i++ {
		body := fmt.Sprintf(
			`{"server_id":"%s","channel_id":"%s","user_email":"alice@example.com","username":"alice","content":"message %d"}`,
			server.ID, channelID, i)
		rec, _ := doRequest(t, env.router, http.MethodPost, "/api/v1/messages/send", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("send message failed with %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec, resp = doRequest(t, env.router, http.MethodGet,
		"/api/v1/messages/"+server.ID+"/"+channelID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("message list failed with %d", rec.Code)
	}
	var messages struct {
		Messages []models.Message `json:"messages"`
	}
	decodeData(t, resp, &messages)
	if len(messages.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages.Messages))
	}
	// Ascending timestamp order.
	if messages.Messages[0].Content != "message 0" || messages.Messages[2].Content != "message 2" {
		t.Errorf("messages out of order: %v", messages.Messages)
	}
}

func TestSendMessageValidation(t *testing.T) {
	env := setupTestEnv(t)

	rec, resp := doRequest(t, env.router, http.MethodPost, "/api/v1/messages/send",
		`{"server_id":"s1","channel_id":"c1","user_email":"not-an-email","username":"alice","content":"hi"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != codeValidation {
		t.Errorf("unexpected error: %+v", resp.Error)
	}
}

func TestFriendLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	signupUser(t, env, "alice@example.com", "alice")
	signupUser(t, env, "bob@example.com", "bob")

	// Alice requests bob.
	rec, _ := doRequest(t, env.router, http.MethodPost, "/api/v1/friends/add",
		`{"user_email":"alice@example.com","friend_email":"bob@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add friend failed with %d: %s", rec.Code, rec.Body.String())
	}

	// A duplicate in the reverse direction is rejected.
	rec, resp := doRequest(t, env.router, http.MethodPost, "/api/v1/friends/add",
		`{"user_email":"bob@example.com","friend_email":"alice@example.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != codeDuplicate {
		t.Errorf("unexpected error: %+v", resp.Error)
	}

	// Bob accepts.
	rec, _ = doRequest(t, env.router, http.MethodPost, "/api/v1/friends/accept",
		`{"user_email":"bob@example.com","friend_email":"alice@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("accept friend failed with %d: %s", rec.Code, rec.Body.String())
	}

	rec, resp = doRequest(t, env.router, http.MethodGet, "/api/v1/friends/alice@example.com", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("friend list failed with %d", rec.Code)
	}
	var data struct {
		Friends []models.Friend `json:"friends"`
	}
	decodeData(t, resp, &data)
	if len(data.Friends) != 1 || data.Friends[0].Status != models.FriendStatusAccepted {
		t.Errorf("unexpected friend list: %v", data.Friends)
	}

	// Remove ends the relationship for both.
	rec, _ = doRequest(t, env.router, http.MethodPost, "/api/v1/friends/remove",
		`{"user_email":"bob@example.com","friend_email":"alice@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove friend failed with %d", rec.Code)
	}
	rec, resp = doRequest(t, env.router, http.MethodGet, "/api/v1/friends/bob@example.com", "")
	decodeData(t, resp, &data)
	if len(data.Friends) != 0 {
		t.Errorf("expected empty friend list, got %v", data.Friends)
	}
}

func TestFriendEdgeCases(t *testing.T) {
	env := setupTestEnv(t)

	rec, _ := doRequest(t, env.router, http.MethodPost, "/api/v1/friends/add",
		`{"user_email":"alice@example.com","friend_email":"alice@example.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("self-friend should answer 400, got %d", rec.Code)
	}

	rec, _ = doRequest(t, env.router, http.MethodPost, "/api/v1/friends/accept",
		`{"user_email":"alice@example.com","friend_email":"bob@example.com"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("accepting a missing request should answer 404, got %d", rec.Code)
	}

	rec, _ = doRequest(t, env.router, http.MethodPost, "/api/v1/friends/remove",
		`{"user_email":"alice@example.com","friend_email":"bob@example.com"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("removing a missing relationship should answer 404, got %d", rec.Code)
	}
}
