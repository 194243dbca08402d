// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package websocket

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/amuhanad881-gif/echoroom1/internal/logging"
	"github.com/amuhanad881-gif/echoroom1/internal/metrics"
	"github.com/amuhanad881-gif/echoroom1/internal/validation"
)

// Inbound event names. The names and payload shapes are a compatibility
// surface; existing clients depend on them exactly as written.
const (
	EventJoinChat     = "join_chat"
	EventLeaveChat    = "leave_chat"
	EventTyping       = "typing"
	EventSendMessage  = "send_message"
	EventVoiceJoin    = "voice_join"
	EventVoiceLeave   = "voice_leave"
	EventWebRTCOffer  = "webrtc_offer"
	EventWebRTCAnswer = "webrtc_answer"
	EventICECandidate = "ice_candidate"
)

// Outbound event names.
const (
	EventConnected       = "connected"
	EventUserJoinedChat  = "user_joined_chat"
	EventUserTyping      = "user_typing"
	EventNewMessage      = "new_message"
	EventUserJoinedVoice = "user_joined_voice"
	EventUserLeftVoice   = "user_left_voice"
)

// ErrMalformedEvent marks an inbound event that failed decoding or
// required-field validation. The event is dropped and logged; the
// connection survives.
var ErrMalformedEvent = errors.New("malformed event")

// Event is the wire envelope. Data stays raw until the event type picks
// the payload shape.
type Event struct {
	Type string          `json:"event"`
	Data json.RawMessage `json:"data"`
}

// newEvent builds an outbound event, marshaling the payload.
func newEvent(eventType string, payload interface{}) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, Data: data}, nil
}

// mustEvent is newEvent for payloads that cannot fail to marshal.
func mustEvent(eventType string, payload interface{}) Event {
	event, err := newEvent(eventType, payload)
	if err != nil {
		panic(err)
	}
	return event
}

type connectedPayload struct {
	ConnectionID string `json:"connection_id"`
}

type joinChatPayload struct {
	ServerID  string `json:"server_id" validate:"required"`
	ChannelID string `json:"channel_id" validate:"required"`
	Username  string `json:"username" validate:"required"`
}

type leaveChatPayload struct {
	ServerID  string `json:"server_id" validate:"required"`
	ChannelID string `json:"channel_id" validate:"required"`
}

type typingPayload struct {
	ServerID  string `json:"server_id" validate:"required"`
	ChannelID string `json:"channel_id" validate:"required"`
	Username  string `json:"username" validate:"required"`
}

// sendMessagePayload extracts only the routing fields; the full payload
// is rebroadcast verbatim as new_message.
type sendMessagePayload struct {
	ServerID  string `json:"server_id" validate:"required"`
	ChannelID string `json:"channel_id" validate:"required"`
}

type voiceJoinPayload struct {
	ServerID  string `json:"server_id" validate:"required"`
	ChannelID string `json:"channel_id" validate:"required"`
	UserEmail string `json:"user_email" validate:"required"`
	Username  string `json:"username" validate:"required"`
}

type voiceLeavePayload struct {
	ServerID  string `json:"server_id" validate:"required"`
	ChannelID string `json:"channel_id" validate:"required"`
	UserEmail string `json:"user_email" validate:"required"`
}

type offerPayload struct {
	Target   string          `json:"target" validate:"required"`
	Offer    json.RawMessage `json:"offer" validate:"required"`
	FromUser string          `json:"from_user"`
}

type answerPayload struct {
	Target   string          `json:"target" validate:"required"`
	Answer   json.RawMessage `json:"answer" validate:"required"`
	FromUser string          `json:"from_user"`
}

type candidatePayload struct {
	Target    string          `json:"target" validate:"required"`
	Candidate json.RawMessage `json:"candidate" validate:"required"`
	FromUser  string          `json:"from_user"`
}

type usernamePayload struct {
	Username string `json:"username"`
}

type voicePresencePayload struct {
	UserEmail string `json:"user_email"`
	Username  string `json:"username,omitempty"`
}

// offerRelay and friends are the outbound signaling shapes: the opaque
// payload plus the sender tag so the recipient can associate replies.
type offerRelay struct {
	Offer    json.RawMessage `json:"offer"`
	FromUser string          `json:"from_user"`
}

type answerRelay struct {
	Answer   json.RawMessage `json:"answer"`
	FromUser string          `json:"from_user"`
}

type candidateRelay struct {
	Candidate json.RawMessage `json:"candidate"`
	FromUser  string          `json:"from_user"`
}

// decodePayload unmarshals and validates a typed payload. Any failure is
// a malformed event.
func decodePayload(raw json.RawMessage, dst interface{}) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: empty payload", ErrMalformedEvent)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, verr)
	}
	return nil
}

// HandleEvent dispatches one inbound event from a connection per the wire
// contract. Malformed events are dropped without terminating the
// connection; relay is best-effort throughout.
func (h *Hub) HandleEvent(connID string, raw []byte) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		h.dropMalformed(connID, "", err)
		return
	}
	metrics.RecordEventReceived(event.Type)

	var err error
	switch event.Type {
	case EventJoinChat:
		err = h.handleJoinChat(connID, event.Data)
	case EventLeaveChat:
		err = h.handleLeaveChat(connID, event.Data)
	case EventTyping:
		err = h.handleTyping(connID, event.Data)
	case EventSendMessage:
		err = h.handleSendMessage(connID, event.Data)
	case EventVoiceJoin:
		err = h.handleVoiceJoin(connID, event.Data)
	case EventVoiceLeave:
		err = h.handleVoiceLeave(connID, event.Data)
	case EventWebRTCOffer:
		err = h.handleOffer(connID, event.Data)
	case EventWebRTCAnswer:
		err = h.handleAnswer(connID, event.Data)
	case EventICECandidate:
		err = h.handleCandidate(connID, event.Data)
	default:
		err = fmt.Errorf("%w: unknown event type %q", ErrMalformedEvent, event.Type)
	}
	if err != nil {
		h.dropMalformed(connID, event.Type, err)
	}
}

func (h *Hub) dropMalformed(connID, eventType string, err error) {
	metrics.RecordWSError("decode")
	logging.Warn().
		Err(err).
		Str("connection_id", connID).
		Str("event_type", eventType).
		Msg("Dropped malformed event")
}

func (h *Hub) handleJoinChat(connID string, raw json.RawMessage) error {
	var payload joinChatPayload
	if err := decodePayload(raw, &payload); err != nil {
		return err
	}

	roomKey := RoomKey(payload.ServerID, payload.ChannelID)
	h.directory.Join(roomKey, connID)

	event, err := newEvent(EventUserJoinedChat, usernamePayload{Username: payload.Username})
	if err != nil {
		return err
	}
	h.Broadcast(roomKey, event, connID)
	return nil
}

func (h *Hub) handleLeaveChat(connID string, raw json.RawMessage) error {
	var payload leaveChatPayload
	if err := decodePayload(raw, &payload); err != nil {
		return err
	}
	// Membership removal only; no broadcast.
	h.directory.Leave(RoomKey(payload.ServerID, payload.ChannelID), connID)
	return nil
}

func (h *Hub) handleTyping(connID string, raw json.RawMessage) error {
	var payload typingPayload
	if err := decodePayload(raw, &payload); err != nil {
		return err
	}

	event, err := newEvent(EventUserTyping, usernamePayload{Username: payload.Username})
	if err != nil {
		return err
	}
	h.Broadcast(RoomKey(payload.ServerID, payload.ChannelID), event, connID)
	return nil
}

func (h *Hub) handleSendMessage(connID string, raw json.RawMessage) error {
	var payload sendMessagePayload
	if err := decodePayload(raw, &payload); err != nil {
		return err
	}

	// The full inbound payload passes through verbatim, and the sender
	// receives its own message back.
	event := Event{Type: EventNewMessage, Data: raw}
	h.Broadcast(RoomKey(payload.ServerID, payload.ChannelID), event, "")
	return nil
}

func (h *Hub) handleVoiceJoin(connID string, raw json.RawMessage) error {
	var payload voiceJoinPayload
	if err := decodePayload(raw, &payload); err != nil {
		return err
	}

	roomKey := RoomKey(payload.ServerID, payload.ChannelID)
	h.directory.Join(roomKey, connID)

	event, err := newEvent(EventUserJoinedVoice, voicePresencePayload{
		UserEmail: payload.UserEmail,
		Username:  payload.Username,
	})
	if err != nil {
		return err
	}
	h.Broadcast(roomKey, event, connID)
	return nil
}

func (h *Hub) handleVoiceLeave(connID string, raw json.RawMessage) error {
	var payload voiceLeavePayload
	if err := decodePayload(raw, &payload); err != nil {
		return err
	}

	roomKey := RoomKey(payload.ServerID, payload.ChannelID)

	event, err := newEvent(EventUserLeftVoice, voicePresencePayload{UserEmail: payload.UserEmail})
	if err != nil {
		return err
	}

	// Default policy echoes the event back to the leaver, which clients
	// use to confirm teardown. The broadcast has to happen while the
	// leaver is still a member or the echo can never be delivered.
	exclude := ""
	if h.cfg.VoiceLeaveExcludeSender {
		exclude = connID
	}
	h.Broadcast(roomKey, event, exclude)
	h.directory.Leave(roomKey, connID)
	return nil
}

func (h *Hub) handleOffer(connID string, raw json.RawMessage) error {
	var payload offerPayload
	if err := decodePayload(raw, &payload); err != nil {
		return err
	}
	event, err := newEvent(EventWebRTCOffer, offerRelay{Offer: payload.Offer, FromUser: payload.FromUser})
	if err != nil {
		return err
	}
	h.RelayTo(payload.Target, event)
	return nil
}

func (h *Hub) handleAnswer(connID string, raw json.RawMessage) error {
	var payload answerPayload
	if err := decodePayload(raw, &payload); err != nil {
		return err
	}
	event, err := newEvent(EventWebRTCAnswer, answerRelay{Answer: payload.Answer, FromUser: payload.FromUser})
	if err != nil {
		return err
	}
	h.RelayTo(payload.Target, event)
	return nil
}

func (h *Hub) handleCandidate(connID string, raw json.RawMessage) error {
	var payload candidatePayload
	if err := decodePayload(raw, &payload); err != nil {
		return err
	}
	event, err := newEvent(EventICECandidate, candidateRelay{Candidate: payload.Candidate, FromUser: payload.FromUser})
	if err != nil {
		return err
	}
	h.RelayTo(payload.Target, event)
	return nil
}
