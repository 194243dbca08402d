// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/amuhanad881-gif/echoroom1/internal/config"
	"github.com/amuhanad881-gif/echoroom1/internal/logging"
	"github.com/amuhanad881-gif/echoroom1/internal/metrics"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client pairs one WebSocket connection with its outbound queue. One
// readPump/writePump goroutine pair runs per connection.
type Client struct {
	id      string
	hub     *Hub
	conn    *websocket.Conn
	limiter *rate.Limiter

	mu     sync.Mutex
	send   chan Event
	closed bool
}

// NewClient wraps an upgraded connection. The client is inert until the
// hub attaches it and Start runs the pumps.
func NewClient(hub *Hub, conn *websocket.Conn, cfg *config.WebsocketConfig) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		limiter: rate.NewLimiter(rate.Limit(cfg.EventsPerSecond), cfg.EventBurst),
		send:    make(chan Event, cfg.SendBuffer),
	}
}

// ID returns the connection ID assigned at attach time.
func (c *Client) ID() string {
	return c.id
}

// trySend queues an event for delivery without blocking. A full queue
// drops the event: a slow client loses events rather than stalling the
// sender. Reports whether the event was queued.
func (c *Client) trySend(event Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- event:
		return true
	default:
		metrics.RecordEventDropped()
		logging.Warn().
			Str("connection_id", c.id).
			Str("event_type", event.Type).
			Msg("Send queue full, dropping event")
		return false
	}
}

// closeSend closes the outbound queue, which ends writePump. Idempotent.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// readPump pumps inbound events from the connection into the hub. It
// owns the read side: deadlines, pong handling, size limits, and flood
// control. Exits on any read error and triggers the full disconnect path.
func (c *Client) readPump() {
	defer func() {
		c.hub.HandleDisconnect(c.id)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.cfg.MaxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				metrics.RecordWSError("read")
				logging.Warn().Err(err).Str("connection_id", c.id).Msg("unexpected websocket close")
			}
			break
		}

		// Flood control: events over the limit are dropped, the
		// connection survives.
		if !c.limiter.Allow() {
			metrics.RecordWSError("rate_limit")
			logging.Debug().Str("connection_id", c.id).Msg("Event rate limit exceeded, dropping event")
			continue
		}

		c.hub.HandleEvent(c.id, raw)
	}
}

// writePump pumps queued events to the connection and keeps it alive
// with pings. Exits when the send queue closes or a write fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline")
				return
			}
			if !ok {
				// The hub closed the queue.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				metrics.RecordWSError("write")
				logging.Debug().Err(err).Str("connection_id", c.id).Msg("websocket write failed")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Start begins reading and writing for the client.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}
