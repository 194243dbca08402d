// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

/*
Package websocket implements the connection/room broker: the component
that maps live WebSocket connections to logical rooms and fans events out
to the right subset of peers.

# Components

  - Registry: admits connections, assigns process-unique connection IDs,
    and tracks the identity (email, display name) attached to each.
  - Directory: room membership keyed by (server_id, channel_id). Joins are
    idempotent, leaves on non-members are no-ops, and purge removes a
    connection from every room atomically.
  - Hub: the event relay. Broadcast delivers to every room member (with an
    optional exclusion, decided per event kind at the call site) and
    RelayTo delivers to exactly one connection, used for WebRTC signaling
    pass-through.

# Delivery semantics

Everything here is best-effort and fire-and-forget. Broadcasting to an
empty room, relaying to a vanished target, and a full client queue are all
silent non-errors for the sender. A slow client loses events rather than
stalling the room: sends go through per-client buffered channels and never
happen while the membership lock is held. Delivery to each individual
recipient is FIFO in broadcast-call order; there is no ordering guarantee
across recipients.

A malformed inbound event is dropped and logged; the connection survives.
Nothing in this package is fatal to the process.
*/
package websocket
