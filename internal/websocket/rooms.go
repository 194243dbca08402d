// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package websocket

import (
	"sort"
	"sync"

	"github.com/amuhanad881-gif/echoroom1/internal/metrics"
)

// RoomKey joins a server and channel into the canonical room key. Exact
// string match only; no normalization.
func RoomKey(serverID, channelID string) string {
	return serverID + "_" + channelID
}

// Directory maps rooms to their member connection IDs. Rooms are created
// lazily on first join and deleted when their last member leaves.
type Directory struct {
	mu     sync.RWMutex
	rooms  map[string]map[string]struct{}
	byConn map[string]map[string]struct{}
}

// NewDirectory creates an empty room directory.
func NewDirectory() *Directory {
	return &Directory{
		rooms:  make(map[string]map[string]struct{}),
		byConn: make(map[string]map[string]struct{}),
	}
}

// Join adds the connection to the room, creating the room if absent.
// Re-joining is a no-op.
func (d *Directory) Join(roomKey, connID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	room, ok := d.rooms[roomKey]
	if !ok {
		room = make(map[string]struct{})
		d.rooms[roomKey] = room
	}
	room[connID] = struct{}{}

	joined, ok := d.byConn[connID]
	if !ok {
		joined = make(map[string]struct{})
		d.byConn[connID] = joined
	}
	joined[roomKey] = struct{}{}

	metrics.WSRooms.Set(float64(len(d.rooms)))
}

// Leave removes the connection from the room. Leaving a room the
// connection is not in is a no-op.
func (d *Directory) Leave(roomKey, connID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.leaveLocked(roomKey, connID)
	metrics.WSRooms.Set(float64(len(d.rooms)))
}

func (d *Directory) leaveLocked(roomKey, connID string) {
	if room, ok := d.rooms[roomKey]; ok {
		delete(room, connID)
		if len(room) == 0 {
			delete(d.rooms, roomKey)
		}
	}
	if joined, ok := d.byConn[connID]; ok {
		delete(joined, roomKey)
		if len(joined) == 0 {
			delete(d.byConn, connID)
		}
	}
}

// Purge removes the connection from every room it is a member of. Called
// on disconnect. Atomic: a concurrent Members snapshot sees the
// connection in all of its rooms or in none.
func (d *Directory) Purge(connID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	joined, ok := d.byConn[connID]
	if !ok {
		return
	}
	for roomKey := range joined {
		if room, ok := d.rooms[roomKey]; ok {
			delete(room, connID)
			if len(room) == 0 {
				delete(d.rooms, roomKey)
			}
		}
	}
	delete(d.byConn, connID)
	metrics.WSRooms.Set(float64(len(d.rooms)))
}

// Members returns a snapshot of the room's member connection IDs. Unknown
// rooms yield an empty slice, not an error.
func (d *Directory) Members(roomKey string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	room, ok := d.rooms[roomKey]
	if !ok {
		return nil
	}
	members := make([]string, 0, len(room))
	for connID := range room {
		members = append(members, connID)
	}
	return members
}

// Contains reports whether the connection is a member of the room.
func (d *Directory) Contains(roomKey, connID string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	room, ok := d.rooms[roomKey]
	if !ok {
		return false
	}
	_, ok = room[connID]
	return ok
}

// RoomCount returns the number of non-empty rooms.
func (d *Directory) RoomCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rooms)
}

// roomMembership is one room's membership snapshot.
type roomMembership struct {
	Key     string
	Members []string
}

// snapshot returns all rooms and their members, sorted by key for stable
// output.
func (d *Directory) snapshot() []roomMembership {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]roomMembership, 0, len(d.rooms))
	for key, room := range d.rooms {
		members := make([]string, 0, len(room))
		for connID := range room {
			members = append(members, connID)
		}
		sort.Strings(members)
		out = append(out, roomMembership{Key: key, Members: members})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
