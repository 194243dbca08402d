// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package websocket

import (
	"sort"
	"sync"
	"testing"
)

func TestRoomKey(t *testing.T) {
	if got := RoomKey("s1", "c1"); got != "s1_c1" {
		t.Errorf("RoomKey = %q, want %q", got, "s1_c1")
	}
}

func TestDirectoryJoinMembers(t *testing.T) {
	d := NewDirectory()
	room := RoomKey("s1", "c1")

	d.Join(room, "a")
	d.Join(room, "b")

	members := d.Members(room)
	sort.Strings(members)
	if len(members) != 2 || members[0] != "a" || members[1] != "b" {
		t.Errorf("unexpected members: %v", members)
	}
	if !d.Contains(room, "a") {
		t.Error("expected a in room")
	}
}

func TestDirectoryJoinIdempotent(t *testing.T) {
	d := NewDirectory()
	room := RoomKey("s1", "c1")

	d.Join(room, "a")
	d.Join(room, "a")
	d.Join(room, "a")

	if got := len(d.Members(room)); got != 1 {
		t.Errorf("expected 1 member after repeated joins, got %d", got)
	}
}

func TestDirectoryLeave(t *testing.T) {
	d := NewDirectory()
	room := RoomKey("s1", "c1")

	d.Join(room, "a")
	d.Leave(room, "a")
	if d.Contains(room, "a") {
		t.Error("a should be gone after leave")
	}

	// Leave on a non-member and on an unknown room are no-ops.
	d.Leave(room, "a")
	d.Leave(RoomKey("s9", "c9"), "a")

	if got := d.RoomCount(); got != 0 {
		t.Errorf("empty rooms should be collected, got %d", got)
	}
}

func TestDirectoryMembersUnknownRoom(t *testing.T) {
	d := NewDirectory()
	if members := d.Members("nope"); len(members) != 0 {
		t.Errorf("unknown room must yield empty set, got %v", members)
	}
}

func TestDirectoryPurge(t *testing.T) {
	d := NewDirectory()
	text := RoomKey("s1", "c1")
	voice := RoomKey("s1", "voice")

	d.Join(text, "a")
	d.Join(voice, "a")
	d.Join(text, "b")

	d.Purge("a")

	if d.Contains(text, "a") || d.Contains(voice, "a") {
		t.Error("purge must remove the connection from every room")
	}
	if !d.Contains(text, "b") {
		t.Error("purge must not touch other connections")
	}
	// Purge of an unknown connection is a no-op.
	d.Purge("ghost")
}

func TestDirectoryMembersSnapshotIsolated(t *testing.T) {
	d := NewDirectory()
	room := RoomKey("s1", "c1")
	d.Join(room, "a")

	members := d.Members(room)
	members[0] = "mutated"

	if !d.Contains(room, "a") {
		t.Error("mutating a snapshot must not affect the directory")
	}
}

func TestDirectoryConcurrentAccess(t *testing.T) {
	d := NewDirectory()
	room := RoomKey("s1", "c1")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		connID := string(rune('a' + i))
		go func() {
			defer wg.Done()
			d.Join(room, connID)
		}()
		go func() {
			defer wg.Done()
			d.Members(room)
		}()
		go func() {
			defer wg.Done()
			d.Purge(connID)
		}()
	}
	wg.Wait()
}

func TestDirectorySnapshot(t *testing.T) {
	d := NewDirectory()
	d.Join(RoomKey("s1", "c1"), "b")
	d.Join(RoomKey("s1", "c1"), "a")
	d.Join(RoomKey("s2", "c1"), "c")

	rooms := d.snapshot()
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	if rooms[0].Key != "s1_c1" || rooms[1].Key != "s2_c1" {
		t.Errorf("snapshot not sorted by key: %+v", rooms)
	}
	if len(rooms[0].Members) != 2 || rooms[0].Members[0] != "a" {
		t.Errorf("members not sorted: %+v", rooms[0].Members)
	}
}
