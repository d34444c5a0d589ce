package handlers

import (
	"context"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

func TestHandleMove(t *testing.T) {
	h, _ := newTestHandlers(t)

	updates, err := h.handleMove(context.Background(),
		command(protocol.CommandMove, "alice", &protocol.MovePayload{Direction: protocol.DirNorth}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The mover gets the destination room state.
	roomRcpts := recipients(updates, protocol.UpdateRoomState)
	testutil.AssertEqual(t, "room state recipients", len(roomRcpts), 1)
	testutil.AssertEqual(t, "room state recipient", roomRcpts[0], "alice")

	// Destination occupants get a presence notice; the player left
	// behind in the hall gets nothing at all.
	presRcpts := recipients(updates, protocol.UpdatePresence)
	testutil.AssertEqual(t, "presence recipients", len(presRcpts), 1)
	testutil.AssertEqual(t, "presence recipient", presRcpts[0], "carol")
	for _, u := range updates {
		for _, id := range u.AffectedPlayers {
			if id == "bob" {
				t.Errorf("origin-room occupant received a %s update", u.Type)
			}
		}
	}

	for _, u := range updates {
		if u.Type == protocol.UpdatePresence {
			data := u.Data.(*protocol.PresenceData)
			testutil.AssertEqual(t, "presence name", data.PlayerName, "Alice")
			testutil.AssertEqual(t, "presence room", data.RoomId, "yard")
			testutil.AssertEqual(t, "presence entered", data.Entered, true)
		}
	}
}

func TestHandleMove_EmptyDestination(t *testing.T) {
	h, _ := newTestHandlers(t)

	// Carol moves into the hall: alice and bob are notified. Then she
	// moves back into an empty yard: only the room state is emitted.
	updates, err := h.handleMove(context.Background(),
		command(protocol.CommandMove, "carol", &protocol.MovePayload{Direction: protocol.DirSouth}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	presRcpts := recipients(updates, protocol.UpdatePresence)
	testutil.AssertEqual(t, "presence recipients", len(presRcpts), 2)

	updates, err = h.handleMove(context.Background(),
		command(protocol.CommandMove, "carol", &protocol.MovePayload{Direction: protocol.DirNorth}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "update count", len(updates), 1)
	testutil.AssertEqual(t, "type", updates[0].Type, protocol.UpdateRoomState)
}

func TestHandleMove_NoExit(t *testing.T) {
	h, world := newTestHandlers(t)

	updates, err := h.handleMove(context.Background(),
		command(protocol.CommandMove, "alice", &protocol.MovePayload{Direction: protocol.DirWest}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertCommandError(t, updates, "alice", protocol.ReasonNoExit)
	testutil.AssertEqual(t, "player room", world.GetPlayer("alice").RoomId, "hall")
}
