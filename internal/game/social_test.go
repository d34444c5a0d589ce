package game

import (
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

func TestWorldState_Occupants(t *testing.T) {
	w := newTestWorld(t)
	addTestPlayer(t, w, "alice", "Alice", "")
	addTestPlayer(t, w, "bob", "Bob", "")
	addTestPlayer(t, w, "carol", "Carol", "yard")

	occupants, reason := w.Occupants("alice")
	testutil.AssertEqual(t, "reason", reason, protocol.ReasonNone)

	// Speaker included, sorted by player id, other rooms excluded.
	testutil.AssertEqual(t, "count", len(occupants), 2)
	testutil.AssertEqual(t, "first", occupants[0].PlayerId, "alice")
	testutil.AssertEqual(t, "second", occupants[1].PlayerId, "bob")
}

func TestWorldState_FindPlayerByName(t *testing.T) {
	w := newTestWorld(t)
	addTestPlayer(t, w, "alice", "Alice", "")

	tests := map[string]struct {
		name     string
		expFound bool
	}{
		"exact":            {name: "Alice", expFound: true},
		"case insensitive": {name: "aLiCe", expFound: true},
		"unknown":          {name: "Zed", expFound: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			occ, found := w.FindPlayerByName(tt.name)
			testutil.AssertEqual(t, "found", found, tt.expFound)
			if tt.expFound {
				testutil.AssertEqual(t, "player id", occ.PlayerId, "alice")
			}
		})
	}
}

func TestWorldState_Roster(t *testing.T) {
	w := newTestWorld(t)
	addTestPlayer(t, w, "carol", "Carol", "yard")
	addTestPlayer(t, w, "alice", "Alice", "")
	addTestPlayer(t, w, "bob", "Bob", "")

	roster := w.Roster()
	testutil.AssertEqual(t, "count", len(roster), 3)
	testutil.AssertEqual(t, "first", roster[0], "Alice")
	testutil.AssertEqual(t, "second", roster[1], "Bob")
	testutil.AssertEqual(t, "third", roster[2], "Carol")
}

func TestWorldState_Examine(t *testing.T) {
	tests := map[string]struct {
		target      string
		expReason   protocol.Reason
		expContains string
	}{
		"room item by name prefix": {
			target:      "stone",
			expContains: "Far too heavy.",
		},
		"room item by id": {
			target:      "statue",
			expContains: "Far too heavy.",
		},
		"inventory item": {
			target:      "iron",
			expContains: "A plain iron sword.",
		},
		"npc": {
			target:      "gate",
			expContains: "Bored but watchful.",
		},
		"other player": {
			target:      "bob",
			expContains: "Bob is here.",
		},
		"nothing matches": {
			target:    "dragon",
			expReason: protocol.ReasonTargetNotFound,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := newTestWorld(t)
			addTestPlayer(t, w, "alice", "Alice", "")
			addTestPlayer(t, w, "bob", "Bob", "")

			_, reason := w.Take("alice", "sword")
			testutil.AssertEqual(t, "take", reason, protocol.ReasonNone)

			desc, reason := w.Examine("alice", tt.target)

			testutil.AssertEqual(t, "reason", reason, tt.expReason)
			if tt.expReason != protocol.ReasonNone {
				return
			}
			testutil.AssertEqual(t, "description", desc, tt.expContains)
		})
	}
}
