package game

import (
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

func TestWorldState_Equip(t *testing.T) {
	w := newTestWorld(t)
	ps := addTestPlayer(t, w, "alice", "Alice", "")

	_, reason := w.Take("alice", "sword")
	testutil.AssertEqual(t, "take", reason, protocol.ReasonNone)

	res, reason := w.Equip("alice", "sword")
	testutil.AssertEqual(t, "reason", reason, protocol.ReasonNone)
	testutil.AssertEqual(t, "slot", res.Slot, "weapon")
	testutil.AssertEqual(t, "item", res.ItemName, "Iron Sword")

	testutil.AssertEqual(t, "carried", ps.Inventory.Len(), 0)
	if ps.Equipment.Get("weapon") == nil {
		t.Error("weapon slot empty after equip")
	}
	testutil.AssertEqual(t, "snapshot slot", res.Equipment.Slots["weapon"].ItemId, "sword")
	testutil.AssertEqual(t, "snapshot inventory", len(res.Equipment.Inventory.Items), 0)
}

func TestWorldState_Equip_SwapsOccupiedSlot(t *testing.T) {
	w := newTestWorld(t)
	ps := addTestPlayer(t, w, "alice", "Alice", "")

	items := testItems()
	first := NewItemInstance("sword-1", "sword", items.Get("sword"))
	second := NewItemInstance("sword-2", "sword", items.Get("sword"))
	ps.Inventory.Add(first)
	ps.Inventory.Add(second)

	_, reason := w.Equip("alice", "sword-1")
	testutil.AssertEqual(t, "first equip", reason, protocol.ReasonNone)

	res, reason := w.Equip("alice", "sword-2")
	testutil.AssertEqual(t, "second equip", reason, protocol.ReasonNone)

	// The displaced sword returns to the inventory; nothing duplicated.
	testutil.AssertEqual(t, "equipped", ps.Equipment.Get("weapon").InstanceId, "sword-2")
	testutil.AssertEqual(t, "carried", ps.Inventory.Len(), 1)
	if ps.Inventory.Find("sword-1") == nil {
		t.Error("displaced sword missing from inventory")
	}
	testutil.AssertEqual(t, "snapshot inventory", len(res.Equipment.Inventory.Items), 1)
}

func TestWorldState_Equip_Failures(t *testing.T) {
	tests := map[string]struct {
		ref       string
		expReason protocol.Reason
	}{
		"not held": {
			ref:       "hat",
			expReason: protocol.ReasonItemNotHeld,
		},
		"not equippable": {
			ref:       "potion",
			expReason: protocol.ReasonNotEquippable,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := newTestWorld(t)
			ps := addTestPlayer(t, w, "alice", "Alice", "")

			_, reason := w.Take("alice", "potion")
			testutil.AssertEqual(t, "take", reason, protocol.ReasonNone)

			res, reason := w.Equip("alice", tt.ref)
			testutil.AssertEqual(t, "reason", reason, tt.expReason)
			if res != nil {
				t.Error("expected nil result")
			}
			testutil.AssertEqual(t, "carried", ps.Inventory.Len(), 1)
		})
	}
}

func TestWorldState_Unequip(t *testing.T) {
	tests := map[string]struct {
		slot      string
		fill      int // extra items in the inventory before unequip
		expReason protocol.Reason
	}{
		"occupied slot": {
			slot: "weapon",
		},
		"invalid slot": {
			slot:      "tail",
			expReason: protocol.ReasonSlotInvalid,
		},
		"empty slot": {
			slot:      "head",
			expReason: protocol.ReasonSlotEmpty,
		},
		"inventory full": {
			slot:      "weapon",
			fill:      2,
			expReason: protocol.ReasonCapacityExceeded,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := newTestWorld(t)
			ps := addTestPlayer(t, w, "alice", "Alice", "")

			items := testItems()
			ps.Inventory.Add(NewItemInstance("sword-1", "sword", items.Get("sword")))
			_, reason := w.Equip("alice", "sword-1")
			testutil.AssertEqual(t, "equip", reason, protocol.ReasonNone)

			for i := 0; i < tt.fill; i++ {
				ps.Inventory.Add(NewItemInstance(string(rune('a'+i)), "hat", items.Get("hat")))
			}

			res, reason := w.Unequip("alice", tt.slot)

			testutil.AssertEqual(t, "reason", reason, tt.expReason)
			if tt.expReason != protocol.ReasonNone {
				// The slot keeps its item on failure.
				if ps.Equipment.Get("weapon") == nil {
					t.Error("weapon slot emptied by failed unequip")
				}
				return
			}

			if ps.Equipment.Get("weapon") != nil {
				t.Error("weapon slot still occupied after unequip")
			}
			if ps.Inventory.Find("sword-1") == nil {
				t.Error("sword missing from inventory after unequip")
			}
			testutil.AssertEqual(t, "slot", res.Slot, "weapon")
		})
	}
}
