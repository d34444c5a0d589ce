package game

import (
	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

// OutfitResult reports a completed equip or unequip with the player's
// resulting equipment and inventory as one consistent snapshot.
type OutfitResult struct {
	PlayerName string
	ItemName   string
	Slot       string
	Equipment  *protocol.EquipmentData
}

// Equip moves a held item into its declared slot. An item already in
// that slot is swapped back into the inventory in the same operation,
// so no item is ever duplicated or lost.
func (w *WorldState) Equip(playerId, ref string) (*OutfitResult, protocol.Reason) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ps, ok := w.players[playerId]
	if !ok {
		return nil, protocol.ReasonInternal
	}

	ii := ps.Inventory.Find(ref)
	if ii == nil {
		return nil, protocol.ReasonItemNotHeld
	}
	if !ii.Item().Equippable() {
		return nil, protocol.ReasonNotEquippable
	}

	slot := ii.Item().Slot
	ps.Inventory.Remove(ii.InstanceId)
	if displaced := ps.Equipment.Swap(slot, ii); displaced != nil {
		ps.Inventory.Add(displaced)
	}

	return &OutfitResult{
		PlayerName: ps.Name,
		ItemName:   ii.Item().Name,
		Slot:       slot,
		Equipment:  w.snapshotEquipment(ps),
	}, protocol.ReasonNone
}

// Unequip moves the item in a slot back into the inventory.
func (w *WorldState) Unequip(playerId, slot string) (*OutfitResult, protocol.Reason) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ps, ok := w.players[playerId]
	if !ok {
		return nil, protocol.ReasonInternal
	}

	if !EquipSlots[slot] {
		return nil, protocol.ReasonSlotInvalid
	}
	ii := ps.Equipment.Get(slot)
	if ii == nil {
		return nil, protocol.ReasonSlotEmpty
	}
	if ps.Inventory.Full() {
		return nil, protocol.ReasonCapacityExceeded
	}

	ps.Equipment.Clear(slot)
	ps.Inventory.Add(ii)

	return &OutfitResult{
		PlayerName: ps.Name,
		ItemName:   ii.Item().Name,
		Slot:       slot,
		Equipment:  w.snapshotEquipment(ps),
	}, protocol.ReasonNone
}
