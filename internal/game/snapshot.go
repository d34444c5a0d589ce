package game

import (
	"sort"

	"github.com/RednibCoding/mudden-sub004/internal/display"
	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

// SnapshotRoom builds the room view for one player. The viewer is
// excluded from the player list; everything else is shared.
func (w *WorldState) SnapshotRoom(roomId, viewerId string) (*protocol.RoomStateData, protocol.Reason) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	ri, ok := w.rooms[roomId]
	if !ok {
		return nil, protocol.ReasonInternal
	}
	return w.snapshotRoom(ri, viewerId), protocol.ReasonNone
}

func (w *WorldState) snapshotRoom(ri *RoomInstance, viewerId string) *protocol.RoomStateData {
	data := &protocol.RoomStateData{
		RoomId:      ri.id,
		Name:        ri.def.Name,
		Description: display.Wrap(ri.def.Description),
		Exits:       make([]protocol.ExitRef, 0, len(ri.def.Exits)),
		Items:       make([]protocol.ItemRef, 0, len(ri.items)),
		Players:     []string{},
		Npcs:        []string{},
	}

	for dir, dest := range ri.def.Exits {
		data.Exits = append(data.Exits, protocol.ExitRef{Direction: dir, RoomId: dest})
	}
	sort.Slice(data.Exits, func(i, j int) bool {
		return data.Exits[i].Direction < data.Exits[j].Direction
	})

	for _, ii := range ri.items {
		data.Items = append(data.Items, itemRef(ii))
	}
	sort.Slice(data.Items, func(i, j int) bool {
		return data.Items[i].InstanceId < data.Items[j].InstanceId
	})

	for id, ps := range ri.players {
		if id == viewerId {
			continue
		}
		data.Players = append(data.Players, ps.Name)
	}
	sort.Strings(data.Players)

	for _, ni := range ri.npcs {
		data.Npcs = append(data.Npcs, ni.Npc().Name)
	}
	sort.Strings(data.Npcs)

	return data
}

// SnapshotInventory builds the inventory view for a player.
func (w *WorldState) SnapshotInventory(playerId string) (*protocol.InventoryData, protocol.Reason) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	ps, ok := w.players[playerId]
	if !ok {
		return nil, protocol.ReasonInternal
	}
	inv := w.snapshotInventory(ps)
	return &inv, protocol.ReasonNone
}

func (w *WorldState) snapshotInventory(ps *PlayerState) protocol.InventoryData {
	data := protocol.InventoryData{
		Items:    make([]protocol.ItemRef, 0, ps.Inventory.Len()),
		Capacity: ps.Inventory.Capacity(),
	}
	ps.Inventory.Each(func(ii *ItemInstance) {
		data.Items = append(data.Items, itemRef(ii))
	})
	return data
}

// SnapshotEquipment builds the combined equipment and inventory view,
// so slot swaps arrive as one consistent picture.
func (w *WorldState) SnapshotEquipment(playerId string) (*protocol.EquipmentData, protocol.Reason) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	ps, ok := w.players[playerId]
	if !ok {
		return nil, protocol.ReasonInternal
	}
	data := w.snapshotEquipment(ps)
	return data, protocol.ReasonNone
}

func (w *WorldState) snapshotEquipment(ps *PlayerState) *protocol.EquipmentData {
	data := &protocol.EquipmentData{
		Slots:     make(map[string]protocol.ItemRef),
		Inventory: w.snapshotInventory(ps),
	}
	ps.Equipment.Each(func(slot string, ii *ItemInstance) {
		data.Slots[slot] = itemRef(ii)
	})
	return data
}

// SnapshotStats builds the character-sheet view for a player.
func (w *WorldState) SnapshotStats(playerId string) (*protocol.PlayerStatsData, protocol.Reason) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	ps, ok := w.players[playerId]
	if !ok {
		return nil, protocol.ReasonInternal
	}
	return &protocol.PlayerStatsData{
		Name:      ps.Name,
		Level:     ps.Stats.Level,
		Health:    ps.Stats.Health,
		MaxHealth: ps.Stats.MaxHealth,
		Strength:  ps.Stats.Strength,
		Defense:   ps.Stats.Defense,
	}, protocol.ReasonNone
}

func itemRef(ii *ItemInstance) protocol.ItemRef {
	return protocol.ItemRef{
		InstanceId: ii.InstanceId,
		ItemId:     ii.ItemId,
		Name:       ii.Item().Name,
	}
}
