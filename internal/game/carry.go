package game

import (
	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

// CarryResult reports a completed take, drop, or use: the actor's new
// inventory, the room it happened in, and the other occupants whose
// view of the floor changed.
type CarryResult struct {
	PlayerName string
	ItemName   string
	RoomId     string
	Inventory  protocol.InventoryData
	Stats      *protocol.PlayerStatsData // set by Use only
	Others     []string                  // other player ids in the room
}

// Take moves an item from the room floor into the player's inventory.
// The reference may be an instance id or an item template id.
func (w *WorldState) Take(playerId, ref string) (*CarryResult, protocol.Reason) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ps, room, reason := w.playerRoom(playerId)
	if reason != protocol.ReasonNone {
		return nil, reason
	}

	ii := findRoomItem(room, ref)
	if ii == nil {
		return nil, protocol.ReasonItemNotFound
	}
	if !ii.Item().Takable {
		return nil, protocol.ReasonItemNotTakable
	}
	if ps.Inventory.Full() {
		return nil, protocol.ReasonCapacityExceeded
	}

	delete(room.items, ii.InstanceId)
	ps.Inventory.Add(ii)

	return w.carryResult(ps, room, ii, nil), protocol.ReasonNone
}

// Drop moves a held item onto the room floor.
func (w *WorldState) Drop(playerId, ref string) (*CarryResult, protocol.Reason) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ps, room, reason := w.playerRoom(playerId)
	if reason != protocol.ReasonNone {
		return nil, reason
	}

	ii := ps.Inventory.Find(ref)
	if ii == nil {
		return nil, protocol.ReasonItemNotFound
	}

	ps.Inventory.Remove(ii.InstanceId)
	room.items[ii.InstanceId] = ii

	return w.carryResult(ps, room, ii, nil), protocol.ReasonNone
}

// Use consumes a held consumable, applying its effect to the player's
// stats. The item is destroyed on success.
func (w *WorldState) Use(playerId, ref string) (*CarryResult, protocol.Reason) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ps, room, reason := w.playerRoom(playerId)
	if reason != protocol.ReasonNone {
		return nil, reason
	}

	ii := ps.Inventory.Find(ref)
	if ii == nil {
		return nil, protocol.ReasonItemNotFound
	}
	if !ii.Item().Consumable {
		return nil, protocol.ReasonItemNotUsable
	}

	ps.Inventory.Remove(ii.InstanceId)
	ps.Stats.Health += ii.Item().Heal
	if ps.Stats.Health > ps.Stats.MaxHealth {
		ps.Stats.Health = ps.Stats.MaxHealth
	}

	stats := &protocol.PlayerStatsData{
		Name:      ps.Name,
		Level:     ps.Stats.Level,
		Health:    ps.Stats.Health,
		MaxHealth: ps.Stats.MaxHealth,
		Strength:  ps.Stats.Strength,
		Defense:   ps.Stats.Defense,
	}
	return w.carryResult(ps, room, ii, stats), protocol.ReasonNone
}

func (w *WorldState) playerRoom(playerId string) (*PlayerState, *RoomInstance, protocol.Reason) {
	ps, ok := w.players[playerId]
	if !ok {
		return nil, nil, protocol.ReasonInternal
	}
	room, ok := w.rooms[ps.RoomId]
	if !ok {
		return nil, nil, protocol.ReasonInternal
	}
	return ps, room, protocol.ReasonNone
}

func (w *WorldState) carryResult(ps *PlayerState, room *RoomInstance, ii *ItemInstance, stats *protocol.PlayerStatsData) *CarryResult {
	others := make([]string, 0, len(room.players))
	for id := range room.players {
		if id != ps.PlayerId {
			others = append(others, id)
		}
	}
	return &CarryResult{
		PlayerName: ps.Name,
		ItemName:   ii.Item().Name,
		RoomId:     room.id,
		Inventory:  w.snapshotInventory(ps),
		Stats:      stats,
		Others:     others,
	}
}

func findRoomItem(room *RoomInstance, ref string) *ItemInstance {
	if ii, ok := room.items[ref]; ok {
		return ii
	}
	for _, ii := range room.items {
		if ii.ItemId == ref {
			return ii
		}
	}
	return nil
}
