package game

import (
	"strings"

	"github.com/RednibCoding/mudden-sub004/internal/display"
	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

// Examine describes a named thing the player can see: an item on the
// floor or in their inventory, an npc, or another player in the room.
// Matching is by name prefix, case-insensitive, then by item id.
func (w *WorldState) Examine(playerId, target string) (string, protocol.Reason) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	ps, ok := w.players[playerId]
	if !ok {
		return "", protocol.ReasonInternal
	}
	room, ok := w.rooms[ps.RoomId]
	if !ok {
		return "", protocol.ReasonInternal
	}

	lower := strings.ToLower(target)

	var found *Item
	ps.Inventory.Each(func(ii *ItemInstance) {
		if found == nil && matchesItem(ii, lower) {
			found = ii.Item()
		}
	})
	if found == nil {
		for _, ii := range room.items {
			if matchesItem(ii, lower) {
				found = ii.Item()
				break
			}
		}
	}
	if found != nil {
		return display.Wrap(found.Description), protocol.ReasonNone
	}

	for _, ni := range room.npcs {
		if strings.HasPrefix(strings.ToLower(ni.Npc().Name), lower) {
			return display.Wrap(ni.Npc().Description), protocol.ReasonNone
		}
	}

	for id, other := range room.players {
		if id == playerId {
			continue
		}
		if strings.HasPrefix(strings.ToLower(other.Name), lower) {
			return other.Name + " is here.", protocol.ReasonNone
		}
	}

	return "", protocol.ReasonTargetNotFound
}

func matchesItem(ii *ItemInstance, lower string) bool {
	return ii.ItemId == lower || strings.HasPrefix(strings.ToLower(ii.Item().Name), lower)
}
