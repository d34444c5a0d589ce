package handlers

import (
	"context"
	"fmt"

	"github.com/RednibCoding/mudden-sub004/internal/game"
	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

// handleTake moves an item from the room floor into the actor's
// inventory. The actor gets the inventory change; other occupants get a
// refreshed room view since the floor changed under them.
func (h *Handlers) handleTake(ctx context.Context, cmd *protocol.Command) ([]*protocol.Update, error) {
	payload, ok := cmd.Payload.(*protocol.TakePayload)
	if !ok {
		return nil, fmt.Errorf("unexpected payload type %T", cmd.Payload)
	}

	res, reason := h.world.Take(cmd.PlayerId, payload.ItemId)
	if reason != protocol.ReasonNone {
		return fail(cmd, reason, payload.ItemId), nil
	}

	return h.carryUpdates(cmd, res)
}

// handleDrop moves a held item onto the room floor.
func (h *Handlers) handleDrop(ctx context.Context, cmd *protocol.Command) ([]*protocol.Update, error) {
	payload, ok := cmd.Payload.(*protocol.DropPayload)
	if !ok {
		return nil, fmt.Errorf("unexpected payload type %T", cmd.Payload)
	}

	res, reason := h.world.Drop(cmd.PlayerId, payload.ItemId)
	if reason != protocol.ReasonNone {
		return fail(cmd, reason, payload.ItemId), nil
	}

	return h.carryUpdates(cmd, res)
}

// handleUse consumes a held item. Only the actor is affected: they get
// the inventory change and their new stats.
func (h *Handlers) handleUse(ctx context.Context, cmd *protocol.Command) ([]*protocol.Update, error) {
	payload, ok := cmd.Payload.(*protocol.UsePayload)
	if !ok {
		return nil, fmt.Errorf("unexpected payload type %T", cmd.Payload)
	}

	res, reason := h.world.Use(cmd.PlayerId, payload.ItemId)
	if reason != protocol.ReasonNone {
		return fail(cmd, reason, payload.ItemId), nil
	}

	updates := []*protocol.Update{
		protocol.NewUpdate(protocol.UpdateInventory, &res.Inventory, cmd.PlayerId),
	}
	if res.Stats != nil {
		updates = append(updates, protocol.NewUpdate(protocol.UpdatePlayerStats, res.Stats, cmd.PlayerId))
	}
	return updates, nil
}

func (h *Handlers) carryUpdates(cmd *protocol.Command, res *game.CarryResult) ([]*protocol.Update, error) {
	updates := []*protocol.Update{
		protocol.NewUpdate(protocol.UpdateInventory, &res.Inventory, cmd.PlayerId),
	}

	// Room snapshots are viewer-specific (the viewer is excluded from
	// the player list), so each bystander gets their own.
	for _, other := range res.Others {
		room, reason := h.world.SnapshotRoom(res.RoomId, other)
		if reason != protocol.ReasonNone {
			return nil, fmt.Errorf("snapshotting room %s: %s", res.RoomId, reason)
		}
		updates = append(updates, protocol.NewUpdate(protocol.UpdateRoomState, room, other))
	}

	return updates, nil
}
