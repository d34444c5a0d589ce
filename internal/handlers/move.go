package handlers

import (
	"context"
	"fmt"

	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

// handleMove walks the player through an exit. The mover gets the new
// room's state; players already in the destination get a presence
// notice. Occupants of the room left behind get nothing from this
// command - they observe the departure through their own next read.
func (h *Handlers) handleMove(ctx context.Context, cmd *protocol.Command) ([]*protocol.Update, error) {
	payload, ok := cmd.Payload.(*protocol.MovePayload)
	if !ok {
		return nil, fmt.Errorf("unexpected payload type %T", cmd.Payload)
	}

	res, reason := h.world.Move(cmd.PlayerId, payload.Direction)
	if reason != protocol.ReasonNone {
		return fail(cmd, reason, string(payload.Direction)), nil
	}

	updates := []*protocol.Update{
		protocol.NewUpdate(protocol.UpdateRoomState, res.Room, cmd.PlayerId),
	}

	if len(res.ToOthers) > 0 {
		updates = append(updates, protocol.NewUpdate(protocol.UpdatePresence, &protocol.PresenceData{
			PlayerName: res.PlayerName,
			RoomId:     res.ToRoom,
			Entered:    true,
		}, res.ToOthers...))
	}

	return updates, nil
}
