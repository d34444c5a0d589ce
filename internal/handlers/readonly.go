package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

// The handlers in this file are pure reads: they snapshot state for the
// requesting player only and never mutate anything, so they can never
// fail another player's command.

func (h *Handlers) handleLook(ctx context.Context, cmd *protocol.Command) ([]*protocol.Update, error) {
	payload, ok := cmd.Payload.(*protocol.LookPayload)
	if !ok {
		return nil, fmt.Errorf("unexpected payload type %T", cmd.Payload)
	}

	if payload.Target != "" {
		desc, reason := h.world.Examine(cmd.PlayerId, payload.Target)
		if reason != protocol.ReasonNone {
			return fail(cmd, reason, payload.Target), nil
		}
		return []*protocol.Update{
			protocol.NewUpdate(protocol.UpdateServerMessage, &protocol.ServerMessageData{Text: desc}, cmd.PlayerId),
		}, nil
	}

	ps := h.world.GetPlayer(cmd.PlayerId)
	if ps == nil {
		return fail(cmd, protocol.ReasonInternal, ""), nil
	}

	room, reason := h.world.SnapshotRoom(ps.RoomId, cmd.PlayerId)
	if reason != protocol.ReasonNone {
		return fail(cmd, reason, ""), nil
	}

	return []*protocol.Update{
		protocol.NewUpdate(protocol.UpdateRoomState, room, cmd.PlayerId),
	}, nil
}

func (h *Handlers) handleStats(ctx context.Context, cmd *protocol.Command) ([]*protocol.Update, error) {
	stats, reason := h.world.SnapshotStats(cmd.PlayerId)
	if reason != protocol.ReasonNone {
		return fail(cmd, reason, ""), nil
	}

	return []*protocol.Update{
		protocol.NewUpdate(protocol.UpdatePlayerStats, stats, cmd.PlayerId),
	}, nil
}

func (h *Handlers) handleEquipment(ctx context.Context, cmd *protocol.Command) ([]*protocol.Update, error) {
	eq, reason := h.world.SnapshotEquipment(cmd.PlayerId)
	if reason != protocol.ReasonNone {
		return fail(cmd, reason, ""), nil
	}

	return []*protocol.Update{
		protocol.NewUpdate(protocol.UpdateEquipment, eq, cmd.PlayerId),
	}, nil
}

func (h *Handlers) handleWho(ctx context.Context, cmd *protocol.Command) ([]*protocol.Update, error) {
	names := h.world.Roster()

	text := fmt.Sprintf("%d online: %s", len(names), strings.Join(names, ", "))
	return []*protocol.Update{
		protocol.NewUpdate(protocol.UpdateServerMessage, &protocol.ServerMessageData{Text: text}, cmd.PlayerId),
	}, nil
}
