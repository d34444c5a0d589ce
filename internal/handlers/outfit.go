package handlers

import (
	"context"
	"fmt"

	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

// handleEquip moves a held item into its slot, swapping out whatever
// was there. Exactly one equipment update is emitted, to the actor.
func (h *Handlers) handleEquip(ctx context.Context, cmd *protocol.Command) ([]*protocol.Update, error) {
	payload, ok := cmd.Payload.(*protocol.EquipPayload)
	if !ok {
		return nil, fmt.Errorf("unexpected payload type %T", cmd.Payload)
	}

	res, reason := h.world.Equip(cmd.PlayerId, payload.ItemId)
	if reason != protocol.ReasonNone {
		return fail(cmd, reason, payload.ItemId), nil
	}

	return []*protocol.Update{
		protocol.NewUpdate(protocol.UpdateEquipment, res.Equipment, cmd.PlayerId),
	}, nil
}

// handleUnequip empties a slot back into the inventory.
func (h *Handlers) handleUnequip(ctx context.Context, cmd *protocol.Command) ([]*protocol.Update, error) {
	payload, ok := cmd.Payload.(*protocol.UnequipPayload)
	if !ok {
		return nil, fmt.Errorf("unexpected payload type %T", cmd.Payload)
	}

	res, reason := h.world.Unequip(cmd.PlayerId, payload.Slot)
	if reason != protocol.ReasonNone {
		return fail(cmd, reason, payload.Slot), nil
	}

	return []*protocol.Update{
		protocol.NewUpdate(protocol.UpdateEquipment, res.Equipment, cmd.PlayerId),
	}, nil
}
