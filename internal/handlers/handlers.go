// Package handlers implements one handler per command kind. Handlers
// call into world-state services, translate reason codes into
// command_error updates, and address every update only to the players
// the action actually affected.
package handlers

import (
	"fmt"

	"github.com/RednibCoding/mudden-sub004/internal/engine"
	"github.com/RednibCoding/mudden-sub004/internal/game"
	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

type Handlers struct {
	world  *game.WorldState
	social *socialRenderer
}

func New(world *game.WorldState) (*Handlers, error) {
	social, err := newSocialRenderer()
	if err != nil {
		return nil, fmt.Errorf("building social renderer: %w", err)
	}

	return &Handlers{
		world:  world,
		social: social,
	}, nil
}

// RegisterAll binds every handler to its command type on the processor.
func (h *Handlers) RegisterAll(p *engine.Processor) error {
	bindings := map[protocol.CommandType]engine.HandlerFunc{
		protocol.CommandMove:      h.handleMove,
		protocol.CommandLook:      h.handleLook,
		protocol.CommandTake:      h.handleTake,
		protocol.CommandDrop:      h.handleDrop,
		protocol.CommandUse:       h.handleUse,
		protocol.CommandEquip:     h.handleEquip,
		protocol.CommandUnequip:   h.handleUnequip,
		protocol.CommandSay:       h.handleSay,
		protocol.CommandTell:      h.handleTell,
		protocol.CommandEmote:     h.handleEmote,
		protocol.CommandStats:     h.handleStats,
		protocol.CommandEquipment: h.handleEquipment,
		protocol.CommandWho:       h.handleWho,
	}

	for t, fn := range bindings {
		if err := p.Register(t, fn); err != nil {
			return fmt.Errorf("registering %s: %w", t, err)
		}
	}
	return nil
}

// fail builds the single command_error update for a domain failure.
func fail(cmd *protocol.Command, reason protocol.Reason, target string) []*protocol.Update {
	return []*protocol.Update{
		protocol.NewCommandError(cmd.PlayerId, cmd.CommandId, reason, target),
	}
}
