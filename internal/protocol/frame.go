package protocol

import (
	"encoding/json"
	"fmt"
)

// Frame is the inbound wire envelope: a string type tag, an opaque
// payload, and an optional client correlation token.
type Frame struct {
	Type      CommandType     `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CommandId string          `json:"command_id,omitempty"`
}

// DecodeFrame parses one raw inbound message. It only checks the
// envelope shape; payload validation happens in ParseCommand.
func DecodeFrame(data []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding frame: %w", err)
	}
	if f.Type == "" {
		return nil, fmt.Errorf("frame type is required")
	}
	return &f, nil
}

// ParseCommand turns a decoded frame into a validated Command bound to
// the submitting player. It fails if the payload does not unmarshal
// into the type-specific struct or does not pass structural validation;
// such commands are rejected before queuing.
func ParseCommand(playerId string, f *Frame) (*Command, error) {
	payload, err := newPayload(f.Type)
	if err != nil {
		return nil, err
	}

	if len(f.Payload) > 0 {
		if err := json.Unmarshal(f.Payload, payload); err != nil {
			return nil, fmt.Errorf("decoding %s payload: %w", f.Type, err)
		}
	}

	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s payload: %w", f.Type, err)
	}

	return &Command{
		Type:      f.Type,
		PlayerId:  playerId,
		CommandId: f.CommandId,
		Payload:   payload,
	}, nil
}

func newPayload(t CommandType) (Payload, error) {
	switch t {
	case CommandAuth:
		return &AuthPayload{}, nil
	case CommandMove:
		return &MovePayload{}, nil
	case CommandLook:
		return &LookPayload{}, nil
	case CommandTake:
		return &TakePayload{}, nil
	case CommandDrop:
		return &DropPayload{}, nil
	case CommandUse:
		return &UsePayload{}, nil
	case CommandEquip:
		return &EquipPayload{}, nil
	case CommandUnequip:
		return &UnequipPayload{}, nil
	case CommandSay:
		return &SayPayload{}, nil
	case CommandTell:
		return &TellPayload{}, nil
	case CommandEmote:
		return &EmotePayload{}, nil
	case CommandStats, CommandEquipment, CommandWho:
		return &EmptyPayload{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, t)
	}
}

// OutboundUpdate is one update as it appears inside an outbound frame.
type OutboundUpdate struct {
	Type UpdateType `json:"type"`
	Data any        `json:"data"`
}

// OutboundFrame is the per-player wire envelope: one tick's worth of
// updates addressed to that player, delivered as a single batch.
type OutboundFrame struct {
	Updates []OutboundUpdate `json:"updates"`
}

// EncodeOutbound marshals a batch of updates into one outbound frame.
func EncodeOutbound(updates []*Update) ([]byte, error) {
	frame := OutboundFrame{Updates: make([]OutboundUpdate, 0, len(updates))}
	for _, u := range updates {
		frame.Updates = append(frame.Updates, OutboundUpdate{
			Type: u.Type,
			Data: u.Data,
		})
	}
	return json.Marshal(&frame)
}

// EncodeError marshals a single command_error into an outbound frame,
// used for submission-time rejections that bypass the tick entirely.
func EncodeError(commandId string, reason Reason) ([]byte, error) {
	return EncodeOutbound([]*Update{
		NewUpdate(UpdateCommandError, &CommandErrorData{
			Reason:    reason,
			CommandId: commandId,
		}),
	})
}
