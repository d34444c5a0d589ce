package protocol

import (
	stderrors "errors"
	"fmt"

	"github.com/pixil98/go-errors"
)

// ErrUnknownCommand marks a frame whose type tag is not a recognized
// command kind, so the transport can report unknown_command instead of
// a generic payload failure.
var ErrUnknownCommand = stderrors.New("unknown command type")

// CommandType identifies the kind of instruction a player submitted.
// Types are carried on the wire as string tags.
type CommandType string

const (
	CommandAuth      CommandType = "auth"
	CommandMove      CommandType = "move"
	CommandLook      CommandType = "look"
	CommandTake      CommandType = "take"
	CommandDrop      CommandType = "drop"
	CommandUse       CommandType = "use"
	CommandEquip     CommandType = "equip"
	CommandUnequip   CommandType = "unequip"
	CommandSay       CommandType = "say"
	CommandTell      CommandType = "tell"
	CommandEmote     CommandType = "emote"
	CommandStats     CommandType = "stats"
	CommandEquipment CommandType = "equipment"
	CommandWho       CommandType = "who"
)

func (ct *CommandType) UnmarshalText(text []byte) error {
	switch CommandType(text) {
	case CommandAuth, CommandMove, CommandLook, CommandTake, CommandDrop,
		CommandUse, CommandEquip, CommandUnequip, CommandSay, CommandTell,
		CommandEmote, CommandStats, CommandEquipment, CommandWho:
		*ct = CommandType(text)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, text)
	}
}

// Direction is a movement direction between rooms.
type Direction string

const (
	DirNorth Direction = "north"
	DirSouth Direction = "south"
	DirEast  Direction = "east"
	DirWest  Direction = "west"
	DirUp    Direction = "up"
	DirDown  Direction = "down"
)

func (d *Direction) UnmarshalText(text []byte) error {
	switch Direction(text) {
	case DirNorth, DirSouth, DirEast, DirWest, DirUp, DirDown:
		*d = Direction(text)
		return nil
	default:
		return fmt.Errorf("unknown direction: %s", text)
	}
}

// Payload is a type-specific command payload. Validate is called at the
// transport boundary, before the command may be queued.
type Payload interface {
	Validate() error
}

// Command is one validated player instruction, consumed by exactly one
// tick and never mutated after construction.
type Command struct {
	Type      CommandType
	PlayerId  string
	CommandId string
	Payload   Payload
}

type AuthPayload struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (p *AuthPayload) Validate() error {
	el := errors.NewErrorList()
	if p.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if p.Password == "" {
		el.Add(fmt.Errorf("password is required"))
	}
	return el.Err()
}

type MovePayload struct {
	Direction Direction `json:"direction"`
}

func (p *MovePayload) Validate() error {
	if p.Direction == "" {
		return fmt.Errorf("direction is required")
	}
	return nil
}

// LookPayload optionally names a target in the room to examine. An
// empty target means the room itself.
type LookPayload struct {
	Target string `json:"target,omitempty"`
}

func (p *LookPayload) Validate() error {
	return nil
}

type TakePayload struct {
	ItemId string `json:"item_id"`
}

func (p *TakePayload) Validate() error {
	if p.ItemId == "" {
		return fmt.Errorf("item_id is required")
	}
	return nil
}

type DropPayload struct {
	ItemId string `json:"item_id"`
}

func (p *DropPayload) Validate() error {
	if p.ItemId == "" {
		return fmt.Errorf("item_id is required")
	}
	return nil
}

type UsePayload struct {
	ItemId string `json:"item_id"`
}

func (p *UsePayload) Validate() error {
	if p.ItemId == "" {
		return fmt.Errorf("item_id is required")
	}
	return nil
}

type EquipPayload struct {
	ItemId string `json:"item_id"`
}

func (p *EquipPayload) Validate() error {
	if p.ItemId == "" {
		return fmt.Errorf("item_id is required")
	}
	return nil
}

type UnequipPayload struct {
	Slot string `json:"slot"`
}

func (p *UnequipPayload) Validate() error {
	if p.Slot == "" {
		return fmt.Errorf("slot is required")
	}
	return nil
}

const maxMessageLength = 512

type SayPayload struct {
	Message string `json:"message"`
}

func (p *SayPayload) Validate() error {
	return validateMessage(p.Message)
}

type TellPayload struct {
	Target  string `json:"target"`
	Message string `json:"message"`
}

func (p *TellPayload) Validate() error {
	el := errors.NewErrorList()
	if p.Target == "" {
		el.Add(fmt.Errorf("target is required"))
	}
	el.Add(validateMessage(p.Message))
	return el.Err()
}

type EmotePayload struct {
	Action string `json:"action"`
}

func (p *EmotePayload) Validate() error {
	return validateMessage(p.Action)
}

// EmptyPayload is used by commands that carry no arguments (stats,
// equipment, who).
type EmptyPayload struct{}

func (p *EmptyPayload) Validate() error {
	return nil
}

func validateMessage(msg string) error {
	if msg == "" {
		return fmt.Errorf("message is required")
	}
	if len(msg) > maxMessageLength {
		return fmt.Errorf("message exceeds %d characters", maxMessageLength)
	}
	return nil
}
