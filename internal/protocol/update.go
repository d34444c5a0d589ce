package protocol

import (
	"time"
)

// UpdateType identifies the kind of state change an update reports.
type UpdateType string

const (
	UpdateRoomState     UpdateType = "room_state"
	UpdateInventory     UpdateType = "inventory"
	UpdateEquipment     UpdateType = "equipment"
	UpdateSocialMessage UpdateType = "social_message"
	UpdatePlayerStats   UpdateType = "player_stats"
	UpdatePresence      UpdateType = "presence"
	UpdateCommandError  UpdateType = "command_error"
	UpdateServerMessage UpdateType = "server_message"
)

// Reason is a stable machine-readable code explaining a command failure.
// Clients correlate it with the echoed command id; human wording is a
// client concern.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonNoExit           Reason = "no_exit"
	ReasonItemNotFound     Reason = "item_not_found"
	ReasonItemNotTakable   Reason = "item_not_takable"
	ReasonCapacityExceeded Reason = "capacity_exceeded"
	ReasonNotEquippable    Reason = "not_equippable"
	ReasonItemNotHeld      Reason = "item_not_held"
	ReasonItemNotUsable    Reason = "item_not_usable"
	ReasonSlotInvalid      Reason = "slot_invalid"
	ReasonSlotEmpty        Reason = "slot_empty"
	ReasonTargetNotFound   Reason = "target_not_found"
	ReasonInvalidPayload   Reason = "invalid_payload"
	ReasonUnknownCommand   Reason = "unknown_command"
	ReasonNotAuthenticated Reason = "not_authenticated"
	ReasonAuthFailed       Reason = "auth_failed"
	ReasonInternal         Reason = "internal_error"
)

// Update is one server-produced fact about a state change, addressed to
// the players it affects and nobody else.
type Update struct {
	Type            UpdateType
	AffectedPlayers []string
	Data            any
	Timestamp       time.Time
}

// NewUpdate builds an update addressed to the given players.
func NewUpdate(t UpdateType, data any, players ...string) *Update {
	return &Update{
		Type:            t,
		AffectedPlayers: players,
		Data:            data,
		Timestamp:       time.Now(),
	}
}

// CommandErrorData is the payload of a command_error update.
type CommandErrorData struct {
	Reason    Reason `json:"reason"`
	CommandId string `json:"command_id,omitempty"`
	Target    string `json:"target,omitempty"`
}

// NewCommandError builds the error update for a single failed command,
// addressed only to its issuer.
func NewCommandError(playerId, commandId string, reason Reason, target string) *Update {
	return NewUpdate(UpdateCommandError, &CommandErrorData{
		Reason:    reason,
		CommandId: commandId,
		Target:    target,
	}, playerId)
}

// ExitRef describes one exit of a room.
type ExitRef struct {
	Direction Direction `json:"direction"`
	RoomId    string    `json:"room_id"`
}

// ItemRef names one item instance visible in a room or inventory.
type ItemRef struct {
	InstanceId string `json:"instance_id"`
	ItemId     string `json:"item_id"`
	Name       string `json:"name"`
}

// RoomStateData is a snapshot of a room as one player sees it.
type RoomStateData struct {
	RoomId      string    `json:"room_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Exits       []ExitRef `json:"exits"`
	Items       []ItemRef `json:"items"`
	Players     []string  `json:"players"`
	Npcs        []string  `json:"npcs"`
}

// InventoryData is a snapshot of a player's carried items.
type InventoryData struct {
	Items    []ItemRef `json:"items"`
	Capacity int       `json:"capacity"`
}

// EquipmentData is a snapshot of a player's equipped items plus the
// resulting inventory, so a slot swap arrives as one consistent view.
type EquipmentData struct {
	Slots     map[string]ItemRef `json:"slots"`
	Inventory InventoryData      `json:"inventory"`
}

// SocialMessageData carries one rendered chat line for one recipient.
type SocialMessageData struct {
	Channel string `json:"channel"` // say, tell, emote
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// PlayerStatsData is a snapshot of a player's character sheet.
type PlayerStatsData struct {
	Name      string `json:"name"`
	Level     int    `json:"level"`
	Health    int    `json:"health"`
	MaxHealth int    `json:"max_health"`
	Strength  int    `json:"strength"`
	Defense   int    `json:"defense"`
}

// PresenceData reports a player entering or leaving a room.
type PresenceData struct {
	PlayerName string `json:"player_name"`
	RoomId     string `json:"room_id"`
	Entered    bool   `json:"entered"`
}

// ServerMessageData carries free-form server text (who listings, notices).
type ServerMessageData struct {
	Text string `json:"text"`
}
