package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Stats is a player's character sheet.
type Stats struct {
	Level     int `json:"level"`
	Health    int `json:"health"`
	MaxHealth int `json:"max_health"`
	Strength  int `json:"strength"`
	Defense   int `json:"defense"`
}

// Character is the persisted record for a player, saved back to the
// character store when the session ends.
type Character struct {
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash"`
	RoomId       string `json:"room_id,omitempty"`
	Stats        Stats  `json:"stats"`
}

func (c *Character) Validate() error {
	el := errors.NewErrorList()

	if c.Name == "" {
		el.Add(fmt.Errorf("character name is required"))
	}
	if c.PasswordHash == "" {
		el.Add(fmt.Errorf("password hash is required"))
	}

	return el.Err()
}

// DefaultStats is the sheet assigned to newly created characters.
func DefaultStats() Stats {
	return Stats{
		Level:     1,
		Health:    20,
		MaxHealth: 20,
		Strength:  5,
		Defense:   5,
	}
}
