package game

import (
	"fmt"
)

// Npc is a static non-player character template. NPCs only appear in
// room snapshots; behavior is out of scope for the simulation core.
type Npc struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (n *Npc) Validate() error {
	if n.Name == "" {
		return fmt.Errorf("npc name is required")
	}
	return nil
}

// NpcInstance is one npc placed in a room at boot.
type NpcInstance struct {
	NpcId string
	npc   *Npc
}

// Npc returns the resolved template.
func (ni *NpcInstance) Npc() *Npc {
	return ni.npc
}
