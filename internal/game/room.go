package game

import (
	"fmt"

	"github.com/pixil98/go-errors"

	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

// Room is a static room template loaded from the asset store.
type Room struct {
	Name        string                        `json:"name"`
	Description string                        `json:"description"`
	Exits       map[protocol.Direction]string `json:"exits"`           // direction -> room id
	Items       []string                      `json:"items,omitempty"` // item ids spawned at boot; repeat for multiples
	Npcs        []string                      `json:"npcs,omitempty"`  // npc ids present in the room
}

func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("room name is required"))
	}
	for dir, dest := range r.Exits {
		if dest == "" {
			el.Add(fmt.Errorf("exit %s: room id is required", dir))
		}
	}

	return el.Err()
}

// RoomInstance is the live state of one room: the template plus the
// item instances on the floor and the players currently present.
// Mutation goes through WorldState, which holds the lock.
type RoomInstance struct {
	id  string
	def *Room

	items   map[string]*ItemInstance
	players map[string]*PlayerState
	npcs    []*NpcInstance
}

func newRoomInstance(id string, def *Room) *RoomInstance {
	return &RoomInstance{
		id:      id,
		def:     def,
		items:   make(map[string]*ItemInstance),
		players: make(map[string]*PlayerState),
	}
}

// Id returns the room's identifier.
func (ri *RoomInstance) Id() string {
	return ri.id
}

// Def returns the room template.
func (ri *RoomInstance) Def() *Room {
	return ri.def
}
