package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/RednibCoding/mudden-sub004/internal/storage"
)

// WorldState is the single source of truth for all mutable game state.
//
// Consistency rests on two rules: the tick processor is the only writer
// during command handling (single-threaded per tick), and the roster
// operations callable from connection goroutines (AddPlayer,
// RemovePlayer) take the same lock. Everything else must go through the
// service methods on this type.
type WorldState struct {
	mu sync.RWMutex

	rooms   map[string]*RoomInstance
	players map[string]*PlayerState

	defaultRoom string
	carryLimit  int
}

// NewWorldState instantiates rooms from their templates, spawning the
// items and npcs each room declares.
func NewWorldState(
	rooms storage.Storer[*Room],
	items storage.Storer[*Item],
	npcs storage.Storer[*Npc],
	defaultRoom string,
	carryLimit int,
) (*WorldState, error) {
	w := &WorldState{
		rooms:       make(map[string]*RoomInstance),
		players:     make(map[string]*PlayerState),
		defaultRoom: defaultRoom,
		carryLimit:  carryLimit,
	}

	for roomId, def := range rooms.GetAll() {
		ri := newRoomInstance(roomId, def)

		for _, itemId := range def.Items {
			item := items.Get(itemId)
			if item == nil {
				return nil, fmt.Errorf("room %q: item %q not found", roomId, itemId)
			}
			ii := NewItemInstance(uuid.New().String(), itemId, item)
			ri.items[ii.InstanceId] = ii
		}

		for _, npcId := range def.Npcs {
			npc := npcs.Get(npcId)
			if npc == nil {
				return nil, fmt.Errorf("room %q: npc %q not found", roomId, npcId)
			}
			ri.npcs = append(ri.npcs, &NpcInstance{NpcId: npcId, npc: npc})
		}

		w.rooms[roomId] = ri
	}

	if _, ok := w.rooms[defaultRoom]; !ok {
		return nil, fmt.Errorf("default room %q not found", defaultRoom)
	}

	return w, nil
}

// Room returns a room instance, or nil.
func (w *WorldState) Room(roomId string) *RoomInstance {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.rooms[roomId]
}

// GetPlayer returns the live state for a player, or nil.
func (w *WorldState) GetPlayer(playerId string) *PlayerState {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.players[playerId]
}

// AddPlayer places a character into the world. The character's saved
// room is used when it still exists; otherwise the default room.
func (w *WorldState) AddPlayer(playerId string, char *Character) (*PlayerState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.players[playerId]; exists {
		return nil, ErrPlayerExists
	}

	roomId := char.RoomId
	if _, ok := w.rooms[roomId]; !ok {
		roomId = w.defaultRoom
	}

	ps := &PlayerState{
		PlayerId:  playerId,
		Name:      char.Name,
		RoomId:    roomId,
		Inventory: NewInventory(w.carryLimit),
		Equipment: NewEquipment(),
		Stats:     char.Stats,
	}

	w.players[playerId] = ps
	w.rooms[roomId].players[playerId] = ps

	return ps, nil
}

// RemovePlayer takes a player out of the world. Items they carried or
// wore leave with them; they stop appearing as a command recipient the
// moment this returns.
func (w *WorldState) RemovePlayer(playerId string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	ps, exists := w.players[playerId]
	if !exists {
		return ErrPlayerNotFound
	}

	delete(w.players, playerId)
	if room, ok := w.rooms[ps.RoomId]; ok {
		delete(room.players, playerId)
	}

	return nil
}

// ForEachPlayer calls fn for every player in the world under the lock.
func (w *WorldState) ForEachPlayer(fn func(string, *PlayerState)) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for id, ps := range w.players {
		fn(id, ps)
	}
}
