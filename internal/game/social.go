package game

import (
	"sort"
	"strings"

	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

// Occupant names one player present in a room.
type Occupant struct {
	PlayerId string
	Name     string
}

// Occupants returns everyone in the speaker's room, speaker included.
func (w *WorldState) Occupants(playerId string) ([]Occupant, protocol.Reason) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	ps, ok := w.players[playerId]
	if !ok {
		return nil, protocol.ReasonInternal
	}
	room, ok := w.rooms[ps.RoomId]
	if !ok {
		return nil, protocol.ReasonInternal
	}

	occupants := make([]Occupant, 0, len(room.players))
	for id, other := range room.players {
		occupants = append(occupants, Occupant{PlayerId: id, Name: other.Name})
	}
	sort.Slice(occupants, func(i, j int) bool {
		return occupants[i].PlayerId < occupants[j].PlayerId
	})
	return occupants, protocol.ReasonNone
}

// FindPlayerByName locates an online player by display name,
// case-insensitively. Used for tells.
func (w *WorldState) FindPlayerByName(name string) (Occupant, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	lower := strings.ToLower(name)
	for id, ps := range w.players {
		if strings.ToLower(ps.Name) == lower {
			return Occupant{PlayerId: id, Name: ps.Name}, true
		}
	}
	return Occupant{}, false
}

// Roster returns the display names of everyone online, sorted.
func (w *WorldState) Roster() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	names := make([]string, 0, len(w.players))
	for _, ps := range w.players {
		names = append(names, ps.Name)
	}
	sort.Strings(names)
	return names
}
