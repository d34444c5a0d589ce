package game

import (
	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

// MoveResult reports a completed move: where the player ended up, the
// room as they now see it, and who else was already there.
type MoveResult struct {
	PlayerName string
	FromRoom   string
	ToRoom     string
	Room       *protocol.RoomStateData
	ToOthers   []string // player ids already present in the destination
}

// Move walks a player through an exit. On any failure the player's
// location is untouched and a reason code is returned.
func (w *WorldState) Move(playerId string, dir protocol.Direction) (*MoveResult, protocol.Reason) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ps, ok := w.players[playerId]
	if !ok {
		return nil, protocol.ReasonInternal
	}

	from, ok := w.rooms[ps.RoomId]
	if !ok {
		return nil, protocol.ReasonInternal
	}

	dest, ok := from.def.Exits[dir]
	if !ok {
		return nil, protocol.ReasonNoExit
	}

	to, ok := w.rooms[dest]
	if !ok {
		// Exit points at a room that was never loaded. Treat it like a
		// wall rather than stranding the player.
		return nil, protocol.ReasonNoExit
	}

	others := make([]string, 0, len(to.players))
	for id := range to.players {
		others = append(others, id)
	}

	delete(from.players, playerId)
	to.players[playerId] = ps
	ps.RoomId = to.id

	return &MoveResult{
		PlayerName: ps.Name,
		FromRoom:   from.id,
		ToRoom:     to.id,
		Room:       w.snapshotRoom(to, playerId),
		ToOthers:   others,
	}, protocol.ReasonNone
}
