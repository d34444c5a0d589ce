package game

// PlayerState is the live in-world state of one connected player. It is
// created at login from the persisted Character and folded back into it
// at disconnect. All mutation happens under the WorldState lock.
type PlayerState struct {
	PlayerId string // session identity: lowercased character name
	Name     string // display name

	RoomId    string
	Inventory *Inventory
	Equipment *Equipment
	Stats     Stats
}
