package game

// Equipment maps slot names to the item instances worn there.
type Equipment struct {
	slots map[string]*ItemInstance
}

// NewEquipment creates an empty equipment set.
func NewEquipment() *Equipment {
	return &Equipment{
		slots: make(map[string]*ItemInstance),
	}
}

// Get returns the item in a slot, or nil.
func (eq *Equipment) Get(slot string) *ItemInstance {
	return eq.slots[slot]
}

// Swap places an item into a slot and returns whatever was displaced,
// or nil if the slot was empty. The caller is responsible for putting
// the displaced item back into the inventory in the same operation.
func (eq *Equipment) Swap(slot string, ii *ItemInstance) *ItemInstance {
	prev := eq.slots[slot]
	eq.slots[slot] = ii
	return prev
}

// Clear empties a slot and returns the removed item, or nil.
func (eq *Equipment) Clear(slot string) *ItemInstance {
	prev := eq.slots[slot]
	delete(eq.slots, slot)
	return prev
}

// Each calls fn for every occupied slot.
func (eq *Equipment) Each(fn func(slot string, ii *ItemInstance)) {
	for slot, ii := range eq.slots {
		if ii != nil {
			fn(slot, ii)
		}
	}
}
