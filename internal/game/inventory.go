package game

// Inventory holds the item instances a player carries, up to a fixed
// capacity.
type Inventory struct {
	items    map[string]*ItemInstance
	order    []string
	capacity int
}

// NewInventory creates an empty inventory with the given capacity.
// A capacity of zero or less means unlimited.
func NewInventory(capacity int) *Inventory {
	return &Inventory{
		items:    make(map[string]*ItemInstance),
		capacity: capacity,
	}
}

// Capacity returns the inventory's item limit.
func (inv *Inventory) Capacity() int {
	return inv.capacity
}

// Len returns the number of carried items.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Full reports whether another item would exceed capacity.
func (inv *Inventory) Full() bool {
	return inv.capacity > 0 && len(inv.items) >= inv.capacity
}

// Add inserts an item instance, preserving insertion order for display.
func (inv *Inventory) Add(ii *ItemInstance) {
	if _, ok := inv.items[ii.InstanceId]; ok {
		return
	}
	inv.items[ii.InstanceId] = ii
	inv.order = append(inv.order, ii.InstanceId)
}

// Remove takes an item instance out by id. Returns nil if not held.
func (inv *Inventory) Remove(instanceId string) *ItemInstance {
	ii, ok := inv.items[instanceId]
	if !ok {
		return nil
	}
	delete(inv.items, instanceId)
	for i, id := range inv.order {
		if id == instanceId {
			inv.order = append(inv.order[:i], inv.order[i+1:]...)
			break
		}
	}
	return ii
}

// Find locates a held item by instance id or, failing that, by item
// template id (first held copy wins). Returns nil if not held.
func (inv *Inventory) Find(ref string) *ItemInstance {
	if ii, ok := inv.items[ref]; ok {
		return ii
	}
	for _, id := range inv.order {
		if inv.items[id].ItemId == ref {
			return inv.items[id]
		}
	}
	return nil
}

// Each calls fn for every held item in insertion order.
func (inv *Inventory) Each(fn func(*ItemInstance)) {
	for _, id := range inv.order {
		fn(inv.items[id])
	}
}
