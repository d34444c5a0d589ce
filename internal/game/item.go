package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// EquipSlots is the closed set of equipment slot names an item may
// declare and a player may fill.
var EquipSlots = map[string]bool{
	"head":    true,
	"chest":   true,
	"legs":    true,
	"hands":   true,
	"feet":    true,
	"weapon":  true,
	"offhand": true,
}

// Item is a static item template loaded from the asset store.
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Takable     bool   `json:"takable"`
	Slot        string `json:"slot,omitempty"` // equippable when set
	Consumable  bool   `json:"consumable,omitempty"`
	Heal        int    `json:"heal,omitempty"`
}

func (i *Item) Validate() error {
	el := errors.NewErrorList()

	if i.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if i.Slot != "" && !EquipSlots[i.Slot] {
		el.Add(fmt.Errorf("unknown equip slot: %s", i.Slot))
	}
	if i.Heal < 0 {
		el.Add(fmt.Errorf("heal must not be negative"))
	}

	return el.Err()
}

// Equippable reports whether the item can occupy an equipment slot.
func (i *Item) Equippable() bool {
	return i.Slot != ""
}

// ItemInstance is one concrete copy of an item template, living in a
// room, an inventory, or an equipment slot.
type ItemInstance struct {
	InstanceId string `json:"instance_id"`
	ItemId     string `json:"item_id"`

	item *Item
}

// NewItemInstance creates an instance of the given template.
func NewItemInstance(instanceId, itemId string, item *Item) *ItemInstance {
	return &ItemInstance{
		InstanceId: instanceId,
		ItemId:     itemId,
		item:       item,
	}
}

// Item returns the resolved template.
func (ii *ItemInstance) Item() *Item {
	return ii.item
}
