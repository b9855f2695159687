// Package equipment manages the four worn equipment slots.
package equipment

import (
	"errors"
	"fmt"

	"github.com/nathoo/oreforge/types"
)

// ErrNotEquipment is returned when equipping a plain item.
var ErrNotEquipment = errors.New("not equipment")

// Equipment holds at most one item per slot.
type Equipment struct {
	slots map[types.EquipSlot]*types.Item
}

// New returns empty equipment.
func New() *Equipment {
	return &Equipment{slots: make(map[types.EquipSlot]*types.Item, len(types.EquipSlots))}
}

// Equip wears item in its slot and returns whatever was there before.
func (e *Equipment) Equip(item *types.Item) (*types.Item, error) {
	if item == nil || item.Kind != types.KindEquipment || item.Equip == nil {
		name := "<nil>"
		if item != nil {
			name = item.Name
		}
		return nil, fmt.Errorf("%w: %s", ErrNotEquipment, name)
	}
	slot := item.Equip.Slot
	prev := e.slots[slot]
	e.slots[slot] = item
	return prev, nil
}

// Unequip clears slot and returns the item that was worn, or nil.
func (e *Equipment) Unequip(slot types.EquipSlot) *types.Item {
	prev := e.slots[slot]
	delete(e.slots, slot)
	return prev
}

// Get returns the item in slot, or nil.
func (e *Equipment) Get(slot types.EquipSlot) *types.Item {
	return e.slots[slot]
}

// Bonuses sums the bonuses of every worn item.
func (e *Equipment) Bonuses() types.Bonuses {
	total := types.Bonuses{}
	for _, slot := range types.EquipSlots {
		if item := e.slots[slot]; item != nil {
			total = total.Add(item.Equip.Bonuses)
		}
	}
	return total
}

// Each calls fn for every slot in display order, with nil for empty slots.
func (e *Equipment) Each(fn func(types.EquipSlot, *types.Item)) {
	for _, slot := range types.EquipSlots {
		fn(slot, e.slots[slot])
	}
}
