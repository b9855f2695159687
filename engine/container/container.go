// Package container implements fixed-capacity slotted storage shared by the
// player inventory and the bank.
package container

import (
	"strings"

	"github.com/nathoo/oreforge/types"
)

// Default capacities.
const (
	InventorySize = 28
	BankSize      = 1000
)

// Matcher reports whether a stored item name matches a requested one.
type Matcher func(stored, wanted string) bool

// FoldMatch compares names case-insensitively.
func FoldMatch(stored, wanted string) bool { return strings.EqualFold(stored, wanted) }

// ExactMatch compares names byte for byte.
func ExactMatch(stored, wanted string) bool { return stored == wanted }

// Container is an ordered, fixed-size sequence of slots. The number of slots
// never changes after construction.
type Container struct {
	slots []types.Slot
	match Matcher
}

// New returns an empty container with n slots using match for name lookups.
func New(n int, match Matcher) *Container {
	if n < 0 {
		n = 0
	}
	if match == nil {
		match = ExactMatch
	}
	return &Container{slots: make([]types.Slot, n), match: match}
}

// NewInventory returns a container with case-insensitive name matching.
func NewInventory(n int) *Container { return New(n, FoldMatch) }

// NewBank returns a container with case-sensitive name matching.
func NewBank(n int) *Container { return New(n, ExactMatch) }

// Add places qty units of item and returns how many could not be placed.
//
// Stackable items first top up an existing slot holding the same name, then
// take an empty slot. Non-stackable items never merge and take one empty slot
// per unit.
func (c *Container) Add(item *types.Item, qty int) int {
	if item == nil || qty <= 0 {
		return 0
	}
	remaining := qty

	if item.Stackable {
		for i := range c.slots {
			s := &c.slots[i]
			if s.Item != nil && s.Item.Stackable && c.match(s.Item.Name, item.Name) {
				s.Quantity += remaining
				return 0
			}
		}
		for i := range c.slots {
			s := &c.slots[i]
			if s.Item == nil {
				s.Item = item
				s.Quantity = remaining
				return 0
			}
		}
		return remaining
	}

	for i := range c.slots {
		if remaining == 0 {
			break
		}
		s := &c.slots[i]
		if s.Item == nil {
			s.Item = item
			s.Quantity = 1
			remaining--
		}
	}
	return remaining
}

// Remove drains up to qty units of name in slot order and returns the amount
// actually removed.
func (c *Container) Remove(name string, qty int) int {
	if qty <= 0 {
		return 0
	}
	removed := 0
	for i := range c.slots {
		if removed == qty {
			break
		}
		s := &c.slots[i]
		if s.Item == nil || !c.match(s.Item.Name, name) {
			continue
		}
		take := min(s.Quantity, qty-removed)
		s.Quantity -= take
		removed += take
		if s.Quantity == 0 {
			s.Item = nil
		}
	}
	return removed
}

// Count returns the total quantity of name across all slots.
func (c *Container) Count(name string) int {
	total := 0
	for _, s := range c.slots {
		if s.Item != nil && c.match(s.Item.Name, name) {
			total += s.Quantity
		}
	}
	return total
}

// Has reports whether at least qty units of name are stored.
func (c *Container) Has(name string, qty int) bool {
	return c.Count(name) >= qty
}

// Find returns the first stored item matching name, or nil.
func (c *Container) Find(name string) *types.Item {
	for _, s := range c.slots {
		if s.Item != nil && c.match(s.Item.Name, name) {
			return s.Item
		}
	}
	return nil
}

// UsedSlots returns the number of occupied slots.
func (c *Container) UsedSlots() int {
	used := 0
	for _, s := range c.slots {
		if s.Item != nil {
			used++
		}
	}
	return used
}

// FreeSlots returns the number of empty slots.
func (c *Container) FreeSlots() int { return len(c.slots) - c.UsedSlots() }

// IsFull reports whether every slot is occupied. A zero-capacity container is
// always full.
func (c *Container) IsFull() bool { return c.UsedSlots() >= len(c.slots) }

// Capacity returns the fixed slot count.
func (c *Container) Capacity() int { return len(c.slots) }

// Slots returns a copy of the slot sequence.
func (c *Container) Slots() []types.Slot {
	out := make([]types.Slot, len(c.slots))
	copy(out, c.slots)
	return out
}
