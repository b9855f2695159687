package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nathoo/oreforge/engine/action"
	"github.com/nathoo/oreforge/engine/skill"
	"github.com/nathoo/oreforge/engine/state"
	"github.com/nathoo/oreforge/types"
)

// Equip wears an equipment item from the inventory. The level of the item's
// skill (crafting unless it names another) must meet its requirement. Whatever was in the slot goes back to the
// inventory, or is dropped when there is no room.
func (e *Engine) Equip(name string) (types.Result, error) {
	var res types.Result
	if name == "" {
		return res, fmt.Errorf("%w: equip what?", ErrNotInInventory)
	}
	inv := e.Player.Inventory

	item := inv.Find(name)
	if item == nil {
		return res, fmt.Errorf("%w: you don't have a %s", ErrNotInInventory, name)
	}
	if item.Kind != types.KindEquipment || item.Equip == nil {
		return res, fmt.Errorf("%w: %s is not an equippable item", ErrNotEquippable, item.Name)
	}
	gate := item.Equip.Skill
	if gate == "" {
		gate = skill.Crafting
	}
	if lvl := e.Player.Skills.Level(gate); lvl < item.Equip.LevelReq {
		return res, fmt.Errorf("%w: you need level %d %s to equip %s",
			action.ErrInsufficientLevel, item.Equip.LevelReq, skill.Title(gate), item.Name)
	}

	inv.Remove(item.Name, 1)
	prev, err := e.Player.Equipment.Equip(item)
	if err != nil {
		inv.Add(item, 1)
		e.logger.Debug("equip rejected", zap.String("item", item.Name), zap.Error(err))
		return res, fmt.Errorf("%w: %s can't be worn", ErrNotEquippable, item.Name)
	}
	if prev != nil && inv.Add(prev, 1) > 0 {
		res.Output = append(res.Output, fmt.Sprintf("Your inventory is full! The %s falls to the ground.", prev.Name))
	}
	res.Output = append(res.Output, fmt.Sprintf("Equipped %s.", item.Name))
	e.logger.Debug("equip", zap.String("item", item.Name), zap.String("slot", string(item.Equip.Slot)))
	return res, nil
}

// Unequip removes the item worn in a slot. target may name the slot ("ring",
// "main hand") or the worn item itself.
func (e *Engine) Unequip(target string) (types.Result, error) {
	var res types.Result
	slot, ok := e.slotFor(target)
	if !ok {
		return res, fmt.Errorf("%w: there is no %q slot (slots: %s)", ErrUnknownSlot, target, slotList())
	}
	worn := e.Player.Equipment.Get(slot)
	if worn == nil {
		return res, fmt.Errorf("%w: you don't have anything equipped in your %s slot", ErrSlotEmpty, slotLabel(slot))
	}
	if e.Player.Inventory.IsFull() {
		return res, fmt.Errorf("%w: your inventory is full, you can't unequip the item", ErrContainerFull)
	}

	e.Player.Equipment.Unequip(slot)
	e.Player.Inventory.Add(worn, 1)
	res.Output = append(res.Output, fmt.Sprintf("Unequipped %s.", worn.Name))
	e.logger.Debug("unequip", zap.String("item", worn.Name), zap.String("slot", string(slot)))
	return res, nil
}

func (e *Engine) slotFor(target string) (types.EquipSlot, bool) {
	if slot, ok := types.ParseEquipSlot(target); ok {
		return slot, true
	}
	var found types.EquipSlot
	e.Player.Equipment.Each(func(slot types.EquipSlot, item *types.Item) {
		if item != nil && strings.EqualFold(item.Name, strings.TrimSpace(target)) {
			found = slot
		}
	})
	return found, found != ""
}

func slotList() string {
	names := make([]string, 0, len(types.EquipSlots))
	for _, s := range types.EquipSlots {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

func slotLabel(slot types.EquipSlot) string {
	return strings.ReplaceAll(string(slot), "_", " ")
}

// Activate consumes one powerup item, from the inventory if present and the
// bank otherwise, and adds a full set of charges to that powerup.
func (e *Engine) Activate(name string) (types.Result, error) {
	var res types.Result
	if name == "" {
		return res, fmt.Errorf("%w: activate what?", ErrUnknownPowerup)
	}
	def, ok := state.PowerupByName(e.Catalog, name)
	if !ok {
		return res, fmt.Errorf("%w: there is no powerup called %q", ErrUnknownPowerup, name)
	}

	switch {
	case e.Player.Inventory.Has(def.Item, 1):
		e.Player.Inventory.Remove(def.Item, 1)
	case e.Bank.Has(def.Item, 1):
		e.Bank.Remove(def.Item, 1)
	default:
		return res, fmt.Errorf("%w: you don't have a %s", ErrNoPowerup, def.Item)
	}

	e.Player.Powerups[def.ID] += e.charges
	res.Output = append(res.Output, fmt.Sprintf("Activated %s (%d actions remaining).", def.Item, e.Player.Powerups[def.ID]))
	e.logger.Info("powerup activated", zap.String("powerup", def.ID), zap.Int("charges", e.Player.Powerups[def.ID]))
	return res, nil
}
