// Package effects implements centralized player mutation via the Apply
// function. Every effect type is one atomic operation.
package effects

import (
	"fmt"

	"github.com/nathoo/oreforge/engine/state"
	"github.com/nathoo/oreforge/types"
)

// Apply applies effects to the player in order and returns the emitted
// events. If a give_item effect does not fit in the inventory, Apply stops
// there and reports halted; effects already applied stay applied.
func Apply(p *state.Player, cat *state.Catalog, effects []types.Effect) (events []types.Event, halted bool) {
	for _, eff := range effects {
		switch eff.Type {
		case types.EffectGiveItem:
			if eff.Item == nil || eff.Quantity <= 0 {
				continue
			}
			overflow := p.Inventory.Add(eff.Item, eff.Quantity)
			if overflow > 0 {
				events = append(events, types.Event{
					Type: types.EventInventoryFull,
					Data: map[string]any{
						"item":     eff.Item.Name,
						"placed":   eff.Quantity - overflow,
						"overflow": overflow,
					},
				})
				return events, true
			}

		case types.EffectGiveRare:
			item := rareItem(cat, eff.Name)
			if p.Inventory.Add(item, 1) > 0 {
				events = append(events, types.Event{
					Type: types.EventRareLost,
					Data: map[string]any{"name": eff.Name},
				})
				continue
			}
			events = append(events, types.Event{
				Type: types.EventRareDrop,
				Data: map[string]any{"name": eff.Name},
			})

		case types.EffectAddGold:
			if eff.Amount <= 0 {
				continue
			}
			p.Gold += eff.Amount
			events = append(events, types.Event{
				Type: types.EventGoldGained,
				Data: map[string]any{"amount": eff.Amount, "total": p.Gold},
			})

		case types.EffectAddXP:
			if eff.Amount <= 0 {
				continue
			}
			before := p.Skills.Level(eff.Skill)
			gained, leveled, err := p.Skills.Add(eff.Skill, eff.Amount, eff.Multiplier)
			if err != nil {
				continue
			}
			events = append(events, types.Event{
				Type: types.EventXPGained,
				Data: map[string]any{"skill": eff.Skill, "amount": gained},
			})
			if leveled {
				events = append(events, types.Event{
					Type: types.EventLevelUp,
					Data: map[string]any{
						"skill": eff.Skill,
						"from":  before,
						"to":    p.Skills.Level(eff.Skill),
					},
				})
			}

		case types.EffectRecordCraft:
			n := max(1, eff.Quantity)
			events = append(events, types.Event{
				Type: types.EventItemCrafted,
				Data: map[string]any{"name": eff.Name, "count": n},
			})
		}
	}
	return events, false
}

// rareItem returns the catalog item for a rare drop, or a non-stackable
// stand-in when the catalog does not define one.
func rareItem(cat *state.Catalog, name string) *types.Item {
	if cat != nil {
		if item, ok := state.LookupItem(cat, name); ok {
			return item
		}
	}
	return types.NewPlainItem(name, fmt.Sprintf("A rare %s", name), false)
}
