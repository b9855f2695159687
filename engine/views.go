package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nathoo/oreforge/engine/action"
	"github.com/nathoo/oreforge/engine/container"
	"github.com/nathoo/oreforge/engine/skill"
	"github.com/nathoo/oreforge/engine/state"
	"github.com/nathoo/oreforge/types"
)

// RockLines lists the rocks available at the current mining level.
func (e *Engine) RockLines() []string {
	out := []string{"Available rocks to mine:"}
	for _, r := range e.mining.Available(e.Player.Skills.Level(skill.Mining)) {
		out = append(out, fmt.Sprintf("  %s (level %d) - Yields %s", r.Name, r.LevelReq, r.Ore))
	}
	return out
}

// RecipeLines lists the recipes available at the current crafting level.
func (e *Engine) RecipeLines() []string {
	out := []string{"Available items to craft:"}
	for _, r := range e.crafting.Available(e.Player.Skills.Level(skill.Crafting)) {
		mats := make([]string, 0, len(r.Materials))
		for _, m := range r.Materials {
			mats = append(mats, fmt.Sprintf("%d %s", m.Quantity, m.Name))
		}
		out = append(out, fmt.Sprintf("  %s (level %d) - Requires: %s", r.Name, r.LevelReq, strings.Join(mats, ", ")))
	}
	return out
}

// AlchemyLines lists inventory items the player can alchemize, most valuable
// first.
func (e *Engine) AlchemyLines() []string {
	level := e.Player.Skills.Level(skill.Magic)
	type entry struct {
		name string
		gold int
	}
	seen := map[string]bool{}
	var entries []entry
	for _, s := range e.Player.Inventory.Slots() {
		if s.Empty() || seen[s.Item.Name] {
			continue
		}
		seen[s.Item.Name] = true
		if _, err := e.magic.Lookup(s.Item.Name, level); err != nil {
			continue
		}
		gold, _ := e.magic.Value(s.Item.Name)
		entries = append(entries, entry{s.Item.Name, gold})
	}
	if len(entries) == 0 {
		return []string{"You don't have any items that you can alchemize."}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].gold > entries[j].gold })

	out := []string{"Items you can alchemize:"}
	for _, en := range entries {
		out = append(out, fmt.Sprintf("  %s - %d gold", en.name, en.gold))
	}
	return out
}

// ContainerLines renders a container's occupied slots.
func ContainerLines(title string, c *container.Container) []string {
	out := []string{fmt.Sprintf("%s (%d/%d slots):", title, c.UsedSlots(), c.Capacity())}
	for i, s := range c.Slots() {
		if !s.Empty() {
			out = append(out, fmt.Sprintf("%d. %s x%d", i+1, s.Item.Name, s.Quantity))
		}
	}
	if c.UsedSlots() == 0 {
		out = append(out, "  (Empty)")
	}
	return out
}

// EquipmentLines renders every slot and the summed bonuses.
func (e *Engine) EquipmentLines() []string {
	out := []string{"Equipment:"}
	e.Player.Equipment.Each(func(slot types.EquipSlot, item *types.Item) {
		name := "None"
		if item != nil {
			name = item.Name
		}
		out = append(out, fmt.Sprintf("  %s: %s", skill.Title(slotLabel(slot)), name))
	})

	bonuses := e.Player.Equipment.Bonuses()
	if len(bonuses) > 0 {
		keys := make([]string, 0, len(bonuses))
		for k := range bonuses {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out = append(out, "Bonuses:")
		for _, k := range keys {
			out = append(out, fmt.Sprintf("  %s: +%.2f", skill.Title(strings.ReplaceAll(k, "_", " ")), bonuses[k]))
		}
	}
	return out
}

// SkillLines renders every skill with its progress.
func (e *Engine) SkillLines() []string {
	out := []string{"Skills:"}
	for _, s := range e.Player.Skills.All() {
		out = append(out, "  "+s.String())
	}
	return out
}

// StatusLines renders the player summary.
func (e *Engine) StatusLines() []string {
	p := e.Player
	out := []string{
		fmt.Sprintf("Name: %s", p.Name),
		fmt.Sprintf("Gold: %d", p.Gold),
	}
	for _, s := range p.Skills.All() {
		out = append(out, fmt.Sprintf("%s Level: %d", skill.Title(s.Name), s.Level()))
	}
	out = append(out, fmt.Sprintf("Inventory: %d/%d slots used", p.Inventory.UsedSlots(), p.Inventory.Capacity()))

	if active := state.ActivePowerups(p); len(active) > 0 {
		parts := make([]string, 0, len(active))
		for _, id := range active {
			parts = append(parts, fmt.Sprintf("%s (%d)", id, p.Powerups[id]))
		}
		out = append(out, "Active Powerups: "+strings.Join(parts, ", "))
	}
	return out
}

// HelpLines lists the commands.
func HelpLines() []string {
	return []string{
		"Commands:",
		"  rocks                     list rocks you can mine",
		"  mine <rock> [count]       mine a rock up to 100 times",
		"  recipes                   list items you can craft",
		"  craft <item> [count]      craft an item up to 100 times",
		"  alchables                 list items you can alchemize",
		"  alch <item> [count|all]   turn items into gold",
		"  deposit <item> [qty|all]  move items to the bank",
		"  withdraw <item> [qty|all] take items from the bank",
		"  equip <item>              wear an item",
		"  unequip <slot|item>       take an item off",
		"  activate <powerup>        start a powerup",
		"  inventory, bank, equipment, skills, status, collection",
	}
}

// Sentence renders err as a player-facing sentence: the message after the
// sentinel prefix, capitalized and terminated.
func Sentence(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{
		ErrContainerFull, ErrNotInInventory, ErrNotInBank, ErrNotEquippable,
		ErrUnknownSlot, ErrSlotEmpty, ErrUnknownItem, ErrUnknownPowerup, ErrNoPowerup,
		action.ErrUnknownAction, action.ErrInsufficientLevel, action.ErrInsufficientMaterials,
	} {
		if errors.Is(err, sentinel) {
			msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
			break
		}
	}
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	msg = string(unicode.ToUpper(r)) + msg[size:]
	if !strings.HasSuffix(msg, ".") && !strings.HasSuffix(msg, "!") && !strings.HasSuffix(msg, "?") && !strings.HasSuffix(msg, ")") {
		msg += "."
	}
	return msg
}

// TraceLines renders the effects and events of res for debugging.
func TraceLines(res types.Result) []string {
	var lines []string
	if len(res.Effects) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Effects: %d", len(res.Effects)))
		for _, eff := range res.Effects {
			lines = append(lines, "[trace]   "+describeEffect(eff))
		}
	}
	if len(res.Events) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Events: %d", len(res.Events)))
		for _, ev := range res.Events {
			lines = append(lines, fmt.Sprintf("[trace]   %s %v", ev.Type, ev.Data))
		}
	}
	return lines
}

func describeEffect(eff types.Effect) string {
	switch eff.Type {
	case types.EffectGiveItem:
		name := ""
		if eff.Item != nil {
			name = eff.Item.Name
		}
		return fmt.Sprintf("%s %s x%d", eff.Type, name, eff.Quantity)
	case types.EffectAddXP:
		return fmt.Sprintf("%s %s %d x%g", eff.Type, eff.Skill, eff.Amount, eff.Multiplier)
	case types.EffectAddGold:
		return fmt.Sprintf("%s %d", eff.Type, eff.Amount)
	case types.EffectRecordCraft:
		return fmt.Sprintf("%s %s x%d", eff.Type, eff.Name, eff.Quantity)
	default:
		return fmt.Sprintf("%s %s", eff.Type, eff.Name)
	}
}

// StateLines dumps the session state for debugging.
func (e *Engine) StateLines() []string {
	p := e.Player
	out := []string{
		fmt.Sprintf("Session: %s", e.Session),
		fmt.Sprintf("Turns: %d", e.Turns),
		fmt.Sprintf("Gold: %d", p.Gold),
	}
	for _, s := range p.Skills.All() {
		out = append(out, fmt.Sprintf("Skill %s: level %d, %d xp", s.Name, s.Level(), s.Experience()))
	}
	out = append(out,
		fmt.Sprintf("Inventory: %d/%d slots", p.Inventory.UsedSlots(), p.Inventory.Capacity()),
		fmt.Sprintf("Bank: %d/%d slots", e.Bank.UsedSlots(), e.Bank.Capacity()),
		fmt.Sprintf("Powerups: %v", p.Powerups),
		fmt.Sprintf("Collection: %.1f%%", e.Log.Completion()),
	)
	return out
}

// SeedLine reports the RNG seed and how many values have been drawn.
func (e *Engine) SeedLine() string {
	if e.RNG == nil {
		return "Seed: custom source"
	}
	return fmt.Sprintf("Seed: %d (position %d)", e.RNG.Seed(), e.RNG.Position())
}
