// Package events implements single-pass event dispatch. Handlers record
// collection entries and produce notification text; they never emit further
// events.
package events

import (
	"fmt"

	"github.com/nathoo/oreforge/engine/collection"
	"github.com/nathoo/oreforge/engine/skill"
	"github.com/nathoo/oreforge/engine/state"
	"github.com/nathoo/oreforge/types"
)

// Dispatch handles the emitted events in order and returns notification
// lines. Single pass with no recursion.
func Dispatch(events []types.Event, log *collection.Log, p *state.Player, cat *state.Catalog) []string {
	var out []string

	for _, ev := range events {
		switch ev.Type {
		case types.EventRareDrop:
			name := str(ev.Data["name"])
			out = append(out, fmt.Sprintf("You found a %s!", name))
			if log.AddRareDrop(name) {
				out = append(out, fmt.Sprintf("New collection log entry: %s", name))
			}

		case types.EventRareLost:
			out = append(out, fmt.Sprintf("Your inventory is full! The %s flies away.", str(ev.Data["name"])))

		case types.EventItemCrafted:
			name := str(ev.Data["name"])
			if log.AddCrafted(name, num(ev.Data["count"])) {
				out = append(out, fmt.Sprintf("New collection log entry: %s", name))
			}

		case types.EventXPGained:
			out = append(out, fmt.Sprintf("Gained %d %s XP.", num(ev.Data["amount"]), displayName(cat, str(ev.Data["skill"]))))

		case types.EventGoldGained:
			out = append(out, fmt.Sprintf("+ %d gold. Total: %d gold", num(ev.Data["amount"]), num(ev.Data["total"])))

		case types.EventLevelUp:
			id := str(ev.Data["skill"])
			from, to := num(ev.Data["from"]), num(ev.Data["to"])
			name := displayName(cat, id)
			out = append(out, fmt.Sprintf("Congratulations! Your %s level is now %d.", name, to))
			for _, msg := range p.Skills.Unlocked(id, from, to) {
				out = append(out, fmt.Sprintf("Unlocked: %s!", msg))
			}
			if to >= skill.MaxLevel {
				achievement := name + " Mastery"
				if log.AddAchievement(achievement) {
					out = append(out, fmt.Sprintf("New achievement: %s", achievement))
				}
			}
		}
	}

	return out
}

func displayName(cat *state.Catalog, id string) string {
	if cat != nil {
		if def, ok := state.SkillByID(cat, id); ok && def.Name != "" {
			return def.Name
		}
	}
	return skill.Title(id)
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
