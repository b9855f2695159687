package loader

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nathoo/oreforge/engine/skill"
	"github.com/nathoo/oreforge/engine/state"
	"github.com/nathoo/oreforge/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// requiredSkills are the skill IDs the engine trains.
var requiredSkills = []string{skill.Mining, skill.Crafting, skill.Magic}

// validate checks the compiled catalog for referential integrity and
// consistency. Warnings are logged; errors fail the load.
func validate(cat *state.Catalog, coll *collector, logger *zap.Logger) error {
	ve := &ValidationError{}

	if cat.Game.Title == "" {
		ve.errorf("Game.title is required")
	}
	if len(cat.Tiers) == 0 {
		ve.errorf("at least one Tier is required")
	}
	if len(cat.Rocks) == 0 {
		ve.errorf("at least one Rock is required")
	}

	checkDuplicates(ve, "tier", coll.tiers)
	checkDuplicates(ve, "piece", coll.pieces)
	checkDuplicates(ve, "rock", coll.rocks)
	checkDuplicates(ve, "skill", coll.skills)
	checkDuplicates(ve, "rare drop", coll.rareDrops)
	checkDuplicates(ve, "powerup", coll.powerups)
	for _, name := range coll.collisions {
		ve.errorf("item name %q is produced more than once", name)
	}

	validateTiers(cat, ve)
	validatePieces(cat, ve)
	validateRocks(cat, ve)

	for _, id := range requiredSkills {
		if _, ok := state.SkillByID(cat, id); !ok {
			ve.errorf("skill %q is required", id)
		}
	}

	for _, raw := range coll.rareDrops {
		checkChance(ve, fmt.Sprintf("rare drop %q", raw.name), getNumber(raw.table, "chance"))
	}
	if coll.petChance != 0 {
		checkChance(ve, "PetChance", coll.petChance)
	}

	for id, p := range cat.Powerups {
		if p.Item == "" {
			ve.errorf("powerup %q: item is required", id)
		}
	}

	for _, w := range ve.Warnings {
		logger.Warn("content warning", zap.String("warning", w))
	}
	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateTiers(cat *state.Catalog, ve *ValidationError) {
	for _, t := range cat.Tiers {
		if t.Level < skill.MinLevel || t.Level > skill.MaxLevel {
			ve.errorf("tier %q: level %d outside %d..%d", t.Name, t.Level, skill.MinLevel, skill.MaxLevel)
		}
		if t.Materials <= 0 {
			ve.errorf("tier %q: materials must be positive", t.Name)
		}
		if t.Gold <= 0 {
			ve.warnf("tier %q has no alchemy value", t.Name)
		}

		mined := false
		for _, r := range cat.Rocks {
			if state.Key(r.Ore) == state.Key(tierOre(t)) {
				mined = true
				break
			}
		}
		if !mined {
			ve.errorf("tier %q needs %q but no rock yields it", t.Name, tierOre(t))
		}
	}
}

func validatePieces(cat *state.Catalog, ve *ValidationError) {
	for _, p := range cat.Pieces {
		if _, ok := types.ParseEquipSlot(string(p.Slot)); !ok {
			ve.errorf("piece %q: unknown slot %q", p.Name, p.Slot)
		}
		if p.Cost <= 0 {
			ve.errorf("piece %q: cost must be positive", p.Name)
		}
		if p.Slot == types.SlotCape {
			for _, t := range cat.Tiers {
				if t.Color == "" {
					ve.warnf("tier %q has no color for its %s", t.Name, p.Name)
				}
			}
		}
	}
}

func validateRocks(cat *state.Catalog, ve *ValidationError) {
	for id, r := range cat.Rocks {
		if r.Name == "" {
			ve.errorf("rock %q: name is required", id)
		}
		if r.Ore == "" {
			ve.errorf("rock %q: ore is required", id)
			continue
		}
		if r.LevelReq < skill.MinLevel || r.LevelReq > skill.MaxLevel {
			ve.errorf("rock %q: level %d outside %d..%d", id, r.LevelReq, skill.MinLevel, skill.MaxLevel)
		}
		if r.BaseTime <= 0 {
			ve.errorf("rock %q: time must be positive", id)
		}
		if _, ok := state.TierForItem(cat, r.Ore); !ok {
			ve.warnf("rock %q yields %q which no tier crafts with", id, r.Ore)
		}
	}
}

func checkDuplicates(ve *ValidationError, kind string, defs []rawDef) {
	seen := map[string]bool{}
	for _, d := range defs {
		k := state.Key(d.name)
		if seen[k] {
			ve.errorf("duplicate %s %q", kind, d.name)
		}
		seen[k] = true
	}
}

func checkChance(ve *ValidationError, what string, chance float64) {
	if chance <= 0 || chance > 1 {
		ve.errorf("%s: chance %g outside (0, 1]", what, chance)
	}
}
