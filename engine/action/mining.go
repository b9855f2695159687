package action

import (
	"fmt"

	"github.com/nathoo/oreforge/engine/skill"
	"github.com/nathoo/oreforge/engine/state"
	"github.com/nathoo/oreforge/types"
)

// Mining yield and pacing constants.
const (
	maxExtraOreChance = 0.3
	thirdOreChance    = 0.5
	fiveXChance       = 0.05
	fiveXYield        = 5

	maxLevelSpeedup   = 0.5
	fasterMiningBonus = 0.2
	minTimeModifier   = 0.3
	miningBatchFactor = 0.7
)

// Mining resolves rock attempts into ore outcomes.
type Mining struct {
	*Resolver[types.RockDef]
	cat *state.Catalog
	src Source
}

// NewMining builds a mining resolver over the catalog rocks.
func NewMining(cat *state.Catalog, src Source) *Mining {
	rocks := make([]types.RockDef, 0, len(cat.Rocks))
	for _, r := range cat.Rocks {
		rocks = append(rocks, r)
	}
	return &Mining{
		Resolver: NewResolver(skill.Mining, rocks, cat.RareDrops[skill.Mining], src),
		cat:      cat,
		src:      src,
	}
}

// TimeModifier returns the pacing multiplier for a rock:
// 1 - min(0.5, (level-req)/100) - speed - 0.2 if faster, floored at 0.3.
func TimeModifier(level, req int, speedBonus float64, faster bool) float64 {
	mod := 1.0
	mod -= min(maxLevelSpeedup, float64(level-req)/100)
	mod -= speedBonus
	if faster {
		mod -= fasterMiningBonus
	}
	return max(minTimeModifier, mod)
}

// Resolve mines rockKey count times. The returned plan only affects pacing.
func (m *Mining) Resolve(rockKey string, level int, bonuses types.Bonuses, faster, fiveX bool, count int) (Plan, []types.Outcome, error) {
	rock, err := m.Lookup(rockKey, level)
	if err != nil {
		return Plan{}, nil, err
	}
	n := ClampCount(count)

	mod := TimeModifier(level, rock.LevelReq, bonuses[types.BonusMiningSpeed], faster)
	per := rock.BaseTime * mod
	if n > 1 {
		per *= miningBatchFactor
	}
	plan := Plan{Name: rock.Name, Count: n, PerAttempt: seconds(per), TimeModifier: mod}

	ore, ok := state.LookupItem(m.cat, rock.Ore)
	if !ok {
		ore = types.NewPlainItem(rock.Ore, fmt.Sprintf("Ore mined from %s", rock.Name), true)
	}

	outcomes := m.Run(rock, n, func(r types.RockDef) types.Outcome {
		q := m.yield(level, fiveX)
		return types.Outcome{Item: ore, Quantity: q, XP: r.BaseXP * q}
	})
	return plan, outcomes, nil
}

// yield rolls the ore quantity for one attempt.
func (m *Mining) yield(level int, fiveX bool) int {
	q := 1
	extra := min(maxExtraOreChance, float64(level)/100*maxExtraOreChance)
	if m.src.Float64() < extra {
		q++
		if m.src.Float64() < thirdOreChance {
			q++
		}
	}
	if fiveX && m.src.Float64() < fiveXChance {
		q = fiveXYield
	}
	return q
}
