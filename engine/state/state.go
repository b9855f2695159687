// Package state holds the immutable catalog and the mutable player record,
// with lookup helpers over both.
package state

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/oreforge/engine/container"
	"github.com/nathoo/oreforge/engine/equipment"
	"github.com/nathoo/oreforge/engine/skill"
	"github.com/nathoo/oreforge/types"
)

// Catalog holds the immutable game definitions loaded from Lua. Map keys are
// lower-cased names (rock keys for Rocks). Nothing mutates a Catalog after
// the loader returns it.
type Catalog struct {
	Game      types.GameDef
	Tiers     []types.TierDef
	Pieces    []types.PieceDef
	Rocks     map[string]types.RockDef
	Recipes   map[string]types.RecipeDef
	Alchemy   map[string]types.AlchemyDef
	Items     map[string]*types.Item
	Skills    []types.SkillDef
	RareDrops map[string][]types.RareDrop // skill ID -> ordered table
	Powerups  map[string]types.PowerupDef
}

// Key normalizes a catalog lookup key.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// LookupItem returns the catalog item with the given name.
func LookupItem(cat *Catalog, name string) (*types.Item, bool) {
	item, ok := cat.Items[Key(name)]
	return item, ok
}

// SkillIDs returns the catalog skill IDs in declaration order.
func SkillIDs(cat *Catalog) []string {
	ids := make([]string, 0, len(cat.Skills))
	for _, s := range cat.Skills {
		ids = append(ids, s.ID)
	}
	return ids
}

// SkillByID returns the skill definition with the given ID.
func SkillByID(cat *Catalog, id string) (types.SkillDef, bool) {
	for _, s := range cat.Skills {
		if s.ID == id {
			return s, true
		}
	}
	return types.SkillDef{}, false
}

// Unlocks derives the per-skill unlock messages from the tier table.
func Unlocks(cat *Catalog) skill.Unlocks {
	suffix := map[string]string{
		skill.Mining:   "rocks",
		skill.Crafting: "equipment",
		skill.Magic:    "alchemy",
	}
	out := skill.Unlocks{}
	for id, word := range suffix {
		table := make(map[int]string, len(cat.Tiers))
		for _, t := range cat.Tiers {
			table[t.Level] = fmt.Sprintf("%s %s", t.Name, word)
		}
		out[id] = table
	}
	return out
}

// TierForItem returns the tier whose name prefixes itemName.
func TierForItem(cat *Catalog, itemName string) (types.TierDef, bool) {
	lower := Key(itemName)
	for _, t := range cat.Tiers {
		if strings.HasPrefix(lower, Key(t.Name)+" ") {
			return t, true
		}
	}
	return types.TierDef{}, false
}

// RareDropNames returns every distinct rare-drop name across all skills.
func RareDropNames(cat *Catalog) []string {
	seen := map[string]bool{}
	var names []string
	for _, s := range cat.Skills {
		for _, d := range cat.RareDrops[s.ID] {
			if !seen[d.Name] {
				seen[d.Name] = true
				names = append(names, d.Name)
			}
		}
	}
	return names
}

// PowerupByName resolves a powerup by ID ("double_xp") or item name
// ("Double XP Powerup"), case-insensitively.
func PowerupByName(cat *Catalog, name string) (types.PowerupDef, bool) {
	k := Key(name)
	if p, ok := cat.Powerups[k]; ok {
		return p, true
	}
	for _, p := range cat.Powerups {
		if Key(p.Item) == k {
			return p, true
		}
	}
	return types.PowerupDef{}, false
}

// RocksByLevel returns the rocks sorted by level requirement.
func RocksByLevel(cat *Catalog) []types.RockDef {
	out := make([]types.RockDef, 0, len(cat.Rocks))
	for _, r := range cat.Rocks {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LevelReq != out[j].LevelReq {
			return out[i].LevelReq < out[j].LevelReq
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// RecipesByLevel returns the recipes sorted by level requirement, then name.
func RecipesByLevel(cat *Catalog) []types.RecipeDef {
	out := make([]types.RecipeDef, 0, len(cat.Recipes))
	for _, r := range cat.Recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LevelReq != out[j].LevelReq {
			return out[i].LevelReq < out[j].LevelReq
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Player is the mutable per-session record.
type Player struct {
	Name      string
	Gold      int
	Inventory *container.Container
	Equipment *equipment.Equipment
	Skills    *skill.Set
	Powerups  map[string]int // powerup ID -> remaining charges
}

// NewPlayer creates a fresh level 1 player for the catalog.
func NewPlayer(cat *Catalog, name string, inventorySize int) *Player {
	ids := SkillIDs(cat)
	if len(ids) == 0 {
		ids = []string{skill.Mining, skill.Crafting, skill.Magic}
	}
	powerups := make(map[string]int, len(cat.Powerups))
	for id := range cat.Powerups {
		powerups[id] = 0
	}
	return &Player{
		Name:      name,
		Inventory: container.NewInventory(inventorySize),
		Equipment: equipment.New(),
		Skills:    skill.NewSet(Unlocks(cat), ids...),
		Powerups:  powerups,
	}
}

// HasPowerup reports whether the powerup has charges left.
func HasPowerup(p *Player, id string) bool {
	return p.Powerups[id] > 0
}

// ActivePowerups returns the IDs of active powerups, sorted.
func ActivePowerups(p *Player) []string {
	var ids []string
	for id, n := range p.Powerups {
		if n > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// SpendCharges uses one charge of every active powerup and returns the IDs
// that ran out.
func SpendCharges(p *Player) []string {
	var expired []string
	for _, id := range ActivePowerups(p) {
		p.Powerups[id]--
		if p.Powerups[id] == 0 {
			expired = append(expired, id)
		}
	}
	return expired
}
