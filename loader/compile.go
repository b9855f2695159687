// Package loader loads Lua catalog content into Go structs at startup.
// The Lua VM is discarded after loading; nothing runs Lua during play.
package loader

import (
	"fmt"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/oreforge/engine/skill"
	"github.com/nathoo/oreforge/engine/state"
	"github.com/nathoo/oreforge/types"
)

// Skill capes are level 99 cape-slot items with a flat bonus.
const (
	skillCapeLevel = 99
	skillCapeBonus = 0.5
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// compile converts all collected Lua data into a Catalog. Tiers and pieces
// expand into the crafted equipment, recipes and alchemy values.
func compile(coll *collector) (*state.Catalog, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	cat := &state.Catalog{
		Game:      compileGame(coll.game),
		Rocks:     map[string]types.RockDef{},
		Recipes:   map[string]types.RecipeDef{},
		Alchemy:   map[string]types.AlchemyDef{},
		Items:     map[string]*types.Item{},
		RareDrops: map[string][]types.RareDrop{},
		Powerups:  map[string]types.PowerupDef{},
	}
	addItem := func(item *types.Item) {
		k := state.Key(item.Name)
		if _, dup := cat.Items[k]; dup {
			coll.collisions = append(coll.collisions, item.Name)
			return
		}
		cat.Items[k] = item
	}

	for _, raw := range coll.tiers {
		cat.Tiers = append(cat.Tiers, compileTier(raw))
	}
	sort.SliceStable(cat.Tiers, func(i, j int) bool { return cat.Tiers[i].Level < cat.Tiers[j].Level })
	for _, raw := range coll.pieces {
		cat.Pieces = append(cat.Pieces, compilePiece(raw))
	}

	for _, raw := range coll.rocks {
		rock := compileRock(raw)
		cat.Rocks[state.Key(rock.ID)] = rock
		if _, ok := cat.Items[state.Key(rock.Ore)]; !ok {
			addItem(types.NewPlainItem(rock.Ore,
				fmt.Sprintf("A chunk of %s", strings.ToLower(rock.Ore)), true))
		}
	}

	for _, tier := range cat.Tiers {
		ore := tierOre(tier)
		for _, piece := range cat.Pieces {
			name := pieceName(tier, piece)
			bonuses := types.Bonuses{
				types.BonusMiningSpeed:    tier.Bonus * piece.Speed,
				types.BonusExtraOreChance: tier.Bonus * piece.Extra,
			}
			addItem(types.NewEquipmentItem(name,
				fmt.Sprintf("A %s %s that boosts mining", strings.ToLower(tier.Name), strings.ToLower(piece.Name)),
				piece.Slot, tier.Level, bonuses))

			cat.Recipes[state.Key(name)] = types.RecipeDef{
				Name:      name,
				LevelReq:  tier.Level,
				Materials: []types.Material{{Name: ore, Quantity: tier.Materials * piece.Cost}},
				XP:        tier.XP * piece.XP,
				Tier:      tier.Name,
			}
			cat.Alchemy[state.Key(name)] = types.AlchemyDef{
				Name:     name,
				LevelReq: tier.Level,
				Gold:     tier.Gold * piece.Gold,
			}
		}
	}

	var shared []types.RareDrop
	for _, raw := range coll.rareDrops {
		d := types.RareDrop{Name: raw.name, Chance: getNumber(raw.table, "chance")}
		shared = append(shared, d)
		addItem(types.NewPlainItem(d.Name, fmt.Sprintf("A rare %s", strings.ToLower(d.Name)), false))
	}

	for _, raw := range coll.skills {
		def := compileSkill(raw)
		cat.Skills = append(cat.Skills, def)

		var table []types.RareDrop
		if def.Pet != "" && coll.petChance > 0 {
			table = append(table, types.RareDrop{Name: def.Pet, Chance: coll.petChance})
			addItem(types.NewPlainItem(def.Pet,
				fmt.Sprintf("A rare pet obtained while training %s", def.Name), false))
		}
		cat.RareDrops[def.ID] = append(table, shared...)

		if def.Cape != "" {
			cape := types.NewEquipmentItem(def.Cape,
				fmt.Sprintf("A cape showing mastery of the %s skill", def.Name),
				types.SlotCape, skillCapeLevel,
				types.Bonuses{types.BonusMiningSpeed: skillCapeBonus, types.BonusExtraOreChance: skillCapeBonus})
			cape.Equip.Skill = def.ID
			addItem(cape)
		}
	}

	for _, raw := range coll.powerups {
		p := types.PowerupDef{
			ID:          state.Key(raw.name),
			Item:        getString(raw.table, "item"),
			Description: getString(raw.table, "description"),
		}
		cat.Powerups[p.ID] = p
		if p.Item != "" {
			addItem(types.NewPlainItem(p.Item, p.Description, true))
		}
	}

	return cat, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Intro:   getString(tbl, "intro"),
	}
}

func compileTier(raw rawDef) types.TierDef {
	tbl := raw.table
	return types.TierDef{
		Name:      raw.name,
		Level:     getInt(tbl, "level"),
		Materials: getInt(tbl, "materials"),
		XP:        getInt(tbl, "xp"),
		Bonus:     getNumber(tbl, "bonus"),
		Gold:      getInt(tbl, "gold"),
		Color:     getString(tbl, "color"),
	}
}

// compilePiece keeps an unknown slot as written so validation can report it.
func compilePiece(raw rawDef) types.PieceDef {
	tbl := raw.table
	raws := getString(tbl, "slot")
	slot, ok := types.ParseEquipSlot(raws)
	if !ok {
		slot = types.EquipSlot(raws)
	}
	return types.PieceDef{
		Name:  raw.name,
		Slot:  slot,
		Cost:  getInt(tbl, "cost"),
		XP:    getInt(tbl, "xp"),
		Speed: getNumber(tbl, "speed"),
		Extra: getNumber(tbl, "extra"),
		Gold:  getInt(tbl, "gold"),
	}
}

func compileRock(raw rawDef) types.RockDef {
	tbl := raw.table
	return types.RockDef{
		ID:       raw.name,
		Name:     getString(tbl, "name"),
		LevelReq: getInt(tbl, "level"),
		Ore:      getString(tbl, "ore"),
		BaseTime: getNumber(tbl, "time"),
		BaseXP:   getInt(tbl, "xp"),
	}
}

func compileSkill(raw rawDef) types.SkillDef {
	tbl := raw.table
	name := getString(tbl, "name")
	if name == "" {
		name = skill.Title(raw.name)
	}
	return types.SkillDef{
		ID:   state.Key(raw.name),
		Name: name,
		Pet:  getString(tbl, "pet"),
		Cape: getString(tbl, "cape"),
	}
}

// tierOre is the ore a tier's pieces are crafted from.
func tierOre(t types.TierDef) string {
	return t.Name + " Ore"
}

// pieceName names a tier's piece: "Bronze Ring", or "Bronze Cape (Brown)"
// for capes of a coloured tier.
func pieceName(t types.TierDef, p types.PieceDef) string {
	if p.Slot == types.SlotCape && t.Color != "" {
		return fmt.Sprintf("%s %s (%s)", t.Name, p.Name, t.Color)
	}
	return t.Name + " " + p.Name
}

// sortedLuaFiles returns .lua file names with game.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
