package state

import (
	"reflect"
	"testing"

	"github.com/nathoo/oreforge/engine/skill"
	"github.com/nathoo/oreforge/types"
)

func testCatalog() *Catalog {
	ore := types.NewPlainItem("Bronze Ore", "A chunk of bronze ore", true)
	ring := types.NewEquipmentItem("Bronze Ring", "A bronze ring", types.SlotRing, 1, types.Bonuses{"mining_speed": 0.025})
	return &Catalog{
		Game: types.GameDef{Title: "Test Game", Version: "0.1.0"},
		Tiers: []types.TierDef{
			{Name: "Bronze", Level: 1},
			{Name: "Iron", Level: 5},
		},
		Rocks: map[string]types.RockDef{
			"iron":   {ID: "iron", Name: "Iron Rock", LevelReq: 5, Ore: "Iron Ore"},
			"bronze": {ID: "bronze", Name: "Bronze Rock", LevelReq: 1, Ore: "Bronze Ore"},
		},
		Recipes: map[string]types.RecipeDef{
			"bronze ring": {Name: "Bronze Ring", LevelReq: 1, Materials: []types.Material{{Name: "Bronze Ore", Quantity: 2}}},
		},
		Items: map[string]*types.Item{
			"bronze ore":  ore,
			"bronze ring": ring,
		},
		Skills: []types.SkillDef{
			{ID: "mining", Name: "Mining", Pet: "Mining Pet"},
			{ID: "crafting", Name: "Crafting", Pet: "Crafting Pet"},
		},
		RareDrops: map[string][]types.RareDrop{
			"mining":   {{Name: "Mining Pet", Chance: 0.00005}, {Name: "Owl", Chance: 0.001}},
			"crafting": {{Name: "Crafting Pet", Chance: 0.00005}, {Name: "Owl", Chance: 0.001}},
		},
		Powerups: map[string]types.PowerupDef{
			"double_xp": {ID: "double_xp", Item: "Double XP Powerup"},
		},
	}
}

func TestLookupItem_CaseInsensitive(t *testing.T) {
	cat := testCatalog()
	item, ok := LookupItem(cat, "  BRONZE ore ")
	if !ok {
		t.Fatal("expected Bronze Ore to be found")
	}
	if item.Name != "Bronze Ore" {
		t.Errorf("name = %q, want %q", item.Name, "Bronze Ore")
	}
	if _, ok := LookupItem(cat, "Dragon Ore"); ok {
		t.Error("Dragon Ore should not be found")
	}
}

func TestUnlocks(t *testing.T) {
	u := Unlocks(testCatalog())
	if got := u[skill.Mining][5]; got != "Iron rocks" {
		t.Errorf("mining unlock at 5 = %q, want %q", got, "Iron rocks")
	}
	if got := u[skill.Crafting][1]; got != "Bronze equipment" {
		t.Errorf("crafting unlock at 1 = %q, want %q", got, "Bronze equipment")
	}
	if got := u[skill.Magic][5]; got != "Iron alchemy" {
		t.Errorf("magic unlock at 5 = %q, want %q", got, "Iron alchemy")
	}
}

func TestTierForItem(t *testing.T) {
	cat := testCatalog()
	tier, ok := TierForItem(cat, "Iron Pickaxe")
	if !ok || tier.Name != "Iron" {
		t.Errorf("TierForItem(Iron Pickaxe) = %q, %v; want Iron, true", tier.Name, ok)
	}
	if _, ok := TierForItem(cat, "Ironwood Log"); ok {
		t.Error("Ironwood Log should not match a tier")
	}
}

func TestRareDropNames_Distinct(t *testing.T) {
	got := RareDropNames(testCatalog())
	want := []string{"Mining Pet", "Owl", "Crafting Pet"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RareDropNames = %v, want %v", got, want)
	}
}

func TestPowerupByName(t *testing.T) {
	cat := testCatalog()
	for _, name := range []string{"double_xp", "Double XP Powerup", "double xp powerup"} {
		p, ok := PowerupByName(cat, name)
		if !ok || p.ID != "double_xp" {
			t.Errorf("PowerupByName(%q) = %q, %v", name, p.ID, ok)
		}
	}
	if _, ok := PowerupByName(cat, "triple_xp"); ok {
		t.Error("triple_xp should not resolve")
	}
}

func TestRocksByLevel(t *testing.T) {
	rocks := RocksByLevel(testCatalog())
	if len(rocks) != 2 || rocks[0].ID != "bronze" || rocks[1].ID != "iron" {
		t.Errorf("RocksByLevel order = %v", rocks)
	}
}

func TestNewPlayer(t *testing.T) {
	p := NewPlayer(testCatalog(), "Tester", 28)
	if p.Inventory.Capacity() != 28 {
		t.Errorf("inventory capacity = %d, want 28", p.Inventory.Capacity())
	}
	if p.Skills.Level(skill.Mining) != 1 {
		t.Errorf("mining level = %d, want 1", p.Skills.Level(skill.Mining))
	}
	if _, err := p.Skills.Get(skill.Magic); err == nil {
		t.Error("magic skill should not exist for a catalog without it")
	}
	if HasPowerup(p, "double_xp") {
		t.Error("fresh player should have no active powerups")
	}
}

func TestSpendCharges(t *testing.T) {
	p := NewPlayer(testCatalog(), "Tester", 28)
	p.Powerups["double_xp"] = 2

	if expired := SpendCharges(p); len(expired) != 0 {
		t.Errorf("first spend expired %v, want none", expired)
	}
	if !HasPowerup(p, "double_xp") {
		t.Error("double_xp should still be active")
	}
	expired := SpendCharges(p)
	if len(expired) != 1 || expired[0] != "double_xp" {
		t.Errorf("second spend expired %v, want [double_xp]", expired)
	}
	if got := ActivePowerups(p); len(got) != 0 {
		t.Errorf("ActivePowerups = %v, want none", got)
	}
}
