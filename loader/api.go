package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Tier "Bronze" { level = 1, materials = 2, ... }
	curried(L, "Tier", func(name string, tbl *lua.LTable) {
		coll.tiers = append(coll.tiers, rawDef{name, tbl})
	})

	// Piece "Ring" { slot = "ring", cost = 1, ... }
	curried(L, "Piece", func(name string, tbl *lua.LTable) {
		coll.pieces = append(coll.pieces, rawDef{name, tbl})
	})

	// Rock "bronze" { name = "Bronze Rock", ... }
	curried(L, "Rock", func(name string, tbl *lua.LTable) {
		coll.rocks = append(coll.rocks, rawDef{name, tbl})
	})

	// Skill "mining" { name = "Mining", pet = "Mining Pet", ... }
	curried(L, "Skill", func(name string, tbl *lua.LTable) {
		coll.skills = append(coll.skills, rawDef{name, tbl})
	})

	// RareDrop "Butterfly" { chance = 1/350 }. Declaration order is roll order.
	curried(L, "RareDrop", func(name string, tbl *lua.LTable) {
		coll.rareDrops = append(coll.rareDrops, rawDef{name, tbl})
	})

	// Powerup "double_xp" { item = "Double XP Powerup", ... }
	curried(L, "Powerup", func(name string, tbl *lua.LTable) {
		coll.powerups = append(coll.powerups, rawDef{name, tbl})
	})

	// PetChance(0.00005): chance of each skill's pet, rolled before the
	// shared rare drops.
	L.SetGlobal("PetChance", L.NewFunction(func(L *lua.LState) int {
		coll.petChance = float64(L.CheckNumber(1))
		return 0
	}))
}

// curried registers Kind so that Kind("name") returns a function taking the
// definition table.
func curried(L *lua.LState, kind string, collect func(name string, tbl *lua.LTable)) {
	L.SetGlobal(kind, L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			collect(name, L.CheckTable(1))
			return 0
		}))
		return 1
	}))
}
