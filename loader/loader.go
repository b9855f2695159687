package loader

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/nathoo/oreforge/engine/state"
)

// rawDef is a curried constructor call: Kind "name" { ... }.
type rawDef struct {
	name  string
	table *lua.LTable
}

// collector accumulates Lua definitions during file execution.
type collector struct {
	game      *lua.LTable
	tiers     []rawDef
	pieces    []rawDef
	rocks     []rawDef
	skills    []rawDef
	rareDrops []rawDef
	powerups  []rawDef
	petChance float64

	// filled by compile: item names declared more than once
	collisions []string
}

// Load reads all .lua files from dir. See LoadFS.
func Load(dir string, logger *zap.Logger) (*state.Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir), logger)
}

// LoadFS runs every .lua file at the root of fsys in a sandboxed VM,
// compiles the collected definitions into a Catalog and validates it. The
// Lua VM is discarded after loading.
func LoadFS(fsys fs.FS, logger *zap.Logger) (*state.Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in content")
	}

	// Sort: game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		src, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		if err := L.DoString(string(src)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
		logger.Debug("content loaded", zap.String("file", f), zap.Int("bytes", len(src)))
	}

	cat, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling content: %w", err)
	}
	if err := validate(cat, coll, logger); err != nil {
		return nil, err
	}

	logger.Info("catalog ready",
		zap.String("title", cat.Game.Title),
		zap.Int("tiers", len(cat.Tiers)),
		zap.Int("rocks", len(cat.Rocks)),
		zap.Int("recipes", len(cat.Recipes)),
		zap.Int("items", len(cat.Items)))
	return cat, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the VM or break determinism.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring", "require", "module",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
