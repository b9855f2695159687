package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvConfig, EnvSeed, EnvContent, EnvLogLevel, EnvLogFormat, EnvPacing} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oreforge.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Adventurer", cfg.Game.PlayerName)
	assert.Equal(t, 28, cfg.Economy.InventorySlots)
	assert.Equal(t, 1000, cfg.Economy.BankSlots)
	assert.Equal(t, 10, cfg.Economy.PowerupCharges)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Zero(t, cfg.Game.Seed)
	assert.Empty(t, cfg.Game.Content)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[game]
seed = 42
player_name = "Miner"

[economy]
inventory_slots = 10
starting_gold = 100

[[economy.starting_items]]
name = "Double XP Powerup"
quantity = 2

[pacing]
enabled = false

[logging]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, "Miner", cfg.Game.PlayerName)
	assert.Equal(t, 10, cfg.Economy.InventorySlots)
	assert.Equal(t, 1000, cfg.Economy.BankSlots, "unset keys keep defaults")
	assert.Equal(t, 100, cfg.Economy.StartingGold)
	require.Len(t, cfg.Economy.StartingItems, 1)
	assert.Equal(t, StartingItem{Name: "Double XP Powerup", Quantity: 2}, cfg.Economy.StartingItems[0])
	assert.False(t, cfg.Pacing.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[game]\nseed = 1\n")
	t.Setenv(EnvSeed, "99")
	t.Setenv(EnvContent, "/tmp/content")
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvLogFormat, "off")
	t.Setenv(EnvPacing, "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Game.Seed)
	assert.Equal(t, "/tmp/content", cfg.Game.Content)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "off", cfg.Logging.Format)
	assert.False(t, cfg.Pacing.Enabled)
}

func TestLoad_BadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSeed, "abc")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvSeed)

	clearEnv(t)
	t.Setenv(EnvPacing, "maybe")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPacing)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")

	_, err = Load(writeConfig(t, "[game\nseed ="))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"inventory too small", func(c *Config) { c.Economy.InventorySlots = 0 }, "InventorySlots failed min"},
		{"bank too big", func(c *Config) { c.Economy.BankSlots = 20000 }, "BankSlots failed max"},
		{"no charges", func(c *Config) { c.Economy.PowerupCharges = 0 }, "PowerupCharges failed min"},
		{"negative gold", func(c *Config) { c.Economy.StartingGold = -5 }, "StartingGold failed min"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "Level failed oneof"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "Format failed oneof"},
		{"scale", func(c *Config) { c.Pacing.Scale = 2 }, "Scale failed max"},
		{"no name", func(c *Config) { c.Game.PlayerName = "" }, "PlayerName failed required"},
		{
			"starting item quantity",
			func(c *Config) { c.Economy.StartingItems = []StartingItem{{Name: "Bronze Ore"}} },
			"Quantity failed min",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.modify(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	assert.NoError(t, Validate(defaults()))
}

func TestPath(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, "", Path(""))
	t.Setenv(EnvConfig, "env.toml")
	assert.Equal(t, "env.toml", Path(""))
	assert.Equal(t, "flag.toml", Path("flag.toml"))
}
