// Package config loads the TOML configuration, applies environment
// overrides and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvConfig    = "OREFORGE_CONFIG"
	EnvSeed      = "OREFORGE_SEED"
	EnvContent   = "OREFORGE_CONTENT"
	EnvLogLevel  = "OREFORGE_LOG_LEVEL"
	EnvLogFormat = "OREFORGE_LOG_FORMAT"
	EnvPacing    = "OREFORGE_PACING"
)

type Config struct {
	Game    Game    `toml:"game"`
	Economy Economy `toml:"economy"`
	Pacing  Pacing  `toml:"pacing"`
	Logging Logging `toml:"logging"`
}

type Game struct {
	Content    string `toml:"content"` // directory of *.lua; empty uses the embedded catalog
	Seed       int64  `toml:"seed"`    // 0 picks a time-based seed
	PlayerName string `toml:"player_name" validate:"required,max=32"`
}

type Economy struct {
	InventorySlots int            `toml:"inventory_slots" validate:"min=1,max=1000"`
	BankSlots      int            `toml:"bank_slots" validate:"min=1,max=10000"`
	PowerupCharges int            `toml:"powerup_charges" validate:"min=1"`
	StartingGold   int            `toml:"starting_gold" validate:"min=0"`
	StartingItems  []StartingItem `toml:"starting_items" validate:"dive"`
}

// StartingItem is placed in the bank when a session starts.
type StartingItem struct {
	Name     string `toml:"name" validate:"required"`
	Quantity int    `toml:"quantity" validate:"min=1"`
}

type Pacing struct {
	Enabled bool    `toml:"enabled"`
	Scale   float64 `toml:"scale" validate:"min=0,max=1"` // multiplies the simulated seconds
}

type Logging struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=console json off"`
	Output string `toml:"output"` // a path, "stderr" or "stdout"
}

// Load builds the configuration: defaults, then the TOML file at path (if
// any), then environment overrides. A .env file in the working directory is
// read first when present.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the config path from flag, falling back to OREFORGE_CONFIG.
func Path(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(EnvConfig)
}

func defaults() *Config {
	return &Config{
		Game: Game{
			PlayerName: "Adventurer",
		},
		Economy: Economy{
			InventorySlots: 28,
			BankSlots:      1000,
			PowerupCharges: 10,
		},
		Pacing: Pacing{
			Enabled: true,
			Scale:   0.1,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
	}
}

func applyEnv(cfg *Config) error {
	if v := getEnv(EnvSeed, ""); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Game.Seed = seed
	}
	cfg.Game.Content = getEnv(EnvContent, cfg.Game.Content)
	cfg.Logging.Level = strings.ToLower(getEnv(EnvLogLevel, cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(getEnv(EnvLogFormat, cfg.Logging.Format))
	if v := getEnv(EnvPacing, ""); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPacing, err)
		}
		cfg.Pacing.Enabled = on
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Validate checks cfg against its struct tags. Every failing field is
// reported as "<Field> failed <tag>".
func Validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", e.Namespace(), e.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
