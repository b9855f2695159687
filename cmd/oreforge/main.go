// Oreforge is a text-based mining, crafting and alchemy game.
// Usage: oreforge [--version] [--plain] [--trace] [--verbose] [--script <file>]
//
//	[--config <file>] [--content <dir>] [--seed <n>]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/nathoo/oreforge/cli"
	"github.com/nathoo/oreforge/config"
	"github.com/nathoo/oreforge/content"
	"github.com/nathoo/oreforge/engine"
	"github.com/nathoo/oreforge/engine/pacing"
	"github.com/nathoo/oreforge/engine/state"
	"github.com/nathoo/oreforge/loader"
	"github.com/nathoo/oreforge/logging"
	"github.com/nathoo/oreforge/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("oreforge", pflag.ContinueOnError)
	showVersion := flags.Bool("version", false, "print the version and exit")
	plain := flags.Bool("plain", false, "use the line-oriented interface")
	trace := flags.Bool("trace", false, "print effect and event traces")
	verbose := flags.Bool("verbose", false, "keep info and debug logs on a terminal")
	script := flags.String("script", "", "play commands from a file")
	cfgPath := flags.String("config", "", "TOML config file (default $"+config.EnvConfig+")")
	contentDir := flags.String("content", "", "directory of Lua content (default: embedded)")
	seed := flags.Int64("seed", 0, "random seed (0 picks one from the clock)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Printf("oreforge %s (commit %s, built %s)\n", version, commit, date)
		return nil
	}

	cfg, err := config.Load(config.Path(*cfgPath))
	if err != nil {
		return err
	}
	if flags.Changed("content") {
		cfg.Game.Content = *contentDir
	}
	if flags.Changed("seed") {
		cfg.Game.Seed = *seed
	}
	if cfg.Game.Seed == 0 {
		cfg.Game.Seed = time.Now().UnixNano()
	}

	useCLI := *plain || *script != "" || !isatty.IsTerminal(os.Stdout.Fd())
	quietConsole(&cfg.Logging, useCLI, *verbose, isatty.IsTerminal(os.Stderr.Fd()))

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cat, err := loadCatalog(cfg.Game.Content, logger)
	if err != nil {
		return fmt.Errorf("loading game: %w", err)
	}

	eng, err := newEngine(cat, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("session started",
		zap.String("title", cat.Game.Title),
		zap.Int64("seed", cfg.Game.Seed),
		zap.Bool("cli", useCLI))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var delay func(time.Duration) time.Duration
	if cfg.Pacing.Enabled {
		delay = pacing.Scaled(cfg.Pacing.Scale)
	}

	if *script != "" {
		f, err := os.Open(*script)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		printBanner(cat)
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Trace = *trace
		c.Run(ctx)
		return nil
	}

	if useCLI {
		printBanner(cat)
		eng.SetPacer(pacing.Pacer{Delay: delay})
		c := cli.New(eng)
		c.Trace = *trace
		c.Run(ctx)
		return nil
	}

	return tui.Run(ctx, eng, delay)
}

// quietConsole keeps logs from mixing with game text on a terminal. The TUI
// turns console logging off since it would draw over the alternate screen;
// the plain CLI only shows warnings and errors unless verbose is set.
func quietConsole(cfg *config.Logging, useCLI, verbose, terminal bool) {
	if cfg.Output != "stderr" && cfg.Output != "stdout" {
		return
	}
	if !useCLI {
		cfg.Format = "off"
		return
	}
	if terminal && !verbose && (cfg.Level == "debug" || cfg.Level == "info") {
		cfg.Level = "warn"
	}
}

func loadCatalog(dir string, logger *zap.Logger) (*state.Catalog, error) {
	if dir == "" {
		return loader.LoadFS(content.FS, logger)
	}
	return loader.Load(dir, logger)
}

// newEngine builds the session engine and applies the configured starting
// gold and bank stock.
func newEngine(cat *state.Catalog, cfg *config.Config, logger *zap.Logger) (*engine.Engine, error) {
	eng := engine.New(cat,
		engine.WithSeed(cfg.Game.Seed),
		engine.WithLogger(logger),
		engine.WithSession(uuid.New()),
		engine.WithPlayerName(cfg.Game.PlayerName),
		engine.WithInventorySize(cfg.Economy.InventorySlots),
		engine.WithBankSize(cfg.Economy.BankSlots),
		engine.WithPowerupCharges(cfg.Economy.PowerupCharges),
	)
	eng.Player.Gold = cfg.Economy.StartingGold
	for _, it := range cfg.Economy.StartingItems {
		if err := eng.Stock(it.Name, it.Quantity); err != nil {
			return nil, fmt.Errorf("starting item %q: %w", it.Name, err)
		}
	}
	return eng, nil
}

func printBanner(cat *state.Catalog) {
	fmt.Printf("%s v%s by %s\n\n", cat.Game.Title, cat.Game.Version, cat.Game.Author)
}
