// Package engine provides the economy orchestrator. Step() wires together
// parsing, action resolution, pacing, effects and events into a single turn;
// the typed operations (Mine, Craft, Alchemize, ...) are the same turn without
// the parser.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nathoo/oreforge/engine/action"
	"github.com/nathoo/oreforge/engine/collection"
	"github.com/nathoo/oreforge/engine/container"
	"github.com/nathoo/oreforge/engine/effects"
	"github.com/nathoo/oreforge/engine/events"
	"github.com/nathoo/oreforge/engine/pacing"
	"github.com/nathoo/oreforge/engine/parser"
	"github.com/nathoo/oreforge/engine/skill"
	"github.com/nathoo/oreforge/engine/state"
	"github.com/nathoo/oreforge/types"
)

var (
	ErrContainerFull  = errors.New("container full")
	ErrNotInInventory = errors.New("not in inventory")
	ErrNotInBank      = errors.New("not in bank")
	ErrNotEquippable  = errors.New("not equippable")
	ErrUnknownSlot    = errors.New("unknown equipment slot")
	ErrSlotEmpty      = errors.New("nothing equipped")
	ErrUnknownItem    = errors.New("unknown item")
	ErrUnknownPowerup = errors.New("unknown powerup")
	ErrNoPowerup      = errors.New("no powerup to activate")
)

// Powerup IDs the engine reacts to.
const (
	PowerupFasterMining = "faster_mining"
	PowerupDoubleXP     = "double_xp"
	PowerupFiveXOre     = "chance_5x_ore"
)

// DefaultPowerupCharges is how many actions one activation lasts.
const DefaultPowerupCharges = 10

// Engine owns the player, the bank and the resolvers for one session.
type Engine struct {
	Catalog *state.Catalog
	Player  *state.Player
	Bank    *container.Container
	Log     *collection.Log
	RNG     *RNG // nil when a custom source was injected
	Session uuid.UUID
	Turns   int

	mining   *action.Mining
	crafting *action.Crafting
	magic    *action.Magic

	pacer      pacing.Pacer
	logger     *zap.Logger
	charges    int
	commandLog []string
}

type options struct {
	src        action.Source
	seed       int64
	logger     *zap.Logger
	pacer      pacing.Pacer
	invSize    int
	bankSize   int
	charges    int
	session    uuid.UUID
	playerName string
}

// Option configures an Engine.
type Option func(*options)

// WithSeed seeds the engine RNG.
func WithSeed(seed int64) Option { return func(o *options) { o.seed = seed } }

// WithSource replaces the engine RNG with src.
func WithSource(src action.Source) Option { return func(o *options) { o.src = src } }

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option { return func(o *options) { o.logger = l } }

// WithPacer sets the pacing used for batched actions.
func WithPacer(p pacing.Pacer) Option { return func(o *options) { o.pacer = p } }

// WithInventorySize overrides the inventory capacity.
func WithInventorySize(n int) Option { return func(o *options) { o.invSize = n } }

// WithBankSize overrides the bank capacity.
func WithBankSize(n int) Option { return func(o *options) { o.bankSize = n } }

// WithPowerupCharges sets how many actions an activated powerup lasts.
func WithPowerupCharges(n int) Option { return func(o *options) { o.charges = n } }

// WithSession sets the session ID reported in logs.
func WithSession(id uuid.UUID) Option { return func(o *options) { o.session = id } }

// WithPlayerName sets the player's display name.
func WithPlayerName(name string) Option { return func(o *options) { o.playerName = name } }

// New creates an engine over an immutable catalog.
func New(cat *state.Catalog, opts ...Option) *Engine {
	o := options{
		invSize:    container.InventorySize,
		bankSize:   container.BankSize,
		charges:    DefaultPowerupCharges,
		playerName: "Adventurer",
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.session == uuid.Nil {
		o.session = uuid.New()
	}

	var rng *RNG
	src := o.src
	if src == nil {
		rng = NewRNG(o.seed)
		src = rng
	}

	tiers := make([]string, 0, len(cat.Tiers))
	for _, t := range cat.Tiers {
		tiers = append(tiers, t.Name)
	}

	return &Engine{
		Catalog:  cat,
		Player:   state.NewPlayer(cat, o.playerName, o.invSize),
		Bank:     container.NewBank(o.bankSize),
		Log:      collection.New(tiers, len(cat.Recipes)+len(state.RareDropNames(cat))),
		RNG:      rng,
		Session:  o.session,
		mining:   action.NewMining(cat, src),
		crafting: action.NewCrafting(cat, src),
		magic:    action.NewMagic(cat, src),
		pacer:    o.pacer,
		logger:   o.logger.With(zap.String("session", o.session.String())),
		charges:  max(1, o.charges),
	}
}

// SetPacer replaces the pacing used for batched actions.
func (e *Engine) SetPacer(p pacing.Pacer) { e.pacer = p }

// CommandLog returns every command passed to Step.
func (e *Engine) CommandLog() []string { return e.commandLog }

// Step processes one player command and returns the result. Errors are
// rendered into the output; Step never fails.
func (e *Engine) Step(ctx context.Context, input string) types.Result {
	var result types.Result

	intent := e.namedObject(parser.Parse(input))
	e.commandLog = append(e.commandLog, input)
	e.logger.Debug("command", zap.String("input", input), zap.String("verb", intent.Verb),
		zap.String("object", intent.Object), zap.Int("count", intent.Count))

	if intent.Verb == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}
	e.Turns++

	var err error
	switch intent.Verb {
	case "mine":
		if intent.Object == "" {
			result.Output = append(result.Output, "Mine what? Try 'rocks' to see what you can mine.")
			return result
		}
		result, err = e.Mine(ctx, intent.Object, batchCount(intent.Count))
	case "craft":
		if intent.Object == "" {
			result.Output = append(result.Output, "Craft what? Try 'recipes' to see what you can make.")
			return result
		}
		result, err = e.Craft(ctx, intent.Object, batchCount(intent.Count))
	case "alch":
		if intent.Object == "" {
			result.Output = append(result.Output, "Alchemize what? Try 'alchables' to see what you can alchemize.")
			return result
		}
		result, err = e.Alchemize(ctx, intent.Object, intent.Count)
	case "deposit":
		result, err = e.Deposit(intent.Object, intent.Count)
	case "withdraw":
		result, err = e.Withdraw(intent.Object, intent.Count)
	case "equip":
		result, err = e.Equip(intent.Object)
	case "unequip":
		result, err = e.Unequip(intent.Object)
	case "activate":
		result, err = e.Activate(intent.Object)
	case "rocks":
		result.Output = e.RockLines()
	case "recipes":
		result.Output = e.RecipeLines()
	case "alchables":
		result.Output = e.AlchemyLines()
	case "inventory":
		result.Output = ContainerLines("Inventory", e.Player.Inventory)
	case "bank":
		result.Output = ContainerLines("Bank", e.Bank)
	case "equipment":
		result.Output = e.EquipmentLines()
	case "skills":
		result.Output = e.SkillLines()
	case "status":
		result.Output = e.StatusLines()
	case "collection":
		result.Output = e.Log.Lines()
	case "help":
		result.Output = HelpLines()
	default:
		result.Output = append(result.Output, fmt.Sprintf("I don't know how to %q. Type 'help' for commands.", intent.Verb))
	}

	if err != nil {
		result.Output = append(result.Output, Sentence(err))
		e.logger.Info("action failed", zap.String("verb", intent.Verb), zap.Error(err))
	}
	return result
}

// namedObject undoes the count split when the unsplit text names a catalog
// item or powerup, so "activate 5x Ore Chance Powerup" keeps its "5x".
func (e *Engine) namedObject(in types.Intent) types.Intent {
	if in.Text == "" || in.Text == in.Object {
		return in
	}
	_, item := state.LookupItem(e.Catalog, in.Text)
	_, powerup := state.PowerupByName(e.Catalog, in.Text)
	if item || powerup {
		in.Object, in.Count = in.Text, 0
	}
	return in
}

// batchCount maps a parsed count to a batch size; "all" means the maximum.
func batchCount(n int) int {
	if n == parser.All {
		return action.MaxCount
	}
	return n
}

// Mine resolves count attempts on rock and applies the ore to the inventory,
// stopping at the first attempt that does not fit.
func (e *Engine) Mine(ctx context.Context, rock string, count int) (types.Result, error) {
	var res types.Result
	p := e.Player
	level := p.Skills.Level(skill.Mining)
	fiveX := state.HasPowerup(p, PowerupFiveXOre)

	plan, outcomes, err := e.mining.Resolve(rock, level, p.Equipment.Bonuses(),
		state.HasPowerup(p, PowerupFasterMining), fiveX, count)
	if err != nil {
		return res, err
	}
	if plan.Count > 1 {
		res.Output = append(res.Output, fmt.Sprintf("Mining %d %s...", plan.Count, plan.Name))
	} else {
		res.Output = append(res.Output, fmt.Sprintf("Mining %s...", plan.Name))
	}
	e.pace(ctx, &res, plan)

	if plan.Count == 1 && fiveX && len(outcomes) == 1 && outcomes[0].Quantity == 5 {
		res.Output = append(res.Output, "You found 5x ore!")
	}
	applied, placed, xp := e.applyOutcomes(&res, skill.Mining, outcomes, false)
	e.logger.Info("mined", zap.String("rock", plan.Name), zap.Int("count", plan.Count),
		zap.Int("applied", applied), zap.Int("ore", placed), zap.Int("xp", xp))

	if placed > 0 {
		res.Output = append(res.Output, fmt.Sprintf("You mined %d %s.", placed, outcomes[0].Item.Name))
	}
	e.finishAction(&res, skill.Mining, xp, applied)

	if applied < len(outcomes) {
		return res, e.overflow("inventory has no room for more ore", applied, len(outcomes))
	}
	return res, nil
}

// Craft resolves count items, removes exactly the materials for the effective
// count and applies the crafted items, stopping at the first that does not
// fit. Materials are never removed before the effective count is known, and
// nothing is rolled back after an early stop.
func (e *Engine) Craft(ctx context.Context, item string, count int) (types.Result, error) {
	var res types.Result
	p := e.Player
	level := p.Skills.Level(skill.Crafting)

	outcomes, n, err := e.crafting.Resolve(item, level, p.Inventory.Count, count)
	if err != nil {
		return res, err
	}
	recipe, err := e.crafting.Lookup(item, level)
	if err != nil {
		return res, err
	}
	if n < action.ClampCount(count) {
		res.Output = append(res.Output, fmt.Sprintf("You only have enough materials to craft %d %s.", n, recipe.Name))
	}
	for _, m := range recipe.Materials {
		p.Inventory.Remove(m.Name, m.Quantity*n)
	}

	if n > 1 {
		res.Output = append(res.Output, fmt.Sprintf("Crafting %d %s...", n, recipe.Name))
	} else {
		res.Output = append(res.Output, fmt.Sprintf("Crafting %s...", recipe.Name))
	}
	e.pace(ctx, &res, e.crafting.Plan(n))

	applied, placed, xp := e.applyOutcomes(&res, skill.Crafting, outcomes, true)
	e.logger.Info("crafted", zap.String("item", recipe.Name), zap.Int("count", n),
		zap.Int("applied", applied), zap.Int("xp", xp))

	if placed > 0 {
		res.Output = append(res.Output, fmt.Sprintf("You crafted %d %s.", placed, recipe.Name))
	}
	e.finishAction(&res, skill.Crafting, xp, applied)

	if applied < len(outcomes) {
		return res, e.overflow("inventory has no room for more crafted items", applied, len(outcomes))
	}
	return res, nil
}

// Alchemize turns up to count of item into gold. The count is limited to what
// the inventory holds; the level is checked before anything is removed.
func (e *Engine) Alchemize(ctx context.Context, item string, count int) (types.Result, error) {
	var res types.Result
	p := e.Player
	level := p.Skills.Level(skill.Magic)

	available := p.Inventory.Count(item)
	if available == 0 {
		return res, fmt.Errorf("%w: you don't have any %s", ErrNotInInventory, item)
	}
	n := action.ClampCount(count)
	if count == parser.All {
		n = action.ClampCount(available)
	}
	if available < n {
		res.Output = append(res.Output, fmt.Sprintf("You only have %d %s in your inventory.", available, item))
		n = available
	}

	outcomes, err := e.magic.Resolve(item, level, n)
	if err != nil {
		return res, err
	}
	name := p.Inventory.Find(item).Name
	p.Inventory.Remove(item, n)

	if n > 1 {
		res.Output = append(res.Output, fmt.Sprintf("Alchemizing %d %s...", n, name))
	} else {
		res.Output = append(res.Output, fmt.Sprintf("Alchemizing %s...", name))
	}
	e.pace(ctx, &res, e.magic.Plan(n))

	gold, xp := 0, 0
	for _, o := range outcomes {
		gold += o.Gold
		xp += o.XP
		if o.RareDrop != "" {
			e.apply(&res, []types.Effect{{Type: types.EffectGiveRare, Name: o.RareDrop}})
		}
	}
	res.Output = append(res.Output, fmt.Sprintf("You alchemized %d %s for a total of %d gold.", n, name, gold))
	e.apply(&res, []types.Effect{{Type: types.EffectAddGold, Amount: gold}})
	e.logger.Info("alchemized", zap.String("item", name), zap.Int("count", n),
		zap.Int("gold", gold), zap.Int("xp", xp))
	e.finishAction(&res, skill.Magic, xp, len(outcomes))
	return res, nil
}

// applyOutcomes applies outcomes in order and stops at the first whose item
// does not fit. It returns how many outcomes were applied, the total quantity
// placed and the experience earned by the applied outcomes.
func (e *Engine) applyOutcomes(res *types.Result, skillID string, outcomes []types.Outcome, crafted bool) (applied, placed, xp int) {
	for _, o := range outcomes {
		effs := []types.Effect{{Type: types.EffectGiveItem, Item: o.Item, Quantity: o.Quantity}}
		if crafted {
			effs = append(effs, types.Effect{Type: types.EffectRecordCraft, Name: o.Item.Name, Quantity: o.Quantity})
		}
		if o.RareDrop != "" {
			effs = append(effs, types.Effect{Type: types.EffectGiveRare, Name: o.RareDrop})
		}
		if e.apply(res, effs) {
			e.logger.Warn("inventory full", zap.String("skill", skillID),
				zap.Int("applied", applied), zap.Int("attempts", len(outcomes)))
			break
		}
		applied++
		placed += o.Quantity
		xp += o.XP
	}
	return applied, placed, xp
}

// finishAction grants experience (doubled under double XP) and spends one
// powerup charge when anything was applied.
func (e *Engine) finishAction(res *types.Result, skillID string, xp, applied int) {
	mult := 1.0
	if state.HasPowerup(e.Player, PowerupDoubleXP) {
		mult = 2.0
	}
	if xp > 0 {
		e.apply(res, []types.Effect{{Type: types.EffectAddXP, Skill: skillID, Amount: xp, Multiplier: mult}})
	}
	if applied == 0 {
		return
	}
	for _, id := range state.SpendCharges(e.Player) {
		name := id
		if def, ok := e.Catalog.Powerups[id]; ok {
			name = def.Item
		}
		res.Output = append(res.Output, fmt.Sprintf("Your %s has worn off.", name))
	}
}

// apply runs effects and events for one step and reports whether the effects
// halted on a full inventory.
func (e *Engine) apply(res *types.Result, effs []types.Effect) bool {
	evs, halted := effects.Apply(e.Player, e.Catalog, effs)
	if halted {
		effs = effs[:1]
	}
	res.Effects = append(res.Effects, effs...)
	res.Events = append(res.Events, evs...)
	res.Output = append(res.Output, events.Dispatch(evs, e.Log, e.Player, e.Catalog)...)

	for _, ev := range evs {
		switch ev.Type {
		case types.EventLevelUp:
			e.logger.Info("level up", zap.Any("skill", ev.Data["skill"]), zap.Any("level", ev.Data["to"]))
		case types.EventRareDrop:
			e.logger.Info("rare drop", zap.Any("name", ev.Data["name"]))
		}
	}
	return halted
}

// pace runs the pacer for plan. When no tick callback is configured the
// progress lines are collected into the result instead.
func (e *Engine) pace(ctx context.Context, res *types.Result, plan action.Plan) {
	p := e.pacer
	if p.OnTick == nil && plan.Count > 1 {
		p.OnTick = func(t pacing.Tick) {
			res.Output = append(res.Output, ProgressLine(t))
		}
	}
	start := time.Now()
	if err := p.Run(ctx, plan.Count, plan.PerAttempt); err != nil {
		e.logger.Debug("pacing interrupted", zap.Error(err))
	}
	e.logger.Debug("paced", zap.Int("count", plan.Count),
		zap.Duration("per_attempt", plan.PerAttempt), zap.Duration("elapsed", time.Since(start)))
}

func (e *Engine) overflow(what string, applied, total int) error {
	return fmt.Errorf("%w: %s (stopped after %d of %d)", ErrContainerFull, what, applied, total)
}

// ProgressLine renders a pacing tick.
func ProgressLine(t pacing.Tick) string {
	return fmt.Sprintf("Progress: %.1f%% (%d/%d)", t.Percent, t.Done, t.Total)
}
