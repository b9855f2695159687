// Package types defines the shared data structures for the oreforge engine.
// Apart from a handful of constructors and small helpers this package holds
// only type definitions.
package types

import "strings"

// ItemKind tags the Item variant.
type ItemKind int

const (
	KindPlain ItemKind = iota
	KindEquipment
)

func (k ItemKind) String() string {
	if k == KindEquipment {
		return "equipment"
	}
	return "plain"
}

// EquipSlot names one of the four equipment slots.
type EquipSlot string

const (
	SlotRing     EquipSlot = "ring"
	SlotMainHand EquipSlot = "main_hand"
	SlotOffHand  EquipSlot = "off_hand"
	SlotCape     EquipSlot = "cape"
)

// EquipSlots lists every slot in display order.
var EquipSlots = []EquipSlot{SlotRing, SlotMainHand, SlotOffHand, SlotCape}

// ParseEquipSlot accepts "main_hand", "main hand" or "Main-Hand" style names.
func ParseEquipSlot(s string) (EquipSlot, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	for _, slot := range EquipSlots {
		if string(slot) == norm {
			return slot, true
		}
	}
	return "", false
}

// Bonuses maps a bonus name (mining_speed, extra_ore_chance) to a multiplier.
type Bonuses map[string]float64

// Well-known bonus keys.
const (
	BonusMiningSpeed    = "mining_speed"
	BonusExtraOreChance = "extra_ore_chance"
)

// Add returns the element-wise sum of b and other. Neither input is modified.
func (b Bonuses) Add(other Bonuses) Bonuses {
	out := make(Bonuses, len(b)+len(other))
	for k, v := range b {
		out[k] += v
	}
	for k, v := range other {
		out[k] += v
	}
	return out
}

// EquipSpec carries the equipment-only fields of an Item.
type EquipSpec struct {
	Slot     EquipSlot
	LevelReq int
	Skill    string // skill ID the requirement applies to; empty means crafting
	Bonuses  Bonuses
}

// Item is an immutable item value. Kind selects the variant: equipment items
// carry a non-nil Equip and are never stackable.
type Item struct {
	Kind        ItemKind
	Name        string
	Description string
	Stackable   bool
	Equip       *EquipSpec
}

// NewPlainItem returns a plain item.
func NewPlainItem(name, description string, stackable bool) *Item {
	return &Item{Kind: KindPlain, Name: name, Description: description, Stackable: stackable}
}

// NewEquipmentItem returns a non-stackable equipment item.
func NewEquipmentItem(name, description string, slot EquipSlot, levelReq int, bonuses Bonuses) *Item {
	return &Item{
		Kind:        KindEquipment,
		Name:        name,
		Description: description,
		Equip:       &EquipSpec{Slot: slot, LevelReq: levelReq, Bonuses: bonuses},
	}
}

// Slot is one cell of a container. Quantity > 0 iff Item is non-nil.
type Slot struct {
	Item     *Item
	Quantity int
}

// Empty reports whether the slot holds nothing.
func (s Slot) Empty() bool { return s.Item == nil }

// Outcome is the result of a single action attempt.
type Outcome struct {
	Item     *Item // nil for alchemy
	Quantity int
	XP       int
	Gold     int
	RareDrop string // empty when nothing rare was found
}

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb   string
	Object string // optional
	Count  int    // 0 when the command gave no count
	Text   string // object words before any count was split off
}

// Effect types.
const (
	EffectGiveItem    = "give_item"
	EffectGiveRare    = "give_rare"
	EffectAddGold     = "add_gold"
	EffectAddXP       = "add_xp"
	EffectRecordCraft = "record_craft"
)

// Effect is a single atomic state mutation instruction.
type Effect struct {
	Type       string
	Item       *Item
	Name       string
	Skill      string
	Quantity   int
	Amount     int
	Multiplier float64
}

// Event types.
const (
	EventInventoryFull = "inventory_full"
	EventRareDrop      = "rare_drop"
	EventRareLost      = "rare_lost"
	EventItemCrafted   = "item_crafted"
	EventXPGained      = "xp_gained"
	EventLevelUp       = "level_up"
	EventGoldGained    = "gold_gained"
)

// Event is emitted after effects are applied.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Effects []Effect
	Events  []Event
	Output  []string
}

// Material is one crafting input.
type Material struct {
	Name     string
	Quantity int
}

// RareDrop is one entry of an ordered rare-drop table.
type RareDrop struct {
	Name   string
	Chance float64
}

// TierDef describes a progression bracket.
type TierDef struct {
	Name      string
	Level     int
	Materials int     // ore cost of a one-cost piece
	XP        int     // crafting xp of a one-xp piece
	Bonus     float64 // equipment bonus base
	Gold      int     // alchemy value of a one-gold piece
	Color     string  // cape colour
}

// PieceDef describes one kind of craftable equipment, expanded per tier.
type PieceDef struct {
	Name  string
	Slot  EquipSlot
	Cost  int
	XP    int
	Speed float64 // mining_speed = tier bonus * Speed
	Extra float64 // extra_ore_chance = tier bonus * Extra
	Gold  int
}

// RockDef is a mineable rock.
type RockDef struct {
	ID       string // "bronze"
	Name     string
	LevelReq int
	Ore      string
	BaseTime float64 // seconds
	BaseXP   int
}

// RecipeDef is a craftable item and its inputs.
type RecipeDef struct {
	Name      string
	LevelReq  int
	Materials []Material
	XP        int
	Tier      string
}

// AlchemyDef is an item that can be turned into gold.
type AlchemyDef struct {
	Name     string
	LevelReq int
	Gold     int
}

// SkillDef describes one of the player's skills.
type SkillDef struct {
	ID   string // "mining"
	Name string // "Mining"
	Pet  string
	Cape string
}

// PowerupDef is an activatable powerup.
type PowerupDef struct {
	ID          string // "double_xp"
	Item        string // "Double XP Powerup"
	Description string
}

// GameDef holds game metadata.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Intro   string
}

// Key, DisplayName and Requirement let definitions share one resolver.

func (r RockDef) Key() string         { return r.ID }
func (r RockDef) DisplayName() string { return r.Name }
func (r RockDef) Requirement() int    { return r.LevelReq }

func (r RecipeDef) Key() string         { return r.Name }
func (r RecipeDef) DisplayName() string { return r.Name }
func (r RecipeDef) Requirement() int    { return r.LevelReq }

func (a AlchemyDef) Key() string         { return a.Name }
func (a AlchemyDef) DisplayName() string { return a.Name }
func (a AlchemyDef) Requirement() int    { return a.LevelReq }
