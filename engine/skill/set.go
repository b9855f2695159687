package skill

import (
	"fmt"
	"sort"
)

// Skill IDs used throughout the engine.
const (
	Mining   = "mining"
	Crafting = "crafting"
	Magic    = "magic"
)

// Unlocks maps skill ID -> level -> unlock message.
type Unlocks map[string]map[int]string

// Set holds the player's skills in a fixed display order.
type Set struct {
	order   []string
	skills  map[string]*Skill
	unlocks Unlocks
}

// NewSet returns a set of level 1 skills named by ids.
func NewSet(unlocks Unlocks, ids ...string) *Set {
	s := &Set{skills: make(map[string]*Skill, len(ids)), unlocks: unlocks}
	for _, id := range ids {
		s.order = append(s.order, id)
		s.skills[id] = New(id)
	}
	return s
}

// Get returns the named skill.
func (s *Set) Get(id string) (*Skill, error) {
	sk, ok := s.skills[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSkill, id)
	}
	return sk, nil
}

// Level returns the level of id, or 1 for an unknown skill.
func (s *Set) Level(id string) int {
	if sk, ok := s.skills[id]; ok {
		return sk.Level()
	}
	return MinLevel
}

// Add applies int(amount*multiplier) experience to id. It returns the
// experience actually gained and whether the level rose.
func (s *Set) Add(id string, amount int, multiplier float64) (int, bool, error) {
	sk, err := s.Get(id)
	if err != nil {
		return 0, false, err
	}
	if multiplier <= 0 {
		multiplier = 1
	}
	gained := int(float64(amount) * multiplier)
	return gained, sk.AddExperience(gained), nil
}

// Unlocked returns the unlock messages for levels in (from, to], in order.
func (s *Set) Unlocked(id string, from, to int) []string {
	table := s.unlocks[id]
	if len(table) == 0 {
		return nil
	}
	var levels []int
	for lvl := range table {
		if lvl > from && lvl <= to {
			levels = append(levels, lvl)
		}
	}
	sort.Ints(levels)
	msgs := make([]string, 0, len(levels))
	for _, lvl := range levels {
		msgs = append(msgs, table[lvl])
	}
	return msgs
}

// All returns the skills in display order.
func (s *Set) All() []*Skill {
	out := make([]*Skill, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.skills[id])
	}
	return out
}
