// Package skill implements the experience and leveling model.
package skill

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Level bounds.
const (
	MinLevel = 1
	MaxLevel = 99
)

// ErrUnknownSkill is returned for skill names the Set does not track.
var ErrUnknownSkill = errors.New("unknown skill")

// Title returns name in title case ("mining" -> "Mining"). A Caser keeps
// state, so each call gets its own.
func Title(name string) string { return cases.Title(language.English).String(name) }

// LevelFor returns floor(1 + sqrt(xp/100)) clamped to [1, 99].
func LevelFor(xp int) int {
	if xp <= 0 {
		return MinLevel
	}
	level := int(math.Floor(1 + math.Sqrt(float64(xp)/100)))
	return max(MinLevel, min(MaxLevel, level))
}

// XPForLevel returns the experience needed to reach level.
func XPForLevel(level int) int {
	if level <= MinLevel {
		return 0
	}
	return (level - 1) * (level - 1) * 100
}

// Skill tracks accumulated experience. The level is always derived.
type Skill struct {
	Name string
	xp   int
}

// New returns a level 1 skill.
func New(name string) *Skill { return &Skill{Name: name} }

// AddExperience adds amount (ignored when negative) and reports whether the
// derived level rose.
func (s *Skill) AddExperience(amount int) bool {
	if amount <= 0 {
		return false
	}
	before := s.Level()
	s.xp += amount
	return s.Level() > before
}

// Experience returns the accumulated experience.
func (s *Skill) Experience() int { return s.xp }

// Level returns the level derived from experience.
func (s *Skill) Level() int { return LevelFor(s.xp) }

// Progress returns the percentage toward the next level, 100 at max level.
func (s *Skill) Progress() float64 {
	level := s.Level()
	if level >= MaxLevel {
		return 100
	}
	floor := XPForLevel(level)
	next := XPForLevel(level + 1)
	pct := float64(s.xp-floor) / float64(next-floor) * 100
	return min(100, pct)
}

func (s *Skill) String() string {
	if s.Level() >= MaxLevel {
		return fmt.Sprintf("%s: Level %d (%d XP, max level)", Title(s.Name), s.Level(), s.xp)
	}
	return fmt.Sprintf("%s: Level %d (%d XP, %.1f%% to next)", Title(s.Name), s.Level(), s.xp, s.Progress())
}
