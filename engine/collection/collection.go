// Package collection tracks crafted items, rare drops and achievements.
package collection

import (
	"fmt"
	"sort"
	"strings"
)

// Log records everything the player has collected.
type Log struct {
	crafted      map[string]int
	rareDrops    map[string]int
	achievements map[string]bool

	tiers      []string // crafted items are grouped by tier name prefix
	totalItems int      // denominator for Completion
}

// New returns an empty log. tiers orders the crafted-item display; totalItems
// is the number of distinct collectable entries.
func New(tiers []string, totalItems int) *Log {
	return &Log{
		crafted:      map[string]int{},
		rareDrops:    map[string]int{},
		achievements: map[string]bool{},
		tiers:        tiers,
		totalItems:   totalItems,
	}
}

// AddCrafted records n crafted items and reports whether the entry is new.
func (l *Log) AddCrafted(name string, n int) bool {
	_, seen := l.crafted[name]
	l.crafted[name] += n
	return !seen
}

// AddRareDrop records one rare drop and reports whether the entry is new.
func (l *Log) AddRareDrop(name string) bool {
	_, seen := l.rareDrops[name]
	l.rareDrops[name]++
	return !seen
}

// AddAchievement records an achievement and reports whether it is new.
func (l *Log) AddAchievement(name string) bool {
	if l.achievements[name] {
		return false
	}
	l.achievements[name] = true
	return true
}

func (l *Log) HasCrafted(name string) bool     { _, ok := l.crafted[name]; return ok }
func (l *Log) HasRareDrop(name string) bool    { _, ok := l.rareDrops[name]; return ok }
func (l *Log) HasAchievement(name string) bool { return l.achievements[name] }

// CraftedCount returns how many of name have been crafted.
func (l *Log) CraftedCount(name string) int { return l.crafted[name] }

// RareDropCount returns how many of name have been found.
func (l *Log) RareDropCount(name string) int { return l.rareDrops[name] }

// Completion returns the percentage of unique entries collected.
func (l *Log) Completion() float64 {
	if l.totalItems <= 0 {
		return 0
	}
	got := len(l.crafted) + len(l.rareDrops)
	return min(100, float64(got)/float64(l.totalItems)*100)
}

// Lines renders the log for display.
func (l *Log) Lines() []string {
	out := []string{fmt.Sprintf("Collection Log (%.1f%% complete):", l.Completion())}

	out = append(out, "", "Crafted Items:")
	if len(l.crafted) == 0 {
		out = append(out, "  None")
	} else {
		groups := map[string][]string{}
		for name, n := range l.crafted {
			tier := l.tierOf(name)
			groups[tier] = append(groups[tier], fmt.Sprintf("    %s x%d", name, n))
		}
		for _, tier := range append(append([]string{}, l.tiers...), "Other") {
			entries := groups[tier]
			if len(entries) == 0 {
				continue
			}
			sort.Strings(entries)
			out = append(out, "  "+tier+":")
			out = append(out, entries...)
		}
	}

	out = append(out, "", "Rare Drops:")
	if len(l.rareDrops) == 0 {
		out = append(out, "  None")
	} else {
		var pets, creatures []string
		for name, n := range l.rareDrops {
			line := fmt.Sprintf("    %s x%d", name, n)
			if strings.Contains(name, "Pet") {
				pets = append(pets, line)
			} else {
				creatures = append(creatures, line)
			}
		}
		for _, g := range []struct {
			title   string
			entries []string
		}{{"Pets", pets}, {"Creatures", creatures}} {
			if len(g.entries) == 0 {
				continue
			}
			sort.Strings(g.entries)
			out = append(out, "  "+g.title+":")
			out = append(out, g.entries...)
		}
	}

	out = append(out, "", "Achievements:")
	if len(l.achievements) == 0 {
		out = append(out, "  None")
	} else {
		names := make([]string, 0, len(l.achievements))
		for a := range l.achievements {
			names = append(names, a)
		}
		sort.Strings(names)
		for _, a := range names {
			out = append(out, "  "+a)
		}
	}
	return out
}

func (l *Log) tierOf(name string) string {
	lower := strings.ToLower(name)
	for _, t := range l.tiers {
		if strings.HasPrefix(lower, strings.ToLower(t)+" ") {
			return t
		}
	}
	return "Other"
}
