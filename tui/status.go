package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/oreforge/engine"
	"github.com/nathoo/oreforge/engine/skill"
	"github.com/nathoo/oreforge/engine/state"
)

// status is a copy of what the status bar shows. It is taken on the Update
// goroutine between steps so View never reads engine state while a step runs.
type status struct {
	gold     int
	levels   []skillLevel
	used     int
	capacity int
	powerups []string
}

type skillLevel struct {
	name  string
	level int
}

func snapshot(eng *engine.Engine) status {
	p := eng.Player
	s := status{
		gold:     p.Gold,
		used:     p.Inventory.UsedSlots(),
		capacity: p.Inventory.Capacity(),
	}
	for _, sk := range p.Skills.All() {
		s.levels = append(s.levels, skillLevel{name: skill.Title(sk.Name), level: sk.Level()})
	}
	for _, id := range state.ActivePowerups(p) {
		s.powerups = append(s.powerups, fmt.Sprintf("%s(%d)", id, p.Powerups[id]))
	}
	return s
}

// left renders gold and levels: " 120 gp | Mining 5  Crafting 3  Magic 1".
func (s status) left() string {
	parts := make([]string, 0, len(s.levels))
	for _, l := range s.levels {
		parts = append(parts, fmt.Sprintf("%s %d", l.name, l.level))
	}
	return fmt.Sprintf(" %d gp | %s", s.gold, strings.Join(parts, "  "))
}

// right renders slots and powerups: "Inv 3/28 | double_xp(4) ".
func (s status) right() string {
	out := fmt.Sprintf("Inv %d/%d", s.used, s.capacity)
	if len(s.powerups) > 0 {
		out += " | " + strings.Join(s.powerups, " ")
	}
	return out + " "
}

// renderStatusBar produces a full-width inverted status line.
func (m Model) renderStatusBar() string {
	left := m.status.left()
	right := m.status.right()
	if m.busy {
		right = "working... | " + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
