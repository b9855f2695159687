package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNotification = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	styleLevelUp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	styleRareDrop = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213")).
			Bold(true)

	styleProgress = lipgloss.NewStyle().
			Foreground(lipgloss.Color("109"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNotification lineKind = iota
	kindSystem
	kindError
	kindTrace
	kindLevelUp
	kindRareDrop
	kindProgress
)

var errorPrefixes = []string{
	"You don't have",
	"You can't",
	"You need",
	"Your inventory is full",
	"Your bank is full",
	"Unknown",
	"Insufficient",
	"I don't know",
	"Nothing equipped",
	"There is no",
}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "Progress:"):
		return kindProgress
	case strings.HasPrefix(line, "Congratulations!"),
		strings.HasPrefix(line, "Unlocked:"),
		strings.HasPrefix(line, "New achievement:"):
		return kindLevelUp
	case strings.HasPrefix(line, "You found"),
		strings.HasPrefix(line, "New collection log entry:"):
		return kindRareDrop
	case hasAnyPrefix(line, errorPrefixes), strings.Contains(line, "needs level"):
		return kindError
	default:
		return kindNotification
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	case kindLevelUp:
		return styleLevelUp.Render(line)
	case kindRareDrop:
		return styleRareDrop.Render(line)
	case kindProgress:
		return styleProgress.Render(line)
	default:
		return styleNotification.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
