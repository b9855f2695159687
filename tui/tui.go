// Package tui provides a Bubble Tea terminal UI for the Oreforge engine.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/oreforge/cli"
	"github.com/nathoo/oreforge/engine"
	"github.com/nathoo/oreforge/engine/pacing"
	"github.com/nathoo/oreforge/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the Oreforge TUI.
type Model struct {
	engine *engine.Engine
	ctx    context.Context
	cancel context.CancelFunc

	viewport viewport.Model
	input    textinput.Model
	history  *history

	rawLines []rawLine // accumulated output lines (unstyled, for re-wrapping)
	status   status
	ticks    chan pacing.Tick

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	busy     bool // a step is running on its own goroutine
	lastCmd  string
}

// gameOutputMsg carries output produced outside a step into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// stepDoneMsg carries the result of a finished engine step.
type stepDoneMsg struct {
	result types.Result
}

// progressMsg is one pacing tick of the running step.
type progressMsg pacing.Tick

// New creates a TUI model wired to the given engine. The engine's pacer is
// replaced: delay maps simulated seconds to real waits and ticks stream into
// the viewport.
func New(ctx context.Context, eng *engine.Engine, delay func(time.Duration) time.Duration) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	ticks := make(chan pacing.Tick, 64)
	eng.SetPacer(pacing.Pacer{
		Delay: delay,
		OnTick: func(t pacing.Tick) {
			if t.Total <= 1 {
				return
			}
			select {
			case ticks <- t:
			default: // the UI is behind; drop the tick
			}
		},
	})

	ctx, cancel := context.WithCancel(ctx)
	return Model{
		engine:  eng,
		ctx:     ctx,
		cancel:  cancel,
		input:   ti,
		history: newHistory(100),
		status:  snapshot(eng),
		ticks:   ticks,
	}
}

// Run starts the Bubble Tea program.
func Run(ctx context.Context, eng *engine.Engine, delay func(time.Duration) time.Duration) error {
	m := New(ctx, eng, delay)
	defer m.cancel()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial commands: cursor blink, intro text and the
// progress listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput(), waitForTick(m.ticks))
}

func (m Model) initialOutput() tea.Cmd {
	game := m.engine.Catalog.Game
	return func() tea.Msg {
		lines := []string{fmt.Sprintf("%s v%s by %s", game.Title, game.Version, game.Author), ""}
		if game.Intro != "" {
			lines = append(lines, game.Intro)
		}
		return gameOutputMsg{lines: lines}
	}
}

// waitForTick blocks until the pacer reports progress.
func waitForTick(ticks <-chan pacing.Tick) tea.Cmd {
	return func() tea.Msg {
		t, ok := <-ticks
		if !ok {
			return nil
		}
		return progressMsg(t)
	}
}

// runStep executes one command off the Update goroutine so pacing delays do
// not freeze the UI.
func (m Model) runStep(input string) tea.Cmd {
	eng, ctx := m.engine, m.ctx
	return func() tea.Msg {
		return stepDoneMsg{result: eng.Step(ctx, input)}
	}
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := max(1, m.height-2) // 1 status bar + 1 input line

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			m.cancel()
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.prev(m.input.Value()); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)

	case progressMsg:
		m = m.appendProgress(pacing.Tick(msg))
		return m, waitForTick(m.ticks)

	case stepDoneMsg:
		m = m.drainTicks()
		m.busy = false
		output := msg.result.Output
		if m.trace {
			output = append(output, engine.TraceLines(msg.result)...)
		}
		m.status = snapshot(m.engine)
		m = m.appendOutput(gameOutputMsg{lines: output})
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}
	if m.busy {
		m = m.appendOutput(gameOutputMsg{lines: []string{"Still working, please wait."}, isSystem: true})
		return m, nil
	}
	m.input.SetValue("")

	m.history.push(input)

	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else if !strings.HasPrefix(input, "/") {
		m.lastCmd = input
	}

	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}
		return m, nil
	}

	m.rawLines = append(m.rawLines, rawLine{text: "> " + input, isInput: true})
	m.refreshViewport()
	m.busy = true
	return m, m.runStep(input)
}

// drainTicks appends ticks still buffered when a step finishes so they land
// before the step's result.
func (m Model) drainTicks() Model {
	for {
		select {
		case t := <-m.ticks:
			m = m.appendProgress(t)
		default:
			return m
		}
	}
}

func (m Model) appendProgress(t pacing.Tick) Model {
	m.rawLines = append(m.rawLines, rawLine{text: engine.ProgressLine(t), kind: kindProgress})
	m.refreshViewport()
	return m
}

// appendOutput adds lines to the log and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := max(10, m.width)

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Leading indentation is kept on the first line.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	indent := text[:len(text)-len(strings.TrimLeft(text, " "))]
	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(indent + word)
			lineLen = len(indent) + wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		help := append(cli.MetaHelp(), "")
		help = append(help, engine.HelpLines()...)
		return append(help,
			"  again (g)                 repeat your last command",
			"",
			"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
		), false

	case "/state":
		return m.engine.StateLines(), false

	case "/seed":
		return []string{m.engine.SeedLine()}, false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
