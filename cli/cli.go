// Package cli provides line-oriented terminal I/O and meta-command dispatch
// for the Oreforge engine.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/oreforge/engine"
	"github.com/nathoo/oreforge/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run shows the intro and then loops: prompt, input, dispatch, output. It
// returns when input ends, /quit is entered or ctx is cancelled.
func (c *CLI) Run(ctx context.Context) {
	if intro := c.Engine.Catalog.Game.Intro; intro != "" {
		c.printLine(intro)
		c.printLine("")
	}

	scanner := bufio.NewScanner(c.In)
	for ctx.Err() == nil {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(ctx, input)
		c.printResult(result)
		if c.Trace {
			c.printTrace(result)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		for _, line := range c.Engine.StateLines() {
			c.printSystem(line)
		}

	case "/seed":
		c.printSystem(c.Engine.SeedLine())

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	for _, line := range MetaHelp() {
		c.printLine(line)
	}
	c.printLine("")
	for _, line := range engine.HelpLines() {
		c.printLine(line)
	}
	c.printLine("  again (g)                 repeat your last command")
}

// MetaHelp lists the meta-commands shared by the terminal front ends.
func MetaHelp() []string {
	return []string{
		"System:",
		"  /quit    exit the game",
		"  /help    show this help",
		"  /state   dump the session state",
		"  /seed    show the random seed",
		"  /trace   toggle effect and event trace output",
	}
}

func (c *CLI) printTrace(result types.Result) {
	for _, line := range engine.TraceLines(result) {
		c.printLine(line)
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
