package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/nathoo/oreforge/content"
	"github.com/nathoo/oreforge/engine"
	"github.com/nathoo/oreforge/loader"
)

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	cat, err := loader.LoadFS(content.FS, nil)
	if err != nil {
		t.Fatalf("loading content: %v", err)
	}
	eng := engine.New(cat, engine.WithSeed(7))
	var out bytes.Buffer
	c := &CLI{
		Engine: eng,
		In:     strings.NewReader(input),
		Out:    &out,
	}
	return c, &out
}

func TestCLI_Intro(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Run(context.Background())

	output := out.String()
	if !strings.Contains(output, "You arrive at the quarry") {
		t.Error("expected intro text in output")
	}
	if !strings.Contains(output, "[Goodbye.]") {
		t.Error("expected goodbye system line")
	}
}

func TestCLI_BasicGameplay(t *testing.T) {
	c, out := newTestCLI(t, "rocks\nmine bronze\ninventory\n/quit\n")
	c.Run(context.Background())

	output := out.String()
	for _, want := range []string{
		"Available rocks to mine:",
		"Mining Bronze Rock...",
		"Gained",
		"Inventory (",
		"1. Bronze Ore",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestCLI_ErrorsAreSentences(t *testing.T) {
	c, out := newTestCLI(t, "mine king\n/quit\n")
	c.Run(context.Background())

	if !strings.Contains(out.String(), "King Rock needs level 95, you are level 1.") {
		t.Errorf("expected level requirement message, got:\n%s", out.String())
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	c.Run(context.Background())

	output := out.String()
	for _, want := range []string{"/quit", "/seed", "/trace", "mine <rock>", "again (g)"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in help output", want)
		}
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/bogus\n/quit\n")
	c.Run(context.Background())

	if !strings.Contains(out.String(), "[Unknown command: /bogus.") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nmine bronze\n/trace\nmine bronze\n/quit\n")
	c.Run(context.Background())

	output := out.String()
	if !strings.Contains(output, "Trace output enabled") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "Trace output disabled") {
		t.Error("expected trace disabled message")
	}
	if n := strings.Count(output, "[trace]   give_item Bronze Ore"); n != 1 {
		t.Errorf("give_item trace lines = %d, want 1", n)
	}
	if !strings.Contains(output, "[trace]   add_xp mining") {
		t.Error("expected add_xp trace line")
	}
}

func TestCLI_StateAndSeed(t *testing.T) {
	c, out := newTestCLI(t, "mine bronze\n/state\n/seed\n/quit\n")
	c.Run(context.Background())

	output := out.String()
	for _, want := range []string{"[Session: ", "[Turns: 1]", "[Gold: 0]", "[Seed: 7 (position "} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestCLI_EmptyInputAndComments(t *testing.T) {
	c, out := newTestCLI(t, "\n# a comment\n\n/quit\n")
	c.Run(context.Background())

	output := out.String()
	if strings.Contains(output, "What do you want to do?") {
		t.Error("empty lines should be silently skipped by CLI")
	}
	if strings.Contains(output, "I don't know how") {
		t.Error("comment lines should be skipped")
	}
	if c.Engine.Turns != 0 {
		t.Errorf("Turns = %d, want 0", c.Engine.Turns)
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, "skills\n/quit\n")
	c.EchoInput = true
	c.Run(context.Background())

	if !strings.Contains(out.String(), "> skills\n") {
		t.Errorf("expected echoed input, got:\n%s", out.String())
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	for _, again := range []string{"again", "g"} {
		t.Run(again, func(t *testing.T) {
			c, out := newTestCLI(t, "mine bronze\n"+again+"\n/quit\n")
			c.Run(context.Background())

			if n := strings.Count(out.String(), "Mining Bronze Rock..."); n != 2 {
				t.Errorf("mined %d times, want 2", n)
			}
			if got := c.Engine.CommandLog(); len(got) != 2 || got[1] != "mine bronze" {
				t.Errorf("command log = %v", got)
			}
		})
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\n")
	c.Run(context.Background())

	if !strings.Contains(out.String(), "Nothing to repeat") {
		t.Error("expected 'Nothing to repeat' when no prior command")
	}
}

func TestCLI_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, out := newTestCLI(t, "mine bronze\n")
	c.Run(ctx)

	if strings.Contains(out.String(), "Mining") {
		t.Error("cancelled context should stop the loop before any command")
	}
}
