package loader

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/nathoo/oreforge/engine/state"
)

// compileString runs src in a fresh VM and compiles the result.
func compileString(t *testing.T, src string) (*state.Catalog, *collector) {
	t.Helper()
	L, coll := newTestVM()
	defer L.Close()
	if err := L.DoString(src); err != nil {
		t.Fatal(err)
	}
	cat, err := compile(coll)
	if err != nil {
		t.Fatal(err)
	}
	return cat, coll
}

const validSrc = `
	Game { title = "Test" }
	Tier "Tin" { level = 1, materials = 2, xp = 10, bonus = 0.1, gold = 4, color = "Silver" }
	Piece "Ring" { slot = "ring", cost = 1, xp = 1, speed = 0.5, extra = 0.3, gold = 1 }
	Rock "tin" { name = "Tin Rock", level = 1, ore = "Tin Ore", time = 2, xp = 5 }
	Skill "mining" {}
	Skill "crafting" {}
	Skill "magic" {}
`

func TestValidate_Valid(t *testing.T) {
	cat, coll := compileString(t, validSrc)
	if err := validate(cat, coll, zap.NewNop()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "missing title",
			src:  strings.Replace(validSrc, `Game { title = "Test" }`, `Game {}`, 1),
			want: "Game.title is required",
		},
		{
			name: "no tiers",
			src: `Game { title = "T" }
				Rock "tin" { name = "Tin Rock", level = 1, ore = "Tin Ore", time = 2, xp = 5 }
				Skill "mining" {} Skill "crafting" {} Skill "magic" {}`,
			want: "at least one Tier is required",
		},
		{
			name: "duplicate rock",
			src:  validSrc + `Rock "TIN" { name = "Tin Rock", level = 1, ore = "Tin Ore", time = 2, xp = 5 }`,
			want: `duplicate rock "TIN"`,
		},
		{
			name: "unknown slot",
			src:  validSrc + `Piece "Boots" { slot = "feet", cost = 1 }`,
			want: `piece "Boots": unknown slot "feet"`,
		},
		{
			name: "tier without rock",
			src:  validSrc + `Tier "Lead" { level = 5, materials = 2, xp = 10, bonus = 0.1, gold = 4, color = "Gray" }`,
			want: `tier "Lead" needs "Lead Ore" but no rock yields it`,
		},
		{
			name: "zero chance",
			src:  validSrc + `RareDrop "Moth" { chance = 0 }`,
			want: `rare drop "Moth": chance 0 outside (0, 1]`,
		},
		{
			name: "pet chance too high",
			src:  validSrc + `PetChance(1.5)`,
			want: "PetChance: chance 1.5 outside (0, 1]",
		},
		{
			name: "missing skill",
			src:  strings.Replace(validSrc, `Skill "magic" {}`, "", 1),
			want: `skill "magic" is required`,
		},
		{
			name: "rock time",
			src:  validSrc + `Rock "slow" { name = "Slow Rock", level = 1, ore = "Tin Ore", time = 0, xp = 1 }`,
			want: `rock "slow": time must be positive`,
		},
		{
			name: "powerup without item",
			src:  validSrc + `Powerup "double_xp" {}`,
			want: `powerup "double_xp": item is required`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, coll := compileString(t, tt.src)
			err := validate(cat, coll, zap.NewNop())
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestValidate_WarningsDoNotFail(t *testing.T) {
	src := validSrc + `Rock "clay" { name = "Clay Pit", level = 1, ore = "Clay", time = 1, xp = 1 }`
	cat, coll := compileString(t, src)
	if err := validate(cat, coll, zap.NewNop()); err != nil {
		t.Fatalf("warnings must not fail validation: %v", err)
	}
}

func TestValidationError_Format(t *testing.T) {
	ve := &ValidationError{Errors: []string{"a", "b"}}
	want := "validation failed with 2 error(s):\n  a\n  b"
	if ve.Error() != want {
		t.Errorf("Error() = %q, want %q", ve.Error(), want)
	}
}
