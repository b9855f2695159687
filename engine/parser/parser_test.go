package parser

import (
	"testing"

	"github.com/nathoo/oreforge/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Intent
	}{
		// Empty / whitespace
		{
			name:  "empty string",
			input: "",
			want:  types.Intent{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  types.Intent{},
		},

		// Basic verbs (no object)
		{
			name:  "inventory",
			input: "inventory",
			want:  types.Intent{Verb: "inventory"},
		},
		{
			name:  "i → inventory",
			input: "i",
			want:  types.Intent{Verb: "inventory"},
		},
		{
			name:  "stats → skills",
			input: "stats",
			want:  types.Intent{Verb: "skills"},
		},

		// Counts
		{
			name:  "trailing count",
			input: "mine iron 10",
			want:  types.Intent{Verb: "mine", Object: "iron", Count: 10},
		},
		{
			name:  "leading count",
			input: "mine 5 iron",
			want:  types.Intent{Verb: "mine", Object: "iron", Count: 5},
		},
		{
			name:  "x-prefixed count",
			input: "mine iron x25",
			want:  types.Intent{Verb: "mine", Object: "iron", Count: 25},
		},
		{
			name:  "all",
			input: "deposit all Bronze Ore",
			want:  types.Intent{Verb: "deposit", Object: "Bronze Ore", Count: All},
		},
		{
			name:  "lone number is the object",
			input: "mine 10",
			want:  types.Intent{Verb: "mine", Object: "10"},
		},

		// Object casing is preserved, verb is not
		{
			name:  "case preserved",
			input: "CRAFT Bronze Ring 3",
			want:  types.Intent{Verb: "craft", Object: "Bronze Ring", Count: 3},
		},

		// Prepositions and articles
		{
			name:  "deposit to bank",
			input: "deposit Bronze Ore to bank",
			want:  types.Intent{Verb: "deposit", Object: "Bronze Ore"},
		},
		{
			name:  "withdraw from the bank",
			input: "withdraw 5 Iron Ore from the bank",
			want:  types.Intent{Verb: "withdraw", Object: "Iron Ore", Count: 5},
		},
		{
			name:  "article stripped",
			input: "equip the Iron Pickaxe",
			want:  types.Intent{Verb: "equip", Object: "Iron Pickaxe"},
		},

		// Multi-word verbs
		{
			name:  "list rocks",
			input: "list rocks",
			want:  types.Intent{Verb: "rocks"},
		},
		{
			name:  "show recipes",
			input: "show recipes",
			want:  types.Intent{Verb: "recipes"},
		},
		{
			name:  "take off",
			input: "take off ring",
			want:  types.Intent{Verb: "unequip", Object: "ring"},
		},
		{
			name:  "high alch",
			input: "high alch Bronze Ring 10",
			want:  types.Intent{Verb: "alch", Object: "Bronze Ring", Count: 10},
		},
		{
			name:  "collection log",
			input: "collection log",
			want:  types.Intent{Verb: "collection"},
		},

		// Aliases
		{
			name:  "use → activate",
			input: "use double_xp",
			want:  types.Intent{Verb: "activate", Object: "double_xp"},
		},
		{
			name:  "take → withdraw",
			input: "take Iron Ore",
			want:  types.Intent{Verb: "withdraw", Object: "Iron Ore"},
		},

		// Typo correction
		{
			name:  "crat → craft",
			input: "crat bronze ring",
			want:  types.Intent{Verb: "craft", Object: "bronze ring"},
		},
		{
			name:  "depost → deposit",
			input: "depost Owl",
			want:  types.Intent{Verb: "deposit", Object: "Owl"},
		},
		{
			name:  "unknown verb kept",
			input: "xyzzy",
			want:  types.Intent{Verb: "xyzzy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			got.Text = ""
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_KeepsUnsplitText(t *testing.T) {
	tests := []struct {
		input  string
		object string
		count  int
		text   string
	}{
		{"activate 5x Ore Chance Powerup", "Ore Chance Powerup", 5, "5x Ore Chance Powerup"},
		{"withdraw 2 5x Ore Chance Powerup", "5x Ore Chance Powerup", 2, "2 5x Ore Chance Powerup"},
		{"deposit the 5x ore chance powerup to bank", "ore chance powerup", 5, "5x ore chance powerup"},
		{"mine iron 10", "iron", 10, "iron 10"},
		{"mine iron", "iron", 0, "iron"},
	}
	for _, tt := range tests {
		got := Parse(tt.input)
		if got.Object != tt.object || got.Count != tt.count || got.Text != tt.text {
			t.Errorf("Parse(%q) = %+v, want object %q count %d text %q",
				tt.input, got, tt.object, tt.count, tt.text)
		}
	}
}

func TestKnown(t *testing.T) {
	if !Known("mine") {
		t.Error("mine should be known")
	}
	if Known("dig") {
		t.Error("aliases are not verbs")
	}
}
