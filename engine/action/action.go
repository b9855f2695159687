// Package action resolves batched skill actions into reward outcomes.
//
// Mining, crafting and magic share one generic Resolver parameterized by the
// definition type. A resolver never mutates player state: it validates the
// request, rolls every attempt up front and returns the outcomes for the
// caller to apply.
package action

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/nathoo/oreforge/engine/skill"
	"github.com/nathoo/oreforge/types"
)

// Batch limits.
const (
	MinCount = 1
	MaxCount = 100
)

var (
	ErrUnknownAction         = errors.New("unknown action")
	ErrInsufficientLevel     = errors.New("insufficient level")
	ErrInsufficientMaterials = errors.New("insufficient materials")
)

// Source supplies uniform samples in [0, 1).
type Source interface {
	Float64() float64
}

// Definition is a catalog entry a Resolver can look up.
type Definition interface {
	Key() string
	DisplayName() string
	Requirement() int
}

// Plan describes simulated pacing for a resolved batch.
type Plan struct {
	Name         string
	Count        int
	PerAttempt   time.Duration
	TimeModifier float64 // mining only; 1 elsewhere
}

// ClampCount clamps a requested repeat count to [1, 100].
func ClampCount(n int) int {
	return max(MinCount, min(MaxCount, n))
}

// Resolver looks up definitions of one skill and runs batched attempts.
type Resolver[D Definition] struct {
	skill string
	defs  map[string]D
	names []string
	drops []types.RareDrop
	src   Source
}

// NewResolver indexes defs by lower-cased key and display name.
func NewResolver[D Definition](skill string, defs []D, drops []types.RareDrop, src Source) *Resolver[D] {
	r := &Resolver[D]{
		skill: skill,
		defs:  make(map[string]D, len(defs)*2),
		drops: drops,
		src:   src,
	}
	for _, d := range defs {
		r.defs[strings.ToLower(d.Key())] = d
		r.defs[strings.ToLower(d.DisplayName())] = d
		r.names = append(r.names, d.DisplayName())
	}
	sort.Strings(r.names)
	return r
}

// Skill returns the skill ID the resolver serves.
func (r *Resolver[D]) Skill() string { return r.skill }

func (r *Resolver[D]) verb() string {
	switch r.skill {
	case skill.Mining:
		return "mine"
	case skill.Crafting:
		return "craft"
	case skill.Magic:
		return "alchemize"
	}
	return "use"
}

// Lookup finds name (case-insensitively) and checks the level requirement.
func (r *Resolver[D]) Lookup(name string, level int) (D, error) {
	var zero D
	d, ok := r.defs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		if s := r.Suggest(name); s != "" {
			return zero, fmt.Errorf("%w: you can't %s %q, did you mean %q?", ErrUnknownAction, r.verb(), name, s)
		}
		return zero, fmt.Errorf("%w: you can't %s %q", ErrUnknownAction, r.verb(), name)
	}
	if level < d.Requirement() {
		return zero, fmt.Errorf("%w: %s needs level %d, you are level %d",
			ErrInsufficientLevel, d.DisplayName(), d.Requirement(), level)
	}
	return d, nil
}

// Available returns the definitions usable at level, sorted by requirement.
func (r *Resolver[D]) Available(level int) []D {
	seen := map[string]bool{}
	var out []D
	for _, d := range r.defs {
		if d.Requirement() > level || seen[d.DisplayName()] {
			continue
		}
		seen[d.DisplayName()] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Requirement() != out[j].Requirement() {
			return out[i].Requirement() < out[j].Requirement()
		}
		return out[i].DisplayName() < out[j].DisplayName()
	})
	return out
}

// Suggest returns the closest known name to input, or "" if nothing is close.
func (r *Resolver[D]) Suggest(input string) string {
	in := strings.ToLower(strings.TrimSpace(input))
	if len(in) < 3 {
		return ""
	}
	best, bestDist := "", -1
	for _, name := range r.names {
		dist := levenshtein.ComputeDistance(in, strings.ToLower(name))
		if dist > levenshteinLimit(len(name)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = name, dist
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// Run performs count attempts (clamped to [1, 100]) eagerly. After each
// attempt it rolls the rare-drop table once.
func (r *Resolver[D]) Run(def D, count int, attempt func(D) types.Outcome) []types.Outcome {
	n := ClampCount(count)
	out := make([]types.Outcome, 0, n)
	for i := 0; i < n; i++ {
		o := attempt(def)
		o.RareDrop = RollRareDrop(r.src, r.drops)
		out = append(out, o)
	}
	return out
}

// RollRareDrop walks table in order drawing one sample per entry and returns
// the first entry whose sample falls below its chance. Later entries are not
// rolled once one hits.
func RollRareDrop(src Source, table []types.RareDrop) string {
	for _, d := range table {
		if src.Float64() < d.Chance {
			return d.Name
		}
	}
	return ""
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
