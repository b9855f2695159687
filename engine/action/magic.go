package action

import (
	"github.com/nathoo/oreforge/engine/skill"
	"github.com/nathoo/oreforge/engine/state"
	"github.com/nathoo/oreforge/types"
)

const (
	alchSeconds      = 0.8
	alchBatchSeconds = 0.15
)

// Magic resolves alchemy casts into gold outcomes.
type Magic struct {
	*Resolver[types.AlchemyDef]
}

// NewMagic builds a magic resolver over the catalog alchemy values.
func NewMagic(cat *state.Catalog, src Source) *Magic {
	defs := make([]types.AlchemyDef, 0, len(cat.Alchemy))
	for _, a := range cat.Alchemy {
		defs = append(defs, a)
	}
	return &Magic{Resolver: NewResolver(skill.Magic, defs, cat.RareDrops[skill.Magic], src)}
}

// Resolve alchemizes itemKey count times. Experience equals the gold value.
func (m *Magic) Resolve(itemKey string, level int, count int) ([]types.Outcome, error) {
	def, err := m.Lookup(itemKey, level)
	if err != nil {
		return nil, err
	}
	return m.Run(def, count, func(a types.AlchemyDef) types.Outcome {
		return types.Outcome{Gold: a.Gold, XP: a.Gold}
	}), nil
}

// Value returns the gold value of itemKey and whether it can be alchemized
// at all, ignoring level.
func (m *Magic) Value(itemKey string) (int, bool) {
	def, err := m.Lookup(itemKey, skill.MaxLevel)
	if err != nil {
		return 0, false
	}
	return def.Gold, true
}

// Plan returns alchemy pacing for n casts.
func (m *Magic) Plan(n int) Plan {
	if n > 1 {
		return Plan{Count: n, PerAttempt: seconds(alchBatchSeconds), TimeModifier: 1}
	}
	return Plan{Count: n, PerAttempt: seconds(alchSeconds), TimeModifier: 1}
}
