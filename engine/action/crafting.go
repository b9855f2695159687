package action

import (
	"fmt"

	"github.com/nathoo/oreforge/engine/skill"
	"github.com/nathoo/oreforge/engine/state"
	"github.com/nathoo/oreforge/types"
)

const (
	craftSeconds      = 1.5
	craftBatchSeconds = 0.5
)

// Crafting resolves recipes into crafted item outcomes.
type Crafting struct {
	*Resolver[types.RecipeDef]
	cat *state.Catalog
}

// NewCrafting builds a crafting resolver over the catalog recipes.
func NewCrafting(cat *state.Catalog, src Source) *Crafting {
	recipes := make([]types.RecipeDef, 0, len(cat.Recipes))
	for _, r := range cat.Recipes {
		recipes = append(recipes, r)
	}
	return &Crafting{
		Resolver: NewResolver(skill.Crafting, recipes, cat.RareDrops[skill.Crafting], src),
		cat:      cat,
	}
}

// Affordable returns how many times recipe can be made from the available
// materials: the minimum over every required material.
func Affordable(recipe types.RecipeDef, available func(material string) int) int {
	best := -1
	for _, m := range recipe.Materials {
		if m.Quantity <= 0 {
			continue
		}
		n := available(m.Name) / m.Quantity
		if best < 0 || n < best {
			best = n
		}
	}
	if best < 0 {
		return MaxCount
	}
	return best
}

// Resolve crafts itemKey up to count times. The count is clamped to [1, 100]
// and then lowered to what the materials allow. The effective count is
// returned so the caller can remove exactly that many material sets; the
// resolver never touches the materials itself.
func (c *Crafting) Resolve(itemKey string, level int, available func(material string) int, count int) ([]types.Outcome, int, error) {
	recipe, err := c.Lookup(itemKey, level)
	if err != nil {
		return nil, 0, err
	}
	n := ClampCount(count)

	can := Affordable(recipe, available)
	if can == 0 {
		return nil, 0, fmt.Errorf("%w: %s needs %s", ErrInsufficientMaterials, recipe.Name, describeMaterials(recipe.Materials))
	}
	n = min(n, can)

	item, ok := state.LookupItem(c.cat, recipe.Name)
	if !ok {
		item = types.NewPlainItem(recipe.Name, "", false)
	}
	outcomes := c.Run(recipe, n, func(r types.RecipeDef) types.Outcome {
		return types.Outcome{Item: item, Quantity: 1, XP: r.XP}
	})
	return outcomes, n, nil
}

// Plan returns crafting pacing for n items.
func (c *Crafting) Plan(n int) Plan {
	if n > 1 {
		return Plan{Count: n, PerAttempt: seconds(craftBatchSeconds), TimeModifier: 1}
	}
	return Plan{Count: n, PerAttempt: seconds(craftSeconds), TimeModifier: 1}
}

func describeMaterials(ms []types.Material) string {
	s := ""
	for i, m := range ms {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d %s per item", m.Quantity, m.Name)
	}
	return s
}
