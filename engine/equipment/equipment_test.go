package equipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/oreforge/types"
)

func TestEquip_EmptySlot(t *testing.T) {
	e := New()
	ring := types.NewEquipmentItem("Bronze Ring", "", types.SlotRing, 1, types.Bonuses{types.BonusMiningSpeed: 0.025})

	prev, err := e.Equip(ring)
	require.NoError(t, err)
	assert.Nil(t, prev)
	assert.Same(t, ring, e.Get(types.SlotRing))
}

func TestEquip_EvictsPrevious(t *testing.T) {
	e := New()
	bronze := types.NewEquipmentItem("Bronze Pickaxe", "", types.SlotMainHand, 1, nil)
	iron := types.NewEquipmentItem("Iron Pickaxe", "", types.SlotMainHand, 5, nil)

	_, _ = e.Equip(bronze)
	prev, err := e.Equip(iron)
	require.NoError(t, err)
	assert.Same(t, bronze, prev)
	assert.Same(t, iron, e.Get(types.SlotMainHand))
}

func TestEquip_RejectsPlainItem(t *testing.T) {
	e := New()
	_, err := e.Equip(types.NewPlainItem("Bronze Ore", "", true))
	assert.ErrorIs(t, err, ErrNotEquipment)
	_, err = e.Equip(nil)
	assert.ErrorIs(t, err, ErrNotEquipment)
}

func TestUnequip(t *testing.T) {
	e := New()
	cape := types.NewEquipmentItem("Bronze Cape (Brown)", "", types.SlotCape, 1, nil)
	_, _ = e.Equip(cape)

	assert.Same(t, cape, e.Unequip(types.SlotCape))
	assert.Nil(t, e.Get(types.SlotCape))
	assert.Nil(t, e.Unequip(types.SlotCape))
}

func TestBonuses_Sum(t *testing.T) {
	e := New()
	_, _ = e.Equip(types.NewEquipmentItem("Iron Pickaxe", "", types.SlotMainHand, 5,
		types.Bonuses{types.BonusMiningSpeed: 0.10, types.BonusExtraOreChance: 0.05}))
	_, _ = e.Equip(types.NewEquipmentItem("Iron Chisel", "", types.SlotOffHand, 5,
		types.Bonuses{types.BonusMiningSpeed: 0.03, types.BonusExtraOreChance: 0.10}))

	b := e.Bonuses()
	assert.InDelta(t, 0.13, b[types.BonusMiningSpeed], 1e-9)
	assert.InDelta(t, 0.15, b[types.BonusExtraOreChance], 1e-9)
	assert.Empty(t, New().Bonuses())
}

func TestEach_SlotOrder(t *testing.T) {
	e := New()
	var got []types.EquipSlot
	e.Each(func(s types.EquipSlot, _ *types.Item) { got = append(got, s) })
	assert.Equal(t, types.EquipSlots, got)
}
