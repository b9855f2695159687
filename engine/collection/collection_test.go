package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddCrafted(t *testing.T) {
	l := New([]string{"Bronze", "Iron"}, 10)

	assert.True(t, l.AddCrafted("Bronze Ring", 1))
	assert.False(t, l.AddCrafted("Bronze Ring", 2))
	assert.Equal(t, 3, l.CraftedCount("Bronze Ring"))
	assert.True(t, l.HasCrafted("Bronze Ring"))
	assert.False(t, l.HasCrafted("Iron Ring"))
}

func TestAddRareDrop(t *testing.T) {
	l := New(nil, 10)

	assert.True(t, l.AddRareDrop("Owl"))
	assert.False(t, l.AddRareDrop("Owl"))
	assert.Equal(t, 2, l.RareDropCount("Owl"))
	assert.True(t, l.HasRareDrop("Owl"))
}

func TestAddAchievement(t *testing.T) {
	l := New(nil, 0)
	assert.True(t, l.AddAchievement("Mining Mastery"))
	assert.False(t, l.AddAchievement("Mining Mastery"))
	assert.True(t, l.HasAchievement("Mining Mastery"))
}

func TestCompletion(t *testing.T) {
	l := New(nil, 4)
	assert.Equal(t, 0.0, l.Completion())

	l.AddCrafted("Bronze Ring", 5)
	l.AddRareDrop("Bat")
	l.AddRareDrop("Bat")
	l.AddAchievement("ignored")
	assert.Equal(t, 50.0, l.Completion())

	assert.Equal(t, 0.0, New(nil, 0).Completion())
}

func TestLines(t *testing.T) {
	l := New([]string{"Bronze", "Iron"}, 4)
	l.AddCrafted("Iron Ring", 1)
	l.AddCrafted("Bronze Pickaxe", 2)
	l.AddRareDrop("Mining Pet")
	l.AddRareDrop("Owl")

	want := []string{
		"Collection Log (100.0% complete):",
		"",
		"Crafted Items:",
		"  Bronze:",
		"    Bronze Pickaxe x2",
		"  Iron:",
		"    Iron Ring x1",
		"",
		"Rare Drops:",
		"  Pets:",
		"    Mining Pet x1",
		"  Creatures:",
		"    Owl x1",
		"",
		"Achievements:",
		"  None",
	}
	assert.Equal(t, want, l.Lines())
}

func TestLines_Empty(t *testing.T) {
	lines := New(nil, 34).Lines()
	assert.Equal(t, "Collection Log (0.0% complete):", lines[0])
	assert.Contains(t, lines, "  None")
}
