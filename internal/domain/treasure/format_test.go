package treasure_test

import (
	"testing"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/treasure"
	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value    int
		currency string
		want     string
	}{
		{999, "gp", "999 gp"},
		{1000, "gp", "1.0k gp"},
		{9375, "gp", "9.4k gp"},
		{1234567, "$", "$1,234,567"},
		{25, "$", "$25"},
		{15000, "eb", "15,000 eb"},
		{12, "cr", "12 cr"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, treasure.FormatValue(tt.value, tt.currency))
		})
	}
}

func TestRarityHelpers(t *testing.T) {
	dnd := system(t, "dnd5e")
	coc := system(t, "call_of_cthulhu")
	vampire := system(t, "vampire_masquerade")
	pf := system(t, "pathfinder2e")

	assert.Equal(t, "bg-orange-600", treasure.RarityColor(dnd, "Legendary"))
	assert.Equal(t, "bg-yellow-600", treasure.RarityColor(coc, "Unusual"))
	assert.Equal(t, treasure.NeutralColor, treasure.RarityColor(dnd, "Unusual"))
	assert.Equal(t, treasure.NeutralColor, treasure.RarityColor(vampire, "Rare"))
	assert.Equal(t, treasure.NeutralColor, treasure.RarityColor(pf, "Rare"))
	assert.Equal(t, treasure.NeutralColor, treasure.RarityColor(nil, "Rare"))

	assert.Equal(t, []string{"Common", "Unusual", "Rare", "Unique"}, treasure.Rarities(coc))
	assert.Equal(t, []string{"Common", "Uncommon", "Rare"}, treasure.Rarities(pf))

	assert.Equal(t, "$", treasure.Currency(vampire))
	assert.Equal(t, "gp", treasure.Currency(pf))
}

func TestItemClone(t *testing.T) {
	item := &treasure.Item{Tags: []string{"a"}, SystemData: map[string]any{"k": 1}}
	clone := item.Clone()
	clone.Tags[0] = "b"
	clone.SystemData["k"] = 2

	assert.Equal(t, "a", item.Tags[0])
	assert.Equal(t, 1, item.SystemData["k"])
}
