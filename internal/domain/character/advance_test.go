package character_test

import (
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/character"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/rulebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance_Levels(t *testing.T) {
	catalog := rulebook.Default()
	later := now.Add(time.Hour)

	c := newCharacter(t, "dnd5e")
	c.Health["hp"] = &character.Track{Current: 4, Max: 25}

	updated := character.Advance(catalog, c, character.Advancement{Level: 3}, later)

	assert.Equal(t, 3, updated.Level)
	assert.Equal(t, 4, updated.Health["hp"].Current, "current is left alone")
	assert.Equal(t, rulebook.DefaultTrackMax, updated.Health["hp"].Max)
	assert.Equal(t, later, updated.UpdatedAt)

	assert.Equal(t, 0, c.Level, "input is not mutated")
	assert.Equal(t, 25, c.Health["hp"].Max)
}

func TestAdvance_LevelsOnlyTouchesExistingTracks(t *testing.T) {
	catalog := rulebook.Default()

	c := newCharacter(t, "dnd5e")
	delete(c.Health, "hp")

	updated := character.Advance(catalog, c, character.Advancement{Level: 2}, now)
	assert.Empty(t, updated.Health)
}

func TestAdvance_Points(t *testing.T) {
	catalog := rulebook.Default()

	c := newCharacter(t, "call_of_cthulhu")
	c.Skills["library_use"] = 40

	updated := character.Advance(catalog, c, character.Advancement{
		SkillPoints: map[string]int{"library_use": 5, "brand_new": 3},
	}, now)

	assert.Equal(t, 45, updated.Skills["library_use"])
	assert.Equal(t, 3, updated.Skills["brand_new"])
	assert.Equal(t, 0, updated.Level, "levels are ignored by point systems")
	assert.Equal(t, 40, c.Skills["library_use"])
}

func TestAdvance_PointsIgnoredByLevelSystems(t *testing.T) {
	catalog := rulebook.Default()

	c := newCharacter(t, "dnd5e")
	updated := character.Advance(catalog, c, character.Advancement{SkillPoints: map[string]int{"stealth": 2}}, now)

	assert.Equal(t, 0, updated.Skills["stealth"])
}

func TestAdvance_UnknownSystem(t *testing.T) {
	c := &character.Character{ID: "x", SystemID: "gurps"}

	updated := character.Advance(rulebook.Default(), c, character.Advancement{Level: 5}, now)
	require.Same(t, c, updated)
}
