package character

import (
	"time"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/rulebook"
)

// Advancement describes progress earned by a character. Level applies to
// level based systems, SkillPoints to point based ones.
type Advancement struct {
	Level       int            `json:"level,omitempty"`
	SkillPoints map[string]int `json:"skillPoints,omitempty"`
}

// Advance returns a copy of c with the advancement applied according to the
// owning system's advancement type. Levels recompute the maximum of every
// health track the character already has and leave current values alone.
// Points add to skill ranks. Milestones only stamp the update time.
// A character of an unknown system is returned unchanged.
func Advance(catalog *rulebook.Catalog, c *Character, adv Advancement, now time.Time) *Character {
	sys, ok := catalog.GetSystem(c.SystemID)
	if !ok {
		return c
	}

	updated := c.Clone()
	updated.UpdatedAt = now

	switch sys.Advancement.Type {
	case rulebook.AdvancementLevels:
		if adv.Level <= 0 {
			break
		}
		updated.Level = adv.Level
		for _, track := range sys.Health.Tracks {
			if existing, ok := updated.Health[track.ID]; ok {
				existing.Max = catalog.TrackMax(sys.ID, track.ID, updated.Attributes)
			}
		}
	case rulebook.AdvancementPoints:
		if updated.Skills == nil {
			updated.Skills = make(map[string]int, len(adv.SkillPoints))
		}
		for skillID, points := range adv.SkillPoints {
			updated.Skills[skillID] += points
		}
	}

	return updated
}
