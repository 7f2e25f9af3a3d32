package campaign

import (
	"time"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/rulebook"
)

const (
	keyPartyLevel  = "partyLevel"
	keyPlayerLevel = "level"
	keyTotalPoints = "totalPoints"
)

// Advancement is the progress a campaign earns between sessions
type Advancement struct {
	Level            int `json:"level,omitempty"`
	Points           int `json:"points,omitempty"`
	ProgressIncrease int `json:"progressIncrease,omitempty"`
}

// Advance applies adv to c in place. Level based systems set the party
// level and every player's level, point based systems accumulate
// totalPoints. Progress always moves and stays within [0,100].
func Advance(sys *rulebook.System, c *Campaign, adv Advancement, now time.Time) {
	if c.SystemData == nil {
		c.SystemData = map[string]any{}
	}

	switch sys.Advancement.Type {
	case rulebook.AdvancementLevels:
		if adv.Level > 0 {
			c.SystemData[keyPartyLevel] = adv.Level
			for _, p := range c.Players {
				if p == nil {
					continue
				}
				if p.SystemData == nil {
					p.SystemData = map[string]any{}
				}
				p.SystemData[keyPlayerLevel] = adv.Level
			}
		}
	case rulebook.AdvancementPoints:
		if adv.Points != 0 {
			c.SystemData[keyTotalPoints] = asInt(c.SystemData[keyTotalPoints]) + adv.Points
		}
	}

	c.Progress = ClampProgress(c.Progress + adv.ProgressIncrease)
	c.UpdatedAt = now
}

// asInt reads a number out of a data bag. Bags that went through JSON hold
// float64, bags seeded from YAML hold int.
func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
