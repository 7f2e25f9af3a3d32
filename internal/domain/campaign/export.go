package campaign

import "time"

// Export is the portable document for one campaign and everything that
// belongs to it
type Export struct {
	Campaign   *Campaign  `json:"campaign"`
	Sessions   []*Session `json:"sessions"`
	Quests     []*Quest   `json:"quests"`
	NPCs       []*NPC     `json:"npcs"`
	ExportedAt time.Time  `json:"exportedAt"`
}

// IDGenerator mints fresh ids during a re-key
type IDGenerator interface {
	New() string
}

// Rekey gives the campaign and every child a fresh id and points the
// children at the new campaign id. Players are embedded in the campaign and
// keep their ids; nil players are dropped. Creation and update stamps on the
// campaign are reset to now.
func (e *Export) Rekey(ids IDGenerator, now time.Time) {
	c := e.Campaign
	c.ID = ids.New()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Players = compact(c.Players)

	e.Sessions = compact(e.Sessions)
	e.Quests = compact(e.Quests)
	e.NPCs = compact(e.NPCs)

	for _, s := range e.Sessions {
		s.ID = ids.New()
		s.CampaignID = c.ID
	}
	for _, q := range e.Quests {
		q.ID = ids.New()
		q.CampaignID = c.ID
	}
	for _, n := range e.NPCs {
		n.ID = ids.New()
		n.CampaignID = c.ID
	}
}

func compact[T any](in []*T) []*T {
	out := in[:0]
	for _, v := range in {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}
