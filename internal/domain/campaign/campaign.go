// Package campaign models campaigns and the sessions, quests and NPCs that
// hang off them. Children refer to their campaign by id only.
package campaign

import "time"

type Status string

const (
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
	StatusPlanning  Status = "Planning"
	StatusOnHold    Status = "On Hold"
)

type PlayerStatus string

const (
	PlayerStatusActive   PlayerStatus = "Active"
	PlayerStatusInactive PlayerStatus = "Inactive"
)

// Campaign is a running game in one system. Players are embedded; sessions,
// quests and NPCs live in their own collections keyed by CampaignID.
type Campaign struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	SystemID    string         `json:"systemId"`
	Status      Status         `json:"status"`
	Players     []*Player      `json:"players"`
	NextSession *time.Time     `json:"nextSession,omitempty"`
	Progress    int            `json:"progress"`
	Location    string         `json:"location"`
	Theme       string         `json:"theme"`
	SystemData  map[string]any `json:"systemData"`
	Notes       string         `json:"notes"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Player sits at the table. CharacterID is a loose reference into the
// character collection and may dangle.
type Player struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	CharacterID      string         `json:"characterId,omitempty"`
	CharacterName    string         `json:"characterName"`
	CharacterDetails string         `json:"characterDetails"`
	Status           PlayerStatus   `json:"status"`
	SystemData       map[string]any `json:"systemData"`
}

func (c *Campaign) GetID() string { return c.ID }

// Clone returns a copy deep enough that edits to players and system data do
// not leak back into the original
func (c *Campaign) Clone() *Campaign {
	if c == nil {
		return nil
	}

	out := *c
	out.SystemData = copyBag(c.SystemData)
	if c.NextSession != nil {
		next := *c.NextSession
		out.NextSession = &next
	}
	if c.Players != nil {
		out.Players = make([]*Player, 0, len(c.Players))
		for _, p := range c.Players {
			out.Players = append(out.Players, p.Clone())
		}
	}
	return &out
}

func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	out := *p
	out.SystemData = copyBag(p.SystemData)
	return &out
}

// FindPlayer returns the index of the player with the given id, or -1
func (c *Campaign) FindPlayer(playerID string) int {
	for i, p := range c.Players {
		if p != nil && p.ID == playerID {
			return i
		}
	}
	return -1
}

// ClampProgress pins a progress percentage to [0,100]
func ClampProgress(progress int) int {
	switch {
	case progress < 0:
		return 0
	case progress > 100:
		return 100
	default:
		return progress
	}
}

func copyBag(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
