package campaign

import "time"

type RewardType string

const (
	RewardExperience  RewardType = "experience"
	RewardTreasure    RewardType = "treasure"
	RewardAdvancement RewardType = "advancement"
	RewardOther       RewardType = "other"
)

// Session is one played session. SessionNumber is assigned once at
// creation and never renumbered.
type Session struct {
	ID               string         `json:"id"`
	CampaignID       string         `json:"campaignId"`
	SessionNumber    int            `json:"sessionNumber"`
	Title            string         `json:"title"`
	Date             time.Time      `json:"date"`
	Duration         float64        `json:"duration"`
	Summary          string         `json:"summary"`
	Notes            string         `json:"notes"`
	SystemData       map[string]any `json:"systemData"`
	Rewards          []Reward       `json:"rewards"`
	NPCsIntroduced   []string       `json:"npcsIntroduced"`
	LocationsVisited []string       `json:"locationsVisited"`
	QuestsProgressed []string       `json:"questsProgressed"`
	PlayerAttendance []string       `json:"playerAttendance"`
}

type Reward struct {
	Type           RewardType     `json:"type"`
	Description    string         `json:"description"`
	Value          *float64       `json:"value,omitempty"`
	SystemSpecific map[string]any `json:"systemSpecific,omitempty"`
}

func (s *Session) GetID() string { return s.ID }

func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.SystemData = copyBag(s.SystemData)
	if s.Rewards != nil {
		out.Rewards = make([]Reward, len(s.Rewards))
		for i, r := range s.Rewards {
			if r.Value != nil {
				v := *r.Value
				r.Value = &v
			}
			r.SystemSpecific = copyBag(r.SystemSpecific)
			out.Rewards[i] = r
		}
	}
	out.NPCsIntroduced = copyStrings(s.NPCsIntroduced)
	out.LocationsVisited = copyStrings(s.LocationsVisited)
	out.QuestsProgressed = copyStrings(s.QuestsProgressed)
	out.PlayerAttendance = copyStrings(s.PlayerAttendance)
	return &out
}
