package campaign

type Relationship string

const (
	RelationshipAlly    Relationship = "Ally"
	RelationshipEnemy   Relationship = "Enemy"
	RelationshipNeutral Relationship = "Neutral"
	RelationshipUnknown Relationship = "Unknown"
)

type NPC struct {
	ID           string         `json:"id"`
	CampaignID   string         `json:"campaignId"`
	Name         string         `json:"name"`
	Role         string         `json:"role"`
	Location     string         `json:"location"`
	Description  string         `json:"description"`
	Relationship Relationship   `json:"relationship"`
	Notes        string         `json:"notes"`
	SystemData   map[string]any `json:"systemData"`
}

func (r Relationship) Valid() bool {
	switch r {
	case RelationshipAlly, RelationshipEnemy, RelationshipNeutral, RelationshipUnknown:
		return true
	}
	return false
}

func (n *NPC) GetID() string { return n.ID }

func (n *NPC) Clone() *NPC {
	if n == nil {
		return nil
	}
	out := *n
	out.SystemData = copyBag(n.SystemData)
	return &out
}
