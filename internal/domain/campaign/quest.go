package campaign

type QuestStatus string

const (
	QuestActive    QuestStatus = "Active"
	QuestCompleted QuestStatus = "Completed"
	QuestFailed    QuestStatus = "Failed"
	QuestOnHold    QuestStatus = "On Hold"
)

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

type Quest struct {
	ID          string         `json:"id"`
	CampaignID  string         `json:"campaignId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      QuestStatus    `json:"status"`
	Priority    Priority       `json:"priority"`
	Rewards     []string       `json:"rewards"`
	Notes       string         `json:"notes"`
	SystemData  map[string]any `json:"systemData"`
}

// Valid reports whether s is one of the declared quest states
func (s QuestStatus) Valid() bool {
	switch s {
	case QuestActive, QuestCompleted, QuestFailed, QuestOnHold:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

func (q *Quest) GetID() string { return q.ID }

func (q *Quest) Clone() *Quest {
	if q == nil {
		return nil
	}
	out := *q
	out.Rewards = copyStrings(q.Rewards)
	out.SystemData = copyBag(q.SystemData)
	return &out
}
