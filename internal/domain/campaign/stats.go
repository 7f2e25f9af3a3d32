package campaign

// Stats aggregates campaigns and their sessions
type Stats struct {
	TotalCampaigns int     `json:"totalCampaigns"`
	ActivePlayers  int     `json:"activePlayers"`
	TotalSessions  int     `json:"totalSessions"`
	TotalHours     float64 `json:"totalHours"`
}

// CalculateStats counts over campaigns in systemID, or all campaigns when it
// is empty. Active players are only counted in active campaigns, and only
// sessions belonging to a counted campaign contribute.
func CalculateStats(campaigns []*Campaign, sessions []*Session, systemID string) *Stats {
	stats := &Stats{}
	included := make(map[string]struct{}, len(campaigns))

	for _, c := range campaigns {
		if systemID != "" && c.SystemID != systemID {
			continue
		}
		included[c.ID] = struct{}{}
		stats.TotalCampaigns++

		if c.Status != StatusActive {
			continue
		}
		for _, p := range c.Players {
			if p != nil && p.Status == PlayerStatusActive {
				stats.ActivePlayers++
			}
		}
	}

	for _, s := range sessions {
		if _, ok := included[s.CampaignID]; !ok {
			continue
		}
		stats.TotalSessions++
		stats.TotalHours += s.Duration
	}

	return stats
}
