package rules

type Statistics struct {
	TotalRules       int            `json:"totalRules"`
	CategoryCounts   map[string]int `json:"categoryCounts"`
	SourceCounts     map[string]int `json:"sourceCounts"`
	RecentlyAccessed int            `json:"recentlyAccessed"`
	CustomRules      int            `json:"customRules"`
}

// Summarize counts rules in systemID, or all rules when it is empty
func Summarize(rules []*Rule, systemID string) *Statistics {
	stats := &Statistics{
		CategoryCounts: map[string]int{},
		SourceCounts:   map[string]int{},
	}

	for _, r := range rules {
		if systemID != "" && r.SystemID != systemID {
			continue
		}
		stats.TotalRules++
		stats.CategoryCounts[r.Category]++
		stats.SourceCounts[r.Source]++
		if r.LastAccessed != nil {
			stats.RecentlyAccessed++
		}
		if r.Source == SourceCustom {
			stats.CustomRules++
		}
	}
	return stats
}

// SystemCount is the number of rules filed under one system
type SystemCount struct {
	SystemID  string `json:"systemId"`
	Name      string `json:"name"`
	RuleCount int    `json:"ruleCount"`
}
