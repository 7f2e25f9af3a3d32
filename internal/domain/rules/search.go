package rules

import (
	"sort"
	"strings"
)

// Query filters rules. Category and SystemID match exactly; Text is a case
// insensitive substring of title, description, full text or any tag.
type Query struct {
	Text     string
	Category string
	SystemID string
}

func (q Query) Matches(r *Rule) bool {
	if q.SystemID != "" && r.SystemID != q.SystemID {
		return false
	}
	if q.Category != "" && r.Category != q.Category {
		return false
	}

	term := strings.ToLower(strings.TrimSpace(q.Text))
	if term == "" {
		return true
	}
	for _, field := range []string{r.Title, r.Description, r.FullText} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// Filter keeps the rules matching q in their original order
func Filter(rules []*Rule, q Query) []*Rule {
	var out []*Rule
	for _, r := range rules {
		if q.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// DefaultRecentLimit is how many recent rules are returned when no limit is given
const DefaultRecentLimit = 4

// Recent returns accessed rules, most recently accessed first, at most limit
// of them
func Recent(rules []*Rule, limit int, systemID string) []*Rule {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	var accessed []*Rule
	for _, r := range rules {
		if r.LastAccessed == nil {
			continue
		}
		if systemID != "" && r.SystemID != systemID {
			continue
		}
		accessed = append(accessed, r)
	}

	sort.SliceStable(accessed, func(i, j int) bool {
		return accessed[i].LastAccessed.After(*accessed[j].LastAccessed)
	})

	if len(accessed) > limit {
		accessed = accessed[:limit]
	}
	return accessed
}
