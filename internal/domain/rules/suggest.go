package rules

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest ranks rule titles by edit distance to query for "did you mean"
// prompts. Titles further away than half their length are dropped. Ties
// keep the input order.
func Suggest(rules []*Rule, query string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return nil
	}

	type candidate struct {
		title    string
		distance int
	}

	seen := make(map[string]struct{}, len(rules))
	var candidates []candidate
	for _, r := range rules {
		title := strings.ToLower(r.Title)
		if _, dup := seen[title]; dup || title == "" {
			continue
		}
		seen[title] = struct{}{}

		d := levenshtein.ComputeDistance(query, title)
		if d > len(title)/2 {
			continue
		}
		candidates = append(candidates, candidate{title: r.Title, distance: d})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.title
	}
	return out
}
