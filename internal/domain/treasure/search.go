package treasure

import "strings"

// AnyValue in a filter field matches everything, like an empty value
const AnyValue = "all"

// SearchQuery is an AND of optional filters. Query is matched as a case
// insensitive substring of name, descriptions or tags; Type as a case
// insensitive substring of the item type; Rarity and SystemID exactly.
type SearchQuery struct {
	Query    string
	Rarity   string
	Type     string
	SystemID string
}

// Matches reports whether item satisfies every filter of q
func (q SearchQuery) Matches(item *Item) bool {
	if q.SystemID != "" && item.SystemID != q.SystemID {
		return false
	}
	if q.Rarity != "" && q.Rarity != AnyValue && item.Rarity != q.Rarity {
		return false
	}
	if q.Type != "" && q.Type != AnyValue && !containsFold(item.Type, q.Type) {
		return false
	}

	term := strings.ToLower(strings.TrimSpace(q.Query))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(item.Name), term) ||
		strings.Contains(strings.ToLower(item.Description), term) ||
		strings.Contains(strings.ToLower(item.FullDescription), term) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// Filter returns the items matching q in their original order
func Filter(items []*Item, q SearchQuery) []*Item {
	var out []*Item
	for _, item := range items {
		if q.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
