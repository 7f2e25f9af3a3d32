package treasure

import (
	"slices"
	"strings"
)

// Category is a derived grouping of vault items. Counts are heuristic: they
// come from substrings of the item type and from tags, so one item can land
// in several categories or in none.
type Category struct {
	Name        string `json:"name"`
	Count       int    `json:"count"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description"`
	SystemID    string `json:"systemId,omitempty"`
}

type categoryRule struct {
	Category
	match func(item *Item) bool
}

func typeContains(s string) func(*Item) bool {
	return func(item *Item) bool {
		return strings.Contains(strings.ToLower(item.Type), s)
	}
}

var categoryRules = []categoryRule{
	{Category{Name: "Weapons", Icon: "Sword", Color: "bg-red-600", Description: "Weapons and armaments"}, typeContains("weapon")},
	{Category{Name: "Armor", Icon: "Shield", Color: "bg-blue-600", Description: "Protective gear and shields"}, typeContains("armor")},
	{Category{Name: "Equipment", Icon: "Package", Color: "bg-green-600", Description: "Tools, gear, and equipment"}, typeContains("equipment")},
	{Category{Name: "Consumables", Icon: "Scroll", Color: "bg-purple-600", Description: "Single-use items and consumables"}, func(item *Item) bool {
		return typeContains("potion")(item) || slices.Contains(item.Tags, "consumable")
	}},
}

// Categorize counts items into the fixed categories. Items outside systemID
// are skipped unless it is empty.
func Categorize(items []*Item, systemID string) []Category {
	out := make([]Category, len(categoryRules))
	for i, rule := range categoryRules {
		out[i] = rule.Category
		out[i].SystemID = systemID
	}

	for _, item := range items {
		if systemID != "" && item.SystemID != systemID {
			continue
		}
		for i, rule := range categoryRules {
			if rule.match(item) {
				out[i].Count++
			}
		}
	}
	return out
}
