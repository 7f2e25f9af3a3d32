package rules

type Category struct {
	Name        string `json:"name"`
	Count       int    `json:"count"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description"`
	SystemID    string `json:"systemId,omitempty"`
}

var categories = []Category{
	{Name: "Core Mechanics", Icon: "Cog", Color: "bg-blue-600", Description: "Basic game mechanics, dice rolling, and core resolution systems"},
	{Name: "Character Creation", Icon: "User", Color: "bg-green-600", Description: "Character generation, attributes, skills, and advancement"},
	{Name: "Combat", Icon: "Sword", Color: "bg-red-600", Description: "Battle mechanics, actions, initiative, and combat procedures"},
	{Name: "Equipment", Icon: "Shield", Color: "bg-amber-600", Description: "Weapons, armor, gear, and equipment mechanics"},
	{Name: "Magic & Powers", Icon: "Zap", Color: "bg-purple-600", Description: "Supernatural abilities, spells, disciplines, and special powers"},
	{Name: "Social & Roleplay", Icon: "Users", Color: "bg-cyan-600", Description: "Social interactions, roleplay mechanics, and narrative rules"},
	{Name: "Game Master", Icon: "Crown", Color: "bg-orange-600", Description: "GM guidance, running games, and storytelling tools"},
	{Name: "Optional Rules", Icon: "Settings", Color: "bg-slate-600", Description: "Variant rules, house rules, and optional mechanics"},
}

// CategoryNames lists the fixed categories in display order
func CategoryNames() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

// Categorize returns the fixed categories with live counts over rules in
// systemID, or over every rule when it is empty. Rules filed under other
// category names are not counted anywhere.
func Categorize(rules []*Rule, systemID string) []Category {
	out := make([]Category, len(categories))
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		out[i] = c
		index[c.Name] = i
	}

	for _, r := range rules {
		if systemID != "" && r.SystemID != systemID {
			continue
		}
		if i, ok := index[r.Category]; ok {
			out[i].Count++
		}
	}
	return out
}
