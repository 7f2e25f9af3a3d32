package treasure

import "github.com/KirkDiggler/rpg-keeper/internal/domain/rulebook"

// NeutralColor is returned for rarities without a published color
const NeutralColor = "bg-gray-600"

var fallbackRarities = []string{"Common", "Uncommon", "Rare"}

// RarityColor looks up the color a system assigns to a rarity
func RarityColor(sys *rulebook.System, rarity string) string {
	if sys == nil || sys.Treasure == nil {
		return NeutralColor
	}
	r, ok := sys.Treasure.Rarity(rarity)
	if !ok || r.Color == "" {
		return NeutralColor
	}
	return r.Color
}

// Rarities returns the system's rarity ladder, or Common/Uncommon/Rare for
// systems without treasure tables
func Rarities(sys *rulebook.System) []string {
	if sys == nil || sys.Treasure == nil {
		return append([]string(nil), fallbackRarities...)
	}
	return sys.Treasure.RarityNames()
}

// Currency is the unit a system's treasure is valued in
func Currency(sys *rulebook.System) string {
	if sys == nil || sys.Treasure == nil || sys.Treasure.Currency == "" {
		return DefaultCurrency
	}
	return sys.Treasure.Currency
}
