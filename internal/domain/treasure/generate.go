package treasure

import (
	"fmt"
	"math"
	"strings"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/rulebook"
	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
)

// Item kinds understood by the magic item generator
const (
	KindWeapon   = "weapon"
	KindArmor    = "armor"
	KindWondrous = "wondrous"
)

var magicItemKinds = []string{KindWeapon, KindArmor, KindWondrous}

// Randomizer is the random source consumed by generation. *rand.Rand
// satisfies it.
type Randomizer interface {
	Intn(n int) int
	Float64() float64
}

// Request selects what to generate. Empty fields are drawn at random.
type Request struct {
	Rarity string
	Type   string
}

// ItemGenerator builds a draft item from a system's treasure tables
type ItemGenerator interface {
	Generate(sys *rulebook.System, rarity *rulebook.Rarity, itemType string, rnd Randomizer) *Item
}

type ItemGeneratorFunc func(sys *rulebook.System, rarity *rulebook.Rarity, itemType string, rnd Randomizer) *Item

func (f ItemGeneratorFunc) Generate(sys *rulebook.System, rarity *rulebook.Rarity, itemType string, rnd Randomizer) *Item {
	return f(sys, rarity, itemType, rnd)
}

var generators = map[rulebook.TreasureGenerator]ItemGenerator{
	rulebook.GeneratorMagicItem: ItemGeneratorFunc(generateMagicItem),
	rulebook.GeneratorFlat:      ItemGeneratorFunc(generateFlat),
}

// Generate draws a draft item from the system's tables. The draft carries no
// id and is not stored anywhere.
func Generate(sys *rulebook.System, req Request, rnd Randomizer) (*Item, error) {
	if sys.Treasure == nil {
		return nil, dnderr.Unimplementedf("treasure generation is not supported for %s", sys.ID).
			WithMeta("system_id", sys.ID)
	}
	tables := sys.Treasure

	gen, ok := generators[tables.Generator]
	if !ok {
		return nil, dnderr.Unimplementedf("no generator for %q", tables.Generator).
			WithMeta("system_id", sys.ID)
	}

	var rarity *rulebook.Rarity
	if req.Rarity == "" {
		rarity = &tables.Rarities[rnd.Intn(len(tables.Rarities))]
	} else if rarity, ok = tables.Rarity(req.Rarity); !ok {
		return nil, dnderr.InvalidArgumentf("rarity %q is not on the %s ladder", req.Rarity, sys.ID).
			WithMeta("system_id", sys.ID).
			WithMeta("rarity", req.Rarity)
	}

	item := gen.Generate(sys, rarity, req.Type, rnd)
	item.SystemID = sys.ID
	item.Rarity = rarity.Name
	item.Currency = tables.Currency
	item.Source = SourceGenerated
	return item, nil
}

// ScaleValue applies the rarity multiplier and a uniform 0.8-1.2 jitter
func ScaleValue(base int, multiplier float64, rnd Randomizer) int {
	return int(math.Floor(float64(base) * multiplier * (0.8 + rnd.Float64()*0.4)))
}

func generateMagicItem(sys *rulebook.System, rarity *rulebook.Rarity, itemType string, rnd Randomizer) *Item {
	tables := sys.Treasure

	kind := itemType
	if kind == "" {
		kind = magicItemKinds[rnd.Intn(len(magicItemKinds))]
	}

	var (
		baseName   string
		baseValue  int
		typeLabel  string
		systemData = map[string]any{}
	)
	switch kind {
	case KindWeapon:
		weapon := tables.Weapons[rnd.Intn(len(tables.Weapons))]
		baseName, baseValue = weapon.Name, weapon.BaseValue
		typeLabel = fmt.Sprintf("Weapon (%s)", strings.ToLower(weapon.Name))
		systemData["weaponTypes"] = append([]string(nil), weapon.Traits...)
	case KindArmor:
		armor := tables.Armor[rnd.Intn(len(tables.Armor))]
		baseName, baseValue = armor.Name, armor.BaseValue
		typeLabel = fmt.Sprintf("Armor (%s)", strings.ToLower(armor.Type))
		systemData["armorType"] = armor.Type
	default:
		names := tables.Wondrous.Names
		baseName, baseValue = names[rnd.Intn(len(names))], tables.Wondrous.BaseValue
		typeLabel = "Wondrous Item"
	}

	property := tables.Properties[rnd.Intn(len(tables.Properties))]
	value := ScaleValue(baseValue, rarity.Multiplier, rnd)

	return &Item{
		Name:        property.Name + " " + baseName,
		Type:        typeLabel,
		Value:       value,
		Description: property.Description,
		FullDescription: fmt.Sprintf("This %s has been imbued with magical properties. %s. The item radiates a %s magical aura.",
			strings.ToLower(baseName), property.Description, strings.ToLower(rarity.Name)),
		Attunement: rarity.Name != "Common" && rnd.Float64() > 0.3,
		Properties: []string{property.Description},
		Tags:       []string{kind, strings.ToLower(property.Name)},
		SystemData: systemData,
	}
}

func generateFlat(sys *rulebook.System, rarity *rulebook.Rarity, _ string, rnd Randomizer) *Item {
	tables := sys.Treasure

	entry := tables.Items[rnd.Intn(len(tables.Items))]
	property := tables.Properties[rnd.Intn(len(tables.Properties))]
	value := ScaleValue(entry.BaseValue, rarity.Multiplier, rnd)

	return &Item{
		Name:        property.Name + " " + entry.Name,
		Type:        entry.Type,
		Value:       value,
		Description: property.Description,
		FullDescription: fmt.Sprintf("This %s %s. It appears to be of %s quality.",
			strings.ToLower(entry.Name), strings.ToLower(property.Description), strings.ToLower(rarity.Name)),
		Properties: []string{property.Description},
		Tags:       []string{strings.ToLower(entry.Type), strings.ToLower(property.Name)},
		SystemData: map[string]any{"originalType": entry.Type},
	}
}
