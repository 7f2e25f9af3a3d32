package rulebook

// TreasureGenerator names the table layout a system's treasure uses
type TreasureGenerator string

const (
	// GeneratorMagicItem draws a weapon, armor or wondrous base and adds a magical property
	GeneratorMagicItem TreasureGenerator = "magic_item"

	// GeneratorFlat draws from a single item table and a property table
	GeneratorFlat TreasureGenerator = "flat"
)

// TreasureTables describe how to procedurally generate items for a system
type TreasureTables struct {
	Generator  TreasureGenerator  `yaml:"generator" json:"generator"`
	Currency   string             `yaml:"currency" json:"currency"`
	Rarities   []Rarity           `yaml:"rarities" json:"rarities"`
	Weapons    []WeaponEntry      `yaml:"weapons,omitempty" json:"weapons,omitempty"`
	Armor      []ArmorEntry       `yaml:"armor,omitempty" json:"armor,omitempty"`
	Wondrous   *WondrousTable     `yaml:"wondrous,omitempty" json:"wondrous,omitempty"`
	Items      []ItemEntry        `yaml:"items,omitempty" json:"items,omitempty"`
	Properties []TreasureProperty `yaml:"properties" json:"properties"`
}

// Rarity is one rung of a system's rarity ladder
type Rarity struct {
	Name       string  `yaml:"name" json:"name"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
	Color      string  `yaml:"color,omitempty" json:"color,omitempty"`
}

type WeaponEntry struct {
	Name      string   `yaml:"name" json:"name"`
	BaseValue int      `yaml:"base_value" json:"baseValue"`
	Traits    []string `yaml:"traits" json:"traits"`
}

type ArmorEntry struct {
	Name      string `yaml:"name" json:"name"`
	BaseValue int    `yaml:"base_value" json:"baseValue"`
	Type      string `yaml:"type" json:"type"`
}

type WondrousTable struct {
	BaseValue int      `yaml:"base_value" json:"baseValue"`
	Names     []string `yaml:"names" json:"names"`
}

type ItemEntry struct {
	Name      string `yaml:"name" json:"name"`
	BaseValue int    `yaml:"base_value" json:"baseValue"`
	Type      string `yaml:"type" json:"type"`
}

type TreasureProperty struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Rarity      string `yaml:"rarity" json:"rarity"`
}

// RarityNames returns the ladder in order
func (t *TreasureTables) RarityNames() []string {
	names := make([]string, len(t.Rarities))
	for i, r := range t.Rarities {
		names[i] = r.Name
	}
	return names
}

// Rarity looks up a rung by name
func (t *TreasureTables) Rarity(name string) (*Rarity, bool) {
	for i := range t.Rarities {
		if t.Rarities[i].Name == name {
			return &t.Rarities[i], true
		}
	}
	return nil, false
}
