// Package rulebook holds the catalog of supported RPG systems: their
// attributes, skill taxonomies, health tracks, advancement models and
// treasure tables.
package rulebook

// Family groups systems that share a modifier rule and a skill check mechanic
type Family string

const (
	FamilyD20        Family = "d20"
	FamilyPercentile Family = "percentile"
	FamilyDicePool   Family = "dice_pool"
	FamilyStatSkill  Family = "stat_skill"
)

// SkillShape declares how a system lays out its skills
type SkillShape string

const (
	SkillShapeList       SkillShape = "list"
	SkillShapeCategories SkillShape = "categories"
)

// AdvancementType governs how characters and campaigns progress
type AdvancementType string

const (
	AdvancementLevels     AdvancementType = "levels"
	AdvancementPoints     AdvancementType = "points"
	AdvancementMilestones AdvancementType = "milestones"
)

// System is an immutable ruleset definition
type System struct {
	ID               string          `yaml:"id" json:"id"`
	Name             string          `yaml:"name" json:"name"`
	Description      string          `yaml:"description" json:"description"`
	Family           Family          `yaml:"family" json:"family"`
	Attributes       AttributeSystem `yaml:"attributes" json:"attributes"`
	Skills           SkillSystem     `yaml:"skills" json:"skills"`
	Equipment        EquipmentSystem `yaml:"equipment" json:"equipment"`
	Magic            *MagicSystem    `yaml:"magic,omitempty" json:"magic,omitempty"`
	Health           HealthSystem    `yaml:"health" json:"health"`
	Advancement      Advancement     `yaml:"advancement" json:"advancement"`
	Themes           []string        `yaml:"themes" json:"themes"`
	CampaignDefaults map[string]any  `yaml:"campaign_defaults" json:"campaignDefaults"`
	Treasure         *TreasureTables `yaml:"treasure,omitempty" json:"treasure,omitempty"`

	attributeIndex map[string]*Attribute
	skillIndex     map[string]*Skill
	derivedIndex   map[string]*DerivedStat
	modifier       ModifierRule
}

type AttributeSystem struct {
	Type         string        `yaml:"type" json:"type"`
	Attributes   []Attribute   `yaml:"attributes" json:"attributes"`
	DerivedStats []DerivedStat `yaml:"derived_stats" json:"derivedStats,omitempty"`
}

// Attribute is a named numeric trait. Min, Max and Default are optional.
type Attribute struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Min         *int   `yaml:"min" json:"min,omitempty"`
	Max         *int   `yaml:"max" json:"max,omitempty"`
	Default     *int   `yaml:"default" json:"default,omitempty"`
}

// DefaultValue returns the declared default, or 10 when none is declared
func (a *Attribute) DefaultValue() int {
	if a.Default == nil {
		return 10
	}
	return *a.Default
}

// DerivedStat is a value computed from a formula over attributes
type DerivedStat struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Formula     string `yaml:"formula" json:"formula"`
	Description string `yaml:"description" json:"description"`
}

type SkillSystem struct {
	Type       SkillShape      `yaml:"type" json:"type"`
	Skills     []Skill         `yaml:"skills,omitempty" json:"skills,omitempty"`
	Categories []SkillCategory `yaml:"categories,omitempty" json:"categories,omitempty"`
}

type Skill struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Attribute   string `yaml:"attribute,omitempty" json:"attribute,omitempty"`
	Specialty   bool   `yaml:"specialty,omitempty" json:"specialty,omitempty"`
}

type SkillCategory struct {
	ID     string  `yaml:"id" json:"id"`
	Name   string  `yaml:"name" json:"name"`
	Skills []Skill `yaml:"skills" json:"skills"`
}

type EquipmentSystem struct {
	Categories     []string   `yaml:"categories" json:"categories"`
	HasEncumbrance bool       `yaml:"has_encumbrance" json:"hasEncumbrance"`
	Currency       []Currency `yaml:"currency" json:"currency"`
}

// Currency is a unit with its value relative to the system's base unit
type Currency struct {
	Name         string  `yaml:"name" json:"name"`
	Abbreviation string  `yaml:"abbreviation" json:"abbreviation"`
	Value        float64 `yaml:"value" json:"value"`
}

type MagicSystem struct {
	Type       string   `yaml:"type" json:"type"`
	Schools    []string `yaml:"schools,omitempty" json:"schools,omitempty"`
	Components []string `yaml:"components,omitempty" json:"components,omitempty"`
}

type HealthSystem struct {
	Type   string        `yaml:"type" json:"type"`
	Tracks []HealthTrack `yaml:"tracks" json:"tracks"`
}

// HealthTrack is a named pool. Max documents the pool size; the live
// maximum comes from the derived stat sharing the track id.
type HealthTrack struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Max         string `yaml:"max" json:"max"`
	Description string `yaml:"description" json:"description"`
}

type Advancement struct {
	Type        AdvancementType `yaml:"type" json:"type"`
	Description string          `yaml:"description" json:"description"`
}

// AllSkills returns every skill the system declares, flattening categories
func (s *System) AllSkills() []Skill {
	if s.Skills.Type == SkillShapeCategories {
		var out []Skill
		for _, category := range s.Skills.Categories {
			out = append(out, category.Skills...)
		}
		return out
	}
	return s.Skills.Skills
}

// Attribute looks up an attribute by id
func (s *System) Attribute(id string) (*Attribute, bool) {
	attr, ok := s.attributeIndex[id]
	return attr, ok
}

// Skill looks up a skill by id in whichever shape the system declares
func (s *System) Skill(id string) (*Skill, bool) {
	skill, ok := s.skillIndex[id]
	return skill, ok
}

// DerivedStat looks up a derived stat by id
func (s *System) DerivedStat(id string) (*DerivedStat, bool) {
	stat, ok := s.derivedIndex[id]
	return stat, ok
}

// Modifier applies the system's attribute modifier rule
func (s *System) Modifier(value int) int {
	if s.modifier == nil {
		return 0
	}
	return s.modifier.Modifier(value)
}

// BaseCurrency returns the abbreviation of the lowest valued currency unit,
// or "" when the system declares none
func (s *System) BaseCurrency() string {
	if len(s.Equipment.Currency) == 0 {
		return ""
	}
	base := s.Equipment.Currency[0]
	for _, c := range s.Equipment.Currency[1:] {
		if c.Value < base.Value {
			base = c
		}
	}
	return base.Abbreviation
}
