package rulebook

import (
	"strings"

	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"github.com/KirkDiggler/rpg-keeper/internal/formula"
)

func (s *System) invalid(format string, args ...any) *dnderr.Error {
	return dnderr.Validationf("system '"+s.ID+"': "+format, args...).
		WithMeta("system_id", s.ID)
}

// index validates the definition and builds the lookup maps
func (s *System) index() error {
	if strings.TrimSpace(s.ID) == "" {
		return dnderr.Validation("system id is required")
	}

	rule, ok := modifierRules[s.Family]
	if !ok {
		return s.invalid("unknown family %q", s.Family)
	}
	s.modifier = rule

	switch s.Advancement.Type {
	case AdvancementLevels, AdvancementPoints, AdvancementMilestones:
	default:
		return s.invalid("unknown advancement type %q", s.Advancement.Type)
	}

	s.attributeIndex = make(map[string]*Attribute, len(s.Attributes.Attributes))
	for i := range s.Attributes.Attributes {
		attr := &s.Attributes.Attributes[i]
		if _, dup := s.attributeIndex[attr.ID]; dup {
			return s.invalid("attribute %q is declared twice", attr.ID)
		}
		if attr.Min != nil && attr.Max != nil && *attr.Min > *attr.Max {
			return s.invalid("attribute %q has min above max", attr.ID)
		}
		if d := attr.DefaultValue(); (attr.Min != nil && d < *attr.Min) || (attr.Max != nil && d > *attr.Max) {
			return s.invalid("attribute %q default %d is out of bounds", attr.ID, d)
		}
		s.attributeIndex[attr.ID] = attr
	}

	s.derivedIndex = make(map[string]*DerivedStat, len(s.Attributes.DerivedStats))
	for i := range s.Attributes.DerivedStats {
		stat := &s.Attributes.DerivedStats[i]
		if err := s.checkFormula(stat.Formula); err != nil {
			return s.invalid("derived stat %q: %v", stat.ID, err)
		}
		s.derivedIndex[stat.ID] = stat
	}

	if err := s.indexSkills(); err != nil {
		return err
	}

	for _, track := range s.Health.Tracks {
		if err := s.checkFormula(track.Max); err != nil {
			return s.invalid("health track %q: %v", track.ID, err)
		}
	}

	if s.Treasure != nil {
		if err := s.checkTreasure(); err != nil {
			return err
		}
	}

	return nil
}

func (s *System) indexSkills() error {
	switch s.Skills.Type {
	case SkillShapeList:
		if len(s.Skills.Categories) > 0 {
			return s.invalid("list skills must not declare categories")
		}
	case SkillShapeCategories:
		if len(s.Skills.Skills) > 0 {
			return s.invalid("categorised skills must not declare a flat list")
		}
	default:
		return s.invalid("unknown skill shape %q", s.Skills.Type)
	}

	skills := s.AllSkills()
	s.skillIndex = make(map[string]*Skill, len(skills))
	for i := range skills {
		skill := &skills[i]
		if _, dup := s.skillIndex[skill.ID]; dup {
			return s.invalid("skill %q is declared twice", skill.ID)
		}
		if skill.Attribute != "" {
			if _, ok := s.attributeIndex[skill.Attribute]; !ok {
				return s.invalid("skill %q references unknown attribute %q", skill.ID, skill.Attribute)
			}
		}
		s.skillIndex[skill.ID] = skill
	}
	return nil
}

// checkFormula parses expr and requires every <x>_mod identifier to name a
// declared attribute. Other unknown identifiers are tolerated; they evaluate
// to 0 at runtime.
func (s *System) checkFormula(expr string) error {
	ids, err := formula.Identifiers(expr)
	if err != nil {
		return err
	}
	for _, id := range ids {
		base, isMod := strings.CutSuffix(id, "_mod")
		if !isMod {
			continue
		}
		if _, ok := s.attributeIndex[base]; !ok {
			return dnderr.Validationf("modifier %q references unknown attribute %q", id, base)
		}
	}
	return nil
}

func (s *System) checkTreasure() error {
	t := s.Treasure
	if len(t.Rarities) == 0 {
		return s.invalid("treasure tables need at least one rarity")
	}
	for _, r := range t.Rarities {
		if r.Multiplier <= 0 {
			return s.invalid("rarity %q needs a positive multiplier", r.Name)
		}
	}
	if len(t.Properties) == 0 {
		return s.invalid("treasure tables need at least one property")
	}

	switch t.Generator {
	case GeneratorMagicItem:
		if len(t.Weapons) == 0 || len(t.Armor) == 0 || t.Wondrous == nil || len(t.Wondrous.Names) == 0 {
			return s.invalid("magic item tables need weapons, armor and wondrous items")
		}
	case GeneratorFlat:
		if len(t.Items) == 0 {
			return s.invalid("flat treasure tables need items")
		}
	default:
		return s.invalid("unknown treasure generator %q", t.Generator)
	}
	return nil
}
