package rulebook

import "math"

// ModifierRule turns a raw attribute value into the modifier added to checks
type ModifierRule interface {
	Modifier(value int) int
}

// ModifierFunc adapts a function to ModifierRule
type ModifierFunc func(value int) int

// Modifier implements ModifierRule
func (f ModifierFunc) Modifier(value int) int {
	return f(value)
}

// ScoreModifier is the d20 rule: floor((value-10)/2)
func ScoreModifier(value int) int {
	return int(math.Floor(float64(value-10) / 2))
}

var modifierRules = map[Family]ModifierRule{
	FamilyD20: ModifierFunc(ScoreModifier),
	FamilyPercentile: ModifierFunc(func(value int) int {
		return int(math.Floor(float64(value) / 5))
	}),
	// dot ratings and stat+skill+d10 systems add the attribute as-is
	FamilyDicePool:  ModifierFunc(func(value int) int { return value }),
	FamilyStatSkill: ModifierFunc(func(value int) int { return value }),
}
