package character

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-keeper/internal/dice"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/rulebook"
)

const (
	// DefaultDifficulty is the DC used by d20 checks when none is given
	DefaultDifficulty = 15

	fallbackCheckAttribute = "int"
	fallbackAttributeValue = 10
	poolSuccessThreshold   = 6
)

// CheckResult is the outcome of a skill check. Rolls holds the individual
// dice that produced it.
type CheckResult struct {
	Success     bool   `json:"success"`
	Result      int    `json:"result"`
	Description string `json:"description"`
	Rolls       []int  `json:"rolls,omitempty"`
}

// CheckRequest carries everything a mechanic needs to resolve one check
type CheckRequest struct {
	System     *rulebook.System
	Character  *Character
	SkillID    string
	Difficulty *int
}

// CheckMechanic resolves a skill check for one system family
type CheckMechanic interface {
	Resolve(req *CheckRequest, roller dice.Roller) (*CheckResult, error)
}

// CheckMechanicFunc adapts a function to CheckMechanic
type CheckMechanicFunc func(req *CheckRequest, roller dice.Roller) (*CheckResult, error)

// Resolve implements CheckMechanic
func (f CheckMechanicFunc) Resolve(req *CheckRequest, roller dice.Roller) (*CheckResult, error) {
	return f(req, roller)
}

var checkMechanics = map[rulebook.Family]CheckMechanic{
	rulebook.FamilyD20:        CheckMechanicFunc(resolveD20),
	rulebook.FamilyPercentile: CheckMechanicFunc(resolvePercentile),
	rulebook.FamilyDicePool:   CheckMechanicFunc(resolveDicePool),
}

// MechanicFor returns the check mechanic registered for a family
func MechanicFor(family rulebook.Family) (CheckMechanic, bool) {
	m, ok := checkMechanics[family]
	return m, ok
}

// NotImplemented is reported for families without a check mechanic
func NotImplemented() *CheckResult {
	return &CheckResult{Description: "System not implemented"}
}

// UnknownSystem is reported when the system id does not resolve
func UnknownSystem() *CheckResult {
	return &CheckResult{Description: "Unknown system"}
}

// d20: 1d20 + rank + governing attribute modifier against a DC
func resolveD20(req *CheckRequest, roller dice.Roller) (*CheckResult, error) {
	rank := req.Character.Skills[req.SkillID]

	attributeID := fallbackCheckAttribute
	if skill, ok := req.System.Skill(req.SkillID); ok && skill.Attribute != "" {
		attributeID = skill.Attribute
	}
	value, ok := req.Character.Attributes[attributeID]
	if !ok || value == 0 {
		value = fallbackAttributeValue
	}
	modifier := req.System.Modifier(value)

	dc := DefaultDifficulty
	if req.Difficulty != nil && *req.Difficulty != 0 {
		dc = *req.Difficulty
	}

	roll, err := roller.Roll(1, 20, 0)
	if err != nil {
		return nil, err
	}
	total := roll.Total + rank + modifier

	return &CheckResult{
		Success: total >= dc,
		Result:  total,
		Description: fmt.Sprintf("Rolled %d + %d (skill) + %d (%s) = %d vs DC %d",
			roll.Total, rank, modifier, attributeID, total, dc),
		Rolls: roll.Rolls,
	}, nil
}

// percentile: 1d100, succeed at or under the skill value
func resolvePercentile(req *CheckRequest, roller dice.Roller) (*CheckResult, error) {
	target := req.Character.Skills[req.SkillID]

	roll, err := roller.Roll(1, 100, 0)
	if err != nil {
		return nil, err
	}

	success := roll.Total <= target
	outcome := "Failure"
	if success {
		outcome = "Success"
	}

	return &CheckResult{
		Success:     success,
		Result:      roll.Total,
		Description: fmt.Sprintf("Rolled %d vs %d (%s)", roll.Total, target, outcome),
		Rolls:       roll.Rolls,
	}, nil
}

// dice pool: attribute + rank d10s, every die at 6 or more is a success. The
// attribute is the one named by the skill id up to its first underscore.
func resolveDicePool(req *CheckRequest, roller dice.Roller) (*CheckResult, error) {
	rank := req.Character.Skills[req.SkillID]

	prefix, _, _ := strings.Cut(req.SkillID, "_")
	rating := req.Character.Attributes[prefix]
	if rating == 0 {
		rating = 1
	}
	pool := rating + rank

	var rolls []int
	successes := 0
	if pool > 0 {
		roll, err := roller.Roll(pool, 10, 0)
		if err != nil {
			return nil, err
		}
		rolls = roll.Rolls
		successes = roll.CountAtLeast(poolSuccessThreshold)
	}

	shown := make([]string, len(rolls))
	for i, r := range rolls {
		shown[i] = fmt.Sprint(r)
	}

	return &CheckResult{
		Success:     successes > 0,
		Result:      successes,
		Description: fmt.Sprintf("Rolled %d dice: [%s] = %d successes", pool, strings.Join(shown, ", "), successes),
		Rolls:       rolls,
	}, nil
}

// RollSkillCheck resolves a check with the mechanic of the system's family.
// Unknown systems and families without a mechanic report a sentinel result
// instead of an error.
func RollSkillCheck(catalog *rulebook.Catalog, roller dice.Roller, systemID string, c *Character, skillID string, difficulty *int) (*CheckResult, error) {
	sys, ok := catalog.GetSystem(systemID)
	if !ok {
		return UnknownSystem(), nil
	}

	mechanic, ok := MechanicFor(sys.Family)
	if !ok {
		return NotImplemented(), nil
	}

	if c == nil {
		c = &Character{}
	}

	return mechanic.Resolve(&CheckRequest{
		System:     sys,
		Character:  c,
		SkillID:    skillID,
		Difficulty: difficulty,
	}, roller)
}
