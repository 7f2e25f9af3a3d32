// Package dice rolls the polyhedral dice used by skill checks.
package dice

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}

// RollResult contains detailed information about a dice roll
type RollResult struct {
	Total    int   // Sum of all dice plus bonus
	Rolls    []int // Individual die results
	Bonus    int   // Bonus applied
	Count    int   // Number of dice rolled
	Sides    int   // Number of sides on each die
	RawTotal int   // Sum of dice before bonus
	IsCrit   bool  // Natural 20 on a single d20
	IsFumble bool  // Natural 1 on a single d20
}

// CountAtLeast returns how many individual dice showed threshold or more
func (r *RollResult) CountAtLeast(threshold int) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, roll := range r.Rolls {
		if roll >= threshold {
			n++
		}
	}
	return n
}

func newRollResult(rolls []int, count, sides, bonus int) *RollResult {
	rawTotal := 0
	for _, roll := range rolls {
		rawTotal += roll
	}

	result := &RollResult{
		Total:    rawTotal + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: rawTotal,
	}

	// Check for crit/fumble on d20
	if count == 1 && sides == 20 && len(rolls) > 0 {
		result.IsCrit = rolls[0] == 20
		result.IsFumble = rolls[0] == 1
	}

	return result
}
