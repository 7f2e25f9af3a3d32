package character

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/rulebook"
)

// Draft is a partially filled character as submitted for validation
type Draft struct {
	Name       string
	SystemID   string
	Attributes map[string]int
}

// DraftOf returns the validated fields of a character
func DraftOf(c *Character) *Draft {
	return &Draft{Name: c.Name, SystemID: c.SystemID, Attributes: c.Attributes}
}

// Validate reports every problem with the draft as a human readable
// message. An empty result means the draft is valid.
func Validate(catalog *rulebook.Catalog, draft *Draft) []string {
	var problems []string
	if draft == nil {
		draft = &Draft{}
	}

	if strings.TrimSpace(draft.Name) == "" {
		problems = append(problems, "Character name is required")
	}

	if draft.SystemID == "" {
		problems = append(problems, "RPG system is required")
	}

	sys, ok := catalog.GetSystem(draft.SystemID)
	if !ok {
		return append(problems, "Invalid RPG system")
	}

	for _, attr := range sys.Attributes.Attributes {
		value, present := draft.Attributes[attr.ID]
		if !present {
			continue
		}
		if attr.Min != nil && value < *attr.Min {
			problems = append(problems, fmt.Sprintf("%s must be at least %d", attr.Name, *attr.Min))
		}
		if attr.Max != nil && value > *attr.Max {
			problems = append(problems, fmt.Sprintf("%s must be at most %d", attr.Name, *attr.Max))
		}
	}

	return problems
}
