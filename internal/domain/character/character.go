// Package character models a character sheet that can belong to any system in
// the catalog: attributes, health tracks and skills are keyed by the ids the
// owning system declares.
package character

import (
	"time"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/rulebook"
)

type Character struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	SystemID    string            `json:"systemId"`
	Race        string            `json:"race,omitempty"`
	Class       string            `json:"class,omitempty"`
	Level       int               `json:"level,omitempty"`
	Background  string            `json:"background,omitempty"`
	Attributes  map[string]int    `json:"attributes"`
	Health      map[string]*Track `json:"health"`
	Skills      map[string]int    `json:"skills"`
	Equipment   []*EquipmentItem  `json:"equipment"`
	SystemData  map[string]any    `json:"systemData"`
	Notes       string            `json:"notes"`
	Description string            `json:"description,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Track is the current and maximum value of one health track
type Track struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

type EquipmentItem struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Quantity    int            `json:"quantity"`
	Weight      *float64       `json:"weight,omitempty"`
	Value       *float64       `json:"value,omitempty"`
	Description string         `json:"description,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
}

// New builds a character with the system's default attributes, every health
// track filled to its maximum and every declared skill at 0
func New(catalog *rulebook.Catalog, sys *rulebook.System, id, name string, now time.Time) *Character {
	c := &Character{
		ID:         id,
		Name:       name,
		SystemID:   sys.ID,
		Attributes: make(map[string]int, len(sys.Attributes.Attributes)),
		Health:     make(map[string]*Track, len(sys.Health.Tracks)),
		Skills:     make(map[string]int),
		Equipment:  []*EquipmentItem{},
		SystemData: map[string]any{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	for _, attr := range sys.Attributes.Attributes {
		c.Attributes[attr.ID] = attr.DefaultValue()
	}

	for _, track := range sys.Health.Tracks {
		max := catalog.TrackMax(sys.ID, track.ID, c.Attributes)
		c.Health[track.ID] = &Track{Current: max, Max: max}
	}

	for _, skill := range sys.AllSkills() {
		c.Skills[skill.ID] = 0
	}

	return c
}

func (c *Character) GetID() string { return c.ID }

// Clone returns a deep copy. SystemData and equipment properties are copied
// one level deep.
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}

	out := *c
	out.Attributes = copyInts(c.Attributes)
	out.Skills = copyInts(c.Skills)
	out.SystemData = copyBag(c.SystemData)

	if c.Health != nil {
		out.Health = make(map[string]*Track, len(c.Health))
		for id, track := range c.Health {
			if track == nil {
				continue
			}
			t := *track
			out.Health[id] = &t
		}
	}

	if c.Equipment != nil {
		out.Equipment = make([]*EquipmentItem, 0, len(c.Equipment))
		for _, item := range c.Equipment {
			out.Equipment = append(out.Equipment, item.Clone())
		}
	}

	return &out
}

// Clone returns a copy of the item
func (e *EquipmentItem) Clone() *EquipmentItem {
	if e == nil {
		return nil
	}
	out := *e
	out.Properties = copyBag(e.Properties)
	if e.Weight != nil {
		w := *e.Weight
		out.Weight = &w
	}
	if e.Value != nil {
		v := *e.Value
		out.Value = &v
	}
	return &out
}

// FindEquipment returns the index of the item with the given id, or -1
func (c *Character) FindEquipment(itemID string) int {
	for i, item := range c.Equipment {
		if item != nil && item.ID == itemID {
			return i
		}
	}
	return -1
}

func copyInts(in map[string]int) map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyBag(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
