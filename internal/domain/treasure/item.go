// Package treasure generates, describes and queries items for the systems
// that publish treasure tables.
package treasure

import "time"

type Source string

const (
	SourceGenerated Source = "Generated"
	SourceCustom    Source = "Custom"
	SourceImported  Source = "Imported"
)

// DefaultCurrency is used when a system publishes no treasure currency
const DefaultCurrency = "gp"

type Item struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Type            string         `json:"type"`
	SystemID        string         `json:"systemId"`
	Rarity          string         `json:"rarity"`
	Value           int            `json:"value"`
	Currency        string         `json:"currency"`
	Description     string         `json:"description"`
	FullDescription string         `json:"fullDescription"`
	Attunement      bool           `json:"attunement,omitempty"`
	Properties      []string       `json:"properties"`
	Tags            []string       `json:"tags"`
	Source          Source         `json:"source"`
	SystemData      map[string]any `json:"systemData"`
	CreatedAt       time.Time      `json:"createdAt"`
}

func (i *Item) GetID() string { return i.ID }

func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	out := *i
	out.Properties = append([]string(nil), i.Properties...)
	out.Tags = append([]string(nil), i.Tags...)
	if i.SystemData != nil {
		out.SystemData = make(map[string]any, len(i.SystemData))
		for k, v := range i.SystemData {
			out.SystemData[k] = v
		}
	}
	return &out
}
