// Package rules is a reference index of free-form rule entries tagged by
// system and category.
package rules

import "time"

const (
	// SourceCustom marks rules entered by the user
	SourceCustom = "Custom"
	// SourceImported marks rules that arrived through an import
	SourceImported = "Imported"
)

type Rule struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	Description  string     `json:"description"`
	FullText     string     `json:"fullText"`
	Page         string     `json:"page,omitempty"`
	Source       string     `json:"source"`
	Tags         []string   `json:"tags"`
	SystemID     string     `json:"systemId"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastAccessed *time.Time `json:"lastAccessed,omitempty"`
}

func (r *Rule) GetID() string { return r.ID }

func (r *Rule) Clone() *Rule {
	if r == nil {
		return nil
	}
	out := *r
	out.Tags = append([]string(nil), r.Tags...)
	if r.LastAccessed != nil {
		at := *r.LastAccessed
		out.LastAccessed = &at
	}
	return &out
}
