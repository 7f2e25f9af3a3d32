// Package storage persists a snapshot of every collection as one versioned
// document, either in a JSON file or in a SQLite database.
package storage

import (
	"encoding/json"
	"time"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/campaign"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/character"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/rules"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/treasure"
)

// Version is written into every envelope. Documents carrying any other
// version are merged over the defaults on load.
const Version = "1.0.0"

// Defaults for a fresh snapshot
const (
	DefaultSelectedSystem = "dnd5e"
	DefaultTheme          = "dark"
	DefaultDiceSet        = "standard"
)

// Preferences are the user settings stored alongside the data
type Preferences struct {
	Theme          string `json:"theme"`
	DefaultDiceSet string `json:"defaultDiceSet"`
	AutoSave       bool   `json:"autoSave"`
}

// Snapshot is the whole persisted state. Top level fields this version does
// not know are kept in Extra and written back unchanged.
type Snapshot struct {
	Characters      []*character.Character `json:"characters"`
	TreasureVault   []*treasure.Item       `json:"treasureVault"`
	Campaigns       []*campaign.Campaign   `json:"campaigns"`
	Sessions        []*campaign.Session    `json:"sessions"`
	Quests          []*campaign.Quest      `json:"quests"`
	NPCs            []*campaign.NPC        `json:"npcs"`
	Rules           []*rules.Rule          `json:"rules"`
	SelectedSystem  string                 `json:"selectedSystem"`
	UserPreferences Preferences            `json:"userPreferences"`
	LastSync        time.Time              `json:"lastSync"`

	Extra map[string]json.RawMessage `json:"-"`
}

var knownFields = []string{
	"characters", "treasureVault", "campaigns", "sessions", "quests",
	"npcs", "rules", "selectedSystem", "userPreferences", "lastSync",
}

// Default returns an empty snapshot with the default preferences
func Default(now time.Time) *Snapshot {
	s := &Snapshot{
		SelectedSystem: DefaultSelectedSystem,
		UserPreferences: Preferences{
			Theme:          DefaultTheme,
			DefaultDiceSet: DefaultDiceSet,
			AutoSave:       true,
		},
		LastSync: now,
	}
	s.fillCollections()
	return s
}

// snapshotFields has the same layout as Snapshot without its JSON methods
type snapshotFields Snapshot

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*snapshotFields)(s)); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, name := range knownFields {
		delete(raw, name)
	}
	if len(raw) > 0 {
		s.Extra = raw
	} else {
		s.Extra = nil
	}

	s.fillCollections()
	return nil
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(snapshotFields(s))
	if err != nil {
		return nil, err
	}
	if len(s.Extra) == 0 {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(s.Extra)+len(knownFields))
	for name, value := range s.Extra {
		merged[name] = value
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for name, value := range fields {
		merged[name] = value
	}
	return json.Marshal(merged)
}

// fillCollections replaces absent collections with empty ones
func (s *Snapshot) fillCollections() {
	if s.Characters == nil {
		s.Characters = []*character.Character{}
	}
	if s.TreasureVault == nil {
		s.TreasureVault = []*treasure.Item{}
	}
	if s.Campaigns == nil {
		s.Campaigns = []*campaign.Campaign{}
	}
	if s.Sessions == nil {
		s.Sessions = []*campaign.Session{}
	}
	if s.Quests == nil {
		s.Quests = []*campaign.Quest{}
	}
	if s.NPCs == nil {
		s.NPCs = []*campaign.NPC{}
	}
	if s.Rules == nil {
		s.Rules = []*rules.Rule{}
	}
}

// Counts reports the size of every collection keyed by its JSON name
func (s *Snapshot) Counts() map[string]int {
	return map[string]int{
		"characters":    len(s.Characters),
		"treasureVault": len(s.TreasureVault),
		"campaigns":     len(s.Campaigns),
		"sessions":      len(s.Sessions),
		"quests":        len(s.Quests),
		"npcs":          len(s.NPCs),
		"rules":         len(s.Rules),
	}
}
