package testutils

import (
	"time"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/campaign"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/character"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/rules"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/treasure"
)

// FixtureTime is the timestamp stamped onto every fixture
var FixtureTime = time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)

// CreateTestCharacter creates a minimal dnd5e character
func CreateTestCharacter(id, name string) *character.Character {
	return &character.Character{
		ID:       id,
		Name:     name,
		SystemID: "dnd5e",
		Level:    1,
		Attributes: map[string]int{
			"str": 15, "dex": 14, "con": 13, "int": 12, "wis": 10, "cha": 8,
		},
		Health:     map[string]*character.Track{"hp": {Current: 10, Max: 10}},
		Skills:     map[string]int{"athletics": 2},
		Equipment:  []*character.EquipmentItem{},
		SystemData: map[string]any{},
		CreatedAt:  FixtureTime,
		UpdatedAt:  FixtureTime,
	}
}

// CreateTestCampaign creates a planning campaign with one player
func CreateTestCampaign(id, systemID string) *campaign.Campaign {
	return &campaign.Campaign{
		ID:       id,
		Name:     "Campaign " + id,
		SystemID: systemID,
		Status:   campaign.StatusPlanning,
		Players: []*campaign.Player{
			{ID: id + "-p1", Name: "Player One", CharacterName: "Hero", Status: campaign.PlayerStatusActive, SystemData: map[string]any{}},
		},
		Theme:      "Adventure",
		SystemData: map[string]any{},
		CreatedAt:  FixtureTime,
		UpdatedAt:  FixtureTime,
	}
}

// CreateTestSession creates a three hour session for campaignID
func CreateTestSession(id, campaignID string, number int) *campaign.Session {
	return &campaign.Session{
		ID:            id,
		CampaignID:    campaignID,
		SessionNumber: number,
		Title:         "Session",
		Date:          FixtureTime,
		Duration:      3,
		SystemData:    map[string]any{},
		Rewards:       []campaign.Reward{},
	}
}

// CreateTestTreasure creates a custom vault item
func CreateTestTreasure(id, name, rarity string) *treasure.Item {
	return &treasure.Item{
		ID:         id,
		Name:       name,
		Type:       "Weapon",
		SystemID:   "dnd5e",
		Rarity:     rarity,
		Value:      100,
		Currency:   treasure.DefaultCurrency,
		Properties: []string{},
		Tags:       []string{},
		Source:     treasure.SourceCustom,
		SystemData: map[string]any{},
		CreatedAt:  FixtureTime,
	}
}

// CreateTestRule creates a core mechanics rule
func CreateTestRule(id, title, systemID string) *rules.Rule {
	return &rules.Rule{
		ID:        id,
		Title:     title,
		Category:  "Core Mechanics",
		Source:    "Core Rulebook",
		Tags:      []string{},
		SystemID:  systemID,
		CreatedAt: FixtureTime,
	}
}
