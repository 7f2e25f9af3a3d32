package campaign

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-keeper/internal/clock"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/campaign"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/rulebook"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/campaigns"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/npcs"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/quests"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/sessions"
	"github.com/KirkDiggler/rpg-keeper/internal/uuid"
	"go.uber.org/zap"
)

// Defaults applied to blank inputs
const (
	DefaultSystemID        = "dnd5e"
	DefaultCampaignName    = "New Campaign"
	DefaultPlayerName      = "New Player"
	DefaultCharacterName   = "New Character"
	DefaultQuestTitle      = "New Quest"
	DefaultNPCName         = "New NPC"
	DefaultNPCRole         = "Citizen"
	DefaultSessionDuration = 3.0
	fallbackTheme          = "Adventure"
	sessionTitleFormat     = "Session %d"
)

// Service defines the campaign service interface
type Service interface {
	// CreateCampaign starts a campaign in the planning state
	CreateCampaign(ctx context.Context, input *CreateCampaignInput) (*campaign.Campaign, error)

	// GetCampaign retrieves a campaign by ID
	GetCampaign(ctx context.Context, campaignID string) (*campaign.Campaign, error)

	// ListCampaigns returns campaigns of one system, or all of them when systemID is empty
	ListCampaigns(ctx context.Context, systemID string) ([]*campaign.Campaign, error)

	// UpdateCampaign stores an edited campaign
	UpdateCampaign(ctx context.Context, c *campaign.Campaign) (*campaign.Campaign, error)

	// DeleteCampaign removes a campaign with its sessions, quests and NPCs
	DeleteCampaign(ctx context.Context, campaignID string) error

	// AdvanceCampaign applies earned progress
	AdvanceCampaign(ctx context.Context, campaignID string, adv campaign.Advancement) (*campaign.Campaign, error)

	// AddPlayer seats a player at the table
	AddPlayer(ctx context.Context, campaignID string, input *PlayerInput) (*campaign.Campaign, error)

	// RemovePlayer removes a player from the table
	RemovePlayer(ctx context.Context, campaignID, playerID string) (*campaign.Campaign, error)

	// DetachCharacter clears every player reference to a character
	DetachCharacter(ctx context.Context, characterID string) error

	// AddSession records the next session of a campaign
	AddSession(ctx context.Context, campaignID string, input *SessionInput) (*campaign.Session, error)

	// UpdateSession stores an edited session; its number never changes
	UpdateSession(ctx context.Context, session *campaign.Session) (*campaign.Session, error)

	// DeleteSession removes one session
	DeleteSession(ctx context.Context, sessionID string) error

	// ListSessions returns a campaign's sessions by session number
	ListSessions(ctx context.Context, campaignID string) ([]*campaign.Session, error)

	// CreateQuest adds an active quest to a campaign
	CreateQuest(ctx context.Context, campaignID string, input *QuestInput) (*campaign.Quest, error)

	// UpdateQuestStatus moves a quest to another state
	UpdateQuestStatus(ctx context.Context, questID string, status campaign.QuestStatus) (*campaign.Quest, error)

	// ListQuests returns a campaign's quests
	ListQuests(ctx context.Context, campaignID string) ([]*campaign.Quest, error)

	// CreateNPC adds an NPC to a campaign
	CreateNPC(ctx context.Context, campaignID string, input *NPCInput) (*campaign.NPC, error)

	// ListNPCs returns a campaign's NPCs
	ListNPCs(ctx context.Context, campaignID string) ([]*campaign.NPC, error)

	// CalculateStats summarizes campaigns of one system, or all of them
	CalculateStats(ctx context.Context, systemID string) (*campaign.Stats, error)

	// Themes lists the suggested themes of a system
	Themes(systemID string) []string

	// ExportCampaign renders a campaign and its children as indented JSON
	ExportCampaign(ctx context.Context, campaignID string) ([]byte, error)

	// ImportCampaign stores an exported campaign under fresh ids
	ImportCampaign(ctx context.Context, data []byte) (*campaign.Export, error)
}

// CreateCampaignInput contains data for creating a campaign
type CreateCampaignInput struct {
	Name        string
	Description string
	SystemID    string
	Theme       string
	Location    string
	Notes       string
	NextSession *time.Time
}

// PlayerInput contains data for seating a player
type PlayerInput struct {
	Name             string
	CharacterID      string
	CharacterName    string
	CharacterDetails string
	SystemData       map[string]any
}

// SessionInput contains data for recording a session. Date defaults to now
// and Duration to three hours.
type SessionInput struct {
	Title            string
	Date             *time.Time
	Duration         *float64
	Summary          string
	Notes            string
	SystemData       map[string]any
	Rewards          []campaign.Reward
	NPCsIntroduced   []string
	LocationsVisited []string
	QuestsProgressed []string
	PlayerAttendance []string
}

// QuestInput contains data for a new quest
type QuestInput struct {
	Title       string
	Description string
	Priority    campaign.Priority
	Rewards     []string
	Notes       string
}

// NPCInput contains data for a new NPC
type NPCInput struct {
	Name         string
	Role         string
	Location     string
	Description  string
	Relationship campaign.Relationship
	Notes        string
}

type service struct {
	catalog       *rulebook.Catalog
	campaigns     campaigns.Repository
	sessions      sessions.Repository
	quests        quests.Repository
	npcs          npcs.Repository
	uuidGenerator uuid.Generator
	timeProvider  clock.TimeProvider
	logger        *zap.Logger

	// sessionMu serializes session numbering
	sessionMu sync.Mutex
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	CampaignRepository campaigns.Repository // Required
	SessionRepository  sessions.Repository  // Required
	QuestRepository    quests.Repository    // Required
	NPCRepository      npcs.Repository      // Required
	Catalog            *rulebook.Catalog    // Optional, defaults to the embedded catalog
	UUIDGenerator      uuid.Generator       // Optional
	TimeProvider       clock.TimeProvider   // Optional
	Logger             *zap.Logger          // Optional
}

// NewService creates a new campaign service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.CampaignRepository == nil {
		panic("campaign repository is required")
	}
	if cfg.SessionRepository == nil {
		panic("session repository is required")
	}
	if cfg.QuestRepository == nil {
		panic("quest repository is required")
	}
	if cfg.NPCRepository == nil {
		panic("npc repository is required")
	}

	svc := &service{
		catalog:       cfg.Catalog,
		campaigns:     cfg.CampaignRepository,
		sessions:      cfg.SessionRepository,
		quests:        cfg.QuestRepository,
		npcs:          cfg.NPCRepository,
		uuidGenerator: cfg.UUIDGenerator,
		timeProvider:  cfg.TimeProvider,
		logger:        cfg.Logger,
	}
	if svc.catalog == nil {
		svc.catalog = rulebook.Default()
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.timeProvider == nil {
		svc.timeProvider = clock.New()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}

	return svc
}

func (s *service) Themes(systemID string) []string {
	return s.catalog.Themes(systemID)
}
