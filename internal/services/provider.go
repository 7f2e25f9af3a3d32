package services

import (
	"context"

	"github.com/KirkDiggler/rpg-keeper/internal/clock"
	"github.com/KirkDiggler/rpg-keeper/internal/dice"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/rulebook"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/treasure"
	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/campaigns"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/characters"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/npcs"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/quests"
	rulerepo "github.com/KirkDiggler/rpg-keeper/internal/repositories/rules"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/sessions"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/vault"
	campaignService "github.com/KirkDiggler/rpg-keeper/internal/services/campaign"
	characterService "github.com/KirkDiggler/rpg-keeper/internal/services/character"
	rulesService "github.com/KirkDiggler/rpg-keeper/internal/services/rules"
	treasureService "github.com/KirkDiggler/rpg-keeper/internal/services/treasure"
	"github.com/KirkDiggler/rpg-keeper/internal/storage"
	"github.com/KirkDiggler/rpg-keeper/internal/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Provider holds all service instances
type Provider struct {
	CharacterService characterService.Service
	CampaignService  campaignService.Service
	TreasureService  treasureService.Service
	RulesService     rulesService.Service

	repos *Repositories
}

// Repositories groups one repository per collection
type Repositories struct {
	Characters characters.Repository
	Campaigns  campaigns.Repository
	Sessions   sessions.Repository
	Quests     quests.Repository
	NPCs       npcs.Repository
	Vault      vault.Repository
	Rules      rulerepo.Repository
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	// RedisClient backs every repository that Repositories leaves nil. When
	// it is nil too, in-memory repositories are used.
	RedisClient   redis.UniversalClient
	Repositories  *Repositories
	Catalog       *rulebook.Catalog
	Roller        dice.Roller
	Randomizer    treasure.Randomizer
	UUIDGenerator uuid.Generator
	TimeProvider  clock.TimeProvider
	Logger        *zap.Logger
}

// NewRepositories builds every repository on client, or in memory when
// client is nil
func NewRepositories(client redis.UniversalClient) *Repositories {
	if client == nil {
		return &Repositories{
			Characters: characters.NewInMemoryRepository(),
			Campaigns:  campaigns.NewInMemoryRepository(),
			Sessions:   sessions.NewInMemoryRepository(),
			Quests:     quests.NewInMemoryRepository(),
			NPCs:       npcs.NewInMemoryRepository(),
			Vault:      vault.NewInMemoryRepository(),
			Rules:      rulerepo.NewInMemoryRepository(),
		}
	}
	return &Repositories{
		Characters: characters.NewRedis(client),
		Campaigns:  campaigns.NewRedis(client),
		Sessions:   sessions.NewRedis(client),
		Quests:     quests.NewRedis(client),
		NPCs:       npcs.NewRedis(client),
		Vault:      vault.NewRedis(client),
		Rules:      rulerepo.NewRedis(client),
	}
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil {
		cfg = &ProviderConfig{}
	}

	repos := NewRepositories(cfg.RedisClient)
	if given := cfg.Repositories; given != nil {
		if given.Characters != nil {
			repos.Characters = given.Characters
		}
		if given.Campaigns != nil {
			repos.Campaigns = given.Campaigns
		}
		if given.Sessions != nil {
			repos.Sessions = given.Sessions
		}
		if given.Quests != nil {
			repos.Quests = given.Quests
		}
		if given.NPCs != nil {
			repos.NPCs = given.NPCs
		}
		if given.Vault != nil {
			repos.Vault = given.Vault
		}
		if given.Rules != nil {
			repos.Rules = given.Rules
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	campService := campaignService.NewService(&campaignService.ServiceConfig{
		CampaignRepository: repos.Campaigns,
		SessionRepository:  repos.Sessions,
		QuestRepository:    repos.Quests,
		NPCRepository:      repos.NPCs,
		Catalog:            cfg.Catalog,
		UUIDGenerator:      cfg.UUIDGenerator,
		TimeProvider:       cfg.TimeProvider,
		Logger:             logger.Named("campaign"),
	})

	// Deleted characters are detached from campaign players
	charService := characterService.NewService(&characterService.ServiceConfig{
		Repository:    repos.Characters,
		Catalog:       cfg.Catalog,
		Roller:        cfg.Roller,
		Detacher:      campService,
		UUIDGenerator: cfg.UUIDGenerator,
		TimeProvider:  cfg.TimeProvider,
		Logger:        logger.Named("character"),
	})

	return &Provider{
		CharacterService: charService,
		CampaignService:  campService,
		TreasureService: treasureService.NewService(&treasureService.ServiceConfig{
			Repository:    repos.Vault,
			Catalog:       cfg.Catalog,
			Randomizer:    cfg.Randomizer,
			UUIDGenerator: cfg.UUIDGenerator,
			TimeProvider:  cfg.TimeProvider,
			Logger:        logger.Named("treasure"),
		}),
		RulesService: rulesService.NewService(&rulesService.ServiceConfig{
			Repository:    repos.Rules,
			Catalog:       cfg.Catalog,
			UUIDGenerator: cfg.UUIDGenerator,
			TimeProvider:  cfg.TimeProvider,
			Logger:        logger.Named("rules"),
		}),
		repos: repos,
	}
}

// Snapshot copies every collection into base, which carries the
// preferences and selected system to keep. A nil base starts from the
// defaults.
func (p *Provider) Snapshot(ctx context.Context, base *storage.Snapshot) (*storage.Snapshot, error) {
	snap := base
	if snap == nil {
		snap = storage.Default(clock.New().Now())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Characters, err = p.repos.Characters.List(gctx)
		return wrap(err, "failed to list characters")
	})
	g.Go(func() (err error) {
		snap.Campaigns, err = p.repos.Campaigns.List(gctx)
		return wrap(err, "failed to list campaigns")
	})
	g.Go(func() (err error) {
		snap.Sessions, err = p.repos.Sessions.List(gctx)
		return wrap(err, "failed to list sessions")
	})
	g.Go(func() (err error) {
		snap.Quests, err = p.repos.Quests.List(gctx)
		return wrap(err, "failed to list quests")
	})
	g.Go(func() (err error) {
		snap.NPCs, err = p.repos.NPCs.List(gctx)
		return wrap(err, "failed to list NPCs")
	})
	g.Go(func() (err error) {
		snap.TreasureVault, err = p.repos.Vault.List(gctx)
		return wrap(err, "failed to list vault")
	})
	g.Go(func() (err error) {
		snap.Rules, err = p.repos.Rules.List(gctx)
		return wrap(err, "failed to list rules")
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Restore replaces every collection with the contents of snap
func (p *Provider) Restore(ctx context.Context, snap *storage.Snapshot) error {
	if snap == nil {
		return dnderr.InvalidArgument("snapshot cannot be nil")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return wrap(p.repos.Characters.Replace(gctx, snap.Characters), "failed to restore characters")
	})
	g.Go(func() error {
		return wrap(p.repos.Campaigns.Replace(gctx, snap.Campaigns), "failed to restore campaigns")
	})
	g.Go(func() error {
		return wrap(p.repos.Sessions.Replace(gctx, snap.Sessions), "failed to restore sessions")
	})
	g.Go(func() error {
		return wrap(p.repos.Quests.Replace(gctx, snap.Quests), "failed to restore quests")
	})
	g.Go(func() error {
		return wrap(p.repos.NPCs.Replace(gctx, snap.NPCs), "failed to restore NPCs")
	})
	g.Go(func() error {
		return wrap(p.repos.Vault.Replace(gctx, snap.TreasureVault), "failed to restore vault")
	})
	g.Go(func() error {
		return wrap(p.repos.Rules.Replace(gctx, snap.Rules), "failed to restore rules")
	})
	return g.Wait()
}

// wrap annotates err, keeping nil as a nil error interface
func wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return dnderr.Wrap(err, message)
}
