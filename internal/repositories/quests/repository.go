package quests

import (
	"context"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/campaign"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/records"
	"github.com/redis/go-redis/v9"
)

const indexCampaign = "campaign"

func config() records.Config[*campaign.Quest] {
	return records.Config[*campaign.Quest]{
		Kind: "quest",
		Indexes: []records.Index[*campaign.Quest]{
			{Name: indexCampaign, Key: func(v *campaign.Quest) string { return v.CampaignID }},
		},
	}
}

type repository struct {
	records.Store[*campaign.Quest]
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &repository{Store: records.NewInMemory(config())}
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	return &repository{Store: records.NewRedis(&records.RedisConfig[*campaign.Quest]{
		Client: cfg.Client,
		Config: config(),
		New:    func() *campaign.Quest { return &campaign.Quest{} },
	})}
}

// NewRedis creates a new Redis-backed repository
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func (r *repository) ListByCampaign(ctx context.Context, campaignID string) ([]*campaign.Quest, error) {
	return r.ListBy(ctx, indexCampaign, campaignID)
}
