package campaigns

import (
	"context"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/campaign"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/records"
	"github.com/redis/go-redis/v9"
)

const indexSystem = "system"

func config() records.Config[*campaign.Campaign] {
	return records.Config[*campaign.Campaign]{
		Kind: "campaign",
		Indexes: []records.Index[*campaign.Campaign]{
			{Name: indexSystem, Key: func(v *campaign.Campaign) string { return v.SystemID }},
		},
	}
}

type repository struct {
	records.Store[*campaign.Campaign]
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
	return &repository{Store: records.NewRedis(&records.RedisConfig[*campaign.Campaign]{
		Client: cfg.Client,
		Config: config(),
		New:    func() *campaign.Campaign { return &campaign.Campaign{} },
	})}
}

// NewRedis creates a new Redis-backed repository
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func (r *repository) ListBySystem(ctx context.Context, systemID string) ([]*campaign.Campaign, error) {
	return r.ListBy(ctx, indexSystem, systemID)
}
