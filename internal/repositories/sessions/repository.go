package sessions

import (
	"context"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/campaign"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/records"
	"github.com/redis/go-redis/v9"
)

const indexCampaign = "campaign"

func config() records.Config[*campaign.Session] {
	return records.Config[*campaign.Session]{
		Kind: "session",
		Indexes: []records.Index[*campaign.Session]{
			{Name: indexCampaign, Key: func(v *campaign.Session) string { return v.CampaignID }},
		},
	}
}

type repository struct {
	records.Store[*campaign.Session]
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
	return &repository{Store: records.NewRedis(&records.RedisConfig[*campaign.Session]{
		Client: cfg.Client,
		Config: config(),
		New:    func() *campaign.Session { return &campaign.Session{} },
	})}
}

// NewRedis creates a new Redis-backed repository
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func (r *repository) ListByCampaign(ctx context.Context, campaignID string) ([]*campaign.Session, error) {
	return r.ListBy(ctx, indexCampaign, campaignID)
}
