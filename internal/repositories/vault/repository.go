package vault

import (
	"context"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/treasure"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/records"
	"github.com/redis/go-redis/v9"
)

const indexSystem = "system"

func config() records.Config[*treasure.Item] {
	return records.Config[*treasure.Item]{
		Kind: "treasure",
		Indexes: []records.Index[*treasure.Item]{
			{Name: indexSystem, Key: func(v *treasure.Item) string { return v.SystemID }},
		},
	}
}

type repository struct {
	records.Store[*treasure.Item]
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
	return &repository{Store: records.NewRedis(&records.RedisConfig[*treasure.Item]{
		Client: cfg.Client,
		Config: config(),
		New:    func() *treasure.Item { return &treasure.Item{} },
	})}
}

// NewRedis creates a new Redis-backed repository
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func (r *repository) ListBySystem(ctx context.Context, systemID string) ([]*treasure.Item, error) {
	return r.ListBy(ctx, indexSystem, systemID)
}
