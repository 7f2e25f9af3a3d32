package rules

import (
	"context"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/rules"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/records"
	"github.com/redis/go-redis/v9"
)

const indexSystem = "system"

func config() records.Config[*rules.Rule] {
	return records.Config[*rules.Rule]{
		Kind: "rule",
		Indexes: []records.Index[*rules.Rule]{
			{Name: indexSystem, Key: func(v *rules.Rule) string { return v.SystemID }},
		},
	}
}

type repository struct {
	records.Store[*rules.Rule]
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
	return &repository{Store: records.NewRedis(&records.RedisConfig[*rules.Rule]{
		Client: cfg.Client,
		Config: config(),
		New:    func() *rules.Rule { return &rules.Rule{} },
	})}
}

// NewRedis creates a new Redis-backed repository
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func (r *repository) ListBySystem(ctx context.Context, systemID string) ([]*rules.Rule, error) {
	return r.ListBy(ctx, indexSystem, systemID)
}
