package characters

import (
	"context"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/character"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/records"
	"github.com/redis/go-redis/v9"
)

const indexSystem = "system"

func config() records.Config[*character.Character] {
	return records.Config[*character.Character]{
		Kind: "character",
		Indexes: []records.Index[*character.Character]{
			{Name: indexSystem, Key: func(v *character.Character) string { return v.SystemID }},
		},
	}
}

type repository struct {
	records.Store[*character.Character]
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
	return &repository{Store: records.NewRedis(&records.RedisConfig[*character.Character]{
		Client: cfg.Client,
		Config: config(),
		New:    func() *character.Character { return &character.Character{} },
	})}
}

// NewRedis creates a new Redis-backed repository
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func (r *repository) ListBySystem(ctx context.Context, systemID string) ([]*character.Character, error) {
	return r.ListBy(ctx, indexSystem, systemID)
}
