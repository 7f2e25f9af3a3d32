package characters_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/character"
	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/characters"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func testCharacter(id, systemID string) *character.Character {
	return &character.Character{
		ID:         id,
		Name:       "Tester " + id,
		SystemID:   systemID,
		Attributes: map[string]int{"str": 12},
		Health:     map[string]*character.Track{"hp": {Current: 8, Max: 10}},
		Skills:     map[string]int{"stealth": 1},
		Equipment:  []*character.EquipmentItem{},
		SystemData: map[string]any{},
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := characters.NewInMemoryRepository()

	require.NoError(t, repo.Create(ctx, testCharacter("a", "dnd5e")))
	require.NoError(t, repo.Create(ctx, testCharacter("b", "call_of_cthulhu")))
	require.NoError(t, repo.Create(ctx, testCharacter("c", "dnd5e")))

	dnd, err := repo.ListBySystem(ctx, "dnd5e")
	require.NoError(t, err)
	require.Len(t, dnd, 2)
	assert.Equal(t, "a", dnd[0].ID)
	assert.Equal(t, "c", dnd[1].ID)

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	got.Health["hp"].Current = 0

	again, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 8, again.Health["hp"].Current)

	require.NoError(t, repo.Delete(ctx, "a"))
	_, err = repo.Get(ctx, "a")
	assert.True(t, dnderr.IsNotFound(err))
}

func TestRedisRepository_KeyLayout(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	repo := characters.NewRedis(client)

	c := testCharacter("abc", "dnd5e")
	data, err := json.Marshal(c)
	require.NoError(t, err)

	mock.ExpectExists("character:abc").SetVal(0)
	mock.ExpectSet("character:abc", data, 0).SetVal("OK")
	mock.ExpectRPush("characters", "abc").SetVal(1)
	mock.ExpectRPush("system:dnd5e:characters", "abc").SetVal(1)
	require.NoError(t, repo.Create(ctx, c))

	mock.ExpectGet("character:abc").SetVal(string(data))
	got, err := repo.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, c, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewRedisRepository_NilConfigPanics(t *testing.T) {
	assert.Panics(t, func() { characters.NewRedisRepository(nil) })
	assert.Panics(t, func() { characters.NewRedisRepository(&characters.RedisRepoConfig{}) })
}
