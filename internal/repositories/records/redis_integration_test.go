//go:build integration
// +build integration

package records_test

import (
	"context"
	"testing"

	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/records"
	"github.com/KirkDiggler/rpg-keeper/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Integration(t *testing.T) {
	client := testutils.CreateRedisContainerClient(t)
	store := records.NewRedis(&records.RedisConfig[*note]{
		Client: client,
		Config: noteConfig(),
		New:    func() *note { return &note{} },
	})
	ctx := context.Background()

	t.Run("create list and index", func(t *testing.T) {
		require.NoError(t, store.Create(ctx, &note{ID: "n1", Topic: "lore"}))
		require.NoError(t, store.Create(ctx, &note{ID: "n2", Topic: "rules"}))
		require.NoError(t, store.Create(ctx, &note{ID: "n3", Topic: "lore"}))

		all, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"n1", "n2", "n3"}, noteIDs(all))

		lore, err := store.ListBy(ctx, "topic", "lore")
		require.NoError(t, err)
		assert.Equal(t, []string{"n1", "n3"}, noteIDs(lore))
	})

	t.Run("duplicate create fails", func(t *testing.T) {
		err := store.Create(ctx, &note{ID: "n1"})
		assert.True(t, dnderr.IsAlreadyExists(err))
	})

	t.Run("update moves index", func(t *testing.T) {
		require.NoError(t, store.Update(ctx, &note{ID: "n1", Topic: "rules", Body: "moved"}))

		rulesTopic, err := store.ListBy(ctx, "topic", "rules")
		require.NoError(t, err)
		assert.Equal(t, []string{"n2", "n1"}, noteIDs(rulesTopic))

		got, err := store.Get(ctx, "n1")
		require.NoError(t, err)
		assert.Equal(t, "moved", got.Body)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "n2"))

		_, err := store.Get(ctx, "n2")
		assert.True(t, dnderr.IsNotFound(err))

		all, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"n1", "n3"}, noteIDs(all))
	})

	t.Run("replace", func(t *testing.T) {
		require.NoError(t, store.Replace(ctx, []*note{{ID: "x", Topic: "maps"}}))

		all, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, noteIDs(all))

		lore, err := store.ListBy(ctx, "topic", "lore")
		require.NoError(t, err)
		assert.Empty(t, lore)
	})
}
