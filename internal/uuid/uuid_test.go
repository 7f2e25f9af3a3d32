package uuid_test

import (
	"testing"

	"github.com/KirkDiggler/rpg-keeper/internal/uuid"
	googleuuid "github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleUUIDGenerator_New(t *testing.T) {
	gen := uuid.NewGoogleUUIDGenerator()

	first := gen.New()
	second := gen.New()

	_, err := googleuuid.Parse(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
