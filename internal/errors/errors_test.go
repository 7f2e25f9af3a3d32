package errors_test

import (
	"fmt"
	"testing"

	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesCodeAndMeta(t *testing.T) {
	base := dnderr.NotFoundf("campaign %s not found", "c-1").WithMeta("campaign_id", "c-1")

	wrapped := dnderr.Wrap(base, "failed to advance campaign").WithMeta("op", "advance")

	require.NotNil(t, wrapped)
	assert.True(t, dnderr.IsNotFound(wrapped))
	assert.Equal(t, "c-1", dnderr.GetMeta(wrapped)["campaign_id"])
	assert.Equal(t, "advance", dnderr.GetMeta(wrapped)["op"])
	assert.Nil(t, base.Meta["op"], "wrapping must not mutate the cause's metadata")
	assert.Equal(t, "failed to advance campaign: campaign c-1 not found", wrapped.Error())
}

func TestWrap_ForeignError(t *testing.T) {
	wrapped := dnderr.Wrap(fmt.Errorf("boom"), "loading snapshot")

	assert.Equal(t, dnderr.CodeUnknown, dnderr.GetCode(wrapped))
	assert.Nil(t, dnderr.Wrap(nil, "nothing"))
}

func TestSystemErrors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		code  dnderr.Code
	}{
		{"unknown system", dnderr.UnknownSystem("gurps"), dnderr.IsUnknownSystem, dnderr.CodeUnknownSystem},
		{"invalid system", dnderr.InvalidSystem("gurps"), dnderr.IsInvalidSystem, dnderr.CodeInvalidSystem},
		{"unimplemented", dnderr.Unimplementedf("no tables for %s", "pathfinder2e"), dnderr.IsUnimplemented, dnderr.CodeUnimplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.Equal(t, tt.code, dnderr.GetCode(dnderr.Wrap(tt.err, "outer")))
		})
	}

	assert.Equal(t, "gurps", dnderr.GetMeta(dnderr.UnknownSystem("gurps"))["system_id"])
}

func TestWrapWithCode(t *testing.T) {
	err := dnderr.WrapWithCode(fmt.Errorf("unexpected end of JSON input"), dnderr.CodeInvalidArgument, "invalid campaign export")

	assert.True(t, dnderr.IsInvalidArgument(err))
	assert.False(t, dnderr.IsNotFound(err))
}
