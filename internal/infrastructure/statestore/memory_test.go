package statestore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/repository"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/infrastructure/statestore"
)

func TestMemory_AisladoPorNamespace(t *testing.T) {
	ctx := context.Background()
	m := statestore.NewMemory()

	require.NoError(t, m.Set(ctx, "ws1", "token", []byte("a")))
	require.NoError(t, m.Set(ctx, "ws2", "token", []byte("b")))

	v, err := m.Get(ctx, "ws1", "token")
	require.NoError(t, err)
	assert.Equal(t, "a", string(v))

	require.NoError(t, m.Clear(ctx, "ws1"))
	v, err = m.Get(ctx, "ws1", "token")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = m.Get(ctx, "ws2", "token")
	require.NoError(t, err)
	assert.Equal(t, "b", string(v))
}

func TestScopedState_JSON(t *testing.T) {
	ctx := context.Background()
	s := repository.NewScopedState(statestore.NewMemory(), "ws")

	type company struct {
		ID string `json:"id"`
	}
	found, err := s.GetJSON(ctx, repository.KeyDefaultCompany, &company{})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.SetJSON(ctx, repository.KeyDefaultCompany, company{ID: "C1"}))
	var got company
	found, err = s.GetJSON(ctx, repository.KeyDefaultCompany, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "C1", got.ID)

	require.NoError(t, s.SetString(ctx, repository.KeyToken, "t"))
	tok, err := s.GetString(ctx, repository.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "t", tok)

	require.NoError(t, s.Delete(ctx, repository.KeyToken))
	tok, err = s.GetString(ctx, repository.KeyToken)
	require.NoError(t, err)
	assert.Empty(t, tok)
}
