package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

func TestTokenCacheStore_LoadNotFound(t *testing.T) {
	store := NewTokenCacheStore()

	_, err := store.Load(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTokenCacheStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	store := NewTokenCacheStore()

	cache := domain.TokenCache{
		AccountID: "default",
		Accounts:  []domain.CachedAccount{{Username: "a@example.com", RefreshToken: "r1"}},
	}
	require.NoError(t, store.Save(ctx, cache))

	loaded, err := store.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "r1", loaded.Primary().RefreshToken)

	// Mutating the loaded copy must not change the stored cache.
	loaded.Accounts[0].RefreshToken = "changed"
	again, err := store.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "r1", again.Primary().RefreshToken)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, ids)

	require.NoError(t, store.Delete(ctx, "default"))
	_, err = store.Load(ctx, "default")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
