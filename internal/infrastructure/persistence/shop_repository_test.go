package persistence

import (
	"context"
	"testing"

	"github.com/shopcrm/backend/internal/domain/shared"
	"github.com/shopcrm/backend/internal/domain/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormShopRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormShopRepository(db)
	ctx := context.Background()

	flagship, err := shop.NewShop("S1", "Flagship")
	require.NoError(t, err)
	outlet, err := shop.NewShop("S2", "Outlet")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, flagship))
	require.NoError(t, repo.Create(ctx, outlet))

	t.Run("duplicate id", func(t *testing.T) {
		dup, _ := shop.NewShop("S1", "Copy")
		assert.ErrorIs(t, repo.Create(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("find and search", func(t *testing.T) {
		found, err := repo.FindByID(ctx, "S1")
		require.NoError(t, err)
		assert.Equal(t, "Flagship", found.Name)

		shops, err := repo.FindAll(ctx, shared.Filter{Search: "Out"})
		require.NoError(t, err)
		require.Len(t, shops, 1)
		assert.Equal(t, "S2", shops[0].ID)
	})

	t.Run("soft deleted shop disappears", func(t *testing.T) {
		require.NoError(t, outlet.Delete())
		require.NoError(t, repo.Save(ctx, outlet))

		_, err := repo.FindByID(ctx, "S2")
		assert.ErrorIs(t, err, shared.ErrNotFound)

		exists, err := repo.ExistsByID(ctx, "S2")
		require.NoError(t, err)
		assert.False(t, exists)

		count, err := repo.Count(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		// The id stays taken
		again, _ := shop.NewShop("S2", "Outlet again")
		assert.ErrorIs(t, repo.Create(ctx, again), shared.ErrAlreadyExists)
	})
}

func TestGormChannelRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormChannelRepository(db)
	ctx := context.Background()

	s, first := seedShopAndChannel(t, db, "S1", "Flagship", "Zalo OA")
	second, err := shop.NewChannel(s.ID, "Messenger", "fb")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, second))
	assert.Greater(t, second.ID, first.ID)

	channels, err := repo.FindByShop(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, channels, 2)
	assert.Equal(t, "Zalo OA", channels[0].Name)

	found, err := repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "fb", found.Platform)

	require.NoError(t, repo.Delete(ctx, second.ID))
	_, err = repo.FindByID(ctx, second.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, second.ID), shared.ErrNotFound)
}
