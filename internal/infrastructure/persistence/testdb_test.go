package persistence

import (
	"context"
	"testing"

	"github.com/shopcrm/backend/internal/domain/shop"
	"github.com/shopcrm/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// A single connection keeps every query on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), GormConfig(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&models.ShopModel{},
		&models.ChannelModel{},
		&models.CustomerModel{},
		&models.CategoryModel{},
		&models.ItemModel{},
		&models.SkuModel{},
	)
	require.NoError(t, err)

	return db
}

// seedShopAndChannel stores a shop with one channel and returns both
func seedShopAndChannel(t *testing.T, db *gorm.DB, shopID, shopName, channelName string) (*shop.Shop, *shop.Channel) {
	t.Helper()
	ctx := context.Background()

	s, err := shop.NewShop(shopID, shopName)
	require.NoError(t, err)
	require.NoError(t, NewGormShopRepository(db).Create(ctx, s))

	c, err := shop.NewChannel(s.ID, channelName, "zalo")
	require.NoError(t, err)
	require.NoError(t, NewGormChannelRepository(db).Create(ctx, c))

	return s, c
}
