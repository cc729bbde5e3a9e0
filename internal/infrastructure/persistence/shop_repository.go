package persistence

import (
	"context"
	"errors"

	"github.com/shopcrm/backend/internal/domain/shared"
	"github.com/shopcrm/backend/internal/domain/shop"
	"github.com/shopcrm/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormShopRepository implements shop.ShopRepository using GORM.
// GORM's soft delete scope hides deleted shops from every query.
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// FindByID finds a shop by its ID
func (r *GormShopRepository) FindByID(ctx context.Context, id string) (*shop.Shop, error) {
	var model models.ShopModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all shops matching the filter
func (r *GormShopRepository) FindAll(ctx context.Context, filter shared.Filter) ([]shop.Shop, error) {
	var shopModels []models.ShopModel
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.ShopModel{}), filter)
	if !filter.Unpaged() {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := query.Order("created_at DESC").Find(&shopModels).Error; err != nil {
		return nil, err
	}
	shops := make([]shop.Shop, len(shopModels))
	for i, model := range shopModels {
		shops[i] = *model.ToDomain()
	}
	return shops, nil
}

// Count counts shops matching the filter
func (r *GormShopRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.ShopModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByID checks if a live shop with the given ID exists
func (r *GormShopRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ShopModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new shop. Ids of soft deleted shops stay taken.
func (r *GormShopRepository) Create(ctx context.Context, s *shop.Shop) error {
	if err := r.db.WithContext(ctx).Create(models.ShopModelFromDomain(s)).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.NewDomainError(shared.CodeAlreadyExists, "shop "+s.ID+" already exists")
		}
		return err
	}
	return nil
}

// Save updates a shop, including its soft delete marker
func (r *GormShopRepository) Save(ctx context.Context, s *shop.Shop) error {
	return r.db.WithContext(ctx).Unscoped().Save(models.ShopModelFromDomain(s)).Error
}

func (r *GormShopRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where(`name LIKE ? ESCAPE '\'`, "%"+escapeLike(filter.Search)+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// GormChannelRepository implements shop.ChannelRepository using GORM
type GormChannelRepository struct {
	db *gorm.DB
}

// NewGormChannelRepository creates a new GormChannelRepository
func NewGormChannelRepository(db *gorm.DB) *GormChannelRepository {
	return &GormChannelRepository{db: db}
}

// FindByID finds a channel by its ID
func (r *GormChannelRepository) FindByID(ctx context.Context, id int64) (*shop.Channel, error) {
	var model models.ChannelModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByShop lists the channels of a shop, oldest first
func (r *GormChannelRepository) FindByShop(ctx context.Context, shopID string) ([]shop.Channel, error) {
	var channelModels []models.ChannelModel
	if err := r.db.WithContext(ctx).Where("shop_id = ?", shopID).Order("id ASC").Find(&channelModels).Error; err != nil {
		return nil, err
	}
	channels := make([]shop.Channel, len(channelModels))
	for i, model := range channelModels {
		channels[i] = *model.ToDomain()
	}
	return channels, nil
}

// Create inserts a channel and assigns the generated ID
func (r *GormChannelRepository) Create(ctx context.Context, c *shop.Channel) error {
	model := models.ChannelModelFromDomain(c)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	c.ID = model.ID
	return nil
}

// Delete hard deletes a channel. Channels still referenced by customers
// are rejected with CHANNEL_IN_USE.
func (r *GormChannelRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.ChannelModel{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return shared.NewDomainError("CHANNEL_IN_USE", "Channel is still referenced by customers")
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure the GORM repositories implement the shop repositories
var (
	_ shop.ShopRepository    = (*GormShopRepository)(nil)
	_ shop.ChannelRepository = (*GormChannelRepository)(nil)
)
