package persistence

import (
	"context"
	"errors"

	"github.com/shopcrm/backend/internal/domain/catalog"
	"github.com/shopcrm/backend/internal/domain/shared"
	"github.com/shopcrm/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a live category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id string) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByShop lists the live categories of a shop by name
func (r *GormCategoryRepository) FindByShop(ctx context.Context, shopID string) ([]catalog.Category, error) {
	var categoryModels []models.CategoryModel
	if err := r.db.WithContext(ctx).Where("shop_id = ?", shopID).Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	categories := make([]catalog.Category, len(categoryModels))
	for i, model := range categoryModels {
		categories[i] = *model.ToDomain()
	}
	return categories, nil
}

// Create inserts a new category
func (r *GormCategoryRepository) Create(ctx context.Context, c *catalog.Category) error {
	return r.db.WithContext(ctx).Create(models.CategoryModelFromDomain(c)).Error
}

// Save updates a category, including its soft delete marker
func (r *GormCategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	return r.db.WithContext(ctx).Unscoped().Save(models.CategoryModelFromDomain(c)).Error
}

// GormItemRepository implements catalog.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item with its SKUs
func (r *GormItemRepository) FindByID(ctx context.Context, id int64) (*catalog.Item, error) {
	var model models.ItemModel
	err := r.db.WithContext(ctx).
		Preload("Skus", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByShop lists items of a shop, optionally restricted to one category
func (r *GormItemRepository) FindByShop(ctx context.Context, shopID string, categoryID *string) ([]catalog.Item, error) {
	var itemModels []models.ItemModel
	query := r.db.WithContext(ctx).Where("shop_id = ?", shopID)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if err := query.Order("created_at DESC").Order("id DESC").Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]catalog.Item, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// ExistsBySID checks if an item with the given SID exists
func (r *GormItemRepository) ExistsBySID(ctx context.Context, sid string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ItemModel{}).Where("s_id = ?", sid).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts an item and assigns the generated ID
func (r *GormItemRepository) Create(ctx context.Context, item *catalog.Item) error {
	model := models.ItemModelFromDomain(item)
	model.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.NewDomainError(shared.CodeAlreadyExists, "item "+item.SID+" already exists")
		}
		return err
	}
	item.ID = model.ID
	return nil
}

// AddSku inserts a SKU and assigns the generated ID
func (r *GormItemRepository) AddSku(ctx context.Context, sku *catalog.Sku) error {
	model := models.SkuModelFromDomain(sku)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	sku.ID = model.ID
	return nil
}

// Ensure the GORM repositories implement the catalog repositories
var (
	_ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
	_ catalog.ItemRepository     = (*GormItemRepository)(nil)
)
