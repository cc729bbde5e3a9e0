package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopcrm/backend/internal/domain/catalog"
	"github.com/shopcrm/backend/internal/domain/shared"
	"github.com/shopcrm/backend/internal/domain/shop"
	"go.uber.org/zap"
)

// CatalogService manages the categories, items and SKUs of shops
type CatalogService struct {
	categoryRepo catalog.CategoryRepository
	itemRepo     catalog.ItemRepository
	shopRepo     shop.ShopRepository
	logger       *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	categoryRepo catalog.CategoryRepository,
	itemRepo catalog.ItemRepository,
	shopRepo shop.ShopRepository,
	logger *zap.Logger,
) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		shopRepo:     shopRepo,
		logger:       logger,
	}
}

// CreateCategory creates a category for an existing shop
func (s *CatalogService) CreateCategory(ctx context.Context, shopID string, req CreateCategoryRequest) (*CategoryResponse, error) {
	if err := s.ensureShopExists(ctx, shopID); err != nil {
		return nil, err
	}

	category, err := catalog.NewCategory(shopID, req.Type, req.Name, req.Description, req.Images)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category created", zap.String("category_id", category.ID), zap.String("shop_id", shopID))

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// ListCategories lists the live categories of an existing shop
func (s *CatalogService) ListCategories(ctx context.Context, shopID string) ([]CategoryResponse, error) {
	if err := s.ensureShopExists(ctx, shopID); err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.FindByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses, nil
}

// DeleteCategory soft deletes a category. Items keep their category id.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return err
	}
	if err := category.Delete(); err != nil {
		return err
	}
	return s.categoryRepo.Save(ctx, category)
}

// CreateItem creates an item, optionally filed under a category of the same shop
func (s *CatalogService) CreateItem(ctx context.Context, shopID string, req CreateItemRequest) (*ItemResponse, error) {
	if err := s.ensureShopExists(ctx, shopID); err != nil {
		return nil, err
	}

	item, err := catalog.NewItem(shopID, req.SID, req.Type, req.Name, req.Price, req.OriginPrice)
	if err != nil {
		return nil, err
	}
	item.Description = req.Description
	if req.Images != nil {
		item.Images = req.Images
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		category, err := s.findCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if err := item.AssignCategory(category); err != nil {
			return nil, err
		}
	}

	exists, err := s.itemRepo.ExistsBySID(ctx, req.SID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("Item with s_id %s already exists", req.SID))
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("Item created", zap.Int64("item_id", item.ID), zap.String("shop_id", shopID), zap.String("s_id", item.SID))

	resp := ToItemResponse(item)
	return &resp, nil
}

// GetItem retrieves an item with its SKUs
func (s *CatalogService) GetItem(ctx context.Context, id int64) (*ItemResponse, error) {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// ListItems lists the items of an existing shop, optionally of one category
func (s *CatalogService) ListItems(ctx context.Context, shopID string, filter ItemListFilter) ([]ItemResponse, error) {
	if err := s.ensureShopExists(ctx, shopID); err != nil {
		return nil, err
	}

	var categoryID *string
	if filter.CategoryID != "" {
		categoryID = &filter.CategoryID
	}
	items, err := s.itemRepo.FindByShop(ctx, shopID, categoryID)
	if err != nil {
		return nil, err
	}
	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses, nil
}

// AddSku adds a variant to an existing item
func (s *CatalogService) AddSku(ctx context.Context, itemID int64, req AddSkuRequest) (*SkuResponse, error) {
	if _, err := s.findItem(ctx, itemID); err != nil {
		return nil, err
	}

	sku, err := catalog.NewSku(itemID, req.Code, req.Name, req.Price, req.Stock)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.AddSku(ctx, sku); err != nil {
		return nil, err
	}

	resp := ToSkuResponse(sku)
	return &resp, nil
}

func (s *CatalogService) ensureShopExists(ctx context.Context, shopID string) error {
	exists, err := s.shopRepo.ExistsByID(ctx, shopID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Shop with ID %s not found", shopID))
	}
	return nil
}

func (s *CatalogService) findCategory(ctx context.Context, id string) (*catalog.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Category with ID %s not found", id))
		}
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) findItem(ctx context.Context, id int64) (*catalog.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Item with ID %d not found", id))
		}
		return nil, err
	}
	return item, nil
}
