package catalog

import (
	"context"
)

// CategoryRepository defines the interface for category persistence.
// Soft deleted categories are invisible to every finder.
type CategoryRepository interface {
	FindByID(ctx context.Context, id string) (*Category, error)
	FindByShop(ctx context.Context, shopID string) ([]Category, error)
	Create(ctx context.Context, category *Category) error
	Save(ctx context.Context, category *Category) error
}

// ItemRepository defines the interface for item and SKU persistence
type ItemRepository interface {
	// FindByID finds an item with its SKUs
	FindByID(ctx context.Context, id int64) (*Item, error)
	// FindByShop lists items of a shop, optionally restricted to a category
	FindByShop(ctx context.Context, shopID string, categoryID *string) ([]Item, error)
	ExistsBySID(ctx context.Context, sid string) (bool, error)
	Create(ctx context.Context, item *Item) error
	AddSku(ctx context.Context, sku *Sku) error
}
