package shop

import (
	"context"

	"github.com/shopcrm/backend/internal/domain/shared"
)

// ShopRepository defines the interface for shop persistence.
// Soft deleted shops are invisible to every finder.
type ShopRepository interface {
	FindByID(ctx context.Context, id string) (*Shop, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Shop, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	// Create inserts a new shop; a taken id yields shared.ErrAlreadyExists
	Create(ctx context.Context, shop *Shop) error
	Save(ctx context.Context, shop *Shop) error
}

// ChannelRepository defines the interface for channel persistence
type ChannelRepository interface {
	FindByID(ctx context.Context, id int64) (*Channel, error)
	FindByShop(ctx context.Context, shopID string) ([]Channel, error)
	Create(ctx context.Context, channel *Channel) error
	Delete(ctx context.Context, id int64) error
}
