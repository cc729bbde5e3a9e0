package customer

import (
	"context"

	"github.com/shopcrm/backend/internal/domain/shared"
)

// Filter keys understood by Repository.FindAll and Repository.Count.
// Filter.Search is matched as a case-sensitive substring of the name.
const (
	FilterPlatform  = "platform"
	FilterShopID    = "shop_id"
	FilterChannelID = "channel_id"
)

// Repository defines the interface for customer persistence.
// Lookups return shared.ErrNotFound when nothing matches.
type Repository interface {
	// FindByID finds a customer by its ID with shop and channel loaded
	FindByID(ctx context.Context, id int64) (*Customer, error)

	// FindByExternalID finds a customer by its platform identity with shop and channel loaded
	FindByExternalID(ctx context.Context, platform, externalID string) (*Customer, error)

	// FindAll finds customers matching the filter, newest first.
	// A filter with PageSize <= 0 returns every match.
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Create inserts a new customer and assigns its ID.
	// A violated (platform, external_id) index yields shared.ErrAlreadyExists;
	// a shop or channel removed since it was resolved yields *InvalidReferenceError.
	Create(ctx context.Context, customer *Customer) error

	// Update persists the mutable fields of an existing customer.
	// Constraint violations are reported as in Create.
	Update(ctx context.Context, customer *Customer) error

	// Delete hard deletes a customer
	Delete(ctx context.Context, id int64) error
}
