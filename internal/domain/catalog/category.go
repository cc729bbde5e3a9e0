package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopcrm/backend/internal/domain/shared"
)

// Status represents the publication status of a catalog entry
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Category groups the items of a shop. Categories are soft deleted.
type Category struct {
	shared.BaseAggregateRoot
	shared.SoftDeletable
	ID          string
	ShopID      string
	Type        string
	Name        string
	Description string
	Images      []string
	Status      Status
}

// NewCategory creates an active category with a generated id
func NewCategory(shopID, categoryType, name, description string, images []string) (*Category, error) {
	if shopID == "" {
		return nil, shared.NewDomainError("INVALID_SHOP_ID", "Shop ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if images == nil {
		images = []string{}
	}
	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ID:                uuid.NewString(),
		ShopID:            shopID,
		Type:              categoryType,
		Name:              name,
		Description:       description,
		Images:            images,
		Status:            StatusActive,
	}, nil
}

// Delete soft deletes the category
func (c *Category) Delete() error {
	if c.IsDeleted() {
		return shared.NewDomainError(shared.CodeInvalidState, "Category is already deleted")
	}
	c.MarkDeleted()
	c.Touch()
	return nil
}
