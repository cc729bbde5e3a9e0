package catalog

import (
	"strings"

	"github.com/shopcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Item is a sellable product of a shop
type Item struct {
	shared.BaseAggregateRoot
	ID          int64
	SID         string
	ShopID      string
	CategoryID  *string
	Type        string
	Name        string
	Description string
	Images      []string
	Price       decimal.Decimal
	OriginPrice decimal.Decimal
	Status      Status
	Skus        []Sku
}

// NewItem creates an active item. SID is the shop-facing unique code.
func NewItem(shopID, sid, itemType, name string, price, originPrice decimal.Decimal) (*Item, error) {
	if shopID == "" {
		return nil, shared.NewDomainError("INVALID_SHOP_ID", "Shop ID cannot be empty")
	}
	if strings.TrimSpace(sid) == "" {
		return nil, shared.NewDomainError("INVALID_SID", "Item SID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if price.IsNegative() || originPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SID:               sid,
		ShopID:            shopID,
		Type:              itemType,
		Name:              name,
		Images:            []string{},
		Price:             price,
		OriginPrice:       originPrice,
		Status:            StatusActive,
	}, nil
}

// AssignCategory files the item under a category of the same shop
func (i *Item) AssignCategory(category *Category) error {
	if category.ShopID != i.ShopID {
		return shared.NewDomainError("CATEGORY_SHOP_MISMATCH", "Category belongs to a different shop")
	}
	if category.IsDeleted() {
		return shared.NewDomainError(shared.CodeInvalidState, "Category is deleted")
	}
	id := category.ID
	i.CategoryID = &id
	i.Touch()
	return nil
}

// Discount returns how much cheaper the item is than its origin price
func (i *Item) Discount() decimal.Decimal {
	if i.OriginPrice.LessThanOrEqual(i.Price) {
		return decimal.Zero
	}
	return i.OriginPrice.Sub(i.Price)
}

// Sku is a purchasable variant of an item
type Sku struct {
	ID     int64
	ItemID int64
	Code   string
	Name   string
	Price  decimal.Decimal
	Stock  int
	shared.Timestamps
}

// NewSku creates a variant of an item
func NewSku(itemID int64, code, name string, price decimal.Decimal, stock int) (*Sku, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "SKU code cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	return &Sku{
		ItemID:     itemID,
		Code:       code,
		Name:       name,
		Price:      price,
		Stock:      stock,
		Timestamps: shared.NewTimestamps(),
	}, nil
}
