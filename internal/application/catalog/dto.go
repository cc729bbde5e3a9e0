package catalog

import (
	"time"

	"github.com/shopcrm/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Type        string   `json:"type" binding:"omitempty,max=50"`
	Name        string   `json:"name" binding:"required,min=1,max=200"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
	Images      []string `json:"images" binding:"omitempty,dive,url"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          string    `json:"id"`
	ShopID      string    `json:"shop_id"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		ShopID:      c.ShopID,
		Type:        c.Type,
		Name:        c.Name,
		Description: c.Description,
		Images:      c.Images,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CreateItemRequest represents a request to create an item
type CreateItemRequest struct {
	SID         string          `json:"s_id" binding:"required,min=1,max=100"`
	CategoryID  *string         `json:"category_id" binding:"omitempty,max=64"`
	Type        string          `json:"type" binding:"omitempty,max=50"`
	Name        string          `json:"name" binding:"required,min=1,max=255"`
	Description string          `json:"description" binding:"omitempty,max=5000"`
	Images      []string        `json:"images" binding:"omitempty,dive,url"`
	Price       decimal.Decimal `json:"price"`
	OriginPrice decimal.Decimal `json:"origin_price"`
}

// ItemListFilter represents the query of an item listing
type ItemListFilter struct {
	CategoryID string `form:"category_id" binding:"omitempty,max=64"`
}

// AddSkuRequest represents a request to add a variant to an item
type AddSkuRequest struct {
	Code  string          `json:"code" binding:"required,min=1,max=100"`
	Name  string          `json:"name" binding:"omitempty,max=255"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock" binding:"min=0"`
}

// SkuResponse represents a SKU in API responses
type SkuResponse struct {
	ID     int64           `json:"id"`
	ItemID int64           `json:"item_id"`
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock"`
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID          int64           `json:"id"`
	SID         string          `json:"s_id"`
	ShopID      string          `json:"shop_id"`
	CategoryID  *string         `json:"category_id"`
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	Price       decimal.Decimal `json:"price"`
	OriginPrice decimal.Decimal `json:"origin_price"`
	Discount    decimal.Decimal `json:"discount"`
	Status      string          `json:"status"`
	Skus        []SkuResponse   `json:"skus,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToSkuResponse converts a domain Sku to SkuResponse
func ToSkuResponse(s *catalog.Sku) SkuResponse {
	return SkuResponse{
		ID:     s.ID,
		ItemID: s.ItemID,
		Code:   s.Code,
		Name:   s.Name,
		Price:  s.Price,
		Stock:  s.Stock,
	}
}

// ToItemResponse converts a domain Item to ItemResponse
func ToItemResponse(i *catalog.Item) ItemResponse {
	resp := ItemResponse{
		ID:          i.ID,
		SID:         i.SID,
		ShopID:      i.ShopID,
		CategoryID:  i.CategoryID,
		Type:        i.Type,
		Name:        i.Name,
		Description: i.Description,
		Images:      i.Images,
		Price:       i.Price,
		OriginPrice: i.OriginPrice,
		Discount:    i.Discount(),
		Status:      string(i.Status),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
	for j := range i.Skus {
		resp.Skus = append(resp.Skus, ToSkuResponse(&i.Skus[j]))
	}
	return resp
}
