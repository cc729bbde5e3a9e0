package models

import (
	"github.com/shopcrm/backend/internal/domain/catalog"
	"github.com/shopcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	ID          string         `gorm:"type:varchar(64);primaryKey"`
	ShopID      string         `gorm:"type:varchar(64);not null;index"`
	Type        string         `gorm:"type:varchar(50)"`
	Name        string         `gorm:"type:varchar(200);not null"`
	Description string         `gorm:"type:text"`
	Images      string         `gorm:"type:jsonb;default:'[]'"`
	Status      catalog.Status `gorm:"type:varchar(20);not null;default:'active'"`
	TimestampModel
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseAggregateRoot: shared.BaseAggregateRoot{Timestamps: m.TimestampModel.ToDomain()},
		SoftDeletable:     softDeleteToDomain(m.DeletedAt),
		ID:                m.ID,
		ShopID:            m.ShopID,
		Type:              m.Type,
		Name:              m.Name,
		Description:       m.Description,
		Images:            decodeStrings(m.Images),
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.ID = c.ID
	m.ShopID = c.ShopID
	m.Type = c.Type
	m.Name = c.Name
	m.Description = c.Description
	m.Images = encodeStrings(c.Images)
	m.Status = c.Status
	m.FromDomainTimestamps(c.Timestamps)
	m.DeletedAt = softDeleteFromDomain(c.SoftDeletable)
}

// CategoryModelFromDomain creates a new persistence model from a domain Category entity.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// ItemModel is the persistence model for the Item domain entity.
type ItemModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	SID         string          `gorm:"column:s_id;type:varchar(100);not null;uniqueIndex"`
	ShopID      string          `gorm:"type:varchar(64);not null;index"`
	CategoryID  *string         `gorm:"type:varchar(64);index"`
	Type        string          `gorm:"type:varchar(50)"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Images      string          `gorm:"type:jsonb;default:'[]'"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	OriginPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status      catalog.Status  `gorm:"type:varchar(20);not null;default:'active'"`
	TimestampModel
	Skus []SkuModel `gorm:"foreignKey:ItemID"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the persistence model to a domain Item entity.
func (m *ItemModel) ToDomain() *catalog.Item {
	item := &catalog.Item{
		BaseAggregateRoot: shared.BaseAggregateRoot{Timestamps: m.TimestampModel.ToDomain()},
		ID:                m.ID,
		SID:               m.SID,
		ShopID:            m.ShopID,
		CategoryID:        m.CategoryID,
		Type:              m.Type,
		Name:              m.Name,
		Description:       m.Description,
		Images:            decodeStrings(m.Images),
		Price:             m.Price,
		OriginPrice:       m.OriginPrice,
		Status:            m.Status,
		Skus:              make([]catalog.Sku, 0, len(m.Skus)),
	}
	for i := range m.Skus {
		item.Skus = append(item.Skus, *m.Skus[i].ToDomain())
	}
	return item
}

// FromDomain populates the persistence model from a domain Item entity.
// SKUs are written separately.
func (m *ItemModel) FromDomain(i *catalog.Item) {
	m.ID = i.ID
	m.SID = i.SID
	m.ShopID = i.ShopID
	m.CategoryID = i.CategoryID
	m.Type = i.Type
	m.Name = i.Name
	m.Description = i.Description
	m.Images = encodeStrings(i.Images)
	m.Price = i.Price
	m.OriginPrice = i.OriginPrice
	m.Status = i.Status
	m.FromDomainTimestamps(i.Timestamps)
}

// ItemModelFromDomain creates a new persistence model from a domain Item entity.
func ItemModelFromDomain(i *catalog.Item) *ItemModel {
	m := &ItemModel{}
	m.FromDomain(i)
	return m
}

// SkuModel is the persistence model for the Sku domain entity.
type SkuModel struct {
	ID     int64           `gorm:"primaryKey;autoIncrement"`
	ItemID int64           `gorm:"not null;index"`
	Code   string          `gorm:"type:varchar(100);not null"`
	Name   string          `gorm:"type:varchar(200)"`
	Price  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Stock  int             `gorm:"not null;default:0"`
	TimestampModel
}

// TableName returns the table name for GORM
func (SkuModel) TableName() string {
	return "skus"
}

// ToDomain converts the persistence model to a domain Sku entity.
func (m *SkuModel) ToDomain() *catalog.Sku {
	return &catalog.Sku{
		ID:         m.ID,
		ItemID:     m.ItemID,
		Code:       m.Code,
		Name:       m.Name,
		Price:      m.Price,
		Stock:      m.Stock,
		Timestamps: m.TimestampModel.ToDomain(),
	}
}

// SkuModelFromDomain creates a new persistence model from a domain Sku entity.
func SkuModelFromDomain(s *catalog.Sku) *SkuModel {
	m := &SkuModel{
		ID:     s.ID,
		ItemID: s.ItemID,
		Code:   s.Code,
		Name:   s.Name,
		Price:  s.Price,
		Stock:  s.Stock,
	}
	m.FromDomainTimestamps(s.Timestamps)
	return m
}
