package models

import (
	"time"

	"github.com/shopcrm/backend/internal/domain/customer"
	"github.com/shopcrm/backend/internal/domain/shared"
)

// CustomerModel is the persistence model for the Customer domain entity.
// Shop and Channel are read-only associations loaded with Preload.
type CustomerModel struct {
	ID         int64         `gorm:"primaryKey;autoIncrement"`
	Platform   string        `gorm:"type:varchar(50);not null;uniqueIndex:idx_customers_platform_external_id,priority:1"`
	ExternalID string        `gorm:"type:varchar(255);not null;uniqueIndex:idx_customers_platform_external_id,priority:2"`
	Name       *string       `gorm:"type:varchar(255)"`
	ShopID     string        `gorm:"type:varchar(64);not null;index"`
	ChannelID  int64         `gorm:"not null;index"`
	CreatedAt  time.Time     `gorm:"not null;index"`
	UpdatedAt  time.Time     `gorm:"not null"`
	Shop       *ShopModel    `gorm:"foreignKey:ShopID"`
	Channel    *ChannelModel `gorm:"foreignKey:ChannelID"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *customer.Customer {
	c := &customer.Customer{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			Timestamps: shared.Timestamps{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		},
		ID:         m.ID,
		Platform:   m.Platform,
		ExternalID: m.ExternalID,
		Name:       m.Name,
		ShopID:     m.ShopID,
		ChannelID:  m.ChannelID,
	}
	if m.Shop != nil {
		c.Shop = &customer.ShopRef{ID: m.Shop.ID, Name: m.Shop.Name}
	}
	if m.Channel != nil {
		c.Channel = &customer.ChannelRef{ID: m.Channel.ID, Name: m.Channel.Name}
	}
	return c
}

// FromDomain populates the persistence model from a domain Customer entity.
// Associations are never written through the customer.
func (m *CustomerModel) FromDomain(c *customer.Customer) {
	m.ID = c.ID
	m.Platform = c.Platform
	m.ExternalID = c.ExternalID
	m.Name = c.Name
	m.ShopID = c.ShopID
	m.ChannelID = c.ChannelID
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *customer.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
