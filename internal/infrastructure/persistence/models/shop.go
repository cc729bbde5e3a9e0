package models

import (
	"github.com/shopcrm/backend/internal/domain/shared"
	"github.com/shopcrm/backend/internal/domain/shop"
	"gorm.io/gorm"
)

// ShopModel is the persistence model for the Shop domain entity.
type ShopModel struct {
	ID     string      `gorm:"type:varchar(64);primaryKey"`
	Name   string      `gorm:"type:varchar(200);not null"`
	Status shop.Status `gorm:"type:varchar(20);not null;default:'active'"`
	TimestampModel
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (ShopModel) TableName() string {
	return "shops"
}

// ToDomain converts the persistence model to a domain Shop entity.
func (m *ShopModel) ToDomain() *shop.Shop {
	return &shop.Shop{
		BaseAggregateRoot: shared.BaseAggregateRoot{Timestamps: m.TimestampModel.ToDomain()},
		SoftDeletable:     softDeleteToDomain(m.DeletedAt),
		ID:                m.ID,
		Name:              m.Name,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Shop entity.
func (m *ShopModel) FromDomain(s *shop.Shop) {
	m.ID = s.ID
	m.Name = s.Name
	m.Status = s.Status
	m.FromDomainTimestamps(s.Timestamps)
	m.DeletedAt = softDeleteFromDomain(s.SoftDeletable)
}

// ShopModelFromDomain creates a new persistence model from a domain Shop entity.
func ShopModelFromDomain(s *shop.Shop) *ShopModel {
	m := &ShopModel{}
	m.FromDomain(s)
	return m
}

// ChannelModel is the persistence model for the Channel domain entity.
type ChannelModel struct {
	ID       int64       `gorm:"primaryKey;autoIncrement"`
	ShopID   string      `gorm:"type:varchar(64);not null;index"`
	Name     string      `gorm:"type:varchar(200);not null"`
	Platform string      `gorm:"type:varchar(50);not null"`
	Status   shop.Status `gorm:"type:varchar(20);not null;default:'active'"`
	TimestampModel
}

// TableName returns the table name for GORM
func (ChannelModel) TableName() string {
	return "channels"
}

// ToDomain converts the persistence model to a domain Channel entity.
func (m *ChannelModel) ToDomain() *shop.Channel {
	return &shop.Channel{
		BaseAggregateRoot: shared.BaseAggregateRoot{Timestamps: m.TimestampModel.ToDomain()},
		ID:                m.ID,
		ShopID:            m.ShopID,
		Name:              m.Name,
		Platform:          m.Platform,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Channel entity.
func (m *ChannelModel) FromDomain(c *shop.Channel) {
	m.ID = c.ID
	m.ShopID = c.ShopID
	m.Name = c.Name
	m.Platform = c.Platform
	m.Status = c.Status
	m.FromDomainTimestamps(c.Timestamps)
}

// ChannelModelFromDomain creates a new persistence model from a domain Channel entity.
func ChannelModelFromDomain(c *shop.Channel) *ChannelModel {
	m := &ChannelModel{}
	m.FromDomain(c)
	return m
}
