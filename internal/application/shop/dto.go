package shop

import (
	"time"

	"github.com/shopcrm/backend/internal/domain/shop"
)

// CreateShopRequest represents a request to create a shop.
// ID is optional; a uuid is generated when it is empty.
type CreateShopRequest struct {
	ID   string `json:"id" binding:"omitempty,max=64"`
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// ShopListFilter represents the query of a shop listing
type ShopListFilter struct {
	Search string `form:"search" binding:"omitempty,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ShopResponse represents a shop in API responses
type ShopResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToShopResponse converts a domain Shop to ShopResponse
func ToShopResponse(s *shop.Shop) ShopResponse {
	return ShopResponse{
		ID:        s.ID,
		Name:      s.Name,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// CreateChannelRequest represents a request to open a channel for a shop
type CreateChannelRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Platform string `json:"platform" binding:"required,min=1,max=50"`
}

// ChannelResponse represents a channel in API responses
type ChannelResponse struct {
	ID        int64     `json:"id"`
	ShopID    string    `json:"shop_id"`
	Name      string    `json:"name"`
	Platform  string    `json:"platform"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToChannelResponse converts a domain Channel to ChannelResponse
func ToChannelResponse(c *shop.Channel) ChannelResponse {
	return ChannelResponse{
		ID:        c.ID,
		ShopID:    c.ShopID,
		Name:      c.Name,
		Platform:  c.Platform,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToChannelResponses converts a slice of domain Channels
func ToChannelResponses(channels []shop.Channel) []ChannelResponse {
	responses := make([]ChannelResponse, len(channels))
	for i := range channels {
		responses[i] = ToChannelResponse(&channels[i])
	}
	return responses
}
