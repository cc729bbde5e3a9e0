package shop

import (
	"strings"

	"github.com/shopcrm/backend/internal/domain/shared"
)

// Channel is a messaging channel (Zalo OA, Messenger page, ...) owned by a shop
type Channel struct {
	shared.BaseAggregateRoot
	ID       int64
	ShopID   string
	Name     string
	Platform string
	Status   Status
}

// NewChannel creates a channel for an existing shop
func NewChannel(shopID, name, platform string) (*Channel, error) {
	if shopID == "" {
		return nil, shared.NewDomainError("INVALID_SHOP_ID", "Shop ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Channel name cannot be empty")
	}
	if strings.TrimSpace(platform) == "" {
		return nil, shared.NewDomainError("INVALID_PLATFORM", "Channel platform cannot be empty")
	}
	return &Channel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ShopID:            shopID,
		Name:              name,
		Platform:          platform,
		Status:            StatusActive,
	}, nil
}

// Deactivate stops the channel from accepting new customers
func (c *Channel) Deactivate() {
	c.Status = StatusInactive
	c.Touch()
}

// IsActive reports whether the channel is active
func (c *Channel) IsActive() bool {
	return c.Status == StatusActive
}
