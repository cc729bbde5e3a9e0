package customer

import (
	"time"

	"github.com/shopcrm/backend/internal/domain/customer"
	"github.com/shopcrm/backend/internal/domain/shared"
)

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Platform   string  `json:"platform" binding:"required,min=1,max=50"`
	ExternalID string  `json:"external_id" binding:"required,min=1,max=255"`
	Name       *string `json:"name" binding:"omitempty,max=255"`
	ShopID     string  `json:"shop_id" binding:"required,max=64"`
	ChannelID  int64   `json:"channel_id" binding:"required,gt=0"`
}

// UpdateCustomerRequest represents a partial update of a customer.
// Only fields present in the payload are applied. Name is cleared when sent
// as null or as an empty string; the other fields are ignored when null or empty.
type UpdateCustomerRequest struct {
	Platform   shared.Optional[string] `json:"platform"`
	ExternalID shared.Optional[string] `json:"external_id"`
	Name       shared.Optional[string] `json:"name"`
	ShopID     shared.Optional[string] `json:"shop_id"`
	ChannelID  shared.Optional[int64]  `json:"channel_id"`
}

func (r UpdateCustomerRequest) platform() (string, bool) {
	return r.Platform.Value, r.Platform.Present() && r.Platform.Value != ""
}

func (r UpdateCustomerRequest) externalID() (string, bool) {
	return r.ExternalID.Value, r.ExternalID.Present() && r.ExternalID.Value != ""
}

func (r UpdateCustomerRequest) shopID() (string, bool) {
	return r.ShopID.Value, r.ShopID.Present() && r.ShopID.Value != ""
}

func (r UpdateCustomerRequest) channelID() (int64, bool) {
	return r.ChannelID.Value, r.ChannelID.Present() && r.ChannelID.Value != 0
}

// CustomerListFilter represents the query of a paginated customer listing
type CustomerListFilter struct {
	Platform  string `form:"platform" binding:"omitempty,max=50"`
	ShopID    string `form:"shop_id" binding:"omitempty,max=64"`
	ChannelID int64  `form:"channel_id" binding:"omitempty,gt=0"`
	Name      string `form:"name" binding:"omitempty,max=255"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ShopSummary is the flattened shop reference of a customer
type ShopSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ChannelSummary is the flattened channel reference of a customer
type ChannelSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CustomerView represents a customer in API responses.
// Shop and Channel are null when the referenced row is no longer visible.
type CustomerView struct {
	ID         int64           `json:"id"`
	Platform   string          `json:"platform"`
	ExternalID string          `json:"external_id"`
	Name       *string         `json:"name"`
	ShopID     string          `json:"shop_id"`
	ChannelID  int64           `json:"channel_id"`
	Shop       *ShopSummary    `json:"shop"`
	Channel    *ChannelSummary `json:"channel"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CustomerPage is a page of customers
type CustomerPage = shared.Paginated[CustomerView]

// ToCustomerView converts a domain Customer to CustomerView
func ToCustomerView(c *customer.Customer) CustomerView {
	view := CustomerView{
		ID:         c.ID,
		Platform:   c.Platform,
		ExternalID: c.ExternalID,
		Name:       c.Name,
		ShopID:     c.ShopID,
		ChannelID:  c.ChannelID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if c.Shop != nil {
		view.Shop = &ShopSummary{ID: c.Shop.ID, Name: c.Shop.Name}
	}
	if c.Channel != nil {
		view.Channel = &ChannelSummary{ID: c.Channel.ID, Name: c.Channel.Name}
	}
	return view
}

// ToCustomerViews converts a slice of domain Customers to CustomerViews
func ToCustomerViews(customers []customer.Customer) []CustomerView {
	views := make([]CustomerView, len(customers))
	for i := range customers {
		views[i] = ToCustomerView(&customers[i])
	}
	return views
}
