package customer

import (
	"strconv"

	"github.com/shopcrm/backend/internal/domain/shared"
)

// AggregateTypeCustomer is the aggregate type carried by customer events
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerCreated = "customer.created"
	EventTypeCustomerUpdated = "customer.updated"
	EventTypeCustomerDeleted = "customer.deleted"
)

// EventTypes lists every customer event type
func EventTypes() []string {
	return []string{EventTypeCustomerCreated, EventTypeCustomerUpdated, EventTypeCustomerDeleted}
}

// CustomerEvent is published after a customer is written
type CustomerEvent struct {
	shared.BaseDomainEvent
	CustomerID int64   `json:"customer_id"`
	Platform   string  `json:"platform"`
	ExternalID string  `json:"external_id"`
	Name       *string `json:"name"`
	ChannelID  int64   `json:"channel_id"`
}

// Identity returns the customer identity the event refers to
func (e *CustomerEvent) Identity() Identity {
	return Identity{Platform: e.Platform, ExternalID: e.ExternalID}
}

func newCustomerEvent(eventType string, c *Customer) *CustomerEvent {
	return &CustomerEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeCustomer, strconv.FormatInt(c.ID, 10), c.ShopID),
		CustomerID:      c.ID,
		Platform:        c.Platform,
		ExternalID:      c.ExternalID,
		Name:            c.Name,
		ChannelID:       c.ChannelID,
	}
}

// NewCustomerCreatedEvent creates the event for a newly stored customer
func NewCustomerCreatedEvent(c *Customer) *CustomerEvent {
	return newCustomerEvent(EventTypeCustomerCreated, c)
}

// NewCustomerUpdatedEvent creates the event for an updated customer
func NewCustomerUpdatedEvent(c *Customer) *CustomerEvent {
	return newCustomerEvent(EventTypeCustomerUpdated, c)
}

// NewCustomerDeletedEvent creates the event for a removed customer
func NewCustomerDeletedEvent(c *Customer) *CustomerEvent {
	return newCustomerEvent(EventTypeCustomerDeleted, c)
}
