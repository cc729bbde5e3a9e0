package event

import (
	"github.com/shopcrm/backend/internal/domain/customer"
)

// RegisterAllEvents registers all domain event types with the serializer
func RegisterAllEvents(serializer *EventSerializer) {
	for _, eventType := range customer.EventTypes() {
		serializer.Register(eventType, &customer.CustomerEvent{})
	}
}
