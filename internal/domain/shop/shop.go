package shop

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopcrm/backend/internal/domain/shared"
)

// Status represents the status of a shop or channel
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Shop is a merchant tenant. Shops are soft deleted.
type Shop struct {
	shared.BaseAggregateRoot
	shared.SoftDeletable
	ID     string
	Name   string
	Status Status
}

// NewShop creates a new active shop. An empty id is replaced by a generated one.
func NewShop(id, name string) (*Shop, error) {
	if err := validateShopName(name); err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}
	if len(id) > 64 {
		return nil, shared.NewDomainError("INVALID_SHOP_ID", "Shop ID cannot exceed 64 characters")
	}
	return &Shop{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ID:                id,
		Name:              name,
		Status:            StatusActive,
	}, nil
}

// Rename changes the shop name
func (s *Shop) Rename(name string) error {
	if err := validateShopName(name); err != nil {
		return err
	}
	s.Name = name
	s.Touch()
	return nil
}

// Delete soft deletes the shop
func (s *Shop) Delete() error {
	if s.IsDeleted() {
		return shared.NewDomainError(shared.CodeInvalidState, "Shop is already deleted")
	}
	s.MarkDeleted()
	s.Status = StatusInactive
	s.Touch()
	return nil
}

func validateShopName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Shop name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Shop name cannot exceed 200 characters")
	}
	return nil
}
