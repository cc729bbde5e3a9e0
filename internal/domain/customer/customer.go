package customer

import (
	"strings"
	"unicode/utf8"

	"github.com/shopcrm/backend/internal/domain/shared"
)

// Field limits, mirrored by the customers table
const (
	MaxPlatformLength   = 50
	MaxExternalIDLength = 255
	MaxNameLength       = 255
)

// ShopRef is the flattened summary of the shop a customer belongs to
type ShopRef struct {
	ID   string
	Name string
}

// ChannelRef is the flattened summary of the channel a customer talks through
type ChannelRef struct {
	ID   int64
	Name string
}

// Customer is an end user of a shop, identified on a messaging platform
// by (Platform, ExternalID). It is the aggregate root of this package.
type Customer struct {
	shared.BaseAggregateRoot
	ID         int64
	Platform   string
	ExternalID string
	Name       *string
	ShopID     string
	ChannelID  int64

	// Shop and Channel are populated when the record is loaded with its references
	Shop    *ShopRef
	Channel *ChannelRef
}

// NewCustomer creates a customer bound to an already resolved shop and channel
func NewCustomer(platform, externalID string, name *string, shop ShopRef, channel ChannelRef) (*Customer, error) {
	if err := validatePlatform(platform); err != nil {
		return nil, err
	}
	if err := validateExternalID(externalID); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	c := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Platform:          platform,
		ExternalID:        externalID,
		Name:              normalizeName(name),
		ShopID:            shop.ID,
		ChannelID:         channel.ID,
		Shop:              &shop,
		Channel:           &channel,
	}
	return c, nil
}

// Identity returns the (platform, externalId) pair that must be unique
func (c *Customer) Identity() Identity {
	return Identity{Platform: c.Platform, ExternalID: c.ExternalID}
}

// ChangeIdentity replaces the platform and external id
func (c *Customer) ChangeIdentity(platform, externalID string) error {
	if err := validatePlatform(platform); err != nil {
		return err
	}
	if err := validateExternalID(externalID); err != nil {
		return err
	}
	c.Platform = platform
	c.ExternalID = externalID
	c.Touch()
	return nil
}

// Rename sets the display name. A nil or empty name clears it.
func (c *Customer) Rename(name *string) error {
	if err := validateName(name); err != nil {
		return err
	}
	c.Name = normalizeName(name)
	c.Touch()
	return nil
}

// MoveToShop rebinds the customer to another resolved shop
func (c *Customer) MoveToShop(shop ShopRef) {
	c.ShopID = shop.ID
	c.Shop = &shop
	c.Touch()
}

// MoveToChannel rebinds the customer to another resolved channel
func (c *Customer) MoveToChannel(channel ChannelRef) {
	c.ChannelID = channel.ID
	c.Channel = &channel
	c.Touch()
}

// DisplayName returns the name or an empty string when unset
func (c *Customer) DisplayName() string {
	if c.Name == nil {
		return ""
	}
	return *c.Name
}

// Identity is the natural key of a customer
type Identity struct {
	Platform   string
	ExternalID string
}

// String renders the identity as platform:externalId
func (i Identity) String() string {
	return i.Platform + ":" + i.ExternalID
}

func normalizeName(name *string) *string {
	if name == nil || *name == "" {
		return nil
	}
	v := *name
	return &v
}

func validatePlatform(platform string) error {
	if strings.TrimSpace(platform) == "" {
		return shared.NewDomainError("INVALID_PLATFORM", "Platform cannot be empty")
	}
	if utf8.RuneCountInString(platform) > MaxPlatformLength {
		return shared.NewDomainError("INVALID_PLATFORM", "Platform cannot exceed 50 characters")
	}
	return nil
}

func validateExternalID(externalID string) error {
	if strings.TrimSpace(externalID) == "" {
		return shared.NewDomainError("INVALID_EXTERNAL_ID", "External ID cannot be empty")
	}
	if utf8.RuneCountInString(externalID) > MaxExternalIDLength {
		return shared.NewDomainError("INVALID_EXTERNAL_ID", "External ID cannot exceed 255 characters")
	}
	return nil
}

func validateName(name *string) error {
	if name != nil && utf8.RuneCountInString(*name) > MaxNameLength {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 255 characters")
	}
	return nil
}
