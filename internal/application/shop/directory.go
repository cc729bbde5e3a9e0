package shop

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopcrm/backend/internal/domain/customer"
	"github.com/shopcrm/backend/internal/domain/shared"
	"github.com/shopcrm/backend/internal/domain/shop"
)

// NameCache caches the display name of a resolved reference
type NameCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
	Delete(ctx context.Context, key string)
}

func shopCacheKey(id string) string {
	return "shop:" + id
}

func channelCacheKey(id int64) string {
	return "channel:" + strconv.FormatInt(id, 10)
}

// ShopNotFound returns the NOT_FOUND error of a missing shop
func ShopNotFound(id string) error {
	return shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Shop with ID %s not found", id))
}

// ChannelNotFound returns the NOT_FOUND error of a missing channel
func ChannelNotFound(id int64) error {
	return shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Channel with ID %d not found", id))
}

// ShopDirectory resolves shop ids for the customer service
type ShopDirectory struct {
	repo  shop.ShopRepository
	cache NameCache
}

// NewShopDirectory creates a ShopDirectory. cache may be nil.
func NewShopDirectory(repo shop.ShopRepository, cache NameCache) *ShopDirectory {
	return &ShopDirectory{repo: repo, cache: cache}
}

// Resolve reads a live shop from the store and refreshes its cached name
func (d *ShopDirectory) Resolve(ctx context.Context, shopID string) (customer.ShopRef, error) {
	s, err := d.repo.FindByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			if d.cache != nil {
				d.cache.Delete(ctx, shopCacheKey(shopID))
			}
			return customer.ShopRef{}, ShopNotFound(shopID)
		}
		return customer.ShopRef{}, err
	}

	if d.cache != nil {
		d.cache.Set(ctx, shopCacheKey(shopID), s.Name)
	}
	return customer.ShopRef{ID: s.ID, Name: s.Name}, nil
}

// Lookup answers from the cache when it can and falls back to Resolve
func (d *ShopDirectory) Lookup(ctx context.Context, shopID string) (customer.ShopRef, error) {
	if d.cache != nil {
		if name, ok := d.cache.Get(ctx, shopCacheKey(shopID)); ok {
			return customer.ShopRef{ID: shopID, Name: name}, nil
		}
	}
	return d.Resolve(ctx, shopID)
}

// ChannelDirectory resolves channel ids for the customer service
type ChannelDirectory struct {
	repo  shop.ChannelRepository
	cache NameCache
}

// NewChannelDirectory creates a ChannelDirectory. cache may be nil.
func NewChannelDirectory(repo shop.ChannelRepository, cache NameCache) *ChannelDirectory {
	return &ChannelDirectory{repo: repo, cache: cache}
}

// Resolve reads a channel from the store and refreshes its cached name
func (d *ChannelDirectory) Resolve(ctx context.Context, channelID int64) (customer.ChannelRef, error) {
	c, err := d.repo.FindByID(ctx, channelID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			if d.cache != nil {
				d.cache.Delete(ctx, channelCacheKey(channelID))
			}
			return customer.ChannelRef{}, ChannelNotFound(channelID)
		}
		return customer.ChannelRef{}, err
	}

	if d.cache != nil {
		d.cache.Set(ctx, channelCacheKey(channelID), c.Name)
	}
	return customer.ChannelRef{ID: c.ID, Name: c.Name}, nil
}

// Lookup answers from the cache when it can and falls back to Resolve
func (d *ChannelDirectory) Lookup(ctx context.Context, channelID int64) (customer.ChannelRef, error) {
	if d.cache != nil {
		if name, ok := d.cache.Get(ctx, channelCacheKey(channelID)); ok {
			return customer.ChannelRef{ID: channelID, Name: name}, nil
		}
	}
	return d.Resolve(ctx, channelID)
}

var (
	_ customer.ShopDirectory    = (*ShopDirectory)(nil)
	_ customer.ChannelDirectory = (*ChannelDirectory)(nil)
)
