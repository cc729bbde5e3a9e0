package customer

import "context"

// ShopDirectory resolves shop ids. Both methods return an error matching
// shared.ErrNotFound when the shop does not exist or was soft deleted.
//
// Resolve reads the store and is used before a customer is bound to a shop.
// Lookup may answer from a cache and only backs read filters, so a shop
// deleted on another instance can still pass a Lookup for a short while.
type ShopDirectory interface {
	Resolve(ctx context.Context, shopID string) (ShopRef, error)
	Lookup(ctx context.Context, shopID string) (ShopRef, error)
}

// ChannelDirectory resolves channel ids the same way ShopDirectory does
type ChannelDirectory interface {
	Resolve(ctx context.Context, channelID int64) (ChannelRef, error)
	Lookup(ctx context.Context, channelID int64) (ChannelRef, error)
}
