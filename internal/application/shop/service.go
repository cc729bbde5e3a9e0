package shop

import (
	"context"
	"errors"

	"github.com/shopcrm/backend/internal/domain/shared"
	"github.com/shopcrm/backend/internal/domain/shop"
	"go.uber.org/zap"
)

// ShopService manages shops
type ShopService struct {
	shopRepo shop.ShopRepository
	cache    NameCache
	logger   *zap.Logger
}

// NewShopService creates a new ShopService. cache may be nil.
func NewShopService(shopRepo shop.ShopRepository, cache NameCache, logger *zap.Logger) *ShopService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShopService{shopRepo: shopRepo, cache: cache, logger: logger}
}

// CreateShop creates a new shop
func (s *ShopService) CreateShop(ctx context.Context, req CreateShopRequest) (*ShopResponse, error) {
	newShop, err := shop.NewShop(req.ID, req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.shopRepo.Create(ctx, newShop); err != nil {
		return nil, err
	}

	s.logger.Info("Shop created", zap.String("shop_id", newShop.ID), zap.String("name", newShop.Name))

	response := ToShopResponse(newShop)
	return &response, nil
}

// GetShop retrieves a live shop by ID
func (s *ShopService) GetShop(ctx context.Context, id string) (*ShopResponse, error) {
	found, err := s.shopRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ShopNotFound(id)
		}
		return nil, err
	}
	response := ToShopResponse(found)
	return &response, nil
}

// ListShops retrieves a page of live shops
func (s *ShopService) ListShops(ctx context.Context, filter ShopListFilter) (*shared.Paginated[ShopResponse], error) {
	if filter.Page <= 0 {
		filter.Page = shared.DefaultPage
	}
	if filter.Limit <= 0 {
		filter.Limit = shared.DefaultPageSize
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.Limit,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	shops, err := s.shopRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.shopRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ShopResponse, len(shops))
	for i := range shops {
		items[i] = ToShopResponse(&shops[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.Limit)
	return &page, nil
}

// DeleteShop soft deletes a shop. Customers keep pointing at it but see a
// null shop summary from then on.
func (s *ShopService) DeleteShop(ctx context.Context, id string) error {
	found, err := s.shopRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ShopNotFound(id)
		}
		return err
	}

	if err := found.Delete(); err != nil {
		return err
	}
	if err := s.shopRepo.Save(ctx, found); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Delete(ctx, shopCacheKey(id))
	}

	s.logger.Info("Shop deleted", zap.String("shop_id", id))
	return nil
}

// ChannelService manages the messaging channels of shops
type ChannelService struct {
	channelRepo shop.ChannelRepository
	shopRepo    shop.ShopRepository
	cache       NameCache
	logger      *zap.Logger
}

// NewChannelService creates a new ChannelService. cache may be nil.
func NewChannelService(channelRepo shop.ChannelRepository, shopRepo shop.ShopRepository, cache NameCache, logger *zap.Logger) *ChannelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChannelService{channelRepo: channelRepo, shopRepo: shopRepo, cache: cache, logger: logger}
}

// CreateChannel opens a channel for an existing shop
func (s *ChannelService) CreateChannel(ctx context.Context, shopID string, req CreateChannelRequest) (*ChannelResponse, error) {
	if err := s.ensureShopExists(ctx, shopID); err != nil {
		return nil, err
	}

	channel, err := shop.NewChannel(shopID, req.Name, req.Platform)
	if err != nil {
		return nil, err
	}
	if err := s.channelRepo.Create(ctx, channel); err != nil {
		return nil, err
	}

	s.logger.Info("Channel created",
		zap.Int64("channel_id", channel.ID),
		zap.String("shop_id", shopID),
		zap.String("platform", channel.Platform))

	response := ToChannelResponse(channel)
	return &response, nil
}

// GetChannel retrieves a channel by ID
func (s *ChannelService) GetChannel(ctx context.Context, id int64) (*ChannelResponse, error) {
	channel, err := s.channelRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ChannelNotFound(id)
		}
		return nil, err
	}
	response := ToChannelResponse(channel)
	return &response, nil
}

// ListChannels lists the channels of an existing shop
func (s *ChannelService) ListChannels(ctx context.Context, shopID string) ([]ChannelResponse, error) {
	if err := s.ensureShopExists(ctx, shopID); err != nil {
		return nil, err
	}
	channels, err := s.channelRepo.FindByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return ToChannelResponses(channels), nil
}

// DeleteChannel removes a channel that no customer references any more
func (s *ChannelService) DeleteChannel(ctx context.Context, id int64) error {
	if err := s.channelRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ChannelNotFound(id)
		}
		return err
	}
	if s.cache != nil {
		s.cache.Delete(ctx, channelCacheKey(id))
	}

	s.logger.Info("Channel deleted", zap.Int64("channel_id", id))
	return nil
}

func (s *ChannelService) ensureShopExists(ctx context.Context, shopID string) error {
	exists, err := s.shopRepo.ExistsByID(ctx, shopID)
	if err != nil {
		return err
	}
	if !exists {
		return ShopNotFound(shopID)
	}
	return nil
}
