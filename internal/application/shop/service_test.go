package shop

import (
	"context"
	"errors"
	"testing"

	"github.com/shopcrm/backend/internal/domain/shared"
	"github.com/shopcrm/backend/internal/domain/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockShopRepository is a mock implementation of shop.ShopRepository
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) FindByID(ctx context.Context, id string) (*shop.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Shop), args.Error(1)
}

func (m *MockShopRepository) FindAll(ctx context.Context, filter shared.Filter) ([]shop.Shop, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shop.Shop), args.Error(1)
}

func (m *MockShopRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShopRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockShopRepository) Create(ctx context.Context, s *shop.Shop) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShopRepository) Save(ctx context.Context, s *shop.Shop) error {
	return m.Called(ctx, s).Error(0)
}

// MockChannelRepository is a mock implementation of shop.ChannelRepository
type MockChannelRepository struct {
	mock.Mock
}

func (m *MockChannelRepository) FindByID(ctx context.Context, id int64) (*shop.Channel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Channel), args.Error(1)
}

func (m *MockChannelRepository) FindByShop(ctx context.Context, shopID string) ([]shop.Channel, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shop.Channel), args.Error(1)
}

func (m *MockChannelRepository) Create(ctx context.Context, c *shop.Channel) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockChannelRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mapCache map[string]string

func (c mapCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := c[key]
	return v, ok
}

func (c mapCache) Set(_ context.Context, key, value string) { c[key] = value }

func (c mapCache) Delete(_ context.Context, key string) { delete(c, key) }

func newShop(t *testing.T, id, name string) *shop.Shop {
	t.Helper()
	s, err := shop.NewShop(id, name)
	require.NoError(t, err)
	return s
}

func TestShopDirectory_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("always reads the store and refreshes the cache", func(t *testing.T) {
		repo := new(MockShopRepository)
		cache := mapCache{"shop:S1": "Old name"}
		repo.On("FindByID", ctx, "S1").Return(newShop(t, "S1", "Flagship"), nil).Twice()
		dir := NewShopDirectory(repo, cache)

		for i := 0; i < 2; i++ {
			ref, err := dir.Resolve(ctx, "S1")
			require.NoError(t, err)
			assert.Equal(t, "S1", ref.ID)
			assert.Equal(t, "Flagship", ref.Name)
		}
		assert.Equal(t, "Flagship", cache["shop:S1"])
		repo.AssertExpectations(t)
	})

	t.Run("deleted shop is not resolved from a stale cache entry", func(t *testing.T) {
		repo := new(MockShopRepository)
		cache := mapCache{"shop:S1": "Flagship"}
		repo.On("FindByID", ctx, "S1").Return(nil, shared.ErrNotFound)

		_, err := NewShopDirectory(repo, cache).Resolve(ctx, "S1")

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NotContains(t, cache, "shop:S1")
	})

	t.Run("missing shop is NOT_FOUND", func(t *testing.T) {
		repo := new(MockShopRepository)
		repo.On("FindByID", ctx, "S404").Return(nil, shared.ErrNotFound)

		_, err := NewShopDirectory(repo, nil).Resolve(ctx, "S404")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeNotFound, domainErr.Code)
		assert.Equal(t, "Shop with ID S404 not found", domainErr.Message)
	})

	t.Run("store errors pass through", func(t *testing.T) {
		repo := new(MockShopRepository)
		boom := errors.New("boom")
		repo.On("FindByID", ctx, "S1").Return(nil, boom)

		_, err := NewShopDirectory(repo, nil).Resolve(ctx, "S1")
		assert.Equal(t, boom, err)
	})
}

func TestShopDirectory_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("found shop is cached", func(t *testing.T) {
		repo := new(MockShopRepository)
		cache := mapCache{}
		repo.On("FindByID", ctx, "S1").Return(newShop(t, "S1", "Flagship"), nil).Once()
		dir := NewShopDirectory(repo, cache)

		ref, err := dir.Lookup(ctx, "S1")
		require.NoError(t, err)
		assert.Equal(t, "Flagship", ref.Name)

		ref, err = dir.Lookup(ctx, "S1")
		require.NoError(t, err)
		assert.Equal(t, "S1", ref.ID)
		assert.Equal(t, "Flagship", ref.Name)
		repo.AssertExpectations(t)
	})

	t.Run("without a cache it reads the store", func(t *testing.T) {
		repo := new(MockShopRepository)
		repo.On("FindByID", ctx, "S404").Return(nil, shared.ErrNotFound)

		_, err := NewShopDirectory(repo, nil).Lookup(ctx, "S404")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestChannelDirectory(t *testing.T) {
	ctx := context.Background()
	repo := new(MockChannelRepository)
	cache := mapCache{}
	dir := NewChannelDirectory(repo, cache)

	repo.On("FindByID", ctx, int64(7)).Return(&shop.Channel{ID: 7, ShopID: "S1", Name: "Zalo OA"}, nil).Once()
	repo.On("FindByID", ctx, int64(99)).Return(nil, shared.ErrNotFound)

	ref, err := dir.Lookup(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Zalo OA", ref.Name)
	assert.Equal(t, "Zalo OA", cache["channel:7"])

	_, err = dir.Lookup(ctx, 7)
	require.NoError(t, err)

	_, err = dir.Lookup(ctx, 99)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	repo.AssertExpectations(t)

	t.Run("resolve ignores a cached channel that was deleted", func(t *testing.T) {
		repo := new(MockChannelRepository)
		cache := mapCache{"channel:8": "Messenger"}
		repo.On("FindByID", ctx, int64(8)).Return(nil, shared.ErrNotFound)

		_, err := NewChannelDirectory(repo, cache).Resolve(ctx, 8)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NotContains(t, cache, "channel:8")
	})
}

func TestShopService_CreateShop(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockShopRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(s *shop.Shop) bool { return s.ID == "S1" })).Return(nil)

		resp, err := NewShopService(repo, nil, nil).CreateShop(ctx, CreateShopRequest{ID: "S1", Name: "Flagship"})
		require.NoError(t, err)
		assert.Equal(t, "S1", resp.ID)
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("generated id", func(t *testing.T) {
		repo := new(MockShopRepository)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		resp, err := NewShopService(repo, nil, nil).CreateShop(ctx, CreateShopRequest{Name: "Outlet"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
	})

	t.Run("taken id", func(t *testing.T) {
		repo := new(MockShopRepository)
		repo.On("Create", ctx, mock.Anything).Return(shared.NewDomainError(shared.CodeAlreadyExists, "shop S1 already exists"))

		_, err := NewShopService(repo, nil, nil).CreateShop(ctx, CreateShopRequest{ID: "S1", Name: "Flagship"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestShopService_ListShops(t *testing.T) {
	ctx := context.Background()
	repo := new(MockShopRepository)

	expected := shared.Filter{Page: 1, PageSize: 10, Filters: map[string]any{"status": "active"}}
	repo.On("FindAll", ctx, expected).Return([]shop.Shop{*newShop(t, "S1", "Flagship")}, nil)
	repo.On("Count", ctx, expected).Return(int64(11), nil)

	page, err := NewShopService(repo, nil, nil).ListShops(ctx, ShopListFilter{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 1)
}

func TestShopService_DeleteShop(t *testing.T) {
	ctx := context.Background()

	t.Run("soft deletes and evicts cache", func(t *testing.T) {
		repo := new(MockShopRepository)
		cache := mapCache{"shop:S1": "Flagship"}
		repo.On("FindByID", ctx, "S1").Return(newShop(t, "S1", "Flagship"), nil)
		repo.On("Save", ctx, mock.MatchedBy(func(s *shop.Shop) bool { return s.IsDeleted() })).Return(nil)

		require.NoError(t, NewShopService(repo, cache, nil).DeleteShop(ctx, "S1"))
		assert.NotContains(t, cache, "shop:S1")
		repo.AssertExpectations(t)
	})

	t.Run("missing shop", func(t *testing.T) {
		repo := new(MockShopRepository)
		repo.On("FindByID", ctx, "S404").Return(nil, shared.ErrNotFound)

		err := NewShopService(repo, nil, nil).DeleteShop(ctx, "S404")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestChannelService(t *testing.T) {
	ctx := context.Background()

	t.Run("create requires a live shop", func(t *testing.T) {
		shops := new(MockShopRepository)
		channels := new(MockChannelRepository)
		shops.On("ExistsByID", ctx, "S404").Return(false, nil)

		_, err := NewChannelService(channels, shops, nil, nil).CreateChannel(ctx, "S404", CreateChannelRequest{Name: "Zalo OA", Platform: "zalo"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		channels.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("create", func(t *testing.T) {
		shops := new(MockShopRepository)
		channels := new(MockChannelRepository)
		shops.On("ExistsByID", ctx, "S1").Return(true, nil)
		channels.On("Create", ctx, mock.AnythingOfType("*shop.Channel")).
			Run(func(args mock.Arguments) { args.Get(1).(*shop.Channel).ID = 7 }).
			Return(nil)

		resp, err := NewChannelService(channels, shops, nil, nil).CreateChannel(ctx, "S1", CreateChannelRequest{Name: "Zalo OA", Platform: "zalo"})
		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "S1", resp.ShopID)
	})

	t.Run("delete evicts cache", func(t *testing.T) {
		channels := new(MockChannelRepository)
		cache := mapCache{"channel:7": "Zalo OA"}
		channels.On("Delete", ctx, int64(7)).Return(nil)

		require.NoError(t, NewChannelService(channels, new(MockShopRepository), cache, nil).DeleteChannel(ctx, 7))
		assert.Empty(t, cache)
	})

	t.Run("delete of a referenced channel is refused", func(t *testing.T) {
		channels := new(MockChannelRepository)
		channels.On("Delete", ctx, int64(7)).Return(shared.NewDomainError("CHANNEL_IN_USE", "Channel is still referenced by customers"))

		err := NewChannelService(channels, new(MockShopRepository), nil, nil).DeleteChannel(ctx, 7)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CHANNEL_IN_USE", domainErr.Code)
	})

	t.Run("get missing channel", func(t *testing.T) {
		channels := new(MockChannelRepository)
		channels.On("FindByID", ctx, int64(99)).Return(nil, shared.ErrNotFound)

		_, err := NewChannelService(channels, new(MockShopRepository), nil, nil).GetChannel(ctx, 99)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
