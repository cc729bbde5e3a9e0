package customer

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopcrm/backend/internal/domain/customer"
	"github.com/shopcrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockCustomerRepository is a mock implementation of customer.Repository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByExternalID(ctx context.Context, platform, externalID string) (*customer.Customer, error) {
	args := m.Called(ctx, platform, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]customer.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockShopDirectory is a mock implementation of customer.ShopDirectory
type MockShopDirectory struct {
	mock.Mock
}

func (m *MockShopDirectory) Resolve(ctx context.Context, shopID string) (customer.ShopRef, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).(customer.ShopRef), args.Error(1)
}

func (m *MockShopDirectory) Lookup(ctx context.Context, shopID string) (customer.ShopRef, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).(customer.ShopRef), args.Error(1)
}

// MockChannelDirectory is a mock implementation of customer.ChannelDirectory
type MockChannelDirectory struct {
	mock.Mock
}

func (m *MockChannelDirectory) Resolve(ctx context.Context, channelID int64) (customer.ChannelRef, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(customer.ChannelRef), args.Error(1)
}

func (m *MockChannelDirectory) Lookup(ctx context.Context, channelID int64) (customer.ChannelRef, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(customer.ChannelRef), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// recordingRecorder captures observations
type recordingRecorder struct {
	mu       sync.Mutex
	outcomes map[string][]string
}

func newRecordingRecorder() *recordingRecorder {
	return &recordingRecorder{outcomes: make(map[string][]string)}
}

func (r *recordingRecorder) ObserveOperation(operation, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[operation] = append(r.outcomes[operation], outcome)
}

// staticShops resolves shops from a fixed map
type staticShops map[string]string

func (d staticShops) Resolve(_ context.Context, shopID string) (customer.ShopRef, error) {
	name, ok := d[shopID]
	if !ok {
		return customer.ShopRef{}, shared.NewDomainError(shared.CodeNotFound, "Shop with ID "+shopID+" not found")
	}
	return customer.ShopRef{ID: shopID, Name: name}, nil
}

func (d staticShops) Lookup(ctx context.Context, shopID string) (customer.ShopRef, error) {
	return d.Resolve(ctx, shopID)
}

// staticChannels resolves channels from a fixed map
type staticChannels map[int64]string

func (d staticChannels) Resolve(_ context.Context, channelID int64) (customer.ChannelRef, error) {
	name, ok := d[channelID]
	if !ok {
		return customer.ChannelRef{}, shared.ErrNotFound
	}
	return customer.ChannelRef{ID: channelID, Name: name}, nil
}

func (d staticChannels) Lookup(ctx context.Context, channelID int64) (customer.ChannelRef, error) {
	return d.Resolve(ctx, channelID)
}

// memoryRepository is an in-memory customer.Repository that enforces the
// (platform, external_id) unique index the way the database does
type memoryRepository struct {
	mu      sync.Mutex
	nextID  int64
	rows    map[int64]customer.Customer
	shops   staticShops
	channel staticChannels
	inserts int
}

func newMemoryRepository(shops staticShops, channels staticChannels) *memoryRepository {
	return &memoryRepository{rows: make(map[int64]customer.Customer), shops: shops, channel: channels}
}

func (r *memoryRepository) hydrate(c customer.Customer) *customer.Customer {
	if name, ok := r.shops[c.ShopID]; ok {
		c.Shop = &customer.ShopRef{ID: c.ShopID, Name: name}
	} else {
		c.Shop = nil
	}
	if name, ok := r.channel[c.ChannelID]; ok {
		c.Channel = &customer.ChannelRef{ID: c.ChannelID, Name: name}
	} else {
		c.Channel = nil
	}
	return &c
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return r.hydrate(c), nil
}

func (r *memoryRepository) FindByExternalID(_ context.Context, platform, externalID string) (*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.rows {
		if c.Platform == platform && c.ExternalID == externalID {
			return r.hydrate(c), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryRepository) matching(filter shared.Filter) []customer.Customer {
	var result []customer.Customer
	for _, c := range r.rows {
		if filter.Search != "" && (c.Name == nil || !strings.Contains(*c.Name, filter.Search)) {
			continue
		}
		if v, ok := filter.Filters[customer.FilterPlatform]; ok && c.Platform != v {
			continue
		}
		if v, ok := filter.Filters[customer.FilterShopID]; ok && c.ShopID != v {
			continue
		}
		if v, ok := filter.Filters[customer.FilterChannelID]; ok && c.ChannelID != v {
			continue
		}
		result = append(result, *r.hydrate(c))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

func (r *memoryRepository) FindAll(_ context.Context, filter shared.Filter) ([]customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := r.matching(filter)
	if filter.Unpaged() {
		return result, nil
	}
	start := filter.Offset()
	if start >= len(result) {
		return []customer.Customer{}, nil
	}
	end := start + filter.PageSize
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], nil
}

func (r *memoryRepository) Count(_ context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(filter))), nil
}

func (r *memoryRepository) taken(c *customer.Customer) bool {
	for id, row := range r.rows {
		if id != c.ID && row.Platform == c.Platform && row.ExternalID == c.ExternalID {
			return true
		}
	}
	return false
}

func (r *memoryRepository) Create(_ context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(c) {
		return shared.ErrAlreadyExists
	}
	r.nextID++
	c.ID = r.nextID
	row := *c
	row.ClearDomainEvents()
	r.rows[c.ID] = row
	r.inserts++
	return nil
}

func (r *memoryRepository) Update(_ context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[c.ID]; !ok {
		return shared.ErrNotFound
	}
	if r.taken(c) {
		return shared.ErrAlreadyExists
	}
	r.rows[c.ID] = *c
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

var _ customer.Repository = (*memoryRepository)(nil)
