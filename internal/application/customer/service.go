package customer

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/shopcrm/backend/internal/domain/customer"
	"github.com/shopcrm/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CustomerService keeps customers consistent with their shop and channel and
// enforces the uniqueness of (platform, externalId).
//
// Write operations (Create, Update, Remove) classify unexpected failures as
// StorageFailureError. Read operations return store errors unchanged, apart
// from translating a missing customer into NotFoundError.
type CustomerService struct {
	customerRepo   customer.Repository
	shops          customer.ShopDirectory
	channels       customer.ChannelDirectory
	eventPublisher shared.EventPublisher
	recorder       Recorder
	logger         *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo customer.Repository,
	shops customer.ShopDirectory,
	channels customer.ChannelDirectory,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		shops:        shops,
		channels:     channels,
		recorder:     noopRecorder{},
		logger:       zap.NewNop(),
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CustomerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetRecorder sets the recorder that observes write operations
func (s *CustomerService) SetRecorder(recorder Recorder) {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	s.recorder = recorder
}

// SetLogger sets the service logger
func (s *CustomerService) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s.logger = logger
}

// Create registers a new customer of a shop reached through a channel
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (view *CustomerView, err error) {
	defer s.observe("create", time.Now(), &err)

	shopRef, err := s.resolveShop(ctx, req.ShopID)
	if err != nil {
		return nil, s.writeError("create", err)
	}
	channelRef, err := s.resolveChannel(ctx, req.ChannelID)
	if err != nil {
		return nil, s.writeError("create", err)
	}

	if err := s.ensureIdentityAvailable(ctx, req.Platform, req.ExternalID, 0); err != nil {
		return nil, s.writeError("create", err)
	}

	c, err := customer.NewCustomer(req.Platform, req.ExternalID, req.Name, shopRef, channelRef)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, c); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, customer.NewDuplicateEntityError(req.Platform, req.ExternalID)
		}
		return nil, s.writeError("create", err)
	}

	s.logger.Info("Customer created",
		zap.Int64("customer_id", c.ID),
		zap.String("platform", c.Platform),
		zap.String("shop_id", c.ShopID))

	c.AddDomainEvent(customer.NewCustomerCreatedEvent(c))
	s.publishEvents(ctx, c)

	result := ToCustomerView(c)
	return &result, nil
}

// Update applies the fields present in req to an existing customer
func (s *CustomerService) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (view *CustomerView, err error) {
	defer s.observe("update", time.Now(), &err)

	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, customer.NewNotFoundError(id)
		}
		return nil, s.writeError("update", err)
	}

	if shopID, ok := req.shopID(); ok && shopID != c.ShopID {
		shopRef, err := s.resolveShop(ctx, shopID)
		if err != nil {
			return nil, s.writeError("update", err)
		}
		c.MoveToShop(shopRef)
	}

	if channelID, ok := req.channelID(); ok && channelID != c.ChannelID {
		channelRef, err := s.resolveChannel(ctx, channelID)
		if err != nil {
			return nil, s.writeError("update", err)
		}
		c.MoveToChannel(channelRef)
	}

	platform, platformSet := req.platform()
	externalID, externalIDSet := req.externalID()
	if platformSet || externalIDSet {
		if !platformSet {
			platform = c.Platform
		}
		if !externalIDSet {
			externalID = c.ExternalID
		}
		if err := s.ensureIdentityAvailable(ctx, platform, externalID, c.ID); err != nil {
			return nil, s.writeError("update", err)
		}
		if err := c.ChangeIdentity(platform, externalID); err != nil {
			return nil, err
		}
	}

	if req.Name.Set {
		var name *string
		if req.Name.Present() {
			name = &req.Name.Value
		}
		if err := c.Rename(name); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, shared.ErrAlreadyExists):
			return nil, customer.NewDuplicateEntityError(c.Platform, c.ExternalID)
		case errors.Is(err, shared.ErrNotFound):
			return nil, customer.NewNotFoundError(id)
		}
		return nil, s.writeError("update", err)
	}

	refreshed, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, customer.NewNotFoundError(id)
		}
		return nil, s.writeError("update", err)
	}

	refreshed.AddDomainEvent(customer.NewCustomerUpdatedEvent(refreshed))
	s.publishEvents(ctx, refreshed)

	result := ToCustomerView(refreshed)
	return &result, nil
}

// Remove hard deletes a customer
func (s *CustomerService) Remove(ctx context.Context, id int64) (err error) {
	defer s.observe("remove", time.Now(), &err)

	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return customer.NewNotFoundError(id)
		}
		return s.writeError("remove", err)
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return customer.NewNotFoundError(id)
		}
		return s.writeError("remove", err)
	}

	s.logger.Info("Customer removed", zap.Int64("customer_id", id))

	c.AddDomainEvent(customer.NewCustomerDeletedEvent(c))
	s.publishEvents(ctx, c)
	return nil
}

// FindOne retrieves a customer by ID
func (s *CustomerService) FindOne(ctx context.Context, id int64) (*CustomerView, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, customer.NewNotFoundError(id)
		}
		return nil, err
	}
	view := ToCustomerView(c)
	return &view, nil
}

// FindAll retrieves a page of customers, newest first.
// A shop or channel named in the filter must exist.
func (s *CustomerService) FindAll(ctx context.Context, filter CustomerListFilter) (*CustomerPage, error) {
	if filter.Page <= 0 {
		filter.Page = shared.DefaultPage
	}
	if filter.Limit <= 0 {
		filter.Limit = shared.DefaultPageSize
	}

	if filter.ShopID != "" {
		if _, err := s.shops.Lookup(ctx, filter.ShopID); err != nil {
			return nil, err
		}
	}
	if filter.ChannelID != 0 {
		if _, err := s.channels.Lookup(ctx, filter.ChannelID); err != nil {
			return nil, err
		}
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.Limit,
		Search:   filter.Name,
		Filters:  make(map[string]any),
	}
	if filter.Platform != "" {
		domainFilter.Filters[customer.FilterPlatform] = filter.Platform
	}
	if filter.ShopID != "" {
		domainFilter.Filters[customer.FilterShopID] = filter.ShopID
	}
	if filter.ChannelID != 0 {
		domainFilter.Filters[customer.FilterChannelID] = filter.ChannelID
	}

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToCustomerViews(customers), total, filter.Page, filter.Limit)
	return &page, nil
}

// FindByExternalID retrieves a customer by its platform identity
func (s *CustomerService) FindByExternalID(ctx context.Context, platform, externalID string) (*CustomerView, error) {
	c, err := s.customerRepo.FindByExternalID(ctx, platform, externalID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, customer.NewIdentityNotFoundError(customer.Identity{Platform: platform, ExternalID: externalID})
		}
		return nil, err
	}
	view := ToCustomerView(c)
	return &view, nil
}

// FindByPlatform lists every customer of a platform, newest first
func (s *CustomerService) FindByPlatform(ctx context.Context, platform string) ([]CustomerView, error) {
	return s.listAll(ctx, shared.Filter{Filters: map[string]any{customer.FilterPlatform: platform}})
}

// FindByShopID lists every customer of an existing shop, newest first
func (s *CustomerService) FindByShopID(ctx context.Context, shopID string) ([]CustomerView, error) {
	if _, err := s.shops.Lookup(ctx, shopID); err != nil {
		return nil, err
	}
	return s.listAll(ctx, shared.Filter{Filters: map[string]any{customer.FilterShopID: shopID}})
}

// FindByChannelID lists every customer of an existing channel, newest first
func (s *CustomerService) FindByChannelID(ctx context.Context, channelID int64) ([]CustomerView, error) {
	if _, err := s.channels.Lookup(ctx, channelID); err != nil {
		return nil, err
	}
	return s.listAll(ctx, shared.Filter{Filters: map[string]any{customer.FilterChannelID: channelID}})
}

// SearchByName lists every customer whose name contains name, newest first
func (s *CustomerService) SearchByName(ctx context.Context, name string) ([]CustomerView, error) {
	return s.listAll(ctx, shared.Filter{Search: name})
}

func (s *CustomerService) listAll(ctx context.Context, filter shared.Filter) ([]CustomerView, error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToCustomerViews(customers), nil
}

// ensureIdentityAvailable fails with DuplicateEntityError when another
// customer than exceptID already holds the identity
func (s *CustomerService) ensureIdentityAvailable(ctx context.Context, platform, externalID string, exceptID int64) error {
	existing, err := s.customerRepo.FindByExternalID(ctx, platform, externalID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != exceptID {
		return customer.NewDuplicateEntityError(platform, externalID)
	}
	return nil
}

func (s *CustomerService) resolveShop(ctx context.Context, shopID string) (customer.ShopRef, error) {
	ref, err := s.shops.Resolve(ctx, shopID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return customer.ShopRef{}, customer.NewInvalidReferenceError(customer.ReferenceShop, shopID, err)
		}
		return customer.ShopRef{}, err
	}
	return ref, nil
}

func (s *CustomerService) resolveChannel(ctx context.Context, channelID int64) (customer.ChannelRef, error) {
	ref, err := s.channels.Resolve(ctx, channelID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return customer.ChannelRef{}, customer.NewInvalidReferenceError(customer.ReferenceChannel, strconv.FormatInt(channelID, 10), err)
		}
		return customer.ChannelRef{}, err
	}
	return ref, nil
}

// writeError passes classified errors through and wraps everything else
// as a storage failure of op
func (s *CustomerService) writeError(op string, err error) error {
	var (
		invalidRef *customer.InvalidReferenceError
		duplicate  *customer.DuplicateEntityError
		notFound   *customer.NotFoundError
		storage    *customer.StorageFailureError
	)
	if errors.As(err, &invalidRef) || errors.As(err, &duplicate) || errors.As(err, &notFound) || errors.As(err, &storage) {
		return err
	}
	s.logger.Error("Customer storage failure", zap.String("operation", op), zap.Error(err))
	return customer.NewStorageFailureError(op, err)
}

// publishEvents publishes and clears the pending events of c.
// Publishing errors never fail the write.
func (s *CustomerService) publishEvents(ctx context.Context, c *customer.Customer) {
	events := c.GetDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		c.ClearDomainEvents()
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish customer events", zap.Int64("customer_id", c.ID), zap.Error(err))
	}
	c.ClearDomainEvents()
}

func (s *CustomerService) observe(operation string, start time.Time, errp *error) {
	s.recorder.ObserveOperation(operation, outcomeOf(*errp), time.Since(start))
}

func outcomeOf(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		return OutcomeStorageFailure
	}
	switch domainErr.Code {
	case shared.CodeInvalidReference:
		return OutcomeInvalidReference
	case shared.CodeAlreadyExists:
		return OutcomeDuplicate
	case shared.CodeNotFound:
		return OutcomeNotFound
	case shared.CodeStorageFailure:
		return OutcomeStorageFailure
	default:
		return OutcomeInvalidInput
	}
}
