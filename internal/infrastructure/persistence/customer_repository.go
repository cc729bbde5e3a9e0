package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopcrm/backend/internal/domain/customer"
	"github.com/shopcrm/backend/internal/domain/shared"
	"github.com/shopcrm/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerRepository implements customer.Repository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := r.withReferences(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByExternalID finds a customer by its platform identity
func (r *GormCustomerRepository) FindByExternalID(ctx context.Context, platform, externalID string) (*customer.Customer, error) {
	var model models.CustomerModel
	err := r.withReferences(ctx).
		Where("platform = ? AND external_id = ?", platform, externalID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]customer.Customer, error) {
	var customerModels []models.CustomerModel
	query := r.applyFilter(r.withReferences(ctx).Model(&models.CustomerModel{}), filter)

	if err := query.Find(&customerModels).Error; err != nil {
		return nil, err
	}
	customers := make([]customer.Customer, len(customerModels))
	for i, model := range customerModels {
		customers[i] = *model.ToDomain()
	}
	return customers, nil
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new customer and assigns the generated ID
func (r *GormCustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	model := models.CustomerModelFromDomain(c)
	model.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.NewDomainError(shared.CodeAlreadyExists,
				fmt.Sprintf("customer %s:%s already exists", c.Platform, c.ExternalID))
		}
		if isForeignKeyViolation(err) {
			return r.referenceViolation(ctx, c, err)
		}
		return err
	}
	c.ID = model.ID
	return nil
}

// Update persists the mutable fields of an existing customer.
// name is written even when nil so a cleared name reaches the row.
func (r *GormCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	model := models.CustomerModelFromDomain(c)
	result := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("id = ?", c.ID).
		Select("platform", "external_id", "name", "shop_id", "channel_id", "updated_at").
		Updates(model)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return shared.NewDomainError(shared.CodeAlreadyExists,
				fmt.Sprintf("customer %s:%s already exists", c.Platform, c.ExternalID))
		}
		if isForeignKeyViolation(result.Error) {
			return r.referenceViolation(ctx, c, result.Error)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete hard deletes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// referenceViolation names the reference behind a foreign key violation.
// Shops are soft deleted and keep their row, so the channel is checked first.
func (r *GormCustomerRepository) referenceViolation(ctx context.Context, c *customer.Customer, cause error) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ChannelModel{}).Where("id = ?", c.ChannelID).Count(&count).Error; err != nil {
		return cause
	}
	if count == 0 {
		return customer.NewInvalidReferenceError(customer.ReferenceChannel, strconv.FormatInt(c.ChannelID, 10), cause)
	}
	return customer.NewInvalidReferenceError(customer.ReferenceShop, c.ShopID, cause)
}

// withReferences eager loads the shop and channel summaries
func (r *GormCustomerRepository) withReferences(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Shop", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name") }).
		Preload("Channel", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name") })
}

// applyFilter applies filter options, pagination and the newest-first ordering.
// id breaks ties between equal timestamps so pages never overlap.
func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if !filter.Unpaged() {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return query.Order("created_at DESC").Order("id DESC")
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCustomerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where(`name LIKE ? ESCAPE '\'`, "%"+escapeLike(filter.Search)+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case customer.FilterPlatform:
			query = query.Where("platform = ?", value)
		case customer.FilterShopID:
			query = query.Where("shop_id = ?", value)
		case customer.FilterChannelID:
			query = query.Where("channel_id = ?", value)
		}
	}

	return query
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in a search term match literally
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// Ensure GormCustomerRepository implements customer.Repository
var _ customer.Repository = (*GormCustomerRepository)(nil)
