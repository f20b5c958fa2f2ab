package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
)

// GormCustomerMappingRepository implements CustomerMappingRepository using GORM
type GormCustomerMappingRepository struct {
	db *gorm.DB
}

// NewGormCustomerMappingRepository creates a new GormCustomerMappingRepository
func NewGormCustomerMappingRepository(db *gorm.DB) *GormCustomerMappingRepository {
	return &GormCustomerMappingRepository{db: db}
}

// FindByCustomer finds the mapping for a customer
func (r *GormCustomerMappingRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*integration.CustomerMapping, error) {
	var model models.CustomerMappingModel
	if err := r.db.WithContext(ctx).First(&model, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrMappingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates a customer mapping. The unique index on customer_id
// guards against re-creating an ERP customer that already has one.
func (r *GormCustomerMappingRepository) Save(ctx context.Context, mapping *integration.CustomerMapping) error {
	model := models.CustomerMappingModelFromDomain(mapping)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return integration.ErrMappingAlreadyExists
		}
		return err
	}
	return nil
}

// Ensure GormCustomerMappingRepository implements CustomerMappingRepository
var _ integration.CustomerMappingRepository = (*GormCustomerMappingRepository)(nil)
