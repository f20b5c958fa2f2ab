package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
)

// GormOrderMappingRepository implements OrderMappingRepository using GORM
type GormOrderMappingRepository struct {
	db *gorm.DB
}

// NewGormOrderMappingRepository creates a new GormOrderMappingRepository
func NewGormOrderMappingRepository(db *gorm.DB) *GormOrderMappingRepository {
	return &GormOrderMappingRepository{db: db}
}

// FindByOrder finds the mapping for an order
func (r *GormOrderMappingRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) (*integration.OrderMapping, error) {
	var model models.OrderMappingModel
	if err := r.db.WithContext(ctx).First(&model, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrMappingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPollable returns mappings whose orders have not reached a terminal
// ERP state. Joined against orders so the poller query stays one round trip.
func (r *GormOrderMappingRepository) FindPollable(ctx context.Context) ([]integration.OrderMapping, error) {
	var mappingModels []models.OrderMappingModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN orders ON orders.id = order_mappings.order_id").
		Where("orders.erp_status <> ?", int(integration.ERPOrderStatusShipped)).
		Order("order_mappings.created_at ASC").
		Find(&mappingModels).Error; err != nil {
		return nil, err
	}

	mappings := make([]integration.OrderMapping, len(mappingModels))
	for i, model := range mappingModels {
		mappings[i] = *model.ToDomain()
	}
	return mappings, nil
}

// Save creates an order mapping
func (r *GormOrderMappingRepository) Save(ctx context.Context, mapping *integration.OrderMapping) error {
	model := models.OrderMappingModelFromDomain(mapping)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return integration.ErrMappingAlreadyExists
		}
		return err
	}
	return nil
}

// Ensure GormOrderMappingRepository implements OrderMappingRepository
var _ integration.OrderMappingRepository = (*GormOrderMappingRepository)(nil)
