package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its lines by local ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*commerce.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Preload("Lines").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByShopifyID finds an order with its lines by storefront ID
func (r *GormOrderRepository) FindByShopifyID(ctx context.Context, shopifyID int64) (*commerce.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Preload("Lines").First(&model, "shopify_id = ?", shopifyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindUnsubmitted returns orders that have not been accepted by the ERP,
// oldest first so retries preserve submission order.
func (r *GormOrderRepository) FindUnsubmitted(ctx context.Context) ([]commerce.Order, error) {
	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("submitted = ?", false).
		Order("created_at ASC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]commerce.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// Save creates or updates an order together with its lines. Re-delivered
// webhooks hit the unique storefront ID and update in place.
func (r *GormOrderRepository) Save(ctx context.Context, order *commerce.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "shopify_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"email", "total_price", "financial_status", "fulfillment_status", "updated_at",
			}),
		}).
		Create(model).Error
}

// Update persists mutable order fields. Lines are immutable and skipped.
func (r *GormOrderRepository) Update(ctx context.Context, order *commerce.Order) error {
	model := models.OrderModelFromDomain(order)
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"financial_status":   model.FinancialStatus,
			"fulfillment_status": model.FulfillmentStatus,
			"submitted":          model.Submitted,
			"submitted_at":       model.SubmittedAt,
			"last_error":         model.LastError,
			"erp_status":         model.ERPStatus,
			"updated_at":         gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ commerce.OrderRepository = (*GormOrderRepository)(nil)
