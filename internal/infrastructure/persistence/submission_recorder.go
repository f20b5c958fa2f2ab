package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
)

// GormSubmissionRecorder writes the order mapping and the order's
// submitted flag in a single transaction so the "submitted" signal and
// the mapping row can never disagree.
type GormSubmissionRecorder struct {
	db *gorm.DB
}

// NewGormSubmissionRecorder creates a new GormSubmissionRecorder
func NewGormSubmissionRecorder(db *gorm.DB) *GormSubmissionRecorder {
	return &GormSubmissionRecorder{db: db}
}

// RecordSubmission persists the accepted submission. A nil mapping
// records a duplicate collision (document exists in the ERP but no
// receipt was returned), updating only the order.
func (r *GormSubmissionRecorder) RecordSubmission(ctx context.Context, order *commerce.Order, mapping *integration.OrderMapping) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if mapping != nil {
			model := models.OrderMappingModelFromDomain(mapping)
			if err := tx.Create(model).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return integration.ErrMappingAlreadyExists
				}
				return err
			}
		}

		orderModel := models.OrderModelFromDomain(order)
		result := tx.Model(&models.OrderModel{}).
			Where("id = ?", orderModel.ID).
			Updates(map[string]any{
				"submitted":    orderModel.Submitted,
				"submitted_at": orderModel.SubmittedAt,
				"last_error":   orderModel.LastError,
				"updated_at":   gorm.Expr("CURRENT_TIMESTAMP"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormSubmissionRecorder implements SubmissionRecorder
var _ integration.SubmissionRecorder = (*GormSubmissionRecorder)(nil)
