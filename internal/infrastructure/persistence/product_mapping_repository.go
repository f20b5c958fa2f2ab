package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
)

// GormProductMappingRepository implements ProductMappingRepository using GORM
type GormProductMappingRepository struct {
	db *gorm.DB
}

// NewGormProductMappingRepository creates a new GormProductMappingRepository
func NewGormProductMappingRepository(db *gorm.DB) *GormProductMappingRepository {
	return &GormProductMappingRepository{db: db}
}

// FindByVariant finds the mapping for a variant
func (r *GormProductMappingRepository) FindByVariant(ctx context.Context, variantID uuid.UUID) (*integration.ProductMapping, error) {
	var model models.ProductMappingModel
	if err := r.db.WithContext(ctx).First(&model, "variant_id = ?", variantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrMappingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all product mappings
func (r *GormProductMappingRepository) FindAll(ctx context.Context) ([]integration.ProductMapping, error) {
	var mappingModels []models.ProductMappingModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&mappingModels).Error; err != nil {
		return nil, err
	}

	mappings := make([]integration.ProductMapping, len(mappingModels))
	for i, model := range mappingModels {
		mappings[i] = *model.ToDomain()
	}
	return mappings, nil
}

// Count returns the number of mapped variants
func (r *GormProductMappingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductMappingModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Upsert creates the mapping or refreshes an existing one in place.
// Returns true when a new row was created.
func (r *GormProductMappingRepository) Upsert(ctx context.Context, mapping *integration.ProductMapping) (bool, error) {
	var existing models.ProductMappingModel
	err := r.db.WithContext(ctx).First(&existing, "variant_id = ?", mapping.VariantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		model := models.ProductMappingModelFromDomain(mapping)
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	return false, r.db.WithContext(ctx).
		Model(&models.ProductMappingModel{}).
		Where("variant_id = ?", mapping.VariantID).
		Updates(map[string]any{
			"erp_article_id": mapping.ERPArticleID,
			"erp_barcode":    mapping.ERPBarcode,
			"last_sync_at":   mapping.LastSyncAt,
			"updated_at":     gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

// Ensure GormProductMappingRepository implements ProductMappingRepository
var _ integration.ProductMappingRepository = (*GormProductMappingRepository)(nil)
