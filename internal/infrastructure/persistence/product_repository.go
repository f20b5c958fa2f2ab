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

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindVariantByID finds a variant by local ID
func (r *GormProductRepository) FindVariantByID(ctx context.Context, id uuid.UUID) (*commerce.ProductVariant, error) {
	var model models.ProductVariantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindVariantBySKU finds a variant by SKU
func (r *GormProductRepository) FindVariantBySKU(ctx context.Context, sku string) (*commerce.ProductVariant, error) {
	if sku == "" {
		return nil, shared.ErrNotFound
	}
	var model models.ProductVariantModel
	if err := r.db.WithContext(ctx).First(&model, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindVariantByTitles finds a variant by product title and variant title.
// Fallback lookup for order lines that carry no SKU.
func (r *GormProductRepository) FindVariantByTitles(ctx context.Context, productTitle, variantTitle string) (*commerce.ProductVariant, error) {
	var model models.ProductVariantModel
	query := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = product_variants.product_id").
		Where("products.title = ?", productTitle)
	if variantTitle != "" {
		query = query.Where("product_variants.title = ?", variantTitle)
	}
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindVariantsWithBarcode returns all variants carrying a barcode
func (r *GormProductRepository) FindVariantsWithBarcode(ctx context.Context) ([]commerce.ProductVariant, error) {
	var variantModels []models.ProductVariantModel
	if err := r.db.WithContext(ctx).
		Where("barcode <> ''").
		Find(&variantModels).Error; err != nil {
		return nil, err
	}

	variants := make([]commerce.ProductVariant, len(variantModels))
	for i, model := range variantModels {
		variants[i] = *model.ToDomain()
	}
	return variants, nil
}

// CountVariants returns the total number of variants
func (r *GormProductRepository) CountVariants(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductVariantModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SaveProduct creates or updates a product with its variants, keyed on
// the storefront IDs.
func (r *GormProductRepository) SaveProduct(ctx context.Context, product *commerce.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		variants := model.Variants
		model.Variants = nil
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "shopify_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "vendor", "product_type", "status", "updated_at",
			}),
		}).Create(model).Error; err != nil {
			return err
		}
		for i := range variants {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "shopify_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"title", "sku", "barcode", "price", "inventory_quantity", "updated_at",
				}),
			}).Create(&variants[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateVariantInventory stores the locally known stock level
func (r *GormProductRepository) UpdateVariantInventory(ctx context.Context, variantID uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductVariantModel{}).
		Where("id = ?", variantID).
		Updates(map[string]any{
			"inventory_quantity": quantity,
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

// Ensure GormProductRepository implements ProductRepository
var _ commerce.ProductRepository = (*GormProductRepository)(nil)
