package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
)

// GormShopRepository implements ShopRepository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// Get returns the configured shop. The connector serves a single shop;
// with several rows the oldest installation wins.
func (r *GormShopRepository) Get(ctx context.Context) (*commerce.Shop, error) {
	var model models.ShopModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commerce.ErrShopNotConfigured
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or replaces the shop credentials for a domain.
// Reinstallation rotates the access token in place.
func (r *GormShopRepository) Save(ctx context.Context, shop *commerce.Shop) error {
	model := models.ShopModelFromDomain(shop)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "domain"}},
			DoUpdates: clause.AssignmentColumns([]string{"access_token", "updated_at"}),
		}).
		Create(model).Error
}

// Ensure GormShopRepository implements ShopRepository
var _ commerce.ShopRepository = (*GormShopRepository)(nil)
