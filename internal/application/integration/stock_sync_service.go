package integration

import (
	"context"

	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/integration"
)

// StockSyncService pushes ERP stock levels to the storefront. The ERP is
// the source of truth; the local variant quantity is a cache of what was
// last pushed so unchanged levels produce no storefront call.
type StockSyncService struct {
	shops           commerce.ShopRepository
	products        commerce.ProductRepository
	productMappings integration.ProductMappingRepository
	erp             integration.ERPGateway
	storefront      integration.StorefrontGateway
	logger          *zap.Logger
}

// NewStockSyncService creates a new StockSyncService
func NewStockSyncService(
	shops commerce.ShopRepository,
	products commerce.ProductRepository,
	productMappings integration.ProductMappingRepository,
	erp integration.ERPGateway,
	storefront integration.StorefrontGateway,
	logger *zap.Logger,
) *StockSyncService {
	return &StockSyncService{
		shops:           shops,
		products:        products,
		productMappings: productMappings,
		erp:             erp,
		storefront:      storefront,
		logger:          logger,
	}
}

// SyncStock pushes the current ERP stock to the storefront for every
// mapped variant. Per-variant failures are counted and skipped.
func (s *StockSyncService) SyncStock(ctx context.Context) (*StockSyncStats, error) {
	shop, err := s.shops.Get(ctx)
	if err != nil {
		return nil, err
	}

	stock, err := s.erp.ListStock(ctx)
	if err != nil {
		return nil, err
	}

	mappings, err := s.productMappings.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &StockSyncStats{Articles: len(stock)}
	if len(mappings) == 0 {
		return stats, nil
	}

	locationID, err := s.storefront.PrimaryLocationID(ctx, shop)
	if err != nil {
		return nil, err
	}

	for i := range mappings {
		mapping := &mappings[i]

		quantity, ok := stock[mapping.ERPArticleID]
		if !ok {
			// ERP has no stock row for this article
			stats.Skipped++
			continue
		}

		if err := s.pushVariantStock(ctx, shop, mapping, locationID, quantity, stats); err != nil {
			stats.Errors++
			s.logger.Error("Failed to push stock level",
				zap.Int64("erp_article_id", mapping.ERPArticleID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("Stock sync completed",
		zap.Int("articles", stats.Articles),
		zap.Int("pushed", stats.Pushed),
		zap.Int("skipped", stats.Skipped),
		zap.Int("errors", stats.Errors),
	)
	return stats, nil
}

// pushVariantStock pushes one variant's level when it differs from the
// last pushed value.
func (s *StockSyncService) pushVariantStock(
	ctx context.Context,
	shop *commerce.Shop,
	mapping *integration.ProductMapping,
	locationID int64,
	quantity int,
	stats *StockSyncStats,
) error {
	variant, err := s.products.FindVariantByID(ctx, mapping.VariantID)
	if err != nil {
		return err
	}

	if variant.InventoryQuantity == quantity {
		stats.Skipped++
		return nil
	}

	inventoryItemID, err := s.storefront.InventoryItemID(ctx, shop, variant.ShopifyID)
	if err != nil {
		return err
	}

	if err := s.storefront.SetInventoryLevel(ctx, shop, locationID, inventoryItemID, quantity); err != nil {
		return err
	}

	if err := s.products.UpdateVariantInventory(ctx, variant.ID, quantity); err != nil {
		return err
	}

	stats.Pushed++
	return nil
}
