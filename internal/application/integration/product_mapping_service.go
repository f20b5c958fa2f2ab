package integration

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/integration"
)

// ProductMappingService links local product variants to ERP articles.
// The barcode is the only identifier shared by both catalogs, so it is
// the join key for automatic mapping.
type ProductMappingService struct {
	products        commerce.ProductRepository
	productMappings integration.ProductMappingRepository
	erp             integration.ERPGateway
	logger          *zap.Logger
}

// NewProductMappingService creates a new ProductMappingService
func NewProductMappingService(
	products commerce.ProductRepository,
	productMappings integration.ProductMappingRepository,
	erp integration.ERPGateway,
	logger *zap.Logger,
) *ProductMappingService {
	return &ProductMappingService{
		products:        products,
		productMappings: productMappings,
		erp:             erp,
		logger:          logger,
	}
}

// AutoMapByBarcode fetches the full ERP article catalog and maps every
// local variant whose barcode appears in it. Existing mappings are
// refreshed in place.
func (s *ProductMappingService) AutoMapByBarcode(ctx context.Context) (*AutoMapStats, error) {
	articles, err := s.erp.ListArticles(ctx)
	if err != nil {
		return nil, err
	}

	byBarcode := indexArticlesByBarcode(articles)

	variants, err := s.products.FindVariantsWithBarcode(ctx)
	if err != nil {
		return nil, err
	}

	stats := &AutoMapStats{Articles: len(articles)}
	for i := range variants {
		variant := &variants[i]

		article, ok := byBarcode[variant.Barcode]
		if !ok {
			stats.Unmatched = append(stats.Unmatched, variant.SKU)
			continue
		}

		mapping := integration.NewProductMapping(variant.ID, article.ID, variant.Barcode)
		created, err := s.productMappings.Upsert(ctx, mapping)
		if err != nil {
			return nil, fmt.Errorf("mapping variant %s: %w", variant.SKU, err)
		}
		if created {
			stats.Created++
		} else {
			stats.Refreshed++
		}
	}

	s.logger.Info("Barcode auto-mapping completed",
		zap.Int("articles", stats.Articles),
		zap.Int("created", stats.Created),
		zap.Int("refreshed", stats.Refreshed),
		zap.Int("unmatched", len(stats.Unmatched)),
	)
	return stats, nil
}

// ResolveVariant returns the mapping for a variant, attempting a lazy
// barcode match against the ERP catalog when none exists yet.
func (s *ProductMappingService) ResolveVariant(ctx context.Context, variantID uuid.UUID) (*integration.ProductMapping, error) {
	mapping, err := s.productMappings.FindByVariant(ctx, variantID)
	if err == nil {
		return mapping, nil
	}
	if !errors.Is(err, integration.ErrMappingNotFound) {
		return nil, err
	}

	variant, err := s.products.FindVariantByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if variant.Barcode == "" {
		return nil, integration.ErrMappingNotFound
	}

	articles, err := s.erp.ListArticles(ctx)
	if err != nil {
		return nil, err
	}

	article, ok := indexArticlesByBarcode(articles)[variant.Barcode]
	if !ok {
		return nil, integration.ErrMappingNotFound
	}

	mapping = integration.NewProductMapping(variant.ID, article.ID, variant.Barcode)
	if _, err := s.productMappings.Upsert(ctx, mapping); err != nil {
		return nil, err
	}
	return mapping, nil
}

// Stats reports mapping coverage of the local catalog
func (s *ProductMappingService) Stats(ctx context.Context) (*MappingStats, error) {
	total, err := s.products.CountVariants(ctx)
	if err != nil {
		return nil, err
	}
	mapped, err := s.productMappings.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &MappingStats{TotalVariants: total, MappedVariants: mapped}, nil
}

// indexArticlesByBarcode indexes articles by barcode, skipping blanks.
// The first article wins when the ERP carries duplicate barcodes.
func indexArticlesByBarcode(articles []integration.Article) map[string]integration.Article {
	index := make(map[string]integration.Article, len(articles))
	for _, article := range articles {
		if article.Barcode == "" {
			continue
		}
		if _, exists := index[article.Barcode]; !exists {
			index[article.Barcode] = article
		}
	}
	return index
}
