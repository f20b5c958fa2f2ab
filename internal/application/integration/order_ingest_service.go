package integration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/shared"
)

// OrderIngestService persists storefront orders delivered by webhook or
// pulled through the paginated listing. Ingestion is idempotent: the
// same storefront order updates in place.
type OrderIngestService struct {
	orders     commerce.OrderRepository
	customers  commerce.CustomerRepository
	shops      commerce.ShopRepository
	storefront integration.StorefrontGateway
	logger     *zap.Logger
}

// NewOrderIngestService creates a new OrderIngestService
func NewOrderIngestService(
	orders commerce.OrderRepository,
	customers commerce.CustomerRepository,
	shops commerce.ShopRepository,
	storefront integration.StorefrontGateway,
	logger *zap.Logger,
) *OrderIngestService {
	return &OrderIngestService{
		orders:     orders,
		customers:  customers,
		shops:      shops,
		storefront: storefront,
		logger:     logger,
	}
}

// IngestOrder upserts a storefront order together with its customer
func (s *OrderIngestService) IngestOrder(ctx context.Context, src *integration.StorefrontOrder) (*commerce.Order, error) {
	if src.Customer != nil {
		if err := s.upsertCustomer(ctx, src.Customer); err != nil {
			return nil, err
		}
	}

	order, err := convertStorefrontOrder(src)
	if err != nil {
		return nil, err
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	// A redelivered order keeps its local identity. Lines are immutable
	// after the first ingestion, so they are not written again.
	var existingLines []commerce.OrderLine
	if existing, err := s.orders.FindByShopifyID(ctx, src.ID); err == nil {
		order.ID = existing.ID
		order.CreatedAt = existing.CreatedAt
		existingLines = existing.Lines
		order.Lines = nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	if order.Lines == nil {
		order.Lines = existingLines
	}

	s.logger.Info("Order ingested",
		zap.String("order", order.Name),
		zap.Int64("shopify_id", order.ShopifyID),
	)
	return order, nil
}

// Backfill walks the storefront order listing from the oldest order
// forward and ingests every page. Used once at install time and for
// recovery after webhook outages.
func (s *OrderIngestService) Backfill(ctx context.Context) (*BackfillStats, error) {
	shop, err := s.shops.Get(ctx)
	if err != nil {
		return nil, err
	}

	stats := &BackfillStats{}
	pageInfo := ""
	for {
		page, err := s.storefront.ListOrders(ctx, shop, pageInfo)
		if err != nil {
			return stats, err
		}
		stats.Pages++

		for i := range page.Orders {
			if _, err := s.IngestOrder(ctx, &page.Orders[i]); err != nil {
				stats.Failed++
				s.logger.Warn("Backfill order ingestion failed",
					zap.Int64("shopify_id", page.Orders[i].ID),
					zap.Error(err),
				)
				continue
			}
			stats.Ingested++
		}

		if page.NextPageInfo == "" {
			break
		}
		pageInfo = page.NextPageInfo
	}

	s.logger.Info("Order backfill completed",
		zap.Int("pages", stats.Pages),
		zap.Int("ingested", stats.Ingested),
		zap.Int("failed", stats.Failed),
	)
	return stats, nil
}

// upsertCustomer mirrors the storefront customer locally
func (s *OrderIngestService) upsertCustomer(ctx context.Context, src *integration.StorefrontCustomer) error {
	now := time.Now()
	customer := &commerce.Customer{
		ID:        uuid.New(),
		ShopifyID: src.ID,
		Email:     src.Email,
		FirstName: src.FirstName,
		LastName:  src.LastName,
		Phone:     src.Phone,
		Company:   src.Company,
		TaxID:     src.TaxID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if existing, err := s.customers.FindByShopifyID(ctx, src.ID); err == nil {
		customer.ID = existing.ID
		customer.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	if err := customer.Validate(); err != nil {
		return err
	}
	return s.customers.Save(ctx, customer)
}

// convertStorefrontOrder converts the wire order into the local aggregate
func convertStorefrontOrder(src *integration.StorefrontOrder) (*commerce.Order, error) {
	total, err := decimal.NewFromString(src.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid order total %q: %w", src.TotalPrice, err)
	}

	// The creation time becomes the ERP document date, so a payload with a
	// mangled timestamp is rejected rather than dated today.
	createdAt := time.Now()
	if src.CreatedAt != "" {
		createdAt, err = time.Parse(time.RFC3339, src.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid order created_at %q: %w", src.CreatedAt, err)
		}
	}

	orderID := uuid.New()
	order := &commerce.Order{
		ID:                orderID,
		ShopifyID:         src.ID,
		Name:              src.Name,
		Email:             src.Email,
		TotalPrice:        total,
		FinancialStatus:   commerce.FinancialStatus(src.FinancialStatus),
		FulfillmentStatus: commerce.FulfillmentStatus(src.FulfillmentStatus),
		CreatedAt:         createdAt,
		UpdatedAt:         time.Now(),
	}

	for _, srcLine := range src.Lines {
		price, err := decimal.NewFromString(srcLine.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid line price %q: %w", srcLine.Price, err)
		}
		discount := decimal.Zero
		if srcLine.DiscountAmount != "" {
			discount, err = decimal.NewFromString(srcLine.DiscountAmount)
			if err != nil {
				return nil, fmt.Errorf("invalid line discount %q: %w", srcLine.DiscountAmount, err)
			}
		}

		order.Lines = append(order.Lines, commerce.OrderLine{
			ID:             uuid.New(),
			OrderID:        orderID,
			ShopifyID:      srcLine.ID,
			ProductTitle:   srcLine.ProductTitle,
			VariantTitle:   srcLine.VariantTitle,
			SKU:            srcLine.SKU,
			Quantity:       srcLine.Quantity,
			Price:          price,
			DiscountAmount: discount,
			CreatedAt:      createdAt,
		})
	}

	return order, nil
}
