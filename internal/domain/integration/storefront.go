package integration

import (
	"context"

	"github.com/shopsync/backend/internal/domain/commerce"
)

// ---------------------------------------------------------------------------
// Storefront value objects
// ---------------------------------------------------------------------------

// StorefrontOrder is an order as delivered by the storefront API or a
// webhook, before it is persisted locally.
type StorefrontOrder struct {
	ID                int64
	Name              string
	Email             string
	TotalPrice        string
	FinancialStatus   string
	FulfillmentStatus string
	CreatedAt         string
	Customer          *StorefrontCustomer
	Lines             []StorefrontOrderLine
}

// StorefrontOrderLine is a line item of a storefront order
type StorefrontOrderLine struct {
	ID             int64
	ProductTitle   string
	VariantTitle   string
	SKU            string
	Quantity       int
	Price          string
	DiscountAmount string
}

// StorefrontCustomer is a customer as delivered by the storefront
type StorefrontCustomer struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Company   string
	TaxID     string
}

// OrderPage is one page of a paginated order listing together with the
// cursor for the next page (empty when the listing is exhausted).
type OrderPage struct {
	Orders       []StorefrontOrder
	NextPageInfo string
}

// ---------------------------------------------------------------------------
// StorefrontGateway port
// ---------------------------------------------------------------------------

// StorefrontGateway is the port to the storefront admin API. The shop
// carries the per-store domain and access token.
type StorefrontGateway interface {
	// PrimaryLocationID returns the shop's first inventory location
	PrimaryLocationID(ctx context.Context, shop *commerce.Shop) (int64, error)

	// InventoryItemID resolves the inventory item behind a variant
	InventoryItemID(ctx context.Context, shop *commerce.Shop, variantShopifyID int64) (int64, error)

	// SetInventoryLevel sets the available quantity at a location
	SetInventoryLevel(ctx context.Context, shop *commerce.Shop, locationID, inventoryItemID int64, quantity int) error

	// ListOrders returns one page of orders; pass the previous page's
	// NextPageInfo cursor to continue, or empty to start from the front.
	ListOrders(ctx context.Context, shop *commerce.Shop, pageInfo string) (*OrderPage, error)

	// RegisterOrderWebhook subscribes the given callback address to
	// order-creation events.
	RegisterOrderWebhook(ctx context.Context, shop *commerce.Shop, address string) error
}

// WebhookVerifier authenticates inbound webhook payloads
type WebhookVerifier interface {
	// VerifyWebhook reports whether the signature matches the raw body
	VerifyWebhook(body []byte, signature string) bool
}
