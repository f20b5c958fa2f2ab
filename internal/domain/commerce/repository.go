package commerce

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines persistence for orders and their lines
type OrderRepository interface {
	// FindByID finds an order with its lines by local ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByShopifyID finds an order with its lines by storefront ID
	FindByShopifyID(ctx context.Context, shopifyID int64) (*Order, error)

	// FindUnsubmitted returns orders that have not been accepted by the ERP
	FindUnsubmitted(ctx context.Context) ([]Order, error)

	// Save creates or updates an order together with its lines
	Save(ctx context.Context, order *Order) error

	// Update persists mutable order fields (status, flags, error message)
	Update(ctx context.Context, order *Order) error
}

// CustomerRepository defines persistence for customers
type CustomerRepository interface {
	// FindByID finds a customer by local ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByShopifyID finds a customer by storefront ID
	FindByShopifyID(ctx context.Context, shopifyID int64) (*Customer, error)

	// FindByEmail finds a customer by email address
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error
}

// ProductRepository defines persistence for products and variants
type ProductRepository interface {
	// FindVariantByID finds a variant by local ID
	FindVariantByID(ctx context.Context, id uuid.UUID) (*ProductVariant, error)

	// FindVariantBySKU finds a variant by SKU
	FindVariantBySKU(ctx context.Context, sku string) (*ProductVariant, error)

	// FindVariantByTitles finds a variant by product title and variant title
	FindVariantByTitles(ctx context.Context, productTitle, variantTitle string) (*ProductVariant, error)

	// FindVariantsWithBarcode returns all variants carrying a barcode
	FindVariantsWithBarcode(ctx context.Context) ([]ProductVariant, error)

	// CountVariants returns the total number of variants
	CountVariants(ctx context.Context) (int64, error)

	// SaveProduct creates or updates a product with its variants
	SaveProduct(ctx context.Context, product *Product) error

	// UpdateVariantInventory stores the locally known stock level
	UpdateVariantInventory(ctx context.Context, variantID uuid.UUID, quantity int) error
}

// ShopRepository defines persistence for the storefront credentials
type ShopRepository interface {
	// Get returns the configured shop, or commerce.ErrShopNotConfigured
	Get(ctx context.Context) (*Shop, error)

	// Save creates or replaces the shop credentials for a domain
	Save(ctx context.Context, shop *Shop) error
}
