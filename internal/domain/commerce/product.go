package commerce

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a storefront product mirrored locally.
type Product struct {
	ID          uuid.UUID
	ShopifyID   int64
	Title       string
	Vendor      string
	ProductType string
	Status      string
	Variants    []ProductVariant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductVariant is a sellable variant of a product. Stock levels are the
// local copy of what was last pushed from the ERP.
type ProductVariant struct {
	ID                uuid.UUID
	ProductID         uuid.UUID
	ShopifyID         int64
	Title             string
	SKU               string
	Barcode           string
	Price             decimal.Decimal
	InventoryQuantity int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate checks variant invariants before persistence
func (v *ProductVariant) Validate() error {
	if v.ShopifyID == 0 {
		return ErrVariantInvalidExternalID
	}
	return nil
}
