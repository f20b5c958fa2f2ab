package integration

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shopsync/backend/internal/domain/commerce"
)

// ---------------------------------------------------------------------------
// Cross-system ID mappings
// ---------------------------------------------------------------------------

// ProductMapping links a local product variant to its ERP article.
// Invariant: at most one mapping per variant.
type ProductMapping struct {
	ID           uuid.UUID
	VariantID    uuid.UUID
	ERPArticleID int64
	ERPBarcode   string
	LastSyncAt   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewProductMapping creates a mapping for a variant
func NewProductMapping(variantID uuid.UUID, erpArticleID int64, erpBarcode string) *ProductMapping {
	now := time.Now()
	return &ProductMapping{
		ID:           uuid.New(),
		VariantID:    variantID,
		ERPArticleID: erpArticleID,
		ERPBarcode:   erpBarcode,
		LastSyncAt:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CustomerMapping links a local customer to its ERP counterpart.
// Invariant: once a mapping exists the ERP customer is never re-created.
type CustomerMapping struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	ERPCustomerID int64
	ERPTaxID      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCustomerMapping creates a mapping for a customer
func NewCustomerMapping(customerID uuid.UUID, erpCustomerID int64, erpTaxID string) *CustomerMapping {
	now := time.Now()
	return &CustomerMapping{
		ID:            uuid.New(),
		CustomerID:    customerID,
		ERPCustomerID: erpCustomerID,
		ERPTaxID:      erpTaxID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// OrderMapping links a local order to the document created in the ERP.
// Its presence is the authoritative "already submitted" signal and is
// written in the same transaction as the order's submitted flag.
type OrderMapping struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ERPOrderID   int64
	ERPReference string
	ERPNumber    string
	CreatedAt    time.Time
}

// NewOrderMapping creates a mapping from an accepted document receipt
func NewOrderMapping(orderID uuid.UUID, receipt *DocumentReceipt) *OrderMapping {
	return &OrderMapping{
		ID:           uuid.New(),
		OrderID:      orderID,
		ERPOrderID:   receipt.ID,
		ERPReference: receipt.Reference,
		ERPNumber:    receipt.Number,
		CreatedAt:    time.Now(),
	}
}

// ---------------------------------------------------------------------------
// Mapping repositories
// ---------------------------------------------------------------------------

// ProductMappingRepository defines persistence for product mappings
type ProductMappingRepository interface {
	// FindByVariant finds the mapping for a variant, or ErrMappingNotFound
	FindByVariant(ctx context.Context, variantID uuid.UUID) (*ProductMapping, error)

	// FindAll returns all product mappings
	FindAll(ctx context.Context) ([]ProductMapping, error)

	// Count returns the number of mapped variants
	Count(ctx context.Context) (int64, error)

	// Upsert creates the mapping or refreshes an existing one in place.
	// Returns true when a new row was created.
	Upsert(ctx context.Context, mapping *ProductMapping) (bool, error)
}

// CustomerMappingRepository defines persistence for customer mappings
type CustomerMappingRepository interface {
	// FindByCustomer finds the mapping for a customer, or ErrMappingNotFound
	FindByCustomer(ctx context.Context, customerID uuid.UUID) (*CustomerMapping, error)

	// Save creates a customer mapping
	Save(ctx context.Context, mapping *CustomerMapping) error
}

// SubmissionRecorder persists an accepted submission atomically: the
// order mapping row and the order's submitted flag either both land or
// neither does. A nil mapping records a duplicate collision where the
// ERP holds the document but returned no receipt.
type SubmissionRecorder interface {
	RecordSubmission(ctx context.Context, order *commerce.Order, mapping *OrderMapping) error
}

// OrderMappingRepository defines persistence for order mappings
type OrderMappingRepository interface {
	// FindByOrder finds the mapping for an order, or ErrMappingNotFound
	FindByOrder(ctx context.Context, orderID uuid.UUID) (*OrderMapping, error)

	// FindPollable returns mappings whose orders are not in a terminal
	// ERP state and therefore still need status polling.
	FindPollable(ctx context.Context) ([]OrderMapping, error)

	// Save creates an order mapping
	Save(ctx context.Context, mapping *OrderMapping) error
}
