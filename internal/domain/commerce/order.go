package commerce

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Order statuses
// ---------------------------------------------------------------------------

// FinancialStatus represents the payment state reported by the storefront
type FinancialStatus string

const (
	// FinancialStatusPending indicates payment has not completed
	FinancialStatusPending FinancialStatus = "pending"
	// FinancialStatusPaid indicates the order is fully paid
	FinancialStatusPaid FinancialStatus = "paid"
	// FinancialStatusRefunded indicates the order was refunded
	FinancialStatusRefunded FinancialStatus = "refunded"
)

// IsPaid returns true when the order has been fully paid
func (s FinancialStatus) IsPaid() bool {
	return s == FinancialStatusPaid
}

// FulfillmentStatus represents the shipping state of an order
type FulfillmentStatus string

const (
	// FulfillmentStatusNone indicates no fulfillment has started
	FulfillmentStatusNone FulfillmentStatus = ""
	// FulfillmentStatusPartial indicates fulfillment is in progress
	FulfillmentStatusPartial FulfillmentStatus = "partial"
	// FulfillmentStatusFulfilled indicates the order has shipped
	FulfillmentStatusFulfilled FulfillmentStatus = "fulfilled"
)

// ---------------------------------------------------------------------------
// Order aggregate
// ---------------------------------------------------------------------------

// Order is a storefront order mirrored locally for submission to the ERP.
type Order struct {
	ID                uuid.UUID
	ShopifyID         int64
	Name              string
	Email             string
	TotalPrice        decimal.Decimal
	FinancialStatus   FinancialStatus
	FulfillmentStatus FulfillmentStatus
	// Submitted is true once the order has been accepted by the ERP.
	// It must agree with the presence of an OrderMapping row.
	Submitted   bool
	SubmittedAt *time.Time
	// LastError holds the most recent submission failure for operators.
	LastError string
	// ERPStatus is the raw status code reported by the ERP (0 = unknown).
	ERPStatus int
	Lines     []OrderLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderLine is a single line item of an order. Immutable after ingestion.
type OrderLine struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	ShopifyID      int64
	ProductTitle   string
	VariantTitle   string
	SKU            string
	Quantity       int
	Price          decimal.Decimal
	DiscountAmount decimal.Decimal
	CreatedAt      time.Time
}

// Validate checks order invariants before persistence
func (o *Order) Validate() error {
	if o.ShopifyID == 0 {
		return ErrOrderInvalidExternalID
	}
	if strings.TrimSpace(o.Name) == "" {
		return ErrOrderInvalidName
	}
	if o.TotalPrice.IsNegative() {
		return ErrOrderInvalidTotal
	}
	return nil
}

// MarkSubmitted records a successful ERP submission and clears any
// previous error message.
func (o *Order) MarkSubmitted(at time.Time) {
	o.Submitted = true
	o.SubmittedAt = &at
	o.LastError = ""
}

// MarkSubmitFailed records a submission failure for operator visibility.
// The order stays unsubmitted; retry is a manual or scheduled re-trigger.
func (o *Order) MarkSubmitFailed(message string) {
	o.Submitted = false
	o.LastError = message
}

// ApplyERPStatus updates the raw ERP status code and derives the local
// fulfillment state. It returns true when anything actually changed so
// callers can skip redundant writes.
func (o *Order) ApplyERPStatus(code int) bool {
	changed := false
	if o.ERPStatus != code {
		o.ERPStatus = code
		changed = true
	}
	var fulfillment FulfillmentStatus
	switch code {
	case 4:
		fulfillment = FulfillmentStatusFulfilled
	case 2, 3:
		fulfillment = FulfillmentStatusPartial
	default:
		fulfillment = o.FulfillmentStatus
	}
	if o.FulfillmentStatus != fulfillment {
		o.FulfillmentStatus = fulfillment
		changed = true
	}
	return changed
}

// Total returns the line total (quantity x price) for an order line.
func (l *OrderLine) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
