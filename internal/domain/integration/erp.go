package integration

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// ERP value objects
// ---------------------------------------------------------------------------

// CustomerType distinguishes individuals from businesses in the ERP
type CustomerType int

const (
	// CustomerTypeIndividual is a private person
	CustomerTypeIndividual CustomerType = 1
	// CustomerTypeBusiness is a company
	CustomerTypeBusiness CustomerType = 2
)

// CustomerProfile is the data needed to create a customer in the ERP.
// Address fields stay blank when the storefront did not provide them;
// the ERP accepts empty strings but never nulls.
type CustomerProfile struct {
	Type       CustomerType
	TaxID      string
	FirstName  string
	Surname1   string
	Surname2   string
	Company    string
	Email      string
	Phone      string
	CountryID  int
	Province   string
	City       string
	PostalCode string
	Address    string
}

// OrderDocument is the platform-agnostic form of an order submission.
// The ERP adapter translates it into the wire schema. DocumentType 5 is
// the non-fiscal order type; using an invoice type here would trigger
// fiscal numbering in the ERP.
type OrderDocument struct {
	DocumentType      int
	Reference         string
	Date              time.Time
	CustomerID        int64
	PricesTaxIncluded bool
	TaxBase           decimal.Decimal
	Total             decimal.Decimal
	Comment           string
	Lines             []DocumentLine
	Payments          []DocumentPayment
}

// DocumentLine is a single article line of an order document
type DocumentLine struct {
	ArticleID int64
	Units     int
	// Price is the pre-discount, tax-inclusive unit price.
	Price decimal.Decimal
	// DiscountPct is the percentage discount applied to the line.
	DiscountPct decimal.Decimal
	VATRate     decimal.Decimal
}

// DocumentPayment records a payment against an order document
type DocumentPayment struct {
	MethodID int
	Date     time.Time
	Amount   decimal.Decimal
}

// DocumentReceipt is what the ERP returns for an accepted order document
type DocumentReceipt struct {
	ID        int64
	Reference string
	Number    string
}

// DocumentSummary is a condensed view of an order document stored in the
// ERP, used for operator-facing listings.
type DocumentSummary struct {
	ID        int64
	Reference string
	Number    string
	Date      time.Time
	Total     decimal.Decimal
}

// Article is an item of the ERP catalog
type Article struct {
	ID      int64
	Name    string
	Barcode string
}

// ---------------------------------------------------------------------------
// ERPGateway port
// ---------------------------------------------------------------------------

// ERPGateway is the port to the external ERP webservice. The concrete
// adapter lives in the infrastructure layer. Implementations classify
// failures into the sentinel errors of this package plus RejectionError
// for application-level rejections; they never retry.
type ERPGateway interface {
	// IsConfigured reports whether credentials are present
	IsConfigured() bool

	// TestConnection performs a cheap read to verify connectivity
	TestConnection(ctx context.Context) error

	// CreateCustomer creates a customer and returns its ERP ID
	CreateCustomer(ctx context.Context, profile *CustomerProfile) (int64, error)

	// FindCustomerByTaxID looks a customer up by fiscal identifier.
	// Returns ErrCustomerNotInERP when no match exists.
	FindCustomerByTaxID(ctx context.Context, taxID string) (int64, error)

	// CreateOrder submits an order document
	CreateOrder(ctx context.Context, doc *OrderDocument) (*DocumentReceipt, error)

	// GetOrderStatuses looks up statuses for up to BatchLimit order IDs
	GetOrderStatuses(ctx context.Context, orderIDs []int64) (map[int64]ERPOrderStatus, error)

	// ListArticles returns the full article catalog
	ListArticles(ctx context.Context) ([]Article, error)

	// ListStock returns current stock per article ID
	ListStock(ctx context.Context) (map[int64]int, error)

	// ListOrderDocuments returns order documents created in a date range
	ListOrderDocuments(ctx context.Context, from, to time.Time) ([]DocumentSummary, error)
}

// StatusBatchLimit is the maximum number of order IDs the ERP accepts in
// a single status lookup.
const StatusBatchLimit = 25
